package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
)

var Database *gorm.DB

// Connect opens postgres when DB_URL is set, otherwise a local sqlite
// file for development.
func Connect() error {
	var err error
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	} else {
		Database, err = gorm.Open(sqlite.Open("cardfolio.db"), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}

	err = Migrate(Database)
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}

// Migrate is shared with the test suites, which run it against
// in-memory sqlite databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.StudySet{},
		&models.Question{},
		&models.SharedSet{},
		&models.Folder{},
		&models.FolderSet{},
		&models.Category{},
		&models.CategoryInSet{},
		&models.Level{},
		&models.Resource{},
		&models.Favorite{},
		&models.SubscriptionType{},
		&models.Subscription{},
		&models.Notification{},
		&models.Feedback{},
		&models.Complaint{},
		&models.Follow{},
	)
}
