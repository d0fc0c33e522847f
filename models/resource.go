package models

import "gorm.io/gorm"

// Resource is an external study material link shared by a user
type Resource struct {
	gorm.Model
	Name        string `gorm:"not null;size:200"`
	Link        string `gorm:"not null;size:500"`
	Description string `gorm:"size:1000"`
	PublicID    string `gorm:"size:100;uniqueIndex"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
}
