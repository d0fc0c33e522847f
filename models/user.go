package models

import "gorm.io/gorm"

// User represents a registered user
type User struct {
	gorm.Model
	Username     string  `gorm:"unique;not null;size:100"`
	Email        *string `gorm:"uniqueIndex;size:200"`
	PasswordHash string  `gorm:"size:200" json:"-"`
	Auth0ID      *string `gorm:"uniqueIndex;default:null" json:"-"`
	Bio          string  `gorm:"size:500"`
	AvatarURL    string  `gorm:"size:300"`

	StudySets []StudySet `gorm:"foreignKey:UserID"`
	Folders   []Folder   `gorm:"foreignKey:UserID"`
}
