package models

import (
	"time"

	"gorm.io/gorm"
)

// Folder groups a user's sets
type Folder struct {
	gorm.Model
	Name     string `gorm:"not null;size:100"`
	PublicID string `gorm:"size:100;uniqueIndex"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
}

// FolderSet places a set in a folder. A set may live in several folders.
type FolderSet struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	FolderID uint   `gorm:"not null;uniqueIndex:idx_folder_set"`
	Folder   Folder `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`

	SetID    uint     `gorm:"not null;uniqueIndex:idx_folder_set"`
	StudySet StudySet `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"-"`
}
