package models

import "gorm.io/gorm"

type Feedback struct {
	gorm.Model
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Text   string `gorm:"not null;size:2000"`
	Rating int    `gorm:"not null"`
}

// Complaint reports a user or a set to the moderators
type Complaint struct {
	gorm.Model
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	TargetUserID *uint `gorm:"default:null"`
	SetID        *uint `gorm:"default:null"`

	Text string `gorm:"not null;size:2000"`
}
