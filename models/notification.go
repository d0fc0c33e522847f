package models

import "gorm.io/gorm"

// Notification is a message delivered to a user, e.g. a help request
type Notification struct {
	gorm.Model
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	SenderID *uint `gorm:"default:null"`
	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`

	Text   string `gorm:"not null;size:1000"`
	IsRead bool   `gorm:"default:false"`
}
