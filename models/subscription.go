package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionType struct {
	gorm.Model
	Name string `gorm:"unique;not null;size:100"`
}

// Subscription is one entry of the append-only premium ledger.
// Date is the period's end; the current end date for a user is the
// row with the greatest Date. Rows are never updated in place.
type Subscription struct {
	gorm.Model
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	TypeID           uint             `gorm:"not null"`
	SubscriptionType SubscriptionType `gorm:"foreignKey:TypeID" json:"-"`

	Date time.Time `gorm:"not null;index"`
}
