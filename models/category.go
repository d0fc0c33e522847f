package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `gorm:"unique;not null;size:100"`
}

// CategoryInSet tags a set with a category. A set holds at most
// MaxCategoriesPerSet tags, enforced at add time.
type CategoryInSet struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	SetID    uint     `gorm:"not null;uniqueIndex:idx_category_set"`
	StudySet StudySet `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"-"`

	CategoryID uint     `gorm:"not null;uniqueIndex:idx_category_set"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`
}

const MaxCategoriesPerSet = 3
