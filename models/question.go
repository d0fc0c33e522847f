package models

import "gorm.io/gorm"

// Question represents a single question/answer card in a set
type Question struct {
	gorm.Model
	SetID    uint     `gorm:"not null;index"`
	StudySet StudySet `gorm:"foreignKey:SetID" json:"-"`

	Question string `gorm:"not null;size:500"`
	Answer   string `gorm:"not null;size:2000"`
}
