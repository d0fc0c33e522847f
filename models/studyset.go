package models

import "gorm.io/gorm"

// StudySet represents a collection of question/answer cards
type StudySet struct {
	gorm.Model
	Name     string `gorm:"not null;size:100"`
	PublicID string `gorm:"size:100;uniqueIndex"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`

	IsPublic bool `gorm:"default:false"`
	// Shared is true iff at least one SharedSet row references this set.
	// Only the sharing engine may write it.
	Shared bool `gorm:"default:false"`

	LevelID *uint  `gorm:"default:null"`
	Level   *Level `gorm:"foreignKey:LevelID" json:"Level,omitempty"`

	Questions []Question `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`
}
