package models

import "time"

// SharedSet grants a user view or edit access to another user's set.
// At most one row per (set, grantee) pair. Deletes are hard deletes so
// a revoked grantee can be granted again under the unique index.
type SharedSet struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	SetID    uint     `gorm:"not null;uniqueIndex:idx_shared_set_grantee"`
	StudySet StudySet `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"-"`

	UserID uint `gorm:"not null;uniqueIndex:idx_shared_set_grantee"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Edit bool `gorm:"default:false"`
}
