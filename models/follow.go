package models

import "time"

// Follow is a directed follower -> followee edge. Two users with
// edges in both directions are friends.
type Follow struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	UserID uint `gorm:"not null;uniqueIndex:idx_follow_edge"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	TargetID uint `gorm:"not null;uniqueIndex:idx_follow_edge"`
	Target   User `gorm:"foreignKey:TargetID" json:"-"`
}
