package models

import "time"

// Favorite bookmarks exactly one of a set, a folder or a resource for a
// user. A partial unique index per target column enforces one favorite
// per (user, target) pair; a full composite index would not, since the
// unfilled columns are NULL and NULLs never collide.
type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	UserID uint `gorm:"not null;index;uniqueIndex:idx_fav_set,where:set_id IS NOT NULL;uniqueIndex:idx_fav_folder,where:folder_id IS NOT NULL;uniqueIndex:idx_fav_resource,where:resource_id IS NOT NULL"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	SetID      *uint `gorm:"default:null;uniqueIndex:idx_fav_set"`
	FolderID   *uint `gorm:"default:null;uniqueIndex:idx_fav_folder"`
	ResourceID *uint `gorm:"default:null;uniqueIndex:idx_fav_resource"`
}
