package sharing

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
)

var (
	ErrSetNotFound   = errors.New("set not found")
	ErrShareNotFound = errors.New("share not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotOwner      = errors.New("user does not own the set")
	ErrSelfShare     = errors.New("set cannot be shared with its owner")
)

// Engine is the single writer of the denormalized StudySet.Shared flag
// and the single source of truth for set access decisions. Grant and
// revoke recompute the flag inside the same transaction as the share
// mutation, so concurrent grants and revokes on one set cannot leave
// the flag stale.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Access is the three-way outcome of resolving a user against a set.
// CanEdit is nil for the owner (owner rights are implicit, not a share)
// and nil for a user with no share at all; callers must distinguish
// "no share" from "share with Edit=false".
type Access struct {
	IsOwner bool  `json:"isOwner"`
	CanEdit *bool `json:"canEdit"`
}

// GrantShare shares a set with granteeID. The actor must own the set.
// Granting to a user who already holds a share updates that share's
// edit flag instead of inserting a second row.
func (e *Engine) GrantShare(setID, actorID, granteeID uint, edit bool) (*models.SharedSet, error) {
	var share models.SharedSet
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var set models.StudySet
		if err := tx.First(&set, setID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSetNotFound
			}
			return err
		}
		if set.UserID != actorID {
			return ErrNotOwner
		}
		if granteeID == set.UserID {
			return ErrSelfShare
		}
		var grantee models.User
		if err := tx.First(&grantee, granteeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		err := tx.Where("set_id = ? AND user_id = ?", setID, granteeID).First(&share).Error
		switch {
		case err == nil:
			share.Edit = edit
			if err := tx.Save(&share).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			share = models.SharedSet{SetID: setID, UserID: granteeID, Edit: edit}
			if err := tx.Create(&share).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return e.recomputeShared(tx, setID)
	})
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// RevokeShare removes a share. The actor must own the share's set. If
// the deleted row was the set's last share, the set's shared flag flips
// back to false in the same transaction.
func (e *Engine) RevokeShare(shareID, actorID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var share models.SharedSet
		if err := tx.First(&share, shareID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShareNotFound
			}
			return err
		}
		var set models.StudySet
		if err := tx.First(&set, share.SetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSetNotFound
			}
			return err
		}
		if set.UserID != actorID {
			return ErrNotOwner
		}
		if err := tx.Delete(&share).Error; err != nil {
			return err
		}
		return e.recomputeShared(tx, share.SetID)
	})
}

// recomputeShared derives the flag from the surviving share rows rather
// than toggling it, so it is correct regardless of which mutation ran.
func (e *Engine) recomputeShared(tx *gorm.DB, setID uint) error {
	var count int64
	if err := tx.Model(&models.SharedSet{}).Where("set_id = ?", setID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.StudySet{}).Where("id = ?", setID).Update("shared", count > 0).Error
}

// ResolveAccess answers "what may userID do with setID". Ownership wins
// over any share row that may also exist for the owner.
func (e *Engine) ResolveAccess(setID, userID uint) (Access, error) {
	var set models.StudySet
	if err := e.db.First(&set, setID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Access{}, ErrSetNotFound
		}
		return Access{}, err
	}
	if set.UserID == userID {
		return Access{IsOwner: true}, nil
	}
	var share models.SharedSet
	err := e.db.Where("set_id = ? AND user_id = ?", setID, userID).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Access{}, nil
		}
		return Access{}, err
	}
	edit := share.Edit
	return Access{CanEdit: &edit}, nil
}

// CanView reports whether userID may read the set: public sets are open
// to everyone, private sets to the owner and grantees.
func (e *Engine) CanView(set *models.StudySet, userID uint) (bool, error) {
	if set.IsPublic || set.UserID == userID {
		return true, nil
	}
	access, err := e.ResolveAccess(set.ID, userID)
	if err != nil {
		return false, err
	}
	return access.IsOwner || access.CanEdit != nil, nil
}

// ShareAuthor returns the owner of the set a share belongs to.
func (e *Engine) ShareAuthor(shareID uint) (*models.User, error) {
	var share models.SharedSet
	if err := e.db.First(&share, shareID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	var set models.StudySet
	if err := e.db.Preload("User").First(&set, share.SetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return &set.User, nil
}
