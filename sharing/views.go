package sharing

import (
	"sort"

	"github.com/cardfolio/cardfolio-api/models"
)

// GranteeView is one grantee of a shared set with their edit flag.
type GranteeView struct {
	ShareID  uint   `json:"shareId"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Edit     bool   `json:"edit"`
}

// SetShareView is one shared set as presented in the sharing listings:
// the set, its owner, its categories, whether the viewing user has
// favorited it, and every grantee of the set.
type SetShareView struct {
	SetID         uint          `json:"setId"`
	PublicID      string        `json:"publicId"`
	Name          string        `json:"name"`
	IsPublic      bool          `json:"isPublic"`
	OwnerID       uint          `json:"ownerId"`
	OwnerUsername string        `json:"ownerUsername"`
	Categories    []string      `json:"categories"`
	IsFavorite    bool          `json:"isFavorite"`
	Grantees      []GranteeView `json:"grantees"`
}

// ListSharedWithUser builds the "sets shared with me" view. One entry
// per distinct set the user holds a share on, ordered by set id
// ascending (first shared first). IsFavorite reflects userID's own
// favorites.
func (e *Engine) ListSharedWithUser(userID uint) ([]SetShareView, error) {
	var mine []models.SharedSet
	if err := e.db.Where("user_id = ?", userID).Find(&mine).Error; err != nil {
		return nil, err
	}
	setIDs := make([]uint, 0, len(mine))
	seen := make(map[uint]bool)
	for _, s := range mine {
		if !seen[s.SetID] {
			seen[s.SetID] = true
			setIDs = append(setIDs, s.SetID)
		}
	}
	return e.assembleViews(setIDs, userID)
}

// ListSharedByOwner builds the "sets I shared" view for ownerID: every
// set the owner has at least one active share on, same shape and order
// as ListSharedWithUser. IsFavorite reflects the owner's favorites.
func (e *Engine) ListSharedByOwner(ownerID uint) ([]SetShareView, error) {
	var setIDs []uint
	err := e.db.Model(&models.StudySet{}).
		Where("user_id = ? AND shared = ?", ownerID, true).
		Pluck("id", &setIDs).Error
	if err != nil {
		return nil, err
	}
	return e.assembleViews(setIDs, ownerID)
}

// assembleViews loads everything for the given sets in four batched
// queries, avoiding a per-share fan-out.
func (e *Engine) assembleViews(setIDs []uint, viewerID uint) ([]SetShareView, error) {
	if len(setIDs) == 0 {
		return []SetShareView{}, nil
	}

	var sets []models.StudySet
	if err := e.db.Preload("User").Where("id IN ?", setIDs).Find(&sets).Error; err != nil {
		return nil, err
	}

	var shares []models.SharedSet
	if err := e.db.Preload("User").Where("set_id IN ?", setIDs).Find(&shares).Error; err != nil {
		return nil, err
	}
	granteesBySet := make(map[uint][]GranteeView)
	for _, s := range shares {
		granteesBySet[s.SetID] = append(granteesBySet[s.SetID], GranteeView{
			ShareID:  s.ID,
			UserID:   s.UserID,
			Username: s.User.Username,
			Edit:     s.Edit,
		})
	}

	var tags []models.CategoryInSet
	if err := e.db.Preload("Category").Where("set_id IN ?", setIDs).Find(&tags).Error; err != nil {
		return nil, err
	}
	categoriesBySet := make(map[uint][]string)
	for _, t := range tags {
		categoriesBySet[t.SetID] = append(categoriesBySet[t.SetID], t.Category.Name)
	}

	var favorites []models.Favorite
	if err := e.db.Where("user_id = ? AND set_id IN ?", viewerID, setIDs).Find(&favorites).Error; err != nil {
		return nil, err
	}
	favorited := make(map[uint]bool)
	for _, f := range favorites {
		if f.SetID != nil {
			favorited[*f.SetID] = true
		}
	}

	views := make([]SetShareView, 0, len(sets))
	for _, set := range sets {
		categories := categoriesBySet[set.ID]
		if categories == nil {
			categories = []string{}
		}
		grantees := granteesBySet[set.ID]
		if grantees == nil {
			grantees = []GranteeView{}
		}
		views = append(views, SetShareView{
			SetID:         set.ID,
			PublicID:      set.PublicID,
			Name:          set.Name,
			IsPublic:      set.IsPublic,
			OwnerID:       set.UserID,
			OwnerUsername: set.User.Username,
			Categories:    categories,
			IsFavorite:    favorited[set.ID],
			Grantees:      grantees,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].SetID < views[j].SetID })
	return views, nil
}
