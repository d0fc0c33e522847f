package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/favorites
// The body names exactly one target: a set, a folder or a resource.
func (db *DBHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		SetID      *uint `json:"setId,omitempty"`
		FolderID   *uint `json:"folderId,omitempty"`
		ResourceID *uint `json:"resourceId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targets := 0
	for _, id := range []*uint{req.SetID, req.FolderID, req.ResourceID} {
		if id != nil {
			targets++
		}
	}
	if targets != 1 {
		respondMessage(w, http.StatusBadRequest, "Exactly one of setId, folderId or resourceId is required")
		return
	}

	var (
		lookupErr error
		dupQuery  *gorm.DB
	)
	switch {
	case req.SetID != nil:
		lookupErr = db.First(&models.StudySet{}, *req.SetID).Error
		dupQuery = db.Where("user_id = ? AND set_id = ?", user.ID, *req.SetID)
	case req.FolderID != nil:
		lookupErr = db.First(&models.Folder{}, *req.FolderID).Error
		dupQuery = db.Where("user_id = ? AND folder_id = ?", user.ID, *req.FolderID)
	default:
		lookupErr = db.First(&models.Resource{}, *req.ResourceID).Error
		dupQuery = db.Where("user_id = ? AND resource_id = ?", user.ID, *req.ResourceID)
	}
	if lookupErr != nil {
		respondMessage(w, http.StatusNotFound, "Favorite target not found")
		return
	}

	var existing models.Favorite
	err := dupQuery.First(&existing).Error
	if err == nil {
		respondMessage(w, http.StatusBadRequest, "Already favorited")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("CreateFavorite: duplicate lookup failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	favorite := models.Favorite{
		UserID:     user.ID,
		SetID:      req.SetID,
		FolderID:   req.FolderID,
		ResourceID: req.ResourceID,
	}
	if err := db.Create(&favorite).Error; err != nil {
		log.Printf("CreateFavorite: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create favorite")
		return
	}

	respondJSON(w, http.StatusCreated, favorite)
}

// GET /api/favorites
func (db *DBHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var favorites []models.Favorite
	if err := db.Where("user_id = ?", user.ID).Find(&favorites).Error; err != nil {
		log.Printf("GetFavorites: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// DELETE /api/favorites/{favoriteID}
func (db *DBHandler) DeleteFavoriteByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	favoriteID, ok := pathID(r, "favoriteID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid favorite id")
		return
	}

	var favorite models.Favorite
	if err := db.First(&favorite, favoriteID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Favorite not found")
		return
	}
	if favorite.UserID != user.ID {
		respondMessage(w, http.StatusForbidden, "Not your favorite")
		return
	}

	if err := db.Delete(&favorite).Error; err != nil {
		log.Printf("DeleteFavoriteByID: failed for favoriteID=%d: %v", favoriteID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
