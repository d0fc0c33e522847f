package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/folders
func (db *DBHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Folder name is required")
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateFolder: failed to generate publicID: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	folder := models.Folder{Name: req.Name, UserID: user.ID, PublicID: publicID}
	if err := db.Create(&folder).Error; err != nil {
		log.Printf("CreateFolder: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create folder")
		return
	}

	respondJSON(w, http.StatusCreated, folder)
}

// GET /api/folders
func (db *DBHandler) GetFolders(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var folders []models.Folder
	if err := db.Where("user_id = ?", user.ID).Find(&folders).Error; err != nil {
		log.Printf("GetFolders: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch folders")
		return
	}

	respondJSON(w, http.StatusOK, folders)
}

// ownedFolder loads a folder and verifies the current user owns it.
func (db *DBHandler) ownedFolder(w http.ResponseWriter, r *http.Request) (*models.Folder, bool) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	folderID, ok := pathID(r, "folderID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid folder id")
		return nil, false
	}

	var folder models.Folder
	if err := db.First(&folder, folderID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Folder not found")
		return nil, false
	}
	if folder.UserID != user.ID {
		respondMessage(w, http.StatusForbidden, "Only the folder owner may do this")
		return nil, false
	}
	return &folder, true
}

// PUT /api/folders/{folderID}
func (db *DBHandler) UpdateFolderByID(w http.ResponseWriter, r *http.Request) {
	folder, ok := db.ownedFolder(w, r)
	if !ok {
		return
	}

	var req struct {
		Name *string `json:"name,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil && folder.Name != *req.Name {
		if *req.Name == "" {
			respondMessage(w, http.StatusBadRequest, "Folder name cannot be empty")
			return
		}
		folder.Name = *req.Name
		if err := db.Save(folder).Error; err != nil {
			log.Printf("UpdateFolderByID: failed for folderID=%d: %v", folder.ID, err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update folder")
			return
		}
	}

	respondJSON(w, http.StatusOK, folder)
}

// DELETE /api/folders/{folderID}
func (db *DBHandler) DeleteFolderByID(w http.ResponseWriter, r *http.Request) {
	folder, ok := db.ownedFolder(w, r)
	if !ok {
		return
	}

	if err := db.Delete(folder).Error; err != nil {
		log.Printf("DeleteFolderByID: failed for folderID=%d: %v", folder.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete folder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/folders/{folderID}/sets/{setID}
func (db *DBHandler) AddSetToFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := db.ownedFolder(w, r)
	if !ok {
		return
	}
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}

	var set models.StudySet
	if err := db.First(&set, setID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Set not found")
		return
	}

	var existing models.FolderSet
	err := db.Where("folder_id = ? AND set_id = ?", folder.ID, set.ID).First(&existing).Error
	if err == nil {
		respondMessage(w, http.StatusBadRequest, "Set is already in this folder")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("AddSetToFolder: lookup failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	membership := models.FolderSet{FolderID: folder.ID, SetID: set.ID}
	if err := db.Create(&membership).Error; err != nil {
		log.Printf("AddSetToFolder: failed for folderID=%d setID=%d: %v", folder.ID, set.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to add set to folder")
		return
	}

	respondJSON(w, http.StatusCreated, membership)
}

// DELETE /api/folders/{folderID}/sets/{setID}
func (db *DBHandler) RemoveSetFromFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := db.ownedFolder(w, r)
	if !ok {
		return
	}
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}

	result := db.Where("folder_id = ? AND set_id = ?", folder.ID, setID).Delete(&models.FolderSet{})
	if result.Error != nil {
		log.Printf("RemoveSetFromFolder: failed for folderID=%d setID=%d: %v", folder.ID, setID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to remove set from folder")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Set is not in this folder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/folders/{folderID}/sets
func (db *DBHandler) GetSetsInFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := db.ownedFolder(w, r)
	if !ok {
		return
	}

	var memberships []models.FolderSet
	if err := db.Where("folder_id = ?", folder.ID).Find(&memberships).Error; err != nil {
		log.Printf("GetSetsInFolder: failed for folderID=%d: %v", folder.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch folder contents")
		return
	}

	setIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		setIDs = append(setIDs, m.SetID)
	}

	sets := []models.StudySet{}
	if len(setIDs) > 0 {
		if err := db.Preload("Questions").Where("id IN ?", setIDs).Find(&sets).Error; err != nil {
			log.Printf("GetSetsInFolder: failed to load sets for folderID=%d: %v", folder.ID, err)
			respondMessage(w, http.StatusInternalServerError, "Failed to fetch folder contents")
			return
		}
	}

	respondJSON(w, http.StatusOK, sets)
}
