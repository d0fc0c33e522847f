package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/sets
// Accepts an optional nested list of questions; the set and its
// questions are created in one transaction.
func (db *DBHandler) CreateStudySet(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name      string `json:"name"`
		IsPublic  bool   `json:"isPublic"`
		LevelID   *uint  `json:"levelId,omitempty"`
		Questions []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"questions,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateStudySet: invalid request body: %v", err)
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Set name is required")
		return
	}

	if req.LevelID != nil {
		var level models.Level
		if err := db.First(&level, *req.LevelID).Error; err != nil {
			respondMessage(w, http.StatusNotFound, "Level not found")
			return
		}
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateStudySet: failed to generate publicID: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	set := models.StudySet{
		Name:     req.Name,
		UserID:   user.ID,
		IsPublic: req.IsPublic,
		LevelID:  req.LevelID,
		PublicID: publicID,
	}

	tx := db.Begin()
	if tx.Error != nil {
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := tx.Create(&set).Error; err != nil {
		tx.Rollback()
		log.Printf("CreateStudySet: failed to create set: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create set")
		return
	}
	for _, q := range req.Questions {
		if q.Question == "" || q.Answer == "" {
			tx.Rollback()
			respondMessage(w, http.StatusBadRequest, "Each card needs a question and an answer")
			return
		}
		question := models.Question{SetID: set.ID, Question: q.Question, Answer: q.Answer}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			log.Printf("CreateStudySet: failed to create question: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to create set")
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to create set")
		return
	}

	if err := db.Preload("Questions").First(&set, set.ID).Error; err != nil {
		log.Printf("CreateStudySet: failed to reload setID=%d: %v", set.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Error retrieving created set")
		return
	}

	log.Printf("CreateStudySet: created setID=%d for userID=%d", set.ID, user.ID)
	respondJSON(w, http.StatusCreated, set)
}

// GET /api/sets/{setID}
func (db *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}

	var set models.StudySet
	if err := db.Preload("User").Preload("Questions").Preload("Level").First(&set, setID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Set not found")
		return
	}

	db.respondWithSet(w, r, &set)
}

// GET /api/sets/public/{publicID}
// Shareable-link lookup by nanoid.
func (db *DBHandler) GetSetByPublicID(w http.ResponseWriter, r *http.Request) {
	publicID := r.PathValue("publicID")
	var set models.StudySet
	if err := db.Preload("User").Preload("Questions").Preload("Level").
		Where("public_id = ?", publicID).First(&set).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Set not found")
		return
	}

	db.respondWithSet(w, r, &set)
}

func (db *DBHandler) respondWithSet(w http.ResponseWriter, r *http.Request, set *models.StudySet) {
	var userID uint
	if user, ok := utils.CurrentUser(r); ok {
		userID = user.ID
	}

	canView, err := db.Sharing.CanView(set, userID)
	if err != nil {
		respondSharingError(w, err, "respondWithSet")
		return
	}
	if !canView {
		respondMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	access, err := db.Sharing.ResolveAccess(set.ID, userID)
	if err != nil {
		respondSharingError(w, err, "respondWithSet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"set":    set,
		"access": access,
	})
}

// PUT /api/sets/{setID}
// Owner only; partial field merge.
func (db *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
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
	if set.UserID != user.ID {
		log.Printf("UpdateSetByID: userID=%d tried to update setID=%d", user.ID, setID)
		respondMessage(w, http.StatusForbidden, "Only the set owner may update it")
		return
	}

	var req struct {
		Name     *string `json:"name,omitempty"`
		IsPublic *bool   `json:"isPublic,omitempty"`
		LevelID  *uint   `json:"levelId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated := false
	if req.Name != nil && set.Name != *req.Name {
		if *req.Name == "" {
			respondMessage(w, http.StatusBadRequest, "Set name cannot be empty")
			return
		}
		set.Name = *req.Name
		updated = true
	}
	if req.IsPublic != nil && set.IsPublic != *req.IsPublic {
		set.IsPublic = *req.IsPublic
		updated = true
	}
	if req.LevelID != nil {
		var level models.Level
		if err := db.First(&level, *req.LevelID).Error; err != nil {
			respondMessage(w, http.StatusNotFound, "Level not found")
			return
		}
		set.LevelID = req.LevelID
		updated = true
	}

	if updated {
		if err := db.Save(&set).Error; err != nil {
			log.Printf("UpdateSetByID: failed to update setID=%d: %v", setID, err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update set")
			return
		}
	}

	respondJSON(w, http.StatusOK, set)
}

// DELETE /api/sets/{setID}
func (db *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
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
	if set.UserID != user.ID {
		log.Printf("DeleteSetByID: userID=%d tried to delete setID=%d", user.ID, setID)
		respondMessage(w, http.StatusForbidden, "Only the set owner may delete it")
		return
	}

	// The set row is soft-deleted, so the cascade constraints never
	// fire; remove shares, memberships, tags and favorites ourselves so
	// no join rows point at a dead set.
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, join := range []any{
			&models.SharedSet{}, &models.FolderSet{}, &models.CategoryInSet{}, &models.Favorite{},
		} {
			if err := tx.Where("set_id = ?", set.ID).Delete(join).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&set).Error
	})
	if err != nil {
		log.Printf("DeleteSetByID: failed to delete setID=%d: %v", setID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete set")
		return
	}

	log.Printf("DeleteSetByID: deleted setID=%d", setID)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/users/{username}/sets
// Owners see all of their sets; everyone else sees public ones.
func (db *DBHandler) GetSetsForUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		respondMessage(w, http.StatusBadRequest, "Username is required")
		return
	}

	var owner models.User
	if err := db.Where("username = ?", username).First(&owner).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	query := db.Preload("Questions").Where("user_id = ?", owner.ID)
	current, ok := utils.CurrentUser(r)
	if !ok || current.ID != owner.ID {
		query = query.Where("is_public = ?", true)
	}

	var sets []models.StudySet
	if err := query.Find(&sets).Error; err != nil {
		log.Printf("GetSetsForUser: failed to fetch sets for userID=%d: %v", owner.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch sets")
		return
	}

	respondJSON(w, http.StatusOK, sets)
}
