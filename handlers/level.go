package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cardfolio/cardfolio-api/models"
)

// POST /api/levels
func (db *DBHandler) CreateLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Level name is required")
		return
	}

	level := models.Level{Name: req.Name}
	if err := db.Create(&level).Error; err != nil {
		log.Printf("CreateLevel: failed: %v", err)
		respondMessage(w, http.StatusBadRequest, "Level already exists")
		return
	}

	respondJSON(w, http.StatusCreated, level)
}

// GET /api/levels
func (db *DBHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	var levels []models.Level
	if err := db.Find(&levels).Error; err != nil {
		log.Printf("GetLevels: failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch levels")
		return
	}
	respondJSON(w, http.StatusOK, levels)
}

// DELETE /api/levels/{levelID}
func (db *DBHandler) DeleteLevelByID(w http.ResponseWriter, r *http.Request) {
	levelID, ok := pathID(r, "levelID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid level id")
		return
	}

	result := db.Delete(&models.Level{}, levelID)
	if result.Error != nil {
		log.Printf("DeleteLevelByID: failed for levelID=%d: %v", levelID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete level")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Level not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
