package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/feedback
func (db *DBHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondMessage(w, http.StatusBadRequest, "Feedback text is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondMessage(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	feedback := models.Feedback{UserID: user.ID, Text: req.Text, Rating: req.Rating}
	if err := db.Create(&feedback).Error; err != nil {
		log.Printf("CreateFeedback: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create feedback")
		return
	}

	respondJSON(w, http.StatusCreated, feedback)
}

// GET /api/feedback
func (db *DBHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	var feedback []models.Feedback
	if err := db.Order("created_at DESC").Find(&feedback).Error; err != nil {
		log.Printf("GetFeedback: failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}
	respondJSON(w, http.StatusOK, feedback)
}

// POST /api/complaints
func (db *DBHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		TargetUserID *uint  `json:"targetUserId,omitempty"`
		SetID        *uint  `json:"setId,omitempty"`
		Text         string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondMessage(w, http.StatusBadRequest, "Complaint text is required")
		return
	}
	if req.TargetUserID == nil && req.SetID == nil {
		respondMessage(w, http.StatusBadRequest, "A complaint must target a user or a set")
		return
	}

	if req.TargetUserID != nil {
		if err := db.First(&models.User{}, *req.TargetUserID).Error; err != nil {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
	}
	if req.SetID != nil {
		if err := db.First(&models.StudySet{}, *req.SetID).Error; err != nil {
			respondMessage(w, http.StatusNotFound, "Set not found")
			return
		}
	}

	complaint := models.Complaint{
		UserID:       user.ID,
		TargetUserID: req.TargetUserID,
		SetID:        req.SetID,
		Text:         req.Text,
	}
	if err := db.Create(&complaint).Error; err != nil {
		log.Printf("CreateComplaint: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create complaint")
		return
	}

	respondJSON(w, http.StatusCreated, complaint)
}

// GET /api/complaints
func (db *DBHandler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	var complaints []models.Complaint
	if err := db.Order("created_at DESC").Find(&complaints).Error; err != nil {
		log.Printf("GetComplaints: failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch complaints")
		return
	}
	respondJSON(w, http.StatusOK, complaints)
}
