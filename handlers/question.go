package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// canEditSet loads the set and checks the acting user holds edit
// rights: owner, or grantee of an edit share.
func (db *DBHandler) canEditSet(w http.ResponseWriter, r *http.Request, setID uint) (*models.StudySet, bool) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var set models.StudySet
	if err := db.First(&set, setID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Set not found")
		return nil, false
	}

	access, err := db.Sharing.ResolveAccess(set.ID, user.ID)
	if err != nil {
		respondSharingError(w, err, "canEditSet")
		return nil, false
	}
	if !access.IsOwner && (access.CanEdit == nil || !*access.CanEdit) {
		respondMessage(w, http.StatusForbidden, "No edit rights on this set")
		return nil, false
	}
	return &set, true
}

// POST /api/sets/{setID}/questions
func (db *DBHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}
	set, ok := db.canEditSet(w, r, setID)
	if !ok {
		return
	}

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" || req.Answer == "" {
		respondMessage(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	question := models.Question{SetID: set.ID, Question: req.Question, Answer: req.Answer}
	if err := db.Create(&question).Error; err != nil {
		log.Printf("CreateQuestion: failed for setID=%d: %v", set.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	respondJSON(w, http.StatusCreated, question)
}

// GET /api/sets/{setID}/questions
func (db *DBHandler) GetQuestionsForSet(w http.ResponseWriter, r *http.Request) {
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

	var userID uint
	if user, ok := utils.CurrentUser(r); ok {
		userID = user.ID
	}
	canView, err := db.Sharing.CanView(&set, userID)
	if err != nil {
		respondSharingError(w, err, "GetQuestionsForSet")
		return
	}
	if !canView {
		respondMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	var questions []models.Question
	if err := db.Where("set_id = ?", set.ID).Find(&questions).Error; err != nil {
		log.Printf("GetQuestionsForSet: failed for setID=%d: %v", set.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	respondJSON(w, http.StatusOK, questions)
}

// PUT /api/sets/{setID}/questions/{questionID}
func (db *DBHandler) UpdateQuestionByID(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}
	questionID, ok := pathID(r, "questionID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid question id")
		return
	}
	set, ok := db.canEditSet(w, r, setID)
	if !ok {
		return
	}

	var question models.Question
	if err := db.Where("id = ? AND set_id = ?", questionID, set.ID).First(&question).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Question not found")
		return
	}

	var req struct {
		Question *string `json:"question,omitempty"`
		Answer   *string `json:"answer,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question != nil {
		if *req.Question == "" {
			respondMessage(w, http.StatusBadRequest, "Question cannot be empty")
			return
		}
		question.Question = *req.Question
	}
	if req.Answer != nil {
		if *req.Answer == "" {
			respondMessage(w, http.StatusBadRequest, "Answer cannot be empty")
			return
		}
		question.Answer = *req.Answer
	}

	if err := db.Save(&question).Error; err != nil {
		log.Printf("UpdateQuestionByID: failed for questionID=%d: %v", questionID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update question")
		return
	}

	respondJSON(w, http.StatusOK, question)
}

// DELETE /api/sets/{setID}/questions/{questionID}
func (db *DBHandler) DeleteQuestionByID(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}
	questionID, ok := pathID(r, "questionID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid question id")
		return
	}
	set, ok := db.canEditSet(w, r, setID)
	if !ok {
		return
	}

	result := db.Where("id = ? AND set_id = ?", questionID, set.ID).Delete(&models.Question{})
	if result.Error != nil {
		log.Printf("DeleteQuestionByID: failed for questionID=%d: %v", questionID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Question not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
