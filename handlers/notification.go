package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/notifications
// Sends a help-request style notification to another user.
func (db *DBHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	sender, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		UserID uint   `json:"userId"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.Text == "" {
		respondMessage(w, http.StatusBadRequest, "userId and text are required")
		return
	}

	var recipient models.User
	if err := db.First(&recipient, req.UserID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	senderID := sender.ID
	notification := models.Notification{
		UserID:   recipient.ID,
		SenderID: &senderID,
		Text:     req.Text,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("CreateNotification: failed for userID=%d: %v", recipient.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}

	respondJSON(w, http.StatusCreated, notification)
}

// GET /api/notifications
func (db *DBHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var notifications []models.Notification
	if err := db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		log.Printf("GetNotifications: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

// PUT /api/notifications/{notificationID}/read
func (db *DBHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	notificationID, ok := pathID(r, "notificationID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", notificationID, user.ID).First(&notification).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Notification not found")
		return
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := db.Save(&notification).Error; err != nil {
			log.Printf("MarkNotificationRead: failed for notificationID=%d: %v", notificationID, err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update notification")
			return
		}
	}

	respondJSON(w, http.StatusOK, notification)
}

// DELETE /api/notifications/{notificationID}
func (db *DBHandler) DeleteNotificationByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	notificationID, ok := pathID(r, "notificationID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	result := db.Where("id = ? AND user_id = ?", notificationID, user.ID).Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("DeleteNotificationByID: failed for notificationID=%d: %v", notificationID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Notification not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
