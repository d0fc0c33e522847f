package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/subscription"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/subscription
func (db *DBHandler) ExtendSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		TypeID uint `json:"typeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TypeID == 0 {
		respondMessage(w, http.StatusBadRequest, "typeId is required")
		return
	}

	sub, err := db.Subscriptions.Extend(user.ID, req.TypeID)
	if err != nil {
		if errors.Is(err, subscription.ErrTypeNotFound) {
			respondMessage(w, http.StatusNotFound, "Subscription type not found")
			return
		}
		log.Printf("ExtendSubscription: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Printf("ExtendSubscription: userID=%d extended to %s", user.ID, sub.Date.Format("2006-01-02"))
	respondJSON(w, http.StatusCreated, sub)
}

// POST /api/subscription-types
func (db *DBHandler) CreateSubscriptionType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Type name is required")
		return
	}

	subType := models.SubscriptionType{Name: req.Name}
	if err := db.Create(&subType).Error; err != nil {
		log.Printf("CreateSubscriptionType: failed: %v", err)
		respondMessage(w, http.StatusBadRequest, "Subscription type already exists")
		return
	}

	respondJSON(w, http.StatusCreated, subType)
}

// GET /api/subscription-types
func (db *DBHandler) GetSubscriptionTypes(w http.ResponseWriter, r *http.Request) {
	var types []models.SubscriptionType
	if err := db.Find(&types).Error; err != nil {
		log.Printf("GetSubscriptionTypes: failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch subscription types")
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// GET /api/subscription
func (db *DBHandler) GetSubscriptionPeriods(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	periods, err := db.Subscriptions.ListPeriods(user.ID)
	if err != nil {
		log.Printf("GetSubscriptionPeriods: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	active, err := db.Subscriptions.IsActive(user.ID)
	if err != nil {
		log.Printf("GetSubscriptionPeriods: activity check failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"active":  active,
		"periods": periods,
	})
}
