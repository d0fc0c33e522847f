package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/resources
func (db *DBHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Link        string `json:"link"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Link == "" {
		respondMessage(w, http.StatusBadRequest, "Resource name and link are required")
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateResource: failed to generate publicID: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resource := models.Resource{
		Name:        req.Name,
		Link:        req.Link,
		Description: req.Description,
		UserID:      user.ID,
		PublicID:    publicID,
	}
	if err := db.Create(&resource).Error; err != nil {
		log.Printf("CreateResource: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create resource")
		return
	}

	respondJSON(w, http.StatusCreated, resource)
}

// GET /api/resources
func (db *DBHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	var resources []models.Resource
	if err := db.Find(&resources).Error; err != nil {
		log.Printf("GetResources: failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch resources")
		return
	}
	respondJSON(w, http.StatusOK, resources)
}

// PUT /api/resources/{resourceID}
func (db *DBHandler) UpdateResourceByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	resourceID, ok := pathID(r, "resourceID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	var resource models.Resource
	if err := db.First(&resource, resourceID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Resource not found")
		return
	}
	if resource.UserID != user.ID {
		respondMessage(w, http.StatusForbidden, "Only the resource owner may update it")
		return
	}

	var req struct {
		Name        *string `json:"name,omitempty"`
		Link        *string `json:"link,omitempty"`
		Description *string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Link != nil {
		resource.Link = *req.Link
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if resource.Name == "" || resource.Link == "" {
		respondMessage(w, http.StatusBadRequest, "Resource name and link are required")
		return
	}

	if err := db.Save(&resource).Error; err != nil {
		log.Printf("UpdateResourceByID: failed for resourceID=%d: %v", resourceID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update resource")
		return
	}

	respondJSON(w, http.StatusOK, resource)
}

// DELETE /api/resources/{resourceID}
func (db *DBHandler) DeleteResourceByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	resourceID, ok := pathID(r, "resourceID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	var resource models.Resource
	if err := db.First(&resource, resourceID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Resource not found")
		return
	}
	if resource.UserID != user.ID {
		respondMessage(w, http.StatusForbidden, "Only the resource owner may delete it")
		return
	}

	if err := db.Delete(&resource).Error; err != nil {
		log.Printf("DeleteResourceByID: failed for resourceID=%d: %v", resourceID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete resource")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
