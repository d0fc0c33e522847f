package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cardfolio/cardfolio-api/auth"
	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/register
func (db *DBHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	var existing models.User
	if err := db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		respondMessage(w, http.StatusBadRequest, "Username or email already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Register: failed to hash password: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        &req.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Register: failed to create user %s: %v", req.Username, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tokenString, err := auth.CreateToken(user.Username)
	if err != nil {
		log.Printf("Register: token generation failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Printf("Register: created user %s", user.Username)
	respondJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": tokenString,
	})
}

// POST /api/login
func (db *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokenString, err := auth.CreateToken(user.Username)
	if err != nil {
		log.Printf("Login: token generation failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": tokenString,
	})
}

// GET /api/me
func (db *DBHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	active, err := db.Subscriptions.IsActive(user.ID)
	if err != nil {
		log.Printf("Me: failed to check subscription for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"premium": active,
	})
}

// PUT /api/me
func (db *DBHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Bio       *string `json:"bio,omitempty"`
		AvatarURL *string `json:"avatarUrl,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated := false
	if req.Bio != nil && user.Bio != *req.Bio {
		user.Bio = *req.Bio
		updated = true
	}
	if req.AvatarURL != nil && user.AvatarURL != *req.AvatarURL {
		user.AvatarURL = *req.AvatarURL
		updated = true
	}
	if updated {
		if err := db.Save(user).Error; err != nil {
			log.Printf("UpdateMe: failed to update userID=%d: %v", user.ID, err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	respondJSON(w, http.StatusOK, user)
}

// GET /api/users/{username}
func (db *DBHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
