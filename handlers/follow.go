package handlers

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/people/{username}
func (db *DBHandler) FollowUser(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var target models.User
	if err := db.Where("username = ?", r.PathValue("username")).First(&target).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if target.ID == user.ID {
		respondMessage(w, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	var existing models.Follow
	err := db.Where("user_id = ? AND target_id = ?", user.ID, target.ID).First(&existing).Error
	if err == nil {
		respondMessage(w, http.StatusBadRequest, "Already following")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("FollowUser: lookup failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	edge := models.Follow{UserID: user.ID, TargetID: target.ID}
	if err := db.Create(&edge).Error; err != nil {
		log.Printf("FollowUser: failed userID=%d targetID=%d: %v", user.ID, target.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to follow user")
		return
	}

	respondJSON(w, http.StatusCreated, edge)
}

// DELETE /api/people/{username}
func (db *DBHandler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var target models.User
	if err := db.Where("username = ?", r.PathValue("username")).First(&target).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	result := db.Where("user_id = ? AND target_id = ?", user.ID, target.ID).Delete(&models.Follow{})
	if result.Error != nil {
		log.Printf("UnfollowUser: failed userID=%d targetID=%d: %v", user.ID, target.ID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Not following this user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/people/following
func (db *DBHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := db.followEdges("user_id", "target_id", user.ID)
	if err != nil {
		log.Printf("GetFollowing: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GET /api/people/followers
func (db *DBHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := db.followEdges("target_id", "user_id", user.ID)
	if err != nil {
		log.Printf("GetFollowers: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GET /api/people/friends
// Friends are mutual follow edges: users this user follows who follow
// back.
func (db *DBHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var friendIDs []uint
	err := db.Model(&models.Follow{}).
		Where("user_id = ? AND target_id IN (?)", user.ID,
			db.Model(&models.Follow{}).Select("user_id").Where("target_id = ?", user.ID)).
		Pluck("target_id", &friendIDs).Error
	if err != nil {
		log.Printf("GetFriends: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	users := []models.User{}
	if len(friendIDs) > 0 {
		if err := db.Where("id IN ?", friendIDs).Find(&users).Error; err != nil {
			log.Printf("GetFriends: failed to load users: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	respondJSON(w, http.StatusOK, users)
}

// followEdges loads the users on the far side of the edges matching
// matchColumn = id, reading ids from pluckColumn.
func (db *DBHandler) followEdges(matchColumn, pluckColumn string, id uint) ([]models.User, error) {
	var ids []uint
	err := db.Model(&models.Follow{}).
		Where(matchColumn+" = ?", id).
		Pluck(pluckColumn, &ids).Error
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
