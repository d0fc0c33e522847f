package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cardfolio/cardfolio-api/utils"
)

// POST /api/shared-sets
func (db *DBHandler) GrantShare(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		SetID  uint `json:"setId"`
		UserID uint `json:"userId"`
		Edit   bool `json:"edit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SetID == 0 || req.UserID == 0 {
		respondMessage(w, http.StatusBadRequest, "setId and userId are required")
		return
	}

	share, err := db.Sharing.GrantShare(req.SetID, user.ID, req.UserID, req.Edit)
	if err != nil {
		respondSharingError(w, err, "GrantShare")
		return
	}

	log.Printf("GrantShare: setID=%d shared with userID=%d edit=%t by userID=%d",
		req.SetID, req.UserID, req.Edit, user.ID)
	respondJSON(w, http.StatusCreated, share)
}

// DELETE /api/shared-sets/{shareID}
func (db *DBHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	shareID, ok := pathID(r, "shareID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid share id")
		return
	}

	if err := db.Sharing.RevokeShare(shareID, user.ID); err != nil {
		respondSharingError(w, err, "RevokeShare")
		return
	}

	log.Printf("RevokeShare: shareID=%d revoked by userID=%d", shareID, user.ID)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/shared-sets/{shareID}/author
func (db *DBHandler) GetShareAuthor(w http.ResponseWriter, r *http.Request) {
	shareID, ok := pathID(r, "shareID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid share id")
		return
	}

	author, err := db.Sharing.ShareAuthor(shareID)
	if err != nil {
		respondSharingError(w, err, "GetShareAuthor")
		return
	}

	respondJSON(w, http.StatusOK, author)
}

// GET /api/shared-sets-all
func (db *DBHandler) GetSetsSharedWithMe(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	views, err := db.Sharing.ListSharedWithUser(user.ID)
	if err != nil {
		log.Printf("GetSetsSharedWithMe: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// GET /api/shared-sets-by-user
func (db *DBHandler) GetSetsSharedByMe(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	views, err := db.Sharing.ListSharedByOwner(user.ID)
	if err != nil {
		log.Printf("GetSetsSharedByMe: failed for userID=%d: %v", user.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// GET /api/shared-sets-author/{setID}
// Resolves what the current user may do with the set.
func (db *DBHandler) GetAccessForSet(w http.ResponseWriter, r *http.Request) {
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

	access, err := db.Sharing.ResolveAccess(setID, user.ID)
	if err != nil {
		respondSharingError(w, err, "GetAccessForSet")
		return
	}

	respondJSON(w, http.StatusOK, access)
}
