package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/sharing"
	"github.com/cardfolio/cardfolio-api/subscription"
)

type DBHandler struct {
	*gorm.DB
	Sharing       *sharing.Engine
	Subscriptions *subscription.Ledger
}

func NewDBHandler(db *gorm.DB) *DBHandler {
	return &DBHandler{
		DB:            db,
		Sharing:       sharing.NewEngine(db),
		Subscriptions: subscription.NewLedger(db),
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("respondJSON: encode failed: %v", err)
	}
}

// respondMessage writes the {"message": ...} error/status body. Internal
// error detail is logged by the caller, never echoed to the client.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// pathID parses a numeric {id}-style path value.
func pathID(r *http.Request, name string) (uint, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondSharingError maps engine failures onto the HTTP status taxonomy.
func respondSharingError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, sharing.ErrSetNotFound):
		respondMessage(w, http.StatusNotFound, "Set not found")
	case errors.Is(err, sharing.ErrShareNotFound):
		respondMessage(w, http.StatusNotFound, "Share not found")
	case errors.Is(err, sharing.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, sharing.ErrNotOwner):
		respondMessage(w, http.StatusForbidden, "Only the set owner may do this")
	case errors.Is(err, sharing.ErrSelfShare):
		respondMessage(w, http.StatusBadRequest, "Cannot share a set with its owner")
	default:
		log.Printf("%s: %v", context, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
