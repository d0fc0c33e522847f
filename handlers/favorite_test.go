package handlers

import (
	"net/http"
	"testing"

	"github.com/cardfolio/cardfolio-api/models"
)

func TestCreateFavoriteRequiresOneTarget(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	set := testSet(t, db, alice, "biology")

	w := doRequest(t, db.CreateFavorite, http.MethodPost, alice, map[string]any{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no target: expected 400, got %d", w.Code)
	}

	folder := models.Folder{Name: "school", UserID: alice.ID}
	if err := db.Create(&folder).Error; err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	w = doRequest(t, db.CreateFavorite, http.MethodPost, alice, map[string]any{
		"setId":    set.ID,
		"folderId": folder.ID,
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("two targets: expected 400, got %d", w.Code)
	}
}

func TestCreateFavoriteRejectsDuplicates(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	set := testSet(t, db, alice, "biology")

	w := doRequest(t, db.CreateFavorite, http.MethodPost, alice, map[string]any{"setId": set.ID}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	w = doRequest(t, db.CreateFavorite, http.MethodPost, alice, map[string]any{"setId": set.ID}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", w.Code)
	}

	// The unique index holds even when the handler check is bypassed,
	// as by two concurrent requests.
	if err := db.Create(&models.Favorite{UserID: alice.ID, SetID: &set.ID}).Error; err == nil {
		t.Fatalf("expected direct duplicate insert to violate the unique index")
	}

	// A different user may favorite the same set.
	bob := testUser(t, db, "bob")
	w = doRequest(t, db.CreateFavorite, http.MethodPost, bob, map[string]any{"setId": set.ID}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("other user: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}
