package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/sharing"
)

// Alice shares a set with Bob view-only, upgrades him to edit, then
// revokes: Bob's resolved access tracks every step and the shared flag
// ends where it started.
func TestShareScenarioEndToEnd(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	set := testSet(t, db, alice, "biology")

	// Alice grants view access.
	w := doRequest(t, db.GrantShare, http.MethodPost, alice, map[string]any{
		"setId":  set.ID,
		"userId": bob.ID,
		"edit":   false,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("grant: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var share models.SharedSet
	decodeBody(t, w, &share)

	// Bob resolves: not owner, view-only.
	w = doRequest(t, db.GetAccessForSet, http.MethodGet, bob, nil, map[string]string{
		"setID": strconv.Itoa(int(set.ID)),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d", w.Code)
	}
	var access sharing.Access
	decodeBody(t, w, &access)
	if access.IsOwner || access.CanEdit == nil || *access.CanEdit {
		t.Fatalf("expected view-only access, got %+v", access)
	}

	// Alice upgrades the share to edit.
	w = doRequest(t, db.GrantShare, http.MethodPost, alice, map[string]any{
		"setId":  set.ID,
		"userId": bob.ID,
		"edit":   true,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("upgrade: expected 201, got %d", w.Code)
	}

	w = doRequest(t, db.GetAccessForSet, http.MethodGet, bob, nil, map[string]string{
		"setID": strconv.Itoa(int(set.ID)),
	})
	decodeBody(t, w, &access)
	if access.CanEdit == nil || !*access.CanEdit {
		t.Fatalf("expected edit access after upgrade, got %+v", access)
	}

	// Alice revokes; Bob is back to nothing and the flag is cleared.
	w = doRequest(t, db.RevokeShare, http.MethodDelete, alice, nil, map[string]string{
		"shareID": strconv.Itoa(int(share.ID)),
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("revoke: expected 204, got %d", w.Code)
	}

	w = doRequest(t, db.GetAccessForSet, http.MethodGet, bob, nil, map[string]string{
		"setID": strconv.Itoa(int(set.ID)),
	})
	decodeBody(t, w, &access)
	if access.IsOwner || access.CanEdit != nil {
		t.Fatalf("expected no access after revoke, got %+v", access)
	}

	var reloaded models.StudySet
	if err := db.First(&reloaded, set.ID).Error; err != nil {
		t.Fatalf("failed to reload set: %v", err)
	}
	if reloaded.Shared {
		t.Fatalf("expected shared flag false after revoke")
	}
}

func TestGrantShareRejectsNonOwner(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	mallory := testUser(t, db, "mallory")
	set := testSet(t, db, alice, "biology")

	w := doRequest(t, db.GrantShare, http.MethodPost, mallory, map[string]any{
		"setId":  set.ID,
		"userId": mallory.ID,
		"edit":   true,
	}, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRevokeShareUnknownID(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")

	w := doRequest(t, db.RevokeShare, http.MethodDelete, alice, nil, map[string]string{
		"shareID": "9999",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSharedSetListings(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	set := testSet(t, db, alice, "biology")

	w := doRequest(t, db.GrantShare, http.MethodPost, alice, map[string]any{
		"setId":  set.ID,
		"userId": bob.ID,
		"edit":   false,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("grant: expected 201, got %d", w.Code)
	}

	// Bob sees the set in "shared with me".
	w = doRequest(t, db.GetSetsSharedWithMe, http.MethodGet, bob, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("shared-with-me: expected 200, got %d", w.Code)
	}
	var views []sharing.SetShareView
	decodeBody(t, w, &views)
	if len(views) != 1 || views[0].SetID != set.ID {
		t.Fatalf("unexpected shared-with-me views: %+v", views)
	}

	// Alice sees it in "shared by me"; Bob does not.
	w = doRequest(t, db.GetSetsSharedByMe, http.MethodGet, alice, nil, nil)
	decodeBody(t, w, &views)
	if len(views) != 1 || views[0].OwnerID != alice.ID {
		t.Fatalf("unexpected shared-by-me views: %+v", views)
	}
	w = doRequest(t, db.GetSetsSharedByMe, http.MethodGet, bob, nil, nil)
	decodeBody(t, w, &views)
	if len(views) != 0 {
		t.Fatalf("bob owns nothing shared, got %+v", views)
	}
}

func TestGetShareAuthor(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	set := testSet(t, db, alice, "biology")

	w := doRequest(t, db.GrantShare, http.MethodPost, alice, map[string]any{
		"setId":  set.ID,
		"userId": bob.ID,
		"edit":   false,
	}, nil)
	var share models.SharedSet
	decodeBody(t, w, &share)

	w = doRequest(t, db.GetShareAuthor, http.MethodGet, bob, nil, map[string]string{
		"shareID": strconv.Itoa(int(share.ID)),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var author models.User
	decodeBody(t, w, &author)
	if author.ID != alice.ID {
		t.Fatalf("expected author %d, got %d", alice.ID, author.ID)
	}
}
