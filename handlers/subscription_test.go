package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/cardfolio/cardfolio-api/models"
)

func TestExtendAndListSubscription(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	subType := models.SubscriptionType{Name: "premium"}
	if err := db.Create(&subType).Error; err != nil {
		t.Fatalf("failed to create subscription type: %v", err)
	}

	w := doRequest(t, db.ExtendSubscription, http.MethodPost, alice, map[string]any{
		"typeId": subType.ID,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("extend: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var sub models.Subscription
	decodeBody(t, w, &sub)
	if !sub.Date.After(time.Now()) {
		t.Fatalf("expected end date in the future, got %v", sub.Date)
	}

	w = doRequest(t, db.GetSubscriptionPeriods, http.MethodGet, alice, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var resp struct {
		Active  bool `json:"active"`
		Periods []struct {
			TypeName string `json:"typeName"`
		} `json:"periods"`
	}
	decodeBody(t, w, &resp)
	if !resp.Active {
		t.Fatalf("expected active subscription")
	}
	if len(resp.Periods) != 1 || resp.Periods[0].TypeName != "premium" {
		t.Fatalf("unexpected periods: %+v", resp.Periods)
	}
}

func TestExtendSubscriptionUnknownType(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")

	w := doRequest(t, db.ExtendSubscription, http.MethodPost, alice, map[string]any{
		"typeId": 9999,
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
