package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cardfolio/cardfolio-api/config"
	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

func setupDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	config.Database = db
}

// claimsRequest builds a request carrying validated Auth0-style claims,
// the way EnsureValidToken leaves them in the context.
func claimsRequest(subject, nickname, email string) *http.Request {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: subject},
		CustomClaims:     &CustomClaims{Nickname: nickname, Email: email},
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, claims)
	return r.WithContext(ctx)
}

func runSync(t *testing.T, r *http.Request) (*models.User, *httptest.ResponseRecorder) {
	t.Helper()
	var resolved *models.User
	handler := SyncUserMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := utils.CurrentUser(r); ok {
			resolved = user
		}
	})
	w := httptest.NewRecorder()
	handler(w, r)
	return resolved, w
}

func TestSyncUserProvisionsMultipleSubjects(t *testing.T) {
	setupDB(t)

	first, w := runSync(t, claimsRequest("auth0|111", "alice", "alice@example.com"))
	if w.Code != http.StatusOK || first == nil {
		t.Fatalf("expected first subject to be provisioned, got status %d", w.Code)
	}
	second, w := runSync(t, claimsRequest("auth0|222", "bob", ""))
	if w.Code != http.StatusOK || second == nil {
		t.Fatalf("expected second subject to be provisioned, got status %d", w.Code)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct users, both resolved to ID %d", first.ID)
	}
	if first.Email == nil || *first.Email != "alice@example.com" {
		t.Fatalf("expected email claim to be stored, got %v", first.Email)
	}
	if second.Email != nil {
		t.Fatalf("expected no email without a claim, got %q", *second.Email)
	}

	again, _ := runSync(t, claimsRequest("auth0|111", "alice", "alice@example.com"))
	if again == nil || again.ID != first.ID {
		t.Fatalf("expected repeat request to resolve the existing user")
	}

	var count int64
	config.Database.Model(&models.User{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 users, got %d", count)
	}
}

func TestSyncUserHandlesNicknameCollisions(t *testing.T) {
	setupDB(t)

	taken := models.User{Username: "carol"}
	if err := config.Database.Create(&taken).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	user, w := runSync(t, claimsRequest("auth0|333", "carol", ""))
	if w.Code != http.StatusOK || user == nil {
		t.Fatalf("expected provisioning despite taken nickname, got status %d", w.Code)
	}
	if user.Username == "carol" {
		t.Fatalf("expected a suffixed username, got %q", user.Username)
	}

	// No nickname claim at all: fall back to the subject.
	user, w = runSync(t, claimsRequest("auth0|444", "", ""))
	if w.Code != http.StatusOK || user == nil {
		t.Fatalf("expected provisioning without nickname, got status %d", w.Code)
	}
	if user.Username != "auth0|444" {
		t.Fatalf("expected subject as username, got %q", user.Username)
	}
}

func TestSyncUserSkipsEmailOwnedByLocalAccount(t *testing.T) {
	setupDB(t)

	email := "dave@example.com"
	local := models.User{Username: "dave", Email: &email}
	if err := config.Database.Create(&local).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	user, w := runSync(t, claimsRequest("auth0|555", "dave2", "dave@example.com"))
	if w.Code != http.StatusOK || user == nil {
		t.Fatalf("expected provisioning, got status %d", w.Code)
	}
	if user.Email != nil {
		t.Fatalf("expected claimed email to stay with the local account, got %q", *user.Email)
	}
}
