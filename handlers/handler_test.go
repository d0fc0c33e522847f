package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cardfolio/cardfolio-api/config"
	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

func newTestHandler(t *testing.T) *DBHandler {
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
	return NewDBHandler(db)
}

func testUser(t *testing.T, db *DBHandler, username string) *models.User {
	t.Helper()
	email := username + "@example.com"
	user := models.User{Username: username, Email: &email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func testSet(t *testing.T, db *DBHandler, owner *models.User, name string) *models.StudySet {
	t.Helper()
	set := models.StudySet{Name: name, UserID: owner.ID, PublicID: name + "-pub"}
	if err := db.Create(&set).Error; err != nil {
		t.Fatalf("failed to create set %s: %v", name, err)
	}
	return &set
}

// doRequest runs a handler directly with an authenticated user and
// optional JSON body and path values.
func doRequest(t *testing.T, handler http.HandlerFunc, method string, user *models.User, body any, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, "/", &buf)
	if user != nil {
		r = r.WithContext(utils.WithUser(r.Context(), user))
	}
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
