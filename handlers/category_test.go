package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/cardfolio/cardfolio-api/models"
)

func TestAddCategoryToSetCap(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	set := testSet(t, db, alice, "biology")

	categoryIDs := make([]uint, 0, 4)
	for i := 0; i < 4; i++ {
		category := models.Category{Name: fmt.Sprintf("category-%d", i)}
		if err := db.Create(&category).Error; err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	for i := 0; i < 3; i++ {
		w := doRequest(t, db.AddCategoryToSet, http.MethodPost, alice, nil, map[string]string{
			"setID":      strconv.Itoa(int(set.ID)),
			"categoryID": strconv.Itoa(int(categoryIDs[i])),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("add %d: expected 201, got %d: %s", i, w.Code, w.Body.String())
		}
	}

	// The fourth category is rejected and the set keeps exactly three.
	w := doRequest(t, db.AddCategoryToSet, http.MethodPost, alice, nil, map[string]string{
		"setID":      strconv.Itoa(int(set.ID)),
		"categoryID": strconv.Itoa(int(categoryIDs[3])),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for fourth category, got %d", w.Code)
	}

	var count int64
	db.Model(&models.CategoryInSet{}).Where("set_id = ?", set.ID).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 categories, got %d", count)
	}
}

func TestAddCategoryToSetDuplicate(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	set := testSet(t, db, alice, "biology")
	category := models.Category{Name: "science"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	pathValues := map[string]string{
		"setID":      strconv.Itoa(int(set.ID)),
		"categoryID": strconv.Itoa(int(category.ID)),
	}
	if w := doRequest(t, db.AddCategoryToSet, http.MethodPost, alice, nil, pathValues); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := doRequest(t, db.AddCategoryToSet, http.MethodPost, alice, nil, pathValues); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", w.Code)
	}
}

func TestAddCategoryRequiresEditRights(t *testing.T) {
	db := newTestHandler(t)
	alice := testUser(t, db, "alice")
	mallory := testUser(t, db, "mallory")
	set := testSet(t, db, alice, "biology")
	category := models.Category{Name: "science"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	w := doRequest(t, db.AddCategoryToSet, http.MethodPost, mallory, nil, map[string]string{
		"setID":      strconv.Itoa(int(set.ID)),
		"categoryID": strconv.Itoa(int(category.ID)),
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
