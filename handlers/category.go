package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
)

// POST /api/categories
func (db *DBHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Category name is required")
		return
	}

	category := models.Category{Name: req.Name}
	if err := db.Create(&category).Error; err != nil {
		log.Printf("CreateCategory: failed: %v", err)
		respondMessage(w, http.StatusBadRequest, "Category already exists")
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// GET /api/categories
func (db *DBHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		log.Printf("GetCategories: failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// DELETE /api/categories/{categoryID}
func (db *DBHandler) DeleteCategoryByID(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "categoryID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	result := db.Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		log.Printf("DeleteCategoryByID: failed for categoryID=%d: %v", categoryID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/sets/{setID}/categories/{categoryID}
// A set holds at most models.MaxCategoriesPerSet categories; the add is
// checked and written in one transaction so concurrent adds cannot
// overshoot the cap.
func (db *DBHandler) AddCategoryToSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}
	categoryID, ok := pathID(r, "categoryID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	set, ok := db.canEditSet(w, r, setID)
	if !ok {
		return
	}

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	var tag models.CategoryInSet
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.CategoryInSet
		err := tx.Where("set_id = ? AND category_id = ?", set.ID, category.ID).First(&existing).Error
		if err == nil {
			return errDuplicateTag
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.CategoryInSet{}).Where("set_id = ?", set.ID).Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxCategoriesPerSet {
			return errCategoryCap
		}

		tag = models.CategoryInSet{SetID: set.ID, CategoryID: category.ID}
		return tx.Create(&tag).Error
	})
	switch {
	case errors.Is(err, errDuplicateTag):
		respondMessage(w, http.StatusBadRequest, "Set already has this category")
		return
	case errors.Is(err, errCategoryCap):
		respondMessage(w, http.StatusBadRequest, "A set can have at most 3 categories")
		return
	case err != nil:
		log.Printf("AddCategoryToSet: failed for setID=%d categoryID=%d: %v", set.ID, category.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to add category")
		return
	}

	respondJSON(w, http.StatusCreated, tag)
}

var (
	errDuplicateTag = errors.New("set already tagged with category")
	errCategoryCap  = errors.New("category cap reached")
)

// DELETE /api/sets/{setID}/categories/{categoryID}
func (db *DBHandler) RemoveCategoryFromSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}
	categoryID, ok := pathID(r, "categoryID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	set, ok := db.canEditSet(w, r, setID)
	if !ok {
		return
	}

	result := db.Where("set_id = ? AND category_id = ?", set.ID, categoryID).Delete(&models.CategoryInSet{})
	if result.Error != nil {
		log.Printf("RemoveCategoryFromSet: failed for setID=%d categoryID=%d: %v", set.ID, categoryID, result.Error)
		respondMessage(w, http.StatusInternalServerError, "Failed to remove category")
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(w, http.StatusNotFound, "Set does not have this category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/sets/{setID}/categories
func (db *DBHandler) GetCategoriesForSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(r, "setID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid set id")
		return
	}

	var set models.StudySet
	if err := db.First(&set, setID).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "Set not found")
		return
	}

	var tags []models.CategoryInSet
	if err := db.Preload("Category").Where("set_id = ?", set.ID).Find(&tags).Error; err != nil {
		log.Printf("GetCategoriesForSet: failed for setID=%d: %v", set.ID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	categories := make([]models.Category, 0, len(tags))
	for _, t := range tags {
		categories = append(categories, t.Category)
	}

	respondJSON(w, http.StatusOK, categories)
}
