package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	db "finbook-server/src/db/sql"
	"finbook-server/src/models"
	"finbook-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req struct {
			Name         string              `json:"name"`
			IconName     string              `json:"icon_name"`
			CategoryType models.CategoryType `json:"category_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		util.ValidateRequiredString(errs, "name", req.Name, 50)
		util.ValidateOptionalString(errs, "icon_name", req.IconName, 50)
		if req.CategoryType == "" {
			errs.Add("category_type", "this field is required")
		} else if !req.CategoryType.IsValid() {
			errs.Add("category_type", "\""+string(req.CategoryType)+"\" is not a valid choice")
		}
		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		category := &models.TransactionCategory{
			Name:         req.Name,
			IconName:     req.IconName,
			CategoryType: req.CategoryType,
			UserID:       userID,
		}
		created, err := db.CreateCategory(r.Context(), pool, category)
		if err != nil {
			log.Printf("ERROR: Failed to create category for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to create category")
			return
		}

		log.Printf("INFO: Created category id %d for user %d", created.ID, userID)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		categories, err := db.GetAllCategoriesForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to get categories")
			return
		}

		if categories == nil {
			categories = []models.TransactionCategory{}
		}
		util.WriteJSON(w, http.StatusOK, categories)
	}
}

func GetCategoryByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := parseIDParam(r, "category_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid category id")
			return
		}

		category, err := db.GetCategoryByID(r.Context(), pool, userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Category id %d not found for user %d: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusNotFound, "category not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, category)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := parseIDParam(r, "category_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid category id")
			return
		}

		current, err := db.GetCategoryByID(r.Context(), pool, userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Category id %d not found for user %d: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusNotFound, "category not found")
			return
		}

		var req struct {
			Name         *string              `json:"name"`
			IconName     *string              `json:"icon_name"`
			CategoryType *models.CategoryType `json:"category_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		if r.Method == http.MethodPut {
			if req.Name == nil {
				errs.Add("name", "this field is required")
			}
			if req.CategoryType == nil {
				errs.Add("category_type", "this field is required")
			}
		}

		category := *current
		if req.Name != nil {
			category.Name = *req.Name
			util.ValidateRequiredString(errs, "name", category.Name, 50)
		}
		if req.IconName != nil {
			category.IconName = *req.IconName
			util.ValidateOptionalString(errs, "icon_name", category.IconName, 50)
		}
		if req.CategoryType != nil {
			category.CategoryType = *req.CategoryType
			if !category.CategoryType.IsValid() {
				errs.Add("category_type", "\""+string(category.CategoryType)+"\" is not a valid choice")
			}
		}
		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		updated, err := db.UpdateCategory(r.Context(), pool, &category)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "category not found")
				return
			}
			log.Printf("ERROR: Failed to update category id %d for user %d: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to update category")
			return
		}

		log.Printf("INFO: Updated category id %d for user %d", updated.ID, userID)
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := parseIDParam(r, "category_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid category id")
			return
		}

		if err := db.DeleteCategory(r.Context(), pool, userID, categoryID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "category not found")
				return
			}
			log.Printf("ERROR: Failed to delete category id %d for user %d: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to delete category")
			return
		}

		log.Printf("INFO: Deleted category id %d for user %d", categoryID, userID)
		w.WriteHeader(http.StatusNoContent)
	}
}
