package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	db "gestor-server/src/db/sql"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		categories, err := db.GetCategoriesForAccount(r.Context(), pool, accountID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for account %d: %v", accountID, err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for account %d: %v", accountID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "category name is required", http.StatusBadRequest)
			return
		}

		category, err := db.CreateCategory(r.Context(), pool, req.Name, accountID)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				http.Error(w, "category already exists", http.StatusConflict)
				return
			}
			log.Printf("ERROR: Failed to create category for account %d: %v", accountID, err)
			http.Error(w, "failed to create category", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created category id %d (%s) for account %d", category.ID, category.Name, accountID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(category)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		categoryIDStr := chi.URLParam(r, "category_id")
		categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid category id param: %s", categoryIDStr)
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteCategory(r.Context(), pool, accountID, categoryID); err != nil {
			log.Printf("ERROR: Failed to delete category id %d for account %d: %v", categoryID, accountID, err)
			http.Error(w, "failed to delete category", http.StatusNotFound)
			return
		}
		log.Printf("INFO: Deleted category id %d for account %d", categoryID, accountID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category deleted"})
	}
}
