package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"gestor-server/src/automation"
	db "gestor-server/src/db/sql"
	"gestor-server/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunScheduledRules is the HTTP entry point for the external cron runner.
// The at-most-once-per-day contract is the caller's responsibility; invoking
// this twice on the same day duplicates transfer pairs.
func RunScheduledRules(eval *automation.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary := eval.RunScheduledRules(r.Context(), time.Now())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// SetUserRole lets the operator surface flip a user between NORMAL and
// PREMIUM (billing lives outside this service).
func SetUserRole(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := chi.URLParam(r, "user_id")
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		role := models.Role(req.Role)
		if !role.Valid() {
			http.Error(w, "role must be NORMAL or PREMIUM", http.StatusBadRequest)
			return
		}
		if err := db.SetUserRole(r.Context(), pool, userID, role); err != nil {
			log.Printf("ERROR: Failed to set role for user %d: %v", userID, err)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Printf("INFO: Set role %s for user %d", role, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "role updated"})
	}
}
