package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	db "gestor-server/src/db/sql"
	"gestor-server/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetInsights(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		insights, err := db.GetInsightsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get insights for user %d: %v", userID, err)
			http.Error(w, "failed to get insights", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(insights)
	}
}

func MarkInsightRead(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		insightIDStr := chi.URLParam(r, "insight_id")
		insightID, err := strconv.ParseInt(insightIDStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid insight id", http.StatusBadRequest)
			return
		}
		if err := db.MarkInsightRead(r.Context(), pool, userID, insightID); err != nil {
			log.Printf("ERROR: Failed to mark insight id %d read for user %d: %v", insightID, userID, err)
			http.Error(w, "insight not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "insight marked as read"})
	}
}

// IngestInsight is the drop-off point for the external LLM batch job. It is
// reachable only through the internal-token middleware.
func IngestInsight(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID  int64  `json:"user_id"`
			Title   string `json:"title"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode insight ingestion body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.UserID == 0 || req.Title == "" || req.Message == "" {
			http.Error(w, "user_id, title and message are required", http.StatusBadRequest)
			return
		}

		insight, err := db.CreateInsight(r.Context(), pool, &models.Insight{
			UserID:  req.UserID,
			Title:   req.Title,
			Message: req.Message,
		})
		if err != nil {
			log.Printf("ERROR: Failed to store insight for user %d: %v", req.UserID, err)
			http.Error(w, "failed to store insight", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Stored insight id %d for user %d", insight.ID, insight.UserID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(insight)
	}
}
