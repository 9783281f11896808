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
	"github.com/shopspring/decimal"
)

type scheduledRuleRequest struct {
	Name                        string           `json:"name"`
	IsActive                    *bool            `json:"is_active"`
	ScheduleDayOfMonth          int              `json:"schedule_day_of_month"`
	SourceCategoryID            *int64           `json:"source_category"`
	ActionDestinationCategoryID int64            `json:"action_destination_category"`
	ActionType                  string           `json:"action_type"`
	ActionDescription           string           `json:"action_description"`
	ActionFixedAmount           *decimal.Decimal `json:"action_fixed_amount"`
	ActionPercentage            *decimal.Decimal `json:"action_percentage"`
}

func (req *scheduledRuleRequest) toModel(accountID int64) *models.ScheduledRule {
	rule := &models.ScheduledRule{
		AccountID:                   accountID,
		Name:                        req.Name,
		IsActive:                    true,
		ScheduleDayOfMonth:          req.ScheduleDayOfMonth,
		SourceCategoryID:            req.SourceCategoryID,
		ActionDestinationCategoryID: req.ActionDestinationCategoryID,
		ActionType:                  models.ActionType(req.ActionType),
		ActionDescription:           req.ActionDescription,
		ActionFixedAmount:           req.ActionFixedAmount,
		ActionPercentage:            req.ActionPercentage,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if rule.ActionFixedAmount != nil {
		rounded := rule.ActionFixedAmount.Round(2)
		rule.ActionFixedAmount = &rounded
	}
	return rule
}

func scheduledRuleCategoryIDs(rule *models.ScheduledRule) []int64 {
	ids := []int64{rule.ActionDestinationCategoryID}
	if rule.SourceCategoryID != nil {
		ids = append(ids, *rule.SourceCategoryID)
	}
	return ids
}

func CreateScheduledRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		userID := r.Context().Value("user_id").(int64)
		var req scheduledRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create scheduled rule request body for account %d: %v", accountID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		rule := req.toModel(accountID)
		rule.CreatedByID = &userID
		if err := rule.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ok, err := checkRuleCategories(r, pool, accountID, scheduledRuleCategoryIDs(rule)...)
		if err != nil {
			log.Printf("ERROR: Category check failed for account %d: %v", accountID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "referenced category not found", http.StatusBadRequest)
			return
		}

		created, err := db.CreateScheduledRule(r.Context(), pool, rule)
		if err != nil {
			log.Printf("ERROR: Failed to create scheduled rule for account %d: %v", accountID, err)
			http.Error(w, "failed to create scheduled rule", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created scheduled rule id %d for account %d, name %s", created.ID, accountID, created.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetScheduledRuleByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid rule id param: %s", ruleIDStr)
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		rule, err := db.GetScheduledRuleByID(r.Context(), pool, accountID, ruleID)
		if err != nil {
			log.Printf("ERROR: Scheduled rule id %d not found for account %d: %v", ruleID, accountID, err)
			http.Error(w, "scheduled rule not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rule)
	}
}

func GetAllScheduledRules(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		rules, err := db.GetScheduledRulesForAccount(r.Context(), pool, accountID)
		if err != nil {
			log.Printf("ERROR: Failed to get scheduled rules for account %d: %v", accountID, err)
			http.Error(w, "failed to get scheduled rules", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rules)
	}
}

func UpdateScheduledRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid rule id param: %s", ruleIDStr)
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		var req scheduledRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update scheduled rule request body for account %d: %v", accountID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		rule := req.toModel(accountID)
		rule.ID = ruleID
		if err := rule.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ok, err := checkRuleCategories(r, pool, accountID, scheduledRuleCategoryIDs(rule)...)
		if err != nil {
			log.Printf("ERROR: Category check failed for account %d: %v", accountID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "referenced category not found", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateScheduledRule(r.Context(), pool, rule)
		if err != nil {
			log.Printf("ERROR: Failed to update scheduled rule id %d for account %d: %v", ruleID, accountID, err)
			http.Error(w, "failed to update scheduled rule", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated scheduled rule id %d for account %d", updated.ID, accountID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteScheduledRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid rule id param: %s", ruleIDStr)
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteScheduledRule(r.Context(), pool, accountID, ruleID); err != nil {
			log.Printf("ERROR: Failed to delete scheduled rule id %d for account %d: %v", ruleID, accountID, err)
			http.Error(w, "failed to delete scheduled rule", http.StatusNotFound)
			return
		}
		log.Printf("INFO: Deleted scheduled rule id %d for account %d", ruleID, accountID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "scheduled rule deleted"})
	}
}
