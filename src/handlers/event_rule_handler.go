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

type eventRuleRequest struct {
	Name                        string           `json:"name"`
	IsActive                    *bool            `json:"is_active"`
	TriggerCategoryID           int64            `json:"trigger_category"`
	TriggerTransactionType      string           `json:"trigger_transaction_type"`
	ActionType                  string           `json:"action_type"`
	ActionDestinationCategoryID int64            `json:"action_destination_category"`
	ActionTransactionType       string           `json:"action_transaction_type"`
	ActionDescription           string           `json:"action_description"`
	ActionFixedAmount           *decimal.Decimal `json:"action_fixed_amount"`
	ActionPercentage            *decimal.Decimal `json:"action_percentage"`
}

func (req *eventRuleRequest) toModel(accountID int64) *models.EventRule {
	rule := &models.EventRule{
		AccountID:                   accountID,
		Name:                        req.Name,
		IsActive:                    true,
		TriggerCategoryID:           req.TriggerCategoryID,
		TriggerTransactionType:      models.TransactionType(req.TriggerTransactionType),
		ActionType:                  models.ActionType(req.ActionType),
		ActionDestinationCategoryID: req.ActionDestinationCategoryID,
		ActionTransactionType:       models.TransactionType(req.ActionTransactionType),
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

// checkRuleCategories rejects rules referencing categories the account
// cannot see (global ones and its own are allowed).
func checkRuleCategories(r *http.Request, pool *pgxpool.Pool, accountID int64, categoryIDs ...int64) (bool, error) {
	for _, id := range categoryIDs {
		visible, err := db.CategoryVisibleToAccount(r.Context(), pool, id, accountID)
		if err != nil || !visible {
			return false, err
		}
	}
	return true, nil
}

func CreateEventRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		userID := r.Context().Value("user_id").(int64)
		var req eventRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create event rule request body for account %d: %v", accountID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		rule := req.toModel(accountID)
		rule.CreatedByID = &userID
		if err := rule.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ok, err := checkRuleCategories(r, pool, accountID, rule.TriggerCategoryID, rule.ActionDestinationCategoryID)
		if err != nil {
			log.Printf("ERROR: Category check failed for account %d: %v", accountID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "referenced category not found", http.StatusBadRequest)
			return
		}

		created, err := db.CreateEventRule(r.Context(), pool, rule)
		if err != nil {
			log.Printf("ERROR: Failed to create event rule for account %d: %v", accountID, err)
			http.Error(w, "failed to create event rule", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created event rule id %d for account %d, name %s", created.ID, accountID, created.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetEventRuleByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid rule id param: %s", ruleIDStr)
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		rule, err := db.GetEventRuleByID(r.Context(), pool, accountID, ruleID)
		if err != nil {
			log.Printf("ERROR: Event rule id %d not found for account %d: %v", ruleID, accountID, err)
			http.Error(w, "event rule not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rule)
	}
}

func GetAllEventRules(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		rules, err := db.GetEventRulesForAccount(r.Context(), pool, accountID)
		if err != nil {
			log.Printf("ERROR: Failed to get event rules for account %d: %v", accountID, err)
			http.Error(w, "failed to get event rules", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rules)
	}
}

func UpdateEventRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid rule id param: %s", ruleIDStr)
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		var req eventRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update event rule request body for account %d: %v", accountID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		rule := req.toModel(accountID)
		rule.ID = ruleID
		if err := rule.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ok, err := checkRuleCategories(r, pool, accountID, rule.TriggerCategoryID, rule.ActionDestinationCategoryID)
		if err != nil {
			log.Printf("ERROR: Category check failed for account %d: %v", accountID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "referenced category not found", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateEventRule(r.Context(), pool, rule)
		if err != nil {
			log.Printf("ERROR: Failed to update event rule id %d for account %d: %v", ruleID, accountID, err)
			http.Error(w, "failed to update event rule", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated event rule id %d for account %d", updated.ID, accountID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteEventRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid rule id param: %s", ruleIDStr)
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteEventRule(r.Context(), pool, accountID, ruleID); err != nil {
			log.Printf("ERROR: Failed to delete event rule id %d for account %d: %v", ruleID, accountID, err)
			http.Error(w, "failed to delete event rule", http.StatusNotFound)
			return
		}
		log.Printf("INFO: Deleted event rule id %d for account %d", ruleID, accountID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "event rule deleted"})
	}
}
