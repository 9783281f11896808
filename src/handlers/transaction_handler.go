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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CreateTransaction persists a user-entered transaction and then runs the
// event rule evaluator against it. The evaluator is best-effort: once the
// user's row is committed the request succeeds no matter what automation
// does.
func CreateTransaction(pool *pgxpool.Pool, eval *automation.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		var req struct {
			CategoryID  *int64          `json:"category_id"`
			Amount      decimal.Decimal `json:"amount"`
			Description string          `json:"description"`
			Date        string          `json:"date"`
			Type        string          `json:"transaction_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for account %d: %v", accountID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		txnType := models.TransactionType(req.Type)
		if !txnType.Valid() {
			http.Error(w, "transaction_type must be INCOME or EXPENSE", http.StatusBadRequest)
			return
		}
		if req.Amount.Sign() <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		date := time.Now().UTC()
		if req.Date != "" {
			parsed, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}

		if req.CategoryID != nil {
			visible, err := db.CategoryVisibleToAccount(r.Context(), pool, *req.CategoryID, accountID)
			if err != nil {
				log.Printf("ERROR: Category visibility check failed for account %d: %v", accountID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !visible {
				http.Error(w, "category not found", http.StatusBadRequest)
				return
			}
		}

		txn := &models.Transaction{
			AccountID:   accountID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount.Round(2),
			Description: req.Description,
			Date:        date,
			Type:        txnType,
		}
		if err := db.CreateTransaction(r.Context(), pool, txn); err != nil {
			log.Printf("ERROR: Failed to create transaction for account %d: %v", accountID, err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created transaction id %d for account %d, amount %s", txn.ID, accountID, txn.Amount.StringFixed(2))

		// Automation hook: runs only on fresh creations, never on updates.
		derived := eval.EvaluateTransaction(r.Context(), txn)
		if derived > 0 {
			log.Printf("INFO: Transaction id %d triggered %d automation transaction(s)", txn.ID, derived)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(txn)
	}
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)

		var filter db.TransactionFilter
		if v := r.URL.Query().Get("category_id"); v != "" {
			categoryID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "invalid category_id", http.StatusBadRequest)
				return
			}
			filter.CategoryID = &categoryID
		}
		if v := r.URL.Query().Get("transaction_type"); v != "" {
			txnType := models.TransactionType(v)
			if !txnType.Valid() {
				http.Error(w, "invalid transaction_type", http.StatusBadRequest)
				return
			}
			filter.Type = txnType
		}
		if v := r.URL.Query().Get("from"); v != "" {
			from, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.From = &from
		}
		if v := r.URL.Query().Get("to"); v != "" {
			to, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.To = &to
		}

		txns, err := db.GetTransactionsForAccount(r.Context(), pool, accountID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for account %d: %v", accountID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(txns)
	}
}

func GetCategoryBalance(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.Context().Value("account_id").(int64)
		categoryIDStr := r.URL.Query().Get("category_id")
		categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid category_id", http.StatusBadRequest)
			return
		}
		balance, err := db.CategoryBalance(r.Context(), pool, accountID, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to get balance for account %d, category %d: %v", accountID, categoryID, err)
			http.Error(w, "failed to get balance", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"balance": balance.StringFixed(2)})
	}
}
