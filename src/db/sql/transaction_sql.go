package db

import (
	"context"
	"fmt"
	"time"

	"gestor-server/src/db"
	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, category_id, amount, description, date, transaction_type, created_by_rule)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := pool.QueryRow(ctx, query,
		txn.AccountID, txn.CategoryID, txn.Amount, txn.Description, txn.Date, txn.Type, txn.CreatedByRule).
		Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return err
	}
	if txn.CategoryID != nil {
		db.DelBalanceCache(db.BalanceCacheKey(txn.AccountID, *txn.CategoryID))
	}
	return nil
}

// CreateTransferPair writes the two legs of a scheduled transfer atomically:
// both rows land or neither does.
func CreateTransferPair(ctx context.Context, pool *pgxpool.Pool, outflow, inflow *models.Transaction) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (account_id, category_id, amount, description, date, transaction_type, created_by_rule)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	for _, txn := range []*models.Transaction{outflow, inflow} {
		err := tx.QueryRow(ctx, query,
			txn.AccountID, txn.CategoryID, txn.Amount, txn.Description, txn.Date, txn.Type, txn.CreatedByRule).
			Scan(&txn.ID, &txn.CreatedAt)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	for _, txn := range []*models.Transaction{outflow, inflow} {
		if txn.CategoryID != nil {
			db.DelBalanceCache(db.BalanceCacheKey(txn.AccountID, *txn.CategoryID))
		}
	}
	return nil
}

type TransactionFilter struct {
	CategoryID *int64
	Type       models.TransactionType
	From       *time.Time
	To         *time.Time
}

func GetTransactionsForAccount(ctx context.Context, pool *pgxpool.Pool, accountID int64, filter TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, category_id, amount, description, date, transaction_type, created_by_rule, created_at
		FROM transactions
		WHERE account_id = $1
	`
	args := []interface{}{accountID}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND transaction_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Amount, &t.Description, &t.Date, &t.Type, &t.CreatedByRule, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// CategoryBalance returns the all-time balance of a category within an
// account: sum of INCOME minus sum of EXPENSE. Results are cached until the
// next write touching the (account, category) pair.
func CategoryBalance(ctx context.Context, pool *pgxpool.Pool, accountID, categoryID int64) (decimal.Decimal, error) {
	cacheKey := db.BalanceCacheKey(accountID, categoryID)
	if db.Cache != nil {
		if cached, found := db.Cache.Get(cacheKey); found {
			if balance, ok := cached.(decimal.Decimal); ok {
				return balance, nil
			}
		}
	}

	query := `
		SELECT COALESCE(SUM(CASE WHEN transaction_type = 'INCOME' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE account_id = $1 AND category_id = $2
	`
	var balance decimal.Decimal
	if err := pool.QueryRow(ctx, query, accountID, categoryID).Scan(&balance); err != nil {
		return decimal.Zero, err
	}

	if db.Cache != nil {
		db.SetBalanceCache(cacheKey, balance)
	}
	return balance, nil
}
