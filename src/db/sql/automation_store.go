package db

import (
	"context"

	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AutomationStore adapts the pool to the automation package's RuleSource and
// Ledger interfaces.
type AutomationStore struct {
	Pool *pgxpool.Pool
}

func NewAutomationStore(pool *pgxpool.Pool) *AutomationStore {
	return &AutomationStore{Pool: pool}
}

func (s *AutomationStore) FindActiveEventRules(ctx context.Context, accountID, triggerCategoryID int64, triggerType models.TransactionType) ([]models.EventRule, error) {
	return FindActiveEventRules(ctx, s.Pool, accountID, triggerCategoryID, triggerType)
}

func (s *AutomationStore) FindActiveScheduledRules(ctx context.Context, dayOfMonth int) ([]models.ScheduledRule, error) {
	return FindActiveScheduledRules(ctx, s.Pool, dayOfMonth)
}

func (s *AutomationStore) CreateRuleTransaction(ctx context.Context, txn *models.Transaction) error {
	return CreateTransaction(ctx, s.Pool, txn)
}

func (s *AutomationStore) CreateTransferPair(ctx context.Context, outflow, inflow *models.Transaction) error {
	return CreateTransferPair(ctx, s.Pool, outflow, inflow)
}

func (s *AutomationStore) CategoryBalance(ctx context.Context, accountID, categoryID int64) (decimal.Decimal, error) {
	return CategoryBalance(ctx, s.Pool, accountID, categoryID)
}
