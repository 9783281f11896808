package automation

import (
	"context"
	"errors"

	"gestor-server/src/models"

	"github.com/shopspring/decimal"
)

// fakeRuleSource filters fixture rules the way the SQL queries do, so tests
// exercise the same matching semantics the evaluator sees in production.
type fakeRuleSource struct {
	eventRules     []models.EventRule
	scheduledRules []models.ScheduledRule
	eventErr       error
}

func (f *fakeRuleSource) FindActiveEventRules(_ context.Context, accountID, triggerCategoryID int64, triggerType models.TransactionType) ([]models.EventRule, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	var matched []models.EventRule
	for _, r := range f.eventRules {
		if r.IsActive && r.AccountID == accountID && r.TriggerCategoryID == triggerCategoryID && r.TriggerTransactionType == triggerType {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeRuleSource) FindActiveScheduledRules(_ context.Context, dayOfMonth int) ([]models.ScheduledRule, error) {
	var matched []models.ScheduledRule
	for _, r := range f.scheduledRules {
		if r.IsActive && r.ScheduleDayOfMonth == dayOfMonth {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

type transferPair struct {
	outflow *models.Transaction
	inflow  *models.Transaction
}

type fakeLedger struct {
	created        []*models.Transaction
	pairs          []transferPair
	balances       map[int64]decimal.Decimal // keyed by category id
	failCategories map[int64]bool            // categories whose writes fail
	balanceErr     error
}

func (f *fakeLedger) CreateRuleTransaction(_ context.Context, txn *models.Transaction) error {
	if txn.CategoryID != nil && f.failCategories[*txn.CategoryID] {
		return errors.New("store unavailable")
	}
	f.created = append(f.created, txn)
	return nil
}

func (f *fakeLedger) CreateTransferPair(_ context.Context, outflow, inflow *models.Transaction) error {
	if inflow.CategoryID != nil && f.failCategories[*inflow.CategoryID] {
		return errors.New("store unavailable")
	}
	f.pairs = append(f.pairs, transferPair{outflow: outflow, inflow: inflow})
	return nil
}

func (f *fakeLedger) CategoryBalance(_ context.Context, _, categoryID int64) (decimal.Decimal, error) {
	if f.balanceErr != nil {
		return decimal.Zero, f.balanceErr
	}
	return f.balances[categoryID], nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func idPtr(id int64) *int64 {
	return &id
}
