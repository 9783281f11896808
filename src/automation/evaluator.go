package automation

import (
	"context"
	"fmt"
	"log"

	"gestor-server/src/models"

	"github.com/shopspring/decimal"
)

// RuleSource loads active automation rules. Implemented over postgres in
// db/sql and by fixture fakes in tests.
type RuleSource interface {
	FindActiveEventRules(ctx context.Context, accountID, triggerCategoryID int64, triggerType models.TransactionType) ([]models.EventRule, error)
	FindActiveScheduledRules(ctx context.Context, dayOfMonth int) ([]models.ScheduledRule, error)
}

// Ledger is the slice of the transaction store automation needs: append
// derived transactions and read category balances. Transfer pairs must be
// written both-or-neither.
type Ledger interface {
	CreateRuleTransaction(ctx context.Context, txn *models.Transaction) error
	CreateTransferPair(ctx context.Context, outflow, inflow *models.Transaction) error
	CategoryBalance(ctx context.Context, accountID, categoryID int64) (decimal.Decimal, error)
}

// Evaluator runs both automation paths. It holds no mutable state; one
// instance serves all requests and the scheduler.
type Evaluator struct {
	rules  RuleSource
	ledger Ledger
}

func NewEvaluator(rules RuleSource, ledger Ledger) *Evaluator {
	return &Evaluator{rules: rules, ledger: ledger}
}

// EvaluateTransaction runs event rules against a freshly created transaction
// and returns the number of derived transactions written.
//
// The serving layer calls this exactly once per successful insert, after the
// user's row is committed. Failures here are logged and swallowed: automation
// is best-effort and must never fail the triggering request. Transactions
// flagged created_by_rule are never evaluated; that flag is the sole
// loop-prevention mechanism, so automation output can never trigger further
// automation.
func (e *Evaluator) EvaluateTransaction(ctx context.Context, txn *models.Transaction) int {
	if txn.CreatedByRule {
		return 0
	}
	// Event rules trigger on a category; an uncategorized transaction
	// cannot match any rule.
	if txn.CategoryID == nil {
		return 0
	}

	rules, err := e.rules.FindActiveEventRules(ctx, txn.AccountID, *txn.CategoryID, txn.Type)
	if err != nil {
		log.Printf("ERROR: Failed to load event rules for account %d: %v", txn.AccountID, err)
		return 0
	}

	created := 0
	for _, rule := range rules {
		amount := ComputeAmount(rule.ActionType, rule.ActionFixedAmount, rule.ActionPercentage, txn.Amount)
		if amount.Sign() <= 0 {
			log.Printf("INFO: Event rule %q (id %d) skipped: computed amount is not positive", rule.Name, rule.ID)
			continue
		}

		destCategoryID := rule.ActionDestinationCategoryID
		derived := &models.Transaction{
			AccountID:     txn.AccountID,
			CategoryID:    &destCategoryID,
			Amount:        amount,
			Description:   ruleDescription(rule.ActionDescription, rule.Name),
			Date:          txn.Date,
			Type:          rule.ActionTransactionType,
			CreatedByRule: true,
		}
		if err := e.ledger.CreateRuleTransaction(ctx, derived); err != nil {
			// Isolate per-rule failures; remaining rules still run.
			log.Printf("ERROR: Event rule %q (id %d) failed to create transaction: %v", rule.Name, rule.ID, err)
			continue
		}
		log.Printf("INFO: Event rule %q (id %d) created transaction of %s in category %d", rule.Name, rule.ID, amount.StringFixed(2), destCategoryID)
		created++
	}
	return created
}

func ruleDescription(actionDescription, ruleName string) string {
	if actionDescription != "" {
		return actionDescription
	}
	return fmt.Sprintf("Auto: %s", ruleName)
}
