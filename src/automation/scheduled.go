package automation

import (
	"context"
	"log"
	"time"

	"gestor-server/src/models"

	"github.com/shopspring/decimal"
)

// Summary reports a scheduled run: how many due rules were considered and
// how many produced a transfer pair.
type Summary struct {
	Considered int `json:"considered"`
	Executed   int `json:"executed"`
}

// RunScheduledRules processes every active rule due on now's day-of-month
// (UTC) across all accounts.
//
// Each executed rule writes an atomic transfer pair: an EXPENSE out of the
// source category and an INCOME of the same amount into the destination
// category, both dated today and flagged created_by_rule. Per-rule failures
// are logged and do not abort the batch.
//
// Runs are not deduplicated per (rule, day); the caller must guarantee
// at-most-once-per-day invocation.
func (e *Evaluator) RunScheduledRules(ctx context.Context, now time.Time) Summary {
	today := now.UTC()
	log.Printf("INFO: Scheduled rule run starting for day %d", today.Day())

	rules, err := e.rules.FindActiveScheduledRules(ctx, today.Day())
	if err != nil {
		log.Printf("ERROR: Failed to load scheduled rules for day %d: %v", today.Day(), err)
		return Summary{}
	}

	summary := Summary{Considered: len(rules)}
	for _, rule := range rules {
		if e.runScheduledRule(ctx, rule, today) {
			summary.Executed++
		}
	}

	log.Printf("INFO: Scheduled rule run finished: %d considered, %d executed", summary.Considered, summary.Executed)
	return summary
}

func (e *Evaluator) runScheduledRule(ctx context.Context, rule models.ScheduledRule, today time.Time) bool {
	// FIXED rules carry their own amount; the base only matters for
	// PERCENTAGE, where it is the source category's all-time balance.
	base := decimal.Zero
	if rule.ActionType == models.ActionPercentage {
		if rule.SourceCategoryID == nil || rule.ActionPercentage == nil {
			log.Printf("INFO: Scheduled rule %q (id %d) skipped: missing source category or percentage", rule.Name, rule.ID)
			return false
		}
		balance, err := e.ledger.CategoryBalance(ctx, rule.AccountID, *rule.SourceCategoryID)
		if err != nil {
			log.Printf("ERROR: Scheduled rule %q (id %d) failed to read source balance: %v", rule.Name, rule.ID, err)
			return false
		}
		if balance.Sign() <= 0 {
			log.Printf("INFO: Scheduled rule %q (id %d) skipped: source balance %s is not positive", rule.Name, rule.ID, balance.StringFixed(2))
			return false
		}
		base = balance
	}

	amount := ComputeAmount(rule.ActionType, rule.ActionFixedAmount, rule.ActionPercentage, base)
	if amount.Sign() <= 0 {
		log.Printf("INFO: Scheduled rule %q (id %d) skipped: computed amount is not positive", rule.Name, rule.ID)
		return false
	}

	description := ruleDescription(rule.ActionDescription, rule.Name)
	destCategoryID := rule.ActionDestinationCategoryID
	outflow := &models.Transaction{
		AccountID:     rule.AccountID,
		CategoryID:    rule.SourceCategoryID,
		Amount:        amount,
		Description:   description + " (Salida)",
		Date:          today,
		Type:          models.TransactionExpense,
		CreatedByRule: true,
	}
	inflow := &models.Transaction{
		AccountID:     rule.AccountID,
		CategoryID:    &destCategoryID,
		Amount:        amount,
		Description:   description + " (Entrada)",
		Date:          today,
		Type:          models.TransactionIncome,
		CreatedByRule: true,
	}

	if err := e.ledger.CreateTransferPair(ctx, outflow, inflow); err != nil {
		log.Printf("ERROR: Scheduled rule %q (id %d) failed to create transfer pair: %v", rule.Name, rule.ID, err)
		return false
	}

	log.Printf("INFO: Scheduled rule %q (id %d) executed, amount %s", rule.Name, rule.ID, amount.StringFixed(2))
	return true
}
