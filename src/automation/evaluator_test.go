package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"gestor-server/src/models"

	"github.com/shopspring/decimal"
)

func testDate() time.Time {
	return time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
}

func salaryTransaction(amount string) *models.Transaction {
	return &models.Transaction{
		ID:         1,
		AccountID:  10,
		CategoryID: idPtr(100),
		Amount:     dec(amount),
		Date:       testDate(),
		Type:       models.TransactionIncome,
	}
}

func fixedSavingsRule() models.EventRule {
	return models.EventRule{
		ID:                          1,
		AccountID:                   10,
		Name:                        "Ahorro fijo",
		IsActive:                    true,
		TriggerCategoryID:           100,
		TriggerTransactionType:      models.TransactionIncome,
		ActionType:                  models.ActionFixed,
		ActionDestinationCategoryID: 200,
		ActionTransactionType:       models.TransactionExpense,
		ActionFixedAmount:           decPtr("100.00"),
	}
}

func TestEvaluateTransactionFixedRule(t *testing.T) {
	source := &fakeRuleSource{eventRules: []models.EventRule{fixedSavingsRule()}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	created := eval.EvaluateTransaction(context.Background(), salaryTransaction("1000.00"))
	if created != 1 {
		t.Fatalf("EvaluateTransaction() = %d, want 1", created)
	}
	derived := ledger.created[0]
	if !derived.Amount.Equal(dec("100.00")) {
		t.Errorf("derived amount = %s, want 100.00", derived.Amount)
	}
	if derived.CategoryID == nil || *derived.CategoryID != 200 {
		t.Errorf("derived category = %v, want 200", derived.CategoryID)
	}
	if derived.Type != models.TransactionExpense {
		t.Errorf("derived type = %s, want EXPENSE", derived.Type)
	}
	if !derived.CreatedByRule {
		t.Error("derived transaction must be flagged created_by_rule")
	}
	if !derived.Date.Equal(testDate()) {
		t.Errorf("derived date = %s, want trigger date %s", derived.Date, testDate())
	}
	if derived.Description != "Auto: Ahorro fijo" {
		t.Errorf("derived description = %q, want default from rule name", derived.Description)
	}
}

func TestEvaluateTransactionPercentageRule(t *testing.T) {
	rule := fixedSavingsRule()
	rule.ActionType = models.ActionPercentage
	rule.ActionFixedAmount = nil
	rule.ActionPercentage = decPtr("10.00")
	rule.ActionDescription = "Apartado automatico"
	source := &fakeRuleSource{eventRules: []models.EventRule{rule}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	created := eval.EvaluateTransaction(context.Background(), salaryTransaction("200.00"))
	if created != 1 {
		t.Fatalf("EvaluateTransaction() = %d, want 1", created)
	}
	derived := ledger.created[0]
	if !derived.Amount.Equal(dec("20.00")) {
		t.Errorf("derived amount = %s, want 20.00 (10%% of 200.00)", derived.Amount)
	}
	if derived.Description != "Apartado automatico" {
		t.Errorf("derived description = %q, want the rule's action description", derived.Description)
	}
}

func TestEvaluateTransactionSkipsRuleCreated(t *testing.T) {
	source := &fakeRuleSource{eventRules: []models.EventRule{fixedSavingsRule()}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	txn := salaryTransaction("1000.00")
	txn.CreatedByRule = true
	if created := eval.EvaluateTransaction(context.Background(), txn); created != 0 {
		t.Errorf("EvaluateTransaction() = %d, want 0 for rule-created transaction", created)
	}
	if len(ledger.created) != 0 {
		t.Errorf("ledger has %d writes, want none", len(ledger.created))
	}
}

func TestEvaluateTransactionOutputNeverCascades(t *testing.T) {
	// Rule A feeds category 200; a second rule triggers on category 200.
	// The derived transaction carries created_by_rule, so re-evaluating it
	// must produce nothing.
	cascade := fixedSavingsRule()
	cascade.ID = 2
	cascade.Name = "Cascada"
	cascade.TriggerCategoryID = 200
	cascade.TriggerTransactionType = models.TransactionExpense
	cascade.ActionDestinationCategoryID = 300
	source := &fakeRuleSource{eventRules: []models.EventRule{fixedSavingsRule(), cascade}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	created := eval.EvaluateTransaction(context.Background(), salaryTransaction("1000.00"))
	if created != 1 {
		t.Fatalf("EvaluateTransaction() = %d, want 1", created)
	}
	for _, derived := range ledger.created {
		if n := eval.EvaluateTransaction(context.Background(), derived); n != 0 {
			t.Errorf("re-evaluating derived transaction created %d more, want 0", n)
		}
	}
	if len(ledger.created) != 1 {
		t.Errorf("ledger has %d transactions, want 1", len(ledger.created))
	}
}

func TestEvaluateTransactionSkipsUncategorized(t *testing.T) {
	source := &fakeRuleSource{eventRules: []models.EventRule{fixedSavingsRule()}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	txn := salaryTransaction("1000.00")
	txn.CategoryID = nil
	if created := eval.EvaluateTransaction(context.Background(), txn); created != 0 {
		t.Errorf("EvaluateTransaction() = %d, want 0 for uncategorized transaction", created)
	}
}

func TestEvaluateTransactionMatchesTriggerExactly(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Transaction)
	}{
		{"different account", func(txn *models.Transaction) { txn.AccountID = 99 }},
		{"different category", func(txn *models.Transaction) { txn.CategoryID = idPtr(999) }},
		{"different type", func(txn *models.Transaction) { txn.Type = models.TransactionExpense }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeRuleSource{eventRules: []models.EventRule{fixedSavingsRule()}}
			ledger := &fakeLedger{}
			eval := NewEvaluator(source, ledger)

			txn := salaryTransaction("1000.00")
			tt.mutate(txn)
			if created := eval.EvaluateTransaction(context.Background(), txn); created != 0 {
				t.Errorf("EvaluateTransaction() = %d, want 0", created)
			}
		})
	}
}

func TestEvaluateTransactionInactiveRuleIgnored(t *testing.T) {
	rule := fixedSavingsRule()
	rule.IsActive = false
	source := &fakeRuleSource{eventRules: []models.EventRule{rule}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	if created := eval.EvaluateTransaction(context.Background(), salaryTransaction("1000.00")); created != 0 {
		t.Errorf("EvaluateTransaction() = %d, want 0 for inactive rule", created)
	}
}

func TestEvaluateTransactionRuleFailureIsIsolated(t *testing.T) {
	failing := fixedSavingsRule()
	failing.ID = 2
	failing.Name = "Destino roto"
	failing.ActionDestinationCategoryID = 666
	source := &fakeRuleSource{eventRules: []models.EventRule{failing, fixedSavingsRule()}}
	ledger := &fakeLedger{failCategories: map[int64]bool{666: true}}
	eval := NewEvaluator(source, ledger)

	created := eval.EvaluateTransaction(context.Background(), salaryTransaction("1000.00"))
	if created != 1 {
		t.Fatalf("EvaluateTransaction() = %d, want 1 (healthy rule still runs)", created)
	}
	if *ledger.created[0].CategoryID != 200 {
		t.Errorf("surviving write went to category %d, want 200", *ledger.created[0].CategoryID)
	}
}

func TestEvaluateTransactionRuleLoadFailure(t *testing.T) {
	source := &fakeRuleSource{eventErr: errors.New("connection refused")}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	if created := eval.EvaluateTransaction(context.Background(), salaryTransaction("1000.00")); created != 0 {
		t.Errorf("EvaluateTransaction() = %d, want 0 when rules cannot be loaded", created)
	}
}

func TestEvaluateTransactionSkipsNonPositiveAmount(t *testing.T) {
	rule := fixedSavingsRule()
	rule.ActionType = models.ActionPercentage
	rule.ActionFixedAmount = nil
	zero := decimal.Zero
	rule.ActionPercentage = &zero
	source := &fakeRuleSource{eventRules: []models.EventRule{rule}}
	ledger := &fakeLedger{}
	eval := NewEvaluator(source, ledger)

	if created := eval.EvaluateTransaction(context.Background(), salaryTransaction("1000.00")); created != 0 {
		t.Errorf("EvaluateTransaction() = %d, want 0 when computed amount is zero", created)
	}
}
