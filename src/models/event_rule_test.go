package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func decPtr(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func validEventRule() EventRule {
	return EventRule{
		AccountID:                   1,
		Name:                        "Ahorro",
		IsActive:                    true,
		TriggerCategoryID:           100,
		TriggerTransactionType:      TransactionIncome,
		ActionType:                  ActionFixed,
		ActionDestinationCategoryID: 200,
		ActionTransactionType:       TransactionExpense,
		ActionFixedAmount:           decPtr("50.00"),
	}
}

func TestEventRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EventRule)
		wantErr error
	}{
		{"valid fixed rule", func(r *EventRule) {}, nil},
		{"valid percentage rule", func(r *EventRule) {
			r.ActionType = ActionPercentage
			r.ActionFixedAmount = nil
			r.ActionPercentage = decPtr("10.00")
		}, nil},
		{"missing name", func(r *EventRule) { r.Name = "" }, ErrRuleName},
		{"bad trigger type", func(r *EventRule) { r.TriggerTransactionType = "TRANSFER" }, ErrRuleTypes},
		{"bad action transaction type", func(r *EventRule) { r.ActionTransactionType = "" }, ErrRuleTypes},
		{"bad action type", func(r *EventRule) { r.ActionType = "PROPORTIONAL" }, ErrRuleTypes},
		{"fixed without amount", func(r *EventRule) { r.ActionFixedAmount = nil }, ErrFixedAmountMissing},
		{"fixed with both amounts", func(r *EventRule) { r.ActionPercentage = decPtr("10.00") }, ErrAmbiguousAmount},
		{"fixed non-positive amount", func(r *EventRule) { r.ActionFixedAmount = decPtr("0") }, ErrFixedAmountRange},
		{"percentage without value", func(r *EventRule) {
			r.ActionType = ActionPercentage
			r.ActionFixedAmount = nil
		}, ErrPercentageMissing},
		{"percentage with both amounts", func(r *EventRule) {
			r.ActionType = ActionPercentage
			r.ActionPercentage = decPtr("10.00")
		}, ErrAmbiguousAmount},
		{"percentage over 100", func(r *EventRule) {
			r.ActionType = ActionPercentage
			r.ActionFixedAmount = nil
			r.ActionPercentage = decPtr("150.00")
		}, ErrPercentageRange},
		{"percentage of zero", func(r *EventRule) {
			r.ActionType = ActionPercentage
			r.ActionFixedAmount = nil
			r.ActionPercentage = decPtr("0")
		}, ErrPercentageRange},
		{"percentage of exactly 100 allowed", func(r *EventRule) {
			r.ActionType = ActionPercentage
			r.ActionFixedAmount = nil
			r.ActionPercentage = decPtr("100.00")
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validEventRule()
			tt.mutate(&rule)
			if err := rule.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
