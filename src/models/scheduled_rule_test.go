package models

import (
	"errors"
	"testing"
)

func validScheduledRule() ScheduledRule {
	src := int64(100)
	return ScheduledRule{
		AccountID:                   1,
		Name:                        "Ahorro mensual",
		IsActive:                    true,
		ScheduleDayOfMonth:          1,
		SourceCategoryID:            &src,
		ActionDestinationCategoryID: 200,
		ActionType:                  ActionPercentage,
		ActionPercentage:            decPtr("10.00"),
	}
}

func TestScheduledRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScheduledRule)
		wantErr error
	}{
		{"valid percentage rule", func(r *ScheduledRule) {}, nil},
		{"valid fixed rule without source", func(r *ScheduledRule) {
			r.ActionType = ActionFixed
			r.ActionPercentage = nil
			r.ActionFixedAmount = decPtr("100.00")
			r.SourceCategoryID = nil
		}, nil},
		{"missing name", func(r *ScheduledRule) { r.Name = "" }, ErrRuleName},
		{"bad action type", func(r *ScheduledRule) { r.ActionType = "SWEEP" }, ErrInvalidTransactionTy},
		{"day too low", func(r *ScheduledRule) { r.ScheduleDayOfMonth = 0 }, ErrScheduleDayRange},
		{"day too high", func(r *ScheduledRule) { r.ScheduleDayOfMonth = 32 }, ErrScheduleDayRange},
		{"day 31 allowed", func(r *ScheduledRule) { r.ScheduleDayOfMonth = 31 }, nil},
		{"percentage without source", func(r *ScheduledRule) { r.SourceCategoryID = nil }, ErrSourceMissing},
		{"source equals destination", func(r *ScheduledRule) {
			dst := r.ActionDestinationCategoryID
			r.SourceCategoryID = &dst
		}, ErrSourceIsDestination},
		{"percentage out of range", func(r *ScheduledRule) { r.ActionPercentage = decPtr("101") }, ErrPercentageRange},
		{"fixed with both amounts", func(r *ScheduledRule) {
			r.ActionType = ActionFixed
			r.ActionFixedAmount = decPtr("100.00")
		}, ErrAmbiguousAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validScheduledRule()
			tt.mutate(&rule)
			if err := rule.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnumValidation(t *testing.T) {
	if !TransactionIncome.Valid() || !TransactionExpense.Valid() {
		t.Error("known transaction types must validate")
	}
	if TransactionType("TRANSFER").Valid() {
		t.Error("unknown transaction type must not validate")
	}
	if !ActionFixed.Valid() || !ActionPercentage.Valid() {
		t.Error("known action types must validate")
	}
	if ActionType("fixed").Valid() {
		t.Error("action types are case sensitive")
	}
	if !RoleNormal.Valid() || !RolePremium.Valid() {
		t.Error("known roles must validate")
	}
	if Role("ADMIN").Valid() {
		t.Error("unknown role must not validate")
	}
}
