package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EventRule fires synchronously when a transaction matching its trigger
// (category + type) is created in its account, producing one derived
// transaction in the destination category.
type EventRule struct {
	ID                          int64            `json:"id"`
	AccountID                   int64            `json:"account_id"`
	Name                        string           `json:"name"`
	IsActive                    bool             `json:"is_active"`
	TriggerCategoryID           int64            `json:"trigger_category"`
	TriggerTransactionType      TransactionType  `json:"trigger_transaction_type"`
	ActionType                  ActionType       `json:"action_type"`
	ActionDestinationCategoryID int64            `json:"action_destination_category"`
	ActionTransactionType       TransactionType  `json:"action_transaction_type"`
	ActionDescription           string           `json:"action_description"`
	ActionFixedAmount           *decimal.Decimal `json:"action_fixed_amount"`
	ActionPercentage            *decimal.Decimal `json:"action_percentage"`
	CreatedByID                 *int64           `json:"created_by"`
	CreatedAt                   time.Time        `json:"created_at"`
}

var (
	ErrRuleName           = errors.New("rule name is required")
	ErrRuleTypes          = errors.New("invalid transaction or action type")
	ErrFixedAmountMissing = errors.New("action_fixed_amount is required for FIXED rules")
	ErrPercentageMissing  = errors.New("action_percentage is required for PERCENTAGE rules")
	ErrAmbiguousAmount    = errors.New("exactly one of action_fixed_amount/action_percentage must be set")
	ErrPercentageRange    = errors.New("action_percentage must be in (0, 100]")
	ErrFixedAmountRange   = errors.New("action_fixed_amount must be positive")
)

// Validate enforces the action invariant: exactly one amount field populated,
// matching the action type, with a sane range.
func (r *EventRule) Validate() error {
	if r.Name == "" {
		return ErrRuleName
	}
	if !r.TriggerTransactionType.Valid() || !r.ActionTransactionType.Valid() || !r.ActionType.Valid() {
		return ErrRuleTypes
	}
	return validateAction(r.ActionType, r.ActionFixedAmount, r.ActionPercentage)
}

func validateAction(action ActionType, fixed, percentage *decimal.Decimal) error {
	switch action {
	case ActionFixed:
		if fixed == nil {
			return ErrFixedAmountMissing
		}
		if percentage != nil {
			return ErrAmbiguousAmount
		}
		if fixed.Sign() <= 0 {
			return ErrFixedAmountRange
		}
	case ActionPercentage:
		if percentage == nil {
			return ErrPercentageMissing
		}
		if fixed != nil {
			return ErrAmbiguousAmount
		}
		if percentage.Sign() <= 0 || percentage.GreaterThan(decimal.NewFromInt(100)) {
			return ErrPercentageRange
		}
	}
	return nil
}
