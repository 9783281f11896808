package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledRule moves money between two categories of its account on a fixed
// day of the month: an EXPENSE out of the source category and a matching
// INCOME into the destination category.
type ScheduledRule struct {
	ID                          int64            `json:"id"`
	AccountID                   int64            `json:"account_id"`
	Name                        string           `json:"name"`
	IsActive                    bool             `json:"is_active"`
	ScheduleDayOfMonth          int              `json:"schedule_day_of_month"`
	SourceCategoryID            *int64           `json:"source_category"`
	ActionDestinationCategoryID int64            `json:"action_destination_category"`
	ActionType                  ActionType       `json:"action_type"`
	ActionDescription           string           `json:"action_description"`
	ActionFixedAmount           *decimal.Decimal `json:"action_fixed_amount"`
	ActionPercentage            *decimal.Decimal `json:"action_percentage"`
	CreatedByID                 *int64           `json:"created_by"`
	CreatedAt                   time.Time        `json:"created_at"`
}

var (
	ErrScheduleDayRange     = errors.New("schedule_day_of_month must be in [1, 31]")
	ErrSourceMissing        = errors.New("source_category is required for PERCENTAGE rules")
	ErrSourceIsDestination  = errors.New("source_category must differ from action_destination_category")
	ErrInvalidTransactionTy = errors.New("invalid action type")
)

func (r *ScheduledRule) Validate() error {
	if r.Name == "" {
		return ErrRuleName
	}
	if !r.ActionType.Valid() {
		return ErrInvalidTransactionTy
	}
	if r.ScheduleDayOfMonth < 1 || r.ScheduleDayOfMonth > 31 {
		return ErrScheduleDayRange
	}
	if r.ActionType == ActionPercentage && r.SourceCategoryID == nil {
		return ErrSourceMissing
	}
	if r.SourceCategoryID != nil && *r.SourceCategoryID == r.ActionDestinationCategoryID {
		return ErrSourceIsDestination
	}
	return validateAction(r.ActionType, r.ActionFixedAmount, r.ActionPercentage)
}
