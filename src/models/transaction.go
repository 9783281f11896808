package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is immutable once created; automation never updates or deletes
// rows, only appends. CategoryID goes nil if the category is later deleted.
type Transaction struct {
	ID            int64           `json:"id"`
	AccountID     int64           `json:"account_id"`
	CategoryID    *int64          `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"transaction_type"`
	CreatedByRule bool            `json:"created_by_rule"`
	CreatedAt     time.Time       `json:"created_at"`
}
