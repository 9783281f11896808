package models

// Category labels transactions. A nil AccountID marks a global category
// visible to every account; (name, account) is unique.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AccountID *int64 `json:"account_id"`
}
