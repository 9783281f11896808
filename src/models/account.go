package models

import "time"

// Account is the tenant boundary: categories, transactions and automation
// rules all belong to exactly one account. Accounts are shared between users
// through memberships.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Membership struct {
	UserID    int64     `json:"user_id"`
	AccountID int64     `json:"account_id"`
	Alias     *string   `json:"alias"`
	JoinedAt  time.Time `json:"joined_at"`
}
