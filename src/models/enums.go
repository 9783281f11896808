package models

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// ActionType selects how an automation rule computes the derived amount.
type ActionType string

const (
	ActionFixed      ActionType = "FIXED"
	ActionPercentage ActionType = "PERCENTAGE"
)

func (a ActionType) Valid() bool {
	return a == ActionFixed || a == ActionPercentage
}

// Role gates premium-only features (categories management, automation rules).
type Role string

const (
	RoleNormal  Role = "NORMAL"
	RolePremium Role = "PREMIUM"
)

func (r Role) Valid() bool {
	return r == RoleNormal || r == RolePremium
}
