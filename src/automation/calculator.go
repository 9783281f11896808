package automation

import (
	"gestor-server/src/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeAmount resolves the amount an automation action should move.
//
// FIXED returns the configured amount unchanged (it was quantized to two
// decimals when the rule was stored). PERCENTAGE returns base * pct/100
// rounded to two decimals; shopspring rounds half away from zero, which for
// the positive amounts the ledger stores is round-half-up.
//
// A zero result means "do not create a transaction": the required field is
// missing, the base is not positive, or the computed value rounds to <= 0.
func ComputeAmount(action models.ActionType, fixed, percentage *decimal.Decimal, base decimal.Decimal) decimal.Decimal {
	switch action {
	case models.ActionFixed:
		if fixed == nil || fixed.Sign() <= 0 {
			return decimal.Zero
		}
		return *fixed
	case models.ActionPercentage:
		if percentage == nil || percentage.Sign() <= 0 || base.Sign() <= 0 {
			return decimal.Zero
		}
		amount := base.Mul(percentage.Div(oneHundred)).Round(2)
		if amount.Sign() <= 0 {
			return decimal.Zero
		}
		return amount
	}
	return decimal.Zero
}
