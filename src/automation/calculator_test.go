package automation

import (
	"testing"

	"gestor-server/src/models"

	"github.com/shopspring/decimal"
)

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name       string
		action     models.ActionType
		fixed      *decimal.Decimal
		percentage *decimal.Decimal
		base       string
		want       string
	}{
		{"fixed returns configured amount", models.ActionFixed, decPtr("100.00"), nil, "0", "100.00"},
		{"fixed ignores base", models.ActionFixed, decPtr("50.00"), nil, "9999.99", "50.00"},
		{"fixed missing amount", models.ActionFixed, nil, nil, "100", "0"},
		{"fixed negative amount", models.ActionFixed, decPtr("-5.00"), nil, "100", "0"},
		{"percentage of base", models.ActionPercentage, nil, decPtr("10.00"), "200.00", "20.00"},
		{"percentage rounds to two places", models.ActionPercentage, nil, decPtr("10.00"), "333.33", "33.33"},
		{"percentage rounds half up", models.ActionPercentage, nil, decPtr("15.00"), "100.30", "15.05"},
		{"percentage full base", models.ActionPercentage, nil, decPtr("100.00"), "42.42", "42.42"},
		{"percentage missing field", models.ActionPercentage, nil, nil, "200.00", "0"},
		{"percentage zero base", models.ActionPercentage, nil, decPtr("10.00"), "0", "0"},
		{"percentage negative base", models.ActionPercentage, nil, decPtr("10.00"), "-50.00", "0"},
		{"percentage tiny result rounds to zero", models.ActionPercentage, nil, decPtr("0.01"), "0.10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAmount(tt.action, tt.fixed, tt.percentage, dec(tt.base))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeAmountUnknownAction(t *testing.T) {
	got := ComputeAmount(models.ActionType("TRANSFER"), decPtr("10.00"), decPtr("10.00"), dec("100"))
	if !got.IsZero() {
		t.Errorf("ComputeAmount() = %s, want 0 for unknown action type", got)
	}
}
