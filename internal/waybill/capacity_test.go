package waybill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCheckCapacityMissingInputsStaySilent(t *testing.T) {
	for name, tc := range map[string]struct {
		truck, total *decimal.Decimal
	}{
		"both nil":  {nil, nil},
		"truck nil": {nil, decPtr("12")},
		"total nil": {decPtr("15"), nil},
	} {
		t.Run(name, func(t *testing.T) {
			got := CheckCapacity(tc.truck, tc.total)
			assert.False(t, got.Overflow)
			assert.True(t, got.Excess.IsZero())
		})
	}
}

func TestCheckCapacityOverflow(t *testing.T) {
	// truckCbm=15, drops sum to 20 -> overflow by 5.00
	got := CheckCapacity(decPtr("15"), decPtr("20"))
	assert.True(t, got.Overflow)
	assert.Equal(t, "5.00", got.Excess.StringFixed(2))
}

func TestCheckCapacityUnderAndAtCapacity(t *testing.T) {
	got := CheckCapacity(decPtr("15"), decPtr("10"))
	assert.False(t, got.Overflow)
	assert.True(t, got.Excess.IsZero())

	got = CheckCapacity(decPtr("15"), decPtr("15"))
	assert.False(t, got.Overflow)
	assert.True(t, got.Excess.IsZero())
}

func TestCheckCapacityRoundsToTwoDecimals(t *testing.T) {
	got := CheckCapacity(decPtr("10"), decPtr("10.005"))
	assert.True(t, got.Overflow)
	assert.Equal(t, "0.01", got.Excess.StringFixed(2))
}
