package disclosure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrade_AvgAmount(t *testing.T) {
	tr := Trade{AmountLow: 100_001, AmountHigh: 250_000}
	assert.Equal(t, int64(175_000), tr.AvgAmount())
}

func TestTrade_IsPurchase(t *testing.T) {
	cases := map[string]bool{
		"Purchase":        true,
		"purchase":        true,
		"Purchase (Call)": true,
		"Sale (Full)":     false,
		"Sale (Partial)":  false,
		"Exchange":        false,
	}
	for tradeType, want := range cases {
		tr := Trade{TradeType: tradeType}
		assert.Equal(t, want, tr.IsPurchase(), "type %q", tradeType)
	}
}

func TestTrade_FilingDelayClassification(t *testing.T) {
	onTime := Trade{FilingDelayDays: 45}
	assert.False(t, onTime.IsLate())
	assert.False(t, onTime.IsSuspiciouslyLate())

	late := Trade{FilingDelayDays: 46}
	assert.True(t, late.IsLate())
	assert.False(t, late.IsSuspiciouslyLate())

	veryLate := Trade{FilingDelayDays: 91}
	assert.True(t, veryLate.IsLate())
	assert.True(t, veryLate.IsSuspiciouslyLate())
}
