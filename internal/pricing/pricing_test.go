// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, Format(got))
}

func TestComputeShippingBoundary(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		shipping string
		free     bool
	}{
		{"exactly at threshold pays shipping", "100.00", "9.99", false},
		{"one cent above threshold ships free", "100.01", "0.00", true},
		{"below threshold", "50", "9.99", false},
		{"empty cart", "0", "9.99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := DefaultPolicy.Compute(d(tt.subtotal))
			assertAmount(t, tt.shipping, totals.Shipping)
			assert.Equal(t, tt.free, totals.FreeShipping)
		})
	}
}

func TestComputeTaxAndGrandTotal(t *testing.T) {
	totals := DefaultPolicy.Compute(d("50"))
	assertAmount(t, "4.00", totals.Tax)
	assertAmount(t, "63.99", totals.GrandTotal)
	assert.Equal(t, int64(6399), MinorUnits(totals.GrandTotal))

	totals = DefaultPolicy.Compute(d("110"))
	assertAmount(t, "0.00", totals.Shipping)
	assertAmount(t, "8.80", totals.Tax)
	assertAmount(t, "118.80", totals.GrandTotal)
}

func TestComputeRoundsTaxToCents(t *testing.T) {
	// 34.99 * 0.08 = 2.7992
	totals := DefaultPolicy.Compute(d("34.99"))
	assertAmount(t, "2.80", totals.Tax)
	assertAmount(t, "47.78", totals.GrandTotal)

	// 0.10 * 0.05 = 0.005 rounds half away from zero
	assertAmount(t, "0.01", NewPolicy(d("100"), d("9.99"), d("0.05")).Compute(d("0.10")).Tax)
}

func TestComputeLargeSubtotalStaysExact(t *testing.T) {
	totals := DefaultPolicy.Compute(d("34.99").Mul(decimal.NewFromInt(1 << 50)))
	assert.True(t, totals.GrandTotal.IsPositive())
	assertAmount(t, "42546856759657286.86", totals.GrandTotal)
}

func TestFreeShippingRemaining(t *testing.T) {
	assertAmount(t, "65.01", DefaultPolicy.Compute(d("34.99")).FreeShippingRemaining)
	assertAmount(t, "0.00", DefaultPolicy.Compute(d("150")).FreeShippingRemaining)
}

func TestCustomPolicy(t *testing.T) {
	policy := NewPolicy(d("50"), d("4.5"), d("0.1"))

	totals := policy.Compute(d("60"))
	assertAmount(t, "0.00", totals.Shipping)
	assertAmount(t, "6.00", totals.Tax)
	assertAmount(t, "66.00", totals.GrandTotal)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(129999), MinorUnits(d("1299.99")))
	assert.Equal(t, int64(2000), MinorUnits(d("19.999")))
	assert.Equal(t, "12.30", Format(d("12.3")))
}
