// internal/pricing/pricing.go

// Package pricing turns a cart subtotal into shipping, tax and grand total.
//
// Every screen that shows money uses the same Policy so the free-shipping
// threshold and the tax rate cannot drift between the cart and checkout views.
package pricing

import "github.com/shopspring/decimal"

// Places is the number of decimal places every amount is rounded to.
const Places = 2

var (
	// DefaultFreeShippingThreshold must be strictly exceeded for free shipping.
	DefaultFreeShippingThreshold = decimal.NewFromInt(100)
	DefaultShippingFee           = decimal.RequireFromString("9.99")
	DefaultTaxRate               = decimal.RequireFromString("0.08")
)

type Policy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Tax                   decimal.Decimal `json:"tax"`
	GrandTotal            decimal.Decimal `json:"grand_total"`
	FreeShipping          bool            `json:"free_shipping"`
	FreeShippingRemaining decimal.Decimal `json:"free_shipping_remaining"`
}

var DefaultPolicy = NewPolicy(DefaultFreeShippingThreshold, DefaultShippingFee, DefaultTaxRate)

func NewPolicy(freeShippingThreshold, shippingFee, taxRate decimal.Decimal) Policy {
	return Policy{
		FreeShippingThreshold: freeShippingThreshold.Round(Places),
		ShippingFee:           shippingFee.Round(Places),
		TaxRate:               taxRate,
	}
}

// Compute derives the order totals for a subtotal. Tax rounds half away from
// zero to the cent.
func (p Policy) Compute(subtotal decimal.Decimal) Totals {
	subtotal = subtotal.Round(Places)

	shipping := p.ShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(p.TaxRate).Round(Places)

	remaining := decimal.Zero
	if shipping.IsPositive() && subtotal.LessThan(p.FreeShippingThreshold) {
		remaining = p.FreeShippingThreshold.Sub(subtotal)
	}

	return Totals{
		Subtotal:              subtotal,
		Shipping:              shipping,
		Tax:                   tax,
		GrandTotal:            subtotal.Add(shipping).Add(tax),
		FreeShipping:          shipping.IsZero(),
		FreeShippingRemaining: remaining,
	}
}

// MinorUnits converts an amount to integer cents, the unit card processors bill in.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(Places).Round(0).IntPart()
}

// Format renders an amount with exactly two decimals.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(Places)
}
