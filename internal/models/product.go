// internal/models/product.go
package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. JSON names match the storefront's cart snapshot format.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Category      Category         `json:"category"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	InStock       bool             `json:"inStock"`
	Featured      bool             `json:"featured,omitempty"`
	BestSeller    bool             `json:"bestSeller,omitempty"`
}

// OnSale reports whether the product carries a higher original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// Savings is the discount against the original price, zero when not on sale.
func (p Product) Savings() decimal.Decimal {
	if !p.OnSale() {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

type CategoryInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"product_count"`
}
