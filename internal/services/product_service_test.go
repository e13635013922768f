// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/soundwave/internal/catalog"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/utils"
)

func TestSearchProducts(t *testing.T) {
	svc := NewProductService(catalog.Default())

	t.Run("category", func(t *testing.T) {
		listing := svc.SearchProducts(ProductSearchParams{PaginationParams: utils.PaginationParams{Category: "vinyl"}})
		assert.Equal(t, int64(3), listing.Total)
		assertAmount(t, "34.99", listing.Summary.Min)
		assertAmount(t, "44.99", listing.Summary.Max)
	})

	t.Run("all with paging", func(t *testing.T) {
		listing := svc.SearchProducts(ProductSearchParams{PaginationParams: utils.PaginationParams{Category: models.CategoryAll, Page: 2, Limit: 10}})
		assert.Equal(t, int64(15), listing.Total)
		assert.Len(t, listing.Products, 5)
	})

	t.Run("price range", func(t *testing.T) {
		lo, hi := usd("100"), usd("400")
		listing := svc.SearchProducts(ProductSearchParams{PriceMin: &lo, PriceMax: &hi})
		for _, p := range listing.Products {
			assert.False(t, p.Price.LessThan(lo), p.Price.String())
			assert.False(t, p.Price.GreaterThan(hi), p.Price.String())
		}
		assert.NotZero(t, listing.Total)
	})

	t.Run("out of stock only", func(t *testing.T) {
		inStock := false
		listing := svc.SearchProducts(ProductSearchParams{InStock: &inStock})
		assert.Zero(t, listing.Total)
		assert.Empty(t, listing.Products)
	})
}

func TestGetProduct(t *testing.T) {
	svc := NewProductService(catalog.Default())

	detail, err := svc.GetProduct("1")
	require.NoError(t, err)
	assert.True(t, detail.OnSale)
	require.NotNil(t, detail.Savings)
	assertAmount(t, "200.00", *detail.Savings)
	assert.NotEmpty(t, detail.Related)
	for _, p := range detail.Related {
		assert.NotEqual(t, "1", p.ID)
	}

	_, err = svc.GetProduct("999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBestSellersLimit(t *testing.T) {
	svc := NewProductService(catalog.Default())

	assert.Len(t, svc.BestSellers(2), 2)
	assert.Len(t, svc.BestSellers(0), len(catalog.Default().GetBestSellers()))
}
