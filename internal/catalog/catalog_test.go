// internal/catalog/catalog_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/soundwave/internal/models"
)

func ids(items []models.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	store := Default()
	assert.Equal(t, 15, store.Len())
}

func TestGetByID(t *testing.T) {
	store := Default()

	p, ok := store.GetByID("4")
	require.True(t, ok)
	assert.Equal(t, "Shure SM7B Microphone", p.Name)

	_, ok = store.GetByID("404")
	assert.False(t, ok)
}

func TestGetByCategory(t *testing.T) {
	store := Default()

	all := store.GetByCategory(models.CategoryAll)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15"}, ids(all))

	assert.Equal(t, []string{"6", "9", "13"}, ids(store.GetByCategory("vinyl")))
	assert.Equal(t, []string{"1", "3", "11", "14"}, ids(store.GetByCategory("instruments")))
	assert.Empty(t, store.GetByCategory("drums"))
}

func TestMerchandisingFlags(t *testing.T) {
	store := Default()

	assert.Equal(t, []string{"1", "2", "4", "6", "11"}, ids(store.GetFeatured()))
	assert.Equal(t, []string{"1", "3", "4", "7", "10"}, ids(store.GetBestSellers()))
}

func TestSearch(t *testing.T) {
	store := Default()

	t.Run("matches name, description and category case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"1", "11", "15"}, ids(store.Search("guitar")))
		assert.Equal(t, []string{"1", "11", "15"}, ids(store.Search("GUITAR")))
	})

	t.Run("category text matches", func(t *testing.T) {
		assert.Equal(t, []string{"4", "7", "8", "10", "12"}, ids(store.Search("studio-gear")))
	})

	t.Run("blank query returns the catalog", func(t *testing.T) {
		assert.Len(t, store.Search(""), 15)
		assert.Len(t, store.Search("   "), 15)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, store.Search("theremin"))
	})
}

func TestFilter(t *testing.T) {
	store := Default()

	assert.Equal(t, []string{"15"}, ids(store.Filter("accessories", "guitar")))
	assert.Equal(t, []string{"1", "11", "15"}, ids(store.Filter("", "guitar")))
	assert.Equal(t, []string{"6", "9", "13"}, ids(store.Filter("vinyl", "")))
}

func TestRelated(t *testing.T) {
	store := Default()

	assert.Equal(t, []string{"7", "8", "10", "12"}, ids(store.Related("4", 4)))
	assert.Equal(t, []string{"9", "13"}, ids(store.Related("6", 4)))
	assert.Empty(t, store.Related("missing", 4))
}

func TestCategories(t *testing.T) {
	cats := Default().Categories()
	require.Len(t, cats, 5)

	assert.Equal(t, models.CategoryAll, cats[0].ID)
	assert.Equal(t, 15, cats[0].ProductCount)
	assert.Equal(t, "vinyl", cats[4].ID)
	assert.Equal(t, 3, cats[4].ProductCount)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(Default().GetByCategory("vinyl"))
	assert.Equal(t, "34.99", summary.Min.String())
	assert.Equal(t, "44.99", summary.Max.String())
	assert.Equal(t, 3, summary.InStock)

	assert.Equal(t, PriceSummary{}, Summarize(nil))
}

func TestNewRejectsInvalidData(t *testing.T) {
	base := models.Product{ID: "a", Price: usd("10"), Category: models.CategoryVinyl, Images: []string{"x"}}

	_, err := New([]models.Product{base, base})
	assert.ErrorIs(t, err, ErrDuplicateProduct)

	bad := base
	bad.OriginalPrice = was("5")
	_, err = New([]models.Product{bad})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	negative := base
	negative.Price = usd("-0.01")
	_, err = New([]models.Product{negative})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	noImages := base
	noImages.Images = nil
	_, err = New([]models.Product{noImages})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
