// internal/catalog/catalog.go

// Package catalog holds the read-only product dataset and its query functions.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/models"
)

var (
	ErrDuplicateProduct = errors.New("duplicate product id")
	ErrInvalidProduct   = errors.New("invalid product")
)

// Reader is the query surface every screen consumes. All methods are pure.
type Reader interface {
	GetByID(id string) (models.Product, bool)
	GetByCategory(category string) []models.Product
	GetFeatured() []models.Product
	GetBestSellers() []models.Product
	Search(query string) []models.Product
}

type Store struct {
	products []models.Product
	index    map[string]int
}

// PriceSummary feeds the listing filters.
type PriceSummary struct {
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
	InStock    int             `json:"in_stock"`
	OutOfStock int             `json:"out_of_stock"`
}

var defaultStore = MustNew(products)

// Default returns the store over the compiled-in dataset.
func Default() *Store {
	return defaultStore
}

// New builds a store after checking the dataset invariants.
func New(items []models.Product) (*Store, error) {
	s := &Store{
		products: make([]models.Product, 0, len(items)),
		index:    make(map[string]int, len(items)),
	}

	for _, p := range items {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, exists := s.index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}

	return s, nil
}

func MustNew(items []models.Product) *Store {
	s, err := New(items)
	if err != nil {
		panic(err)
	}
	return s
}

func validateProduct(p models.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: %s has negative price", ErrInvalidProduct, p.ID)
	case p.OriginalPrice != nil && p.OriginalPrice.LessThanOrEqual(p.Price):
		return fmt.Errorf("%w: %s original price must exceed price", ErrInvalidProduct, p.ID)
	case !p.Category.Valid():
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidProduct, p.ID, p.Category)
	case len(p.Images) == 0:
		return fmt.Errorf("%w: %s has no images", ErrInvalidProduct, p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: %s rating out of range", ErrInvalidProduct, p.ID)
	case p.Reviews < 0:
		return fmt.Errorf("%w: %s has negative review count", ErrInvalidProduct, p.ID)
	}
	return nil
}

func (s *Store) All() []models.Product {
	return s.filter(func(models.Product) bool { return true })
}

func (s *Store) Len() int {
	return len(s.products)
}

func (s *Store) GetByID(id string) (models.Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

// GetByCategory returns the whole catalog for "all", otherwise the matching
// products in catalog order. An unknown category matches nothing.
func (s *Store) GetByCategory(category string) []models.Product {
	if category == models.CategoryAll {
		return s.All()
	}
	return s.filter(func(p models.Product) bool {
		return string(p.Category) == category
	})
}

func (s *Store) GetFeatured() []models.Product {
	return s.filter(func(p models.Product) bool { return p.Featured })
}

func (s *Store) GetBestSellers() []models.Product {
	return s.filter(func(p models.Product) bool { return p.BestSeller })
}

// Search matches the query case-insensitively against name, description and
// category. A blank query applies no filter.
func (s *Store) Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}
	return s.filter(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q)
	})
}

// Filter combines the listing page's category selector with its search box.
func (s *Store) Filter(category, query string) []models.Product {
	if category == "" {
		category = models.CategoryAll
	}
	if strings.TrimSpace(query) == "" {
		return s.GetByCategory(category)
	}

	result := make([]models.Product, 0)
	for _, p := range s.Search(query) {
		if category == models.CategoryAll || string(p.Category) == category {
			result = append(result, p)
		}
	}
	return result
}

// Related returns up to limit products sharing id's category, excluding id itself.
func (s *Store) Related(id string, limit int) []models.Product {
	product, ok := s.GetByID(id)
	if !ok || limit <= 0 {
		return []models.Product{}
	}

	result := make([]models.Product, 0, limit)
	for _, p := range s.products {
		if p.Category == product.Category && p.ID != product.ID {
			result = append(result, p)
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

// Categories lists the category descriptors with their product counts, "all" first.
func (s *Store) Categories() []models.CategoryInfo {
	result := make([]models.CategoryInfo, 0, len(categoryInfo))
	for _, info := range categoryInfo {
		info.ProductCount = len(s.GetByCategory(info.ID))
		result = append(result, info)
	}
	return result
}

func Summarize(items []models.Product) PriceSummary {
	if len(items) == 0 {
		return PriceSummary{}
	}

	summary := PriceSummary{Min: items[0].Price, Max: items[0].Price}
	for _, p := range items {
		summary.Min = decimal.Min(summary.Min, p.Price)
		summary.Max = decimal.Max(summary.Max, p.Price)
		if p.InStock {
			summary.InStock++
		} else {
			summary.OutOfStock++
		}
	}
	return summary
}

func (s *Store) filter(keep func(models.Product) bool) []models.Product {
	result := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result
}
