// internal/services/product_service.go
package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/catalog"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/utils"
)

const relatedProductLimit = 4

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	store *catalog.Store
}

type ProductSearchParams struct {
	utils.PaginationParams
	InStock  *bool
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
}

type ProductListing struct {
	Products []models.Product     `json:"products"`
	Total    int64                `json:"total"`
	Summary  catalog.PriceSummary `json:"summary"`
}

type ProductDetail struct {
	models.Product
	OnSale  bool             `json:"onSale"`
	Savings *decimal.Decimal `json:"savings,omitempty"`
	Related []models.Product `json:"related"`
}

func NewProductService(store *catalog.Store) *ProductService {
	return &ProductService{store: store}
}

// SearchProducts applies category, text and the optional stock/price filters,
// then paginates. The price summary describes the full match set.
func (s *ProductService) SearchProducts(params ProductSearchParams) ProductListing {
	matches := s.store.Filter(params.Category, params.Search)

	filtered := make([]models.Product, 0, len(matches))
	for _, p := range matches {
		if params.InStock != nil && p.InStock != *params.InStock {
			continue
		}
		if params.PriceMin != nil && p.Price.LessThan(*params.PriceMin) {
			continue
		}
		if params.PriceMax != nil && p.Price.GreaterThan(*params.PriceMax) {
			continue
		}
		filtered = append(filtered, p)
	}

	page := params.PaginationParams
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = utils.DefaultPageLimit
	}

	return ProductListing{
		Products: utils.Paginate(filtered, page),
		Total:    int64(len(filtered)),
		Summary:  catalog.Summarize(filtered),
	}
}

func (s *ProductService) GetProduct(id string) (*ProductDetail, error) {
	product, ok := s.store.GetByID(id)
	if !ok {
		return nil, ErrProductNotFound
	}

	detail := &ProductDetail{
		Product: product,
		OnSale:  product.OnSale(),
		Related: s.store.Related(id, relatedProductLimit),
	}
	if detail.OnSale {
		savings := product.Savings()
		detail.Savings = &savings
	}
	return detail, nil
}

func (s *ProductService) Featured() []models.Product {
	return s.store.GetFeatured()
}

// BestSellers returns at most limit best sellers; limit <= 0 means all.
func (s *ProductService) BestSellers(limit int) []models.Product {
	items := s.store.GetBestSellers()
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func (s *ProductService) Search(query string) []models.Product {
	return s.store.Search(query)
}

func (s *ProductService) Categories() []models.CategoryInfo {
	return s.store.Categories()
}

func (s *ProductService) Lookup(id string) (models.Product, bool) {
	return s.store.GetByID(id)
}
