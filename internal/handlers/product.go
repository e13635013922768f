// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

const defaultBestSellerLimit = 8

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, h.productService.Categories())
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ProductSearchParams{
		PaginationParams: params,
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := decimal.NewFromString(priceMinStr); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}

	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := decimal.NewFromString(priceMaxStr); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}

	if inStockStr := c.Query("in_stock"); inStockStr != "" {
		if inStock, err := strconv.ParseBool(inStockStr); err == nil {
			searchParams.InStock = &inStock
		}
	}

	listing := h.productService.SearchProducts(searchParams)

	result := utils.CreatePaginationResult(listing.Products, listing.Total, params)
	utils.PaginatedResponse(c, result, gin.H{"summary": listing.Summary})
}

// GET /products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	utils.SuccessResponse(c, h.productService.Featured())
}

// GET /products/best-sellers
func (h *ProductHandler) GetBestSellers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultBestSellerLimit)))
	if err != nil || limit < 0 {
		limit = defaultBestSellerLimit
	}

	utils.SuccessResponse(c, h.productService.BestSellers(limit))
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /search/products?q=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	products := h.productService.Search(query)

	utils.SuccessResponseWithMeta(c, products, gin.H{
		"query": query,
		"total": len(products),
	})
}
