// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/soundwave/internal/cart"
	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/pricing"
	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=99"`
}

// UpdateCartItemRequest sets a line's quantity. Zero or less removes the line.
// The max tag mirrors cart.MaxLineQuantity.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=99"`
}

// CartView is the cart as the storefront renders it.
type CartView struct {
	cart.State
	Totals pricing.Totals `json:"totals"`
}

type CartHandler struct {
	carts          *cart.Registry
	productService *services.ProductService
	policy         pricing.Policy
}

func NewCartHandler(carts *cart.Registry, productService *services.ProductService, policy pricing.Policy) *CartHandler {
	return &CartHandler{
		carts:          carts,
		productService: productService,
		policy:         policy,
	}
}

func (h *CartHandler) engine(c *gin.Context) *cart.Engine {
	return h.carts.Get(c.Request.Context(), utils.GetSessionIDFromContext(c))
}

func (h *CartHandler) view(state cart.State) CartView {
	return CartView{State: state, Totals: h.policy.Compute(state.Total)}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	utils.SuccessResponse(c, h.view(h.engine(c).State()))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, ok := h.productService.Lookup(req.ProductID)
	if !ok {
		utils.NotFoundResponse(c, "product")
		return
	}
	if !product.InStock {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductOutOfStock, product.Name), nil)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	engine := h.engine(c)
	if !engine.State().CanAdd(product.ID, quantity) {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartQuantityLimit, cart.MaxLineQuantity), nil)
		return
	}

	utils.SuccessResponse(c, h.view(engine.AddN(product, quantity)))
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartInvalidQuantity), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	engine := h.engine(c)
	if !engine.IsInCart(productID) {
		utils.NotFoundResponse(c, "cart.item")
		return
	}

	utils.SuccessResponse(c, h.view(engine.SetQuantity(productID, *req.Quantity)))
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	utils.SuccessResponse(c, h.view(h.engine(c).Remove(c.Param("id"))))
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	state := h.engine(c).Clear()

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
		"cart":    h.view(state),
	})
}
