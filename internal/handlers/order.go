// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/gateway"
	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

type CreateOrderRequest struct {
	Items []gateway.LineItem `json:"items" validate:"required,min=1,dive"`
	Total decimal.Decimal    `json:"total" validate:"gt=0"`
}

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), gateway.OrderRequest{
		Items:     req.Items,
		Total:     req.Total,
		SessionID: utils.GetSessionIDFromContext(c),
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.CreatedResponse(c, gateway.OrderResponse{ID: order.ID.String(), Total: order.Total})
}

// GET /orders/:id
// Orders placed from a browsing session are only visible to that session.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	if order.SessionID != "" && order.SessionID != utils.GetSessionIDFromContext(c) {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, order)
}

// GET /orders/:id/transactions
func (h *OrderHandler) GetOrderTransactions(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	if order.SessionID != "" && order.SessionID != utils.GetSessionIDFromContext(c) {
		utils.NotFoundResponse(c, "order")
		return
	}

	txns, err := h.orderService.Transactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.SuccessResponse(c, txns)
}

// respondOrderError maps order creation and checkout failures to responses.
func respondOrderError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var gwErr *gateway.Error
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrEmptyOrder):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderNoItems), nil)
	case errors.Is(err, services.ErrTotalMismatch):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderTotalMismatch), err.Error())
	case errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.As(err, &gwErr):
		if gwErr.Retryable() {
			utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyCheckoutUnavailable))
			return
		}
		utils.BadRequestResponse(c, gwErr.Message, nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
