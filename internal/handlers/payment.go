// internal/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

type PaymentHandler struct {
	checkoutService *services.CheckoutService
	frontendURL     string
	log             logrus.FieldLogger
}

// NewPaymentHandler serves provider callbacks. With a frontendURL the browser
// is redirected back to the storefront, otherwise the outcome is JSON.
func NewPaymentHandler(checkoutService *services.CheckoutService, frontendURL string, log logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		frontendURL:     strings.TrimRight(frontendURL, "/"),
		log:             log.WithField("component", "payment_callbacks"),
	}
}

// callbackParams reads the provider's query. eSewa appends "?data=" to a
// success URL that already has a query string, which leaves the payload
// glued to the token value.
func callbackParams(c *gin.Context) services.CallbackParams {
	q := services.CallbackParams{
		OrderID:         c.Query("order_id"),
		Token:           c.Query("token"),
		EsewaData:       c.Query("data"),
		StripeSessionID: c.Query("session_id"),
	}
	if i := strings.Index(q.Token, "?data="); i >= 0 {
		if q.EsewaData == "" {
			q.EsewaData = q.Token[i+len("?data="):]
		}
		q.Token = q.Token[:i]
	}
	// base64 "+" arrives as a space after query decoding
	q.EsewaData = strings.ReplaceAll(q.EsewaData, " ", "+")
	return q
}

// GET /payments/:provider/success
func (h *PaymentHandler) Success(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	provider := models.PaymentProvider(c.Param("provider"))
	params := callbackParams(c)

	order, err := h.checkoutService.HandleSuccess(c.Request.Context(), provider, params)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"provider": provider, "order_id": params.OrderID}).Warn("Payment confirmation failed")
		if h.frontendURL != "" {
			h.redirect(c, "/checkout", url.Values{"payment": {"failed"}, "order_id": {params.OrderID}})
			return
		}
		h.respondCallbackError(c, err)
		return
	}

	if h.frontendURL != "" {
		h.redirect(c, "/checkout/success", url.Values{"order_id": {order.ID.String()}})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentSuccess),
		"order":   order,
	})
}

// GET /payments/:provider/failure
func (h *PaymentHandler) Failure(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	provider := models.PaymentProvider(c.Param("provider"))
	params := callbackParams(c)

	order, err := h.checkoutService.HandleFailure(c.Request.Context(), provider, params, c.Query("reason"))
	if errors.Is(err, services.ErrOrderAlreadyPaid) {
		if h.frontendURL != "" {
			h.redirect(c, "/checkout/success", url.Values{"order_id": {params.OrderID}})
			return
		}
		utils.ConflictResponse(c, err.Error())
		return
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"provider": provider, "order_id": params.OrderID}).Warn("Payment failure callback rejected")
		if h.frontendURL == "" {
			h.respondCallbackError(c, err)
			return
		}
	}

	if h.frontendURL != "" {
		h.redirect(c, "/checkout", url.Values{"payment": {"failed"}, "order_id": {params.OrderID}})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentFailed),
		"order":   order,
	})
}

func (h *PaymentHandler) respondCallbackError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrInvalidCallback):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPaymentInvalidCallback), nil)
	case errors.Is(err, services.ErrUnknownProvider):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPaymentUnknownProvider), nil)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	default:
		utils.InternalErrorResponse(c, "")
	}
}

func (h *PaymentHandler) redirect(c *gin.Context, path string, query url.Values) {
	c.Redirect(http.StatusSeeOther, h.frontendURL+path+"?"+query.Encode())
}
