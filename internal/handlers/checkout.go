// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/checkout"
	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

type CheckoutRequest struct {
	checkout.Form
	Provider string `json:"provider,omitempty"`
}

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	log             logrus.FieldLogger
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, log logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		log:             log,
	}
}

// POST /checkout/validate
// ?payment_fields=true also checks the card fields.
func (h *CheckoutHandler) Validate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	opts := []checkout.Option{checkout.WithLanguage(lang)}
	if withCards, _ := strconv.ParseBool(c.Query("payment_fields")); withCards {
		opts = append(opts, checkout.WithPaymentFields())
	}

	if errs := checkout.Validate(req.Form, opts...); !errs.Valid() {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutValid),
		"valid":   true,
	})
}

// POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	provider := models.PaymentProvider(req.Provider)
	switch provider {
	case "", models.PaymentProviderEsewa, models.PaymentProviderStripe:
	default:
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPaymentUnknownProvider), nil)
		return
	}

	result, err := h.checkoutService.Submit(c.Request.Context(), services.SubmitRequest{
		SessionID: utils.GetSessionIDFromContext(c),
		Form:      req.Form,
		Provider:  provider,
		Lang:      lang,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.ValidationErrorResponse(c, result.Errors)
		case errors.Is(err, services.ErrSubmissionInFlight):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCheckoutInFlight))
		case errors.Is(err, services.ErrCartEmpty):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
		case errors.Is(err, services.ErrUnknownProvider):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPaymentUnknownProvider), nil)
		default:
			h.log.WithError(err).WithField("session_id", utils.GetSessionIDFromContext(c)).Warn("Checkout submission failed")
			respondOrderError(c, err)
		}
		return
	}

	utils.CreatedResponse(c, result)
}
