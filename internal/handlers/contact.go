// internal/handlers/contact.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/checkout"
	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

type ContactHandler struct {
	notifier services.Notifier
	log      logrus.FieldLogger
}

func NewContactHandler(notifier services.Notifier, log logrus.FieldLogger) *ContactHandler {
	return &ContactHandler{
		notifier: notifier,
		log:      log,
	}
}

// POST /contact
func (h *ContactHandler) Contact(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var form checkout.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if errs := checkout.ValidateContact(form, checkout.WithLanguage(lang)); !errs.Valid() {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	if err := h.notifier.SendContactMessage(form.Trimmed()); err != nil {
		h.log.WithError(err).Error("Failed to forward contact message")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyContactSent),
	})
}

// POST /newsletter
func (h *ContactHandler) Subscribe(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var form checkout.NewsletterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if errs := checkout.ValidateNewsletter(form, checkout.WithLanguage(lang)); !errs.Valid() {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	if err := h.notifier.SendNewsletterWelcome(strings.TrimSpace(form.Email)); err != nil {
		h.log.WithError(err).Warn("Failed to send newsletter welcome")
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyNewsletterJoined),
	})
}
