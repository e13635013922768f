// internal/checkout/contact.go
package checkout

import (
	"strings"

	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/utils"
)

type ContactForm struct {
	Name    string `json:"name" validate:"notblank,min_trimmed=2"`
	Email   string `json:"email" validate:"required,loose_email"`
	Subject string `json:"subject" validate:"notblank"`
	Message string `json:"message" validate:"notblank,min_trimmed=10"`
}

type NewsletterForm struct {
	Email string `json:"email" validate:"required,loose_email"`
}

var contactMessages = messageTable{
	"name":    {"notblank": i18n.KeyNameRequired, "min_trimmed": i18n.KeyNameTooShort},
	"email":   {"required": i18n.KeyEmailRequired, "loose_email": i18n.KeyEmailInvalidLong},
	"subject": {"notblank": i18n.KeySubjectRequired},
	"message": {"notblank": i18n.KeyMessageRequired, "min_trimmed": i18n.KeyMessageTooShort},
}

func ValidateContact(form ContactForm, opts ...Option) Errors {
	o := buildOptions(opts)
	errs := Errors{}
	collect(errs, utils.ValidateStruct(form), contactMessages, o.lang)
	return errs
}

func ValidateNewsletter(form NewsletterForm, opts ...Option) Errors {
	o := buildOptions(opts)
	errs := Errors{}
	collect(errs, utils.ValidateStruct(form), contactMessages, o.lang)
	return errs
}

func (f ContactForm) Trimmed() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}
