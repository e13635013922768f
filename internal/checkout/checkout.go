// internal/checkout/checkout.go

// Package checkout validates the checkout, contact and newsletter forms.
package checkout

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/utils"
)

// Shipping holds the contact and delivery fields every checkout collects.
type Shipping struct {
	Email     string `json:"email" validate:"notblank,loose_email"`
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Address   string `json:"address" validate:"notblank"`
	City      string `json:"city" validate:"notblank"`
	State     string `json:"state" validate:"notblank"`
	Zip       string `json:"zip" validate:"notblank,zip"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
}

// Payment holds card fields. They are only checked when the storefront
// collects cards itself; the hosted payment flows never send them.
type Payment struct {
	CardName   string `json:"cardName,omitempty" validate:"notblank"`
	CardNumber string `json:"cardNumber,omitempty" validate:"notblank,card_number"`
	Expiry     string `json:"expiry,omitempty" validate:"required,expiry"`
	CVV        string `json:"cvv,omitempty" validate:"required,cvv"`
}

type Form struct {
	Shipping
	Payment
}

// Errors maps a form field to its message. An empty map means valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

type options struct {
	payment bool
	lang    string
}

type Option func(*options)

// WithPaymentFields enables the card field rules.
func WithPaymentFields() Option {
	return func(o *options) { o.payment = true }
}

func WithLanguage(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.lang = lang
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{lang: i18n.DefaultLang}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// field -> validator tag -> message key
type messageTable map[string]map[string]string

var checkoutMessages = messageTable{
	"email":      {"notblank": i18n.KeyEmailRequired, "loose_email": i18n.KeyEmailInvalid},
	"firstName":  {"notblank": i18n.KeyFirstNameRequired},
	"lastName":   {"notblank": i18n.KeyLastNameRequired},
	"address":    {"notblank": i18n.KeyAddressRequired},
	"city":       {"notblank": i18n.KeyCityRequired},
	"state":      {"notblank": i18n.KeyStateRequired},
	"zip":        {"notblank": i18n.KeyZipRequired, "zip": i18n.KeyZipInvalid},
	"phone":      {"phone": i18n.KeyPhoneInvalid},
	"cardName":   {"notblank": i18n.KeyCardNameRequired},
	"cardNumber": {"notblank": i18n.KeyCardNumberRequired, "card_number": i18n.KeyCardNumberInvalid},
	"expiry":     {"required": i18n.KeyExpiryRequired, "expiry": i18n.KeyExpiryInvalid},
	"cvv":        {"required": i18n.KeyCVVRequired, "cvv": i18n.KeyCVVInvalid},
}

// Validate checks every field at once and returns one message per failing
// field.
func Validate(form Form, opts ...Option) Errors {
	o := buildOptions(opts)
	errs := Errors{}

	collect(errs, utils.ValidateStruct(form.Shipping), checkoutMessages, o.lang)
	if o.payment {
		collect(errs, utils.ValidateStruct(form.Payment), checkoutMessages, o.lang)
	}
	return errs
}

func collect(dst Errors, err error, table messageTable, lang string) {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return
	}
	for _, fe := range fieldErrs {
		if _, seen := dst[fe.Field()]; seen {
			continue
		}
		key, ok := table[fe.Field()][fe.Tag()]
		if !ok {
			dst[fe.Field()] = i18n.T(lang, i18n.KeyValidationInvalid, fe.Field())
			continue
		}
		dst[fe.Field()] = i18n.T(lang, key)
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every
// shipping field.
func (f Form) Trimmed() Form {
	out := f
	s := &out.Shipping
	for _, p := range []*string{&s.Email, &s.FirstName, &s.LastName, &s.Address, &s.City, &s.State, &s.Zip, &s.Phone} {
		*p = strings.TrimSpace(*p)
	}
	return out
}

func (f Form) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}

// field returns a pointer to the form field with the given JSON name.
func (f *Form) field(name string) *string {
	switch name {
	case "email":
		return &f.Email
	case "firstName":
		return &f.FirstName
	case "lastName":
		return &f.LastName
	case "address":
		return &f.Address
	case "city":
		return &f.City
	case "state":
		return &f.State
	case "zip":
		return &f.Zip
	case "phone":
		return &f.Phone
	case "cardName":
		return &f.CardName
	case "cardNumber":
		return &f.CardNumber
	case "expiry":
		return &f.Expiry
	case "cvv":
		return &f.CVV
	}
	return nil
}
