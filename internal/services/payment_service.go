// internal/services/payment_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
	"github.com/javajoker/soundwave/internal/utils"
)

var (
	ErrUnknownProvider = errors.New("unknown payment provider")
	ErrInvalidCallback = errors.New("invalid payment callback")
)

const esewaSignedFields = "total_amount,transaction_uuid,product_code"

// PaymentRedirect tells the browser how to leave for the payment provider:
// either auto-submit Fields to URL with Method POST, or follow URL with GET.
type PaymentRedirect struct {
	Provider models.PaymentProvider `json:"provider"`
	Method   string                 `json:"method"`
	URL      string                 `json:"url"`
	Fields   map[string]string      `json:"fields,omitempty"`
}

// CallbackParams are the query parameters a provider sends back.
type CallbackParams struct {
	OrderID         string
	Token           string
	EsewaData       string
	StripeSessionID string
}

// StripeSessions is the slice of the Stripe API the checkout uses.
type StripeSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeSessionAPI struct{}

func (stripeSessionAPI) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (stripeSessionAPI) Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.Get(id, params)
}

type PaymentService struct {
	config      config.PaymentConfig
	publicURL   string
	callbackTTL time.Duration
	stripe      StripeSessions
	log         logrus.FieldLogger
}

func NewPaymentService(cfg *config.Config, log logrus.FieldLogger) *PaymentService {
	stripe.Key = cfg.Payment.Stripe.SecretKey

	return &PaymentService{
		config:      cfg.Payment,
		publicURL:   strings.TrimRight(cfg.Server.PublicURL, "/"),
		callbackTTL: cfg.JWT.CallbackTTL,
		stripe:      stripeSessionAPI{},
		log:         log.WithField("component", "payments"),
	}
}

// WithStripeSessions swaps the Stripe client, mainly for tests.
func (s *PaymentService) WithStripeSessions(api StripeSessions) *PaymentService {
	s.stripe = api
	return s
}

func (s *PaymentService) DefaultProvider() models.PaymentProvider {
	return models.PaymentProvider(s.config.Provider)
}

// BuildRedirect prepares the hand-off for a created order. The success and
// failure URLs carry a signed token binding the order to sessionID.
func (s *PaymentService) BuildRedirect(order *models.Order, sessionID string, provider models.PaymentProvider) (*PaymentRedirect, error) {
	token, err := utils.GenerateCallbackToken(order.ID, sessionID, string(provider), s.callbackTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign callback token: %w", err)
	}

	switch provider {
	case models.PaymentProviderEsewa:
		return s.esewaRedirect(order, token), nil
	case models.PaymentProviderStripe:
		return s.stripeRedirect(order, token)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

func (s *PaymentService) callbackURL(provider models.PaymentProvider, outcome string, order *models.Order, token string, extra string) string {
	q := url.Values{}
	q.Set("order_id", order.ID.String())
	q.Set("token", token)
	u := fmt.Sprintf("%s/v1/payments/%s/%s?%s", s.publicURL, provider, outcome, q.Encode())
	return u + extra
}

func formatAmount(v decimal.Decimal) string {
	return pricing.Format(v)
}

func (s *PaymentService) esewaRedirect(order *models.Order, token string) *PaymentRedirect {
	fields := map[string]string{
		"amount":                  formatAmount(order.Subtotal),
		"tax_amount":              formatAmount(order.Tax),
		"product_service_charge":  "0",
		"product_delivery_charge": formatAmount(order.Shipping),
		"total_amount":            formatAmount(order.Total),
		"transaction_uuid":        order.ID.String(),
		"product_code":            s.config.Esewa.ProductCode,
		"success_url":             s.callbackURL(models.PaymentProviderEsewa, "success", order, token, ""),
		"failure_url":             s.callbackURL(models.PaymentProviderEsewa, "failure", order, token, ""),
		"signed_field_names":      esewaSignedFields,
	}
	fields["signature"] = utils.SignHMACSHA256(s.config.Esewa.SecretKey, signatureMessage(fields, esewaSignedFields))

	return &PaymentRedirect{
		Provider: models.PaymentProviderEsewa,
		Method:   "POST",
		URL:      s.config.Esewa.FormURL,
		Fields:   fields,
	}
}

// signatureMessage joins "name=value" pairs in signed-field order.
func signatureMessage(fields map[string]string, signed string) string {
	names := strings.Split(signed, ",")
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+fields[name])
	}
	return strings.Join(parts, ",")
}

func (s *PaymentService) stripeRedirect(order *models.Order, token string) (*PaymentRedirect, error) {
	currency := s.config.Stripe.Currency
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(order.ID.String()),
		SuccessURL:        stripe.String(s.callbackURL(models.PaymentProviderStripe, "success", order, token, "&session_id={CHECKOUT_SESSION_ID}")),
		CancelURL:         stripe.String(s.callbackURL(models.PaymentProviderStripe, "failure", order, token, "")),
	}
	if order.Email != "" {
		params.CustomerEmail = stripe.String(order.Email)
	}

	lineItem := func(name string, amount decimal.Decimal, qty int) *stripe.CheckoutSessionLineItemParams {
		return &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(pricing.MinorUnits(amount)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
			Quantity: stripe.Int64(int64(qty)),
		}
	}
	for _, item := range order.Items {
		params.LineItems = append(params.LineItems, lineItem(item.Name, item.UnitPrice, item.Quantity))
	}
	if order.Shipping.IsPositive() {
		params.LineItems = append(params.LineItems, lineItem("Shipping", order.Shipping, 1))
	}
	if order.Tax.IsPositive() {
		params.LineItems = append(params.LineItems, lineItem("Tax", order.Tax, 1))
	}
	params.AddMetadata("order_id", order.ID.String())

	sess, err := s.stripe.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	return &PaymentRedirect{
		Provider: models.PaymentProviderStripe,
		Method:   "GET",
		URL:      sess.URL,
	}, nil
}

// Verify checks the provider's proof of payment for order and returns the
// provider's reference for it.
func (s *PaymentService) Verify(provider models.PaymentProvider, params CallbackParams, order *models.Order) (string, error) {
	switch provider {
	case models.PaymentProviderEsewa:
		return s.verifyEsewa(params.EsewaData, order)
	case models.PaymentProviderStripe:
		return s.verifyStripe(params.StripeSessionID, order)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

func (s *PaymentService) verifyEsewa(data string, order *models.Order) (string, error) {
	if data == "" {
		return "", fmt.Errorf("%w: missing data", ErrInvalidCallback)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("%w: data is not base64", ErrInvalidCallback)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: data is not json", ErrInvalidCallback)
	}

	fields := make(map[string]string, len(payload))
	for k, v := range payload {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case json.Number:
			fields[k] = val.String()
		}
	}

	signed := fields["signed_field_names"]
	if signed == "" || !utils.VerifyHMACSHA256(s.config.Esewa.SecretKey, signatureMessage(fields, signed), fields["signature"]) {
		return "", fmt.Errorf("%w: signature mismatch", ErrInvalidCallback)
	}
	if fields["status"] != "COMPLETE" {
		return "", fmt.Errorf("%w: status %s", ErrInvalidCallback, fields["status"])
	}
	if fields["transaction_uuid"] != order.ID.String() || fields["product_code"] != s.config.Esewa.ProductCode {
		return "", fmt.Errorf("%w: transaction does not match order", ErrInvalidCallback)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(fields["total_amount"], ",", ""))
	if err != nil || !amount.Round(pricing.Places).Equal(order.Total.Round(pricing.Places)) {
		return "", fmt.Errorf("%w: amount does not match order", ErrInvalidCallback)
	}

	return fields["transaction_code"], nil
}

func (s *PaymentService) verifyStripe(sessionID string, order *models.Order) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: missing session id", ErrInvalidCallback)
	}
	sess, err := s.stripe.Get(sessionID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch stripe checkout session: %w", err)
	}
	if sess.ClientReferenceID != order.ID.String() {
		return "", fmt.Errorf("%w: session belongs to another order", ErrInvalidCallback)
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return "", fmt.Errorf("%w: payment status %s", ErrInvalidCallback, sess.PaymentStatus)
	}
	return sess.ID, nil
}
