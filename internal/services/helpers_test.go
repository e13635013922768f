// internal/services/helpers_test.go
package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v74"

	"github.com/javajoker/soundwave/internal/checkout"
	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
	"github.com/javajoker/soundwave/internal/utils"
)

const testEsewaSecret = "8gBm/:&EnhH.1/q"

func usd(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, pricing.Format(got))
}

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func testConfig() *config.Config {
	utils.SetJWTSecret("test-secret")
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{PublicURL: "http://shop.test/"},
		Payment: config.PaymentConfig{
			Provider: "esewa",
			Esewa: config.EsewaConfig{
				FormURL:     "https://rc-epay.esewa.com.np/api/epay/main/v2/form",
				ProductCode: "EPAYTEST",
				SecretKey:   testEsewaSecret,
			},
			Stripe: config.StripeConfig{Currency: "usd"},
		},
		JWT:      config.JWTConfig{SecretKey: "test-secret", CallbackTTL: time.Hour},
		Email:    config.EmailConfig{ContactInbox: "hello@soundwave.store", FromEmail: "noreply@soundwave.store"},
		Frontend: config.FrontendConfig{BaseURL: "http://shop.test"},
	}
}

func validCheckoutForm() checkout.Form {
	return checkout.Form{Shipping: checkout.Shipping{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "123 Music Street",
		City:      "Sound City",
		State:     "SC",
		Zip:       "90210",
	}}
}

// esewaCallback builds the base64 payload eSewa appends to the success URL.
func esewaCallback(secret string, fields map[string]string) string {
	fields["signed_field_names"] = "transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names"
	fields["signature"] = utils.SignHMACSHA256(secret, signatureMessage(fields, fields["signed_field_names"]))
	raw, _ := json.Marshal(fields)
	return base64.StdEncoding.EncodeToString(raw)
}

type fakeStripe struct {
	created []*stripe.CheckoutSessionParams
	session *stripe.CheckoutSession
	err     error
}

func (f *fakeStripe) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.created = append(f.created, params)
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (f *fakeStripe) Get(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.session == nil || f.session.ID != id {
		return nil, errors.New("no such checkout session")
	}
	return f.session, nil
}

type recordingNotifier struct {
	mu         sync.Mutex
	orders     []*models.Order
	contacts   []checkout.ContactForm
	newsletter []string
	err        error
}

func (n *recordingNotifier) SendOrderConfirmation(order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	return n.err
}

func (n *recordingNotifier) SendContactMessage(form checkout.ContactForm) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, form)
	return n.err
}

func (n *recordingNotifier) SendNewsletterWelcome(email string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newsletter = append(n.newsletter, email)
	return n.err
}
