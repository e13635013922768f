// internal/services/checkout_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/cart"
	"github.com/javajoker/soundwave/internal/checkout"
	"github.com/javajoker/soundwave/internal/gateway"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
	"github.com/javajoker/soundwave/internal/utils"
)

var (
	ErrSubmissionInFlight = errors.New("checkout already in progress")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrValidation         = errors.New("checkout form is invalid")
)

type SubmitRequest struct {
	SessionID string
	Form      checkout.Form
	Provider  models.PaymentProvider
	Lang      string
}

type SubmitResult struct {
	OrderID  string           `json:"order_id,omitempty"`
	Totals   pricing.Totals   `json:"totals"`
	Redirect *PaymentRedirect `json:"redirect,omitempty"`
	Errors   checkout.Errors  `json:"errors,omitempty"`
}

// CheckoutService drives the submit-and-redirect flow. The cart is cleared
// only once a payment callback has been verified.
type CheckoutService struct {
	carts    *cart.Registry
	creator  gateway.Creator
	orders   *OrderService
	payments *PaymentService
	notifier Notifier
	policy   pricing.Policy
	log      logrus.FieldLogger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(carts *cart.Registry, creator gateway.Creator, orders *OrderService, payments *PaymentService, notifier Notifier, policy pricing.Policy, log logrus.FieldLogger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		creator:  creator,
		orders:   orders,
		payments: payments,
		notifier: notifier,
		policy:   policy,
		log:      log.WithField("component", "checkout"),
		inFlight: make(map[string]struct{}),
	}
}

// acquire marks a session as submitting. Cart operations are not blocked;
// only a second submit for the same session is refused.
func (s *CheckoutService) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *CheckoutService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

// Submit validates the form, creates the order and builds the payment
// hand-off. A validation failure returns ErrValidation with the field errors
// in the result. Gateway failures leave the cart untouched.
func (s *CheckoutService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if !s.acquire(req.SessionID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(req.SessionID)

	if errs := checkout.Validate(req.Form, checkout.WithLanguage(req.Lang)); !errs.Valid() {
		return &SubmitResult{Errors: errs}, ErrValidation
	}

	state := s.carts.Get(ctx, req.SessionID).State()
	if state.IsEmpty() {
		return nil, ErrCartEmpty
	}

	provider := req.Provider
	if provider == "" {
		provider = s.payments.DefaultProvider()
	}

	totals := s.policy.Compute(state.Total)
	orderReq := gateway.NewOrderRequest(state, totals)
	orderReq.SessionID = req.SessionID
	orderReq.Email = req.Form.Trimmed().Email

	log := s.log.WithFields(logrus.Fields{"session_id": req.SessionID, "total": totals.GrandTotal, "provider": provider})

	created, err := s.creator.CreateOrder(ctx, orderReq)
	if err != nil {
		log.WithError(err).Warn("Order creation failed, cart kept")
		return nil, fmt.Errorf("create order: %w", err)
	}

	tracked, err := s.orders.Track(ctx, created, orderReq)
	if err != nil {
		return nil, fmt.Errorf("record order %s: %w", created.ID, err)
	}

	order, err := s.orders.AttachCustomer(ctx, tracked.ID.String(), req.SessionID, req.Form, provider)
	if err != nil {
		return nil, fmt.Errorf("attach customer to order %s: %w", tracked.ID, err)
	}

	redirect, err := s.payments.BuildRedirect(order, req.SessionID, provider)
	if err != nil {
		return nil, fmt.Errorf("build payment redirect: %w", err)
	}

	log.WithField("order_id", order.ID).Info("Checkout handed off to payment provider")
	return &SubmitResult{OrderID: order.ID.String(), Totals: totals, Redirect: redirect}, nil
}

func (s *CheckoutService) verifyToken(provider models.PaymentProvider, params CallbackParams) (*utils.CallbackClaims, error) {
	claims, err := utils.ValidateCallbackToken(params.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCallback, err)
	}
	if claims.Provider != string(provider) {
		return nil, fmt.Errorf("%w: provider mismatch", ErrInvalidCallback)
	}
	if params.OrderID != "" && params.OrderID != claims.OrderID {
		return nil, fmt.Errorf("%w: order mismatch", ErrInvalidCallback)
	}
	return claims, nil
}

// HandleSuccess confirms payment, then clears the paying session's cart, then
// sends the confirmation email. A replayed callback re-clears the cart but
// does not mail twice.
func (s *CheckoutService) HandleSuccess(ctx context.Context, provider models.PaymentProvider, params CallbackParams) (*models.Order, error) {
	claims, err := s.verifyToken(provider, params)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, claims.OrderID)
	if err != nil {
		return nil, err
	}

	reference, err := s.payments.Verify(provider, params, order)
	if err != nil {
		s.log.WithError(err).WithField("order_id", claims.OrderID).Warn("Payment callback rejected")
		if recErr := s.orders.RecordRejected(ctx, order, provider, err.Error()); recErr != nil {
			s.log.WithError(recErr).WithField("order_id", claims.OrderID).Error("Failed to record rejected callback")
		}
		return nil, err
	}

	order, changed, err := s.orders.MarkPaid(ctx, claims.OrderID, provider, reference)
	if err != nil {
		return nil, err
	}

	s.carts.Get(ctx, claims.SessionID).Clear()

	if changed {
		if err := s.notifier.SendOrderConfirmation(order); err != nil {
			s.log.WithError(err).WithField("order_id", order.ID).Warn("Order confirmation email failed")
		}
	}
	return order, nil
}

// HandleFailure records the failed payment. The cart is left as it was so
// the customer can retry.
func (s *CheckoutService) HandleFailure(ctx context.Context, provider models.PaymentProvider, params CallbackParams, reason string) (*models.Order, error) {
	claims, err := s.verifyToken(provider, params)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "payment cancelled or declined"
	}
	return s.orders.MarkFailed(ctx, claims.OrderID, provider, reason)
}
