// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/cart"
	"github.com/javajoker/soundwave/internal/catalog"
	"github.com/javajoker/soundwave/internal/checkout"
	"github.com/javajoker/soundwave/internal/gateway"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
)

var (
	ErrEmptyOrder       = errors.New("order has no items")
	ErrUnknownProduct   = errors.New("unknown product")
	ErrOutOfStock       = errors.New("product out of stock")
	ErrInvalidQuantity  = errors.New("quantity out of range")
	ErrTotalMismatch    = errors.New("order total does not match")
	ErrOrderAlreadyPaid = errors.New("order already paid")
)

// totalTolerance absorbs client-side rounding of the grand total.
var totalTolerance = decimal.New(1, -pricing.Places)

// OrderService is the order-creation backend. It re-prices every request
// against the catalog instead of trusting the submitted total.
type OrderService struct {
	repo    OrderRepository
	catalog catalog.Reader
	policy  pricing.Policy
	log     logrus.FieldLogger
}

func NewOrderService(repo OrderRepository, products catalog.Reader, policy pricing.Policy, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		repo:    repo,
		catalog: products,
		policy:  policy,
		log:     log.WithField("component", "orders"),
	}
}

func (s *OrderService) Create(ctx context.Context, req gateway.OrderRequest) (*models.Order, error) {
	order, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if diff := req.Total.Sub(order.Total).Abs(); diff.GreaterThan(totalTolerance) {
		return nil, fmt.Errorf("%w: submitted %s, expected %s", ErrTotalMismatch, pricing.Format(req.Total), pricing.Format(order.Total))
	}

	order.ID = uuid.New()
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": order.ID, "total": order.Total, "items": len(order.Items)}).Info("Order created")
	return order, nil
}

// Track keeps a local record of an order a remote backend created, so the
// payment hand-off and its callbacks have something to update. An order that
// already exists locally is returned unchanged.
func (s *OrderService) Track(ctx context.Context, resp gateway.OrderResponse, req gateway.OrderRequest) (*models.Order, error) {
	id, parseErr := uuid.Parse(resp.ID)
	if parseErr == nil {
		existing, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
	} else {
		id = uuid.New()
	}

	order, err := s.build(req)
	if err != nil {
		return nil, err
	}
	order.ID = id
	order.ExternalID = resp.ID

	log := s.log.WithFields(logrus.Fields{"order_id": order.ID, "external_id": resp.ID, "total": order.Total})
	if !resp.Total.IsZero() && resp.Total.Sub(order.Total).Abs().GreaterThan(totalTolerance) {
		log.WithField("remote_total", resp.Total).Warn("Remote order total differs from local pricing")
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to record remote order: %w", err)
	}
	log.Info("Remote order tracked")
	return order, nil
}

// build prices a request against the catalog. The result has no ID yet.
func (s *OrderService) build(req gateway.OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	state := cart.State{}
	for _, item := range req.Items {
		product, ok := s.catalog.GetByID(item.ProductID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
		}
		if !state.CanAdd(product.ID, item.Quantity) {
			return nil, fmt.Errorf("%w: %s must be between 1 and %d", ErrInvalidQuantity, item.ProductID, cart.MaxLineQuantity)
		}
		if !product.InStock {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
		}
		state = cart.Reduce(state, cart.AddN(product, item.Quantity))
	}

	totals := s.policy.Compute(state.Total)
	order := &models.Order{
		SessionID: req.SessionID,
		Status:    models.OrderStatusPending,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Tax:       totals.Tax,
		Total:     totals.GrandTotal,
		Email:     req.Email,
	}
	for _, l := range state.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
		})
		order.ProductIDs = append(order.ProductIDs, l.Product.ID)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return s.repo.FindByID(ctx, orderID)
}

// AttachCustomer records who is paying and how. It only applies to pending
// orders.
func (s *OrderService) AttachCustomer(ctx context.Context, id, sessionID string, form checkout.Form, provider models.PaymentProvider) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return order, nil
	}

	form = form.Trimmed()
	order.SessionID = sessionID
	order.Email = form.Email
	order.PaymentProvider = provider
	order.ShippingAddress = models.JSONB{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"address":   form.Address,
		"city":      form.City,
		"state":     form.State,
		"zip":       form.Zip,
	}
	if form.Phone != "" {
		order.ShippingAddress["phone"] = form.Phone
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// MarkPaid moves a pending order to paid. Repeating the call for an already
// paid order is harmless and reports changed=false.
func (s *OrderService) MarkPaid(ctx context.Context, id string, provider models.PaymentProvider, reference string) (*models.Order, bool, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if order.Status == models.OrderStatusPaid {
		return order, false, nil
	}

	now := time.Now()
	order.Status = models.OrderStatusPaid
	order.PaymentProvider = provider
	order.PaymentReference = reference
	order.PaidAt = &now
	order.FailureReason = ""

	txn := newTransaction(order, provider, models.TransactionStatusCompleted, reference, "")
	if err := s.repo.SaveOutcome(ctx, order, txn); err != nil {
		return nil, false, fmt.Errorf("failed to update order: %w", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": order.ID, "provider": provider, "reference": reference}).Info("Order paid")
	return order, true, nil
}

func (s *OrderService) MarkFailed(ctx context.Context, id string, provider models.PaymentProvider, reason string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusPaid {
		return order, ErrOrderAlreadyPaid
	}

	order.Status = models.OrderStatusFailed
	order.FailureReason = reason
	txn := newTransaction(order, provider, models.TransactionStatusFailed, "", reason)
	if err := s.repo.SaveOutcome(ctx, order, txn); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": order.ID, "reason": reason}).Warn("Order payment failed")
	return order, nil
}

// RecordRejected logs a callback whose proof of payment did not verify. The
// order itself is left alone.
func (s *OrderService) RecordRejected(ctx context.Context, order *models.Order, provider models.PaymentProvider, detail string) error {
	txn := newTransaction(order, provider, models.TransactionStatusRejected, "", detail)
	if err := s.repo.SaveOutcome(ctx, nil, txn); err != nil {
		return fmt.Errorf("failed to record payment transaction: %w", err)
	}
	return nil
}

// Transactions lists the payment callbacks recorded for an order, oldest first.
func (s *OrderService) Transactions(ctx context.Context, id string) ([]models.PaymentTransaction, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Transactions(ctx, order.ID)
}

func newTransaction(order *models.Order, provider models.PaymentProvider, status models.TransactionStatus, reference, detail string) *models.PaymentTransaction {
	return &models.PaymentTransaction{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		OrderID:          order.ID,
		Provider:         provider,
		Status:           status,
		Amount:           order.Total,
		PaymentReference: reference,
		Detail:           detail,
		ProcessedAt:      time.Now(),
	}
}

// LocalGateway satisfies gateway.Creator in-process, for deployments where
// this service is its own order backend.
type LocalGateway struct {
	orders *OrderService
}

func NewLocalGateway(orders *OrderService) *LocalGateway {
	return &LocalGateway{orders: orders}
}

func (g *LocalGateway) CreateOrder(ctx context.Context, req gateway.OrderRequest) (gateway.OrderResponse, error) {
	order, err := g.orders.Create(ctx, req)
	if err != nil {
		return gateway.OrderResponse{}, err
	}
	return gateway.OrderResponse{ID: order.ID.String(), Total: order.Total}, nil
}
