// internal/router/app.go
package router

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/soundwave/internal/cart"
	"github.com/javajoker/soundwave/internal/catalog"
	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/gateway"
	"github.com/javajoker/soundwave/internal/pricing"
	"github.com/javajoker/soundwave/internal/services"
	"github.com/javajoker/soundwave/internal/utils"
)

// Services is everything the HTTP layer serves from.
type Services struct {
	Products *services.ProductService
	Carts    *cart.Registry
	Orders   *services.OrderService
	Payments *services.PaymentService
	Checkout *services.CheckoutService
	Notifier services.Notifier
	Policy   pricing.Policy
}

// NewServices wires the storefront. db may be nil, in which case orders are
// kept in memory.
func NewServices(cfg *config.Config, db *gorm.DB, log logrus.FieldLogger) (*Services, error) {
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	policy := pricing.NewPolicy(cfg.Pricing.FreeShippingThreshold, cfg.Pricing.ShippingFee, cfg.Pricing.TaxRate)

	snapshots, err := services.NewSnapshotStore(cfg, db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up cart storage: %w", err)
	}
	carts := cart.NewRegistry(snapshots, log, cart.WithWriteTimeout(cfg.Cart.WriteTimeout))

	var repo services.OrderRepository
	if db != nil {
		repo = services.NewGormOrderRepository(db)
	} else {
		log.Warn("No database configured, orders are kept in memory")
		repo = services.NewMemoryOrderRepository()
	}

	store := catalog.Default()
	orders := services.NewOrderService(repo, store, policy, log)

	var creator gateway.Creator
	if cfg.Orders.Endpoint != "" {
		creator = gateway.New(cfg.Orders.Endpoint,
			gateway.WithHTTPClient(&http.Client{Timeout: cfg.Orders.Timeout}),
			gateway.WithLogger(log.WithField("component", "order_gateway")),
		)
		log.WithField("endpoint", cfg.Orders.Endpoint).Info("Orders are submitted to a remote endpoint")
	} else {
		creator = services.NewLocalGateway(orders)
	}

	payments := services.NewPaymentService(cfg, log)
	notifier := services.NewNotificationService(cfg, log)

	return &Services{
		Products: services.NewProductService(store),
		Carts:    carts,
		Orders:   orders,
		Payments: payments,
		Checkout: services.NewCheckoutService(carts, creator, orders, payments, notifier, policy, log),
		Notifier: notifier,
		Policy:   policy,
	}, nil
}
