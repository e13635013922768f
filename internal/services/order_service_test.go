// internal/services/order_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/soundwave/internal/catalog"
	"github.com/javajoker/soundwave/internal/gateway"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
)

func newOrderService(t *testing.T) (*OrderService, *MemoryOrderRepository) {
	t.Helper()
	repo := NewMemoryOrderRepository()
	return NewOrderService(repo, catalog.Default(), pricing.DefaultPolicy, testLogger()), repo
}

func TestOrderServiceCreate(t *testing.T) {
	svc, repo := newOrderService(t)
	ctx := context.Background()

	// 34.99 + 2 x 39.99 = 114.97, free shipping, tax 9.20
	order, err := svc.Create(ctx, gateway.OrderRequest{
		Items:     []gateway.LineItem{{ProductID: "6", Quantity: 1}, {ProductID: "9", Quantity: 2}},
		Total:     usd("124.17"),
		Email:     "jane@example.com",
		SessionID: "sess-1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assertAmount(t, "114.97", order.Subtotal)
	assertAmount(t, "0.00", order.Shipping)
	assertAmount(t, "9.20", order.Tax)
	assertAmount(t, "124.17", order.Total)
	assert.Equal(t, []string{"6", "9"}, []string(order.ProductIDs))
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[1].Quantity)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", stored.SessionID)
	assert.Equal(t, order.ID, stored.Items[0].OrderID)
}

func TestOrderServiceCreateMergesRepeatedItems(t *testing.T) {
	svc, _ := newOrderService(t)

	order, err := svc.Create(context.Background(), gateway.OrderRequest{
		Items: []gateway.LineItem{{ProductID: "6", Quantity: 1}, {ProductID: "6", Quantity: 1}},
		Total: usd("85.57"),
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderServiceCreateRejects(t *testing.T) {
	soldOut := catalog.MustNew([]models.Product{{
		ID: "x", Name: "Sold Out Synth", Price: usd("10"), Category: models.CategoryInstruments,
		Image: "x.jpg", Images: []string{"x.jpg"}, InStock: false,
	}})

	tests := []struct {
		name  string
		store catalog.Reader
		req   gateway.OrderRequest
		err   error
	}{
		{"no items", catalog.Default(), gateway.OrderRequest{}, ErrEmptyOrder},
		{"unknown product", catalog.Default(), gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "404", Quantity: 1}}}, ErrUnknownProduct},
		{"zero quantity", catalog.Default(), gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "6", Quantity: 0}}}, ErrInvalidQuantity},
		{"out of stock", soldOut, gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "x", Quantity: 1}}, Total: usd("20.79")}, ErrOutOfStock},
		{"over quantity limit", catalog.Default(), gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "6", Quantity: 100}}}, ErrInvalidQuantity},
		{"huge quantity", catalog.Default(), gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "6", Quantity: 1 << 50}}}, ErrInvalidQuantity},
		{"merged lines over limit", catalog.Default(), gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "6", Quantity: 60}, {ProductID: "6", Quantity: 40}}}, ErrInvalidQuantity},
		{"total mismatch", catalog.Default(), gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "6", Quantity: 1}}, Total: usd("1.00")}, ErrTotalMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewOrderService(NewMemoryOrderRepository(), tt.store, pricing.DefaultPolicy, testLogger())
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestOrderServiceToleratesOneCent(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.Create(context.Background(), gateway.OrderRequest{
		Items: []gateway.LineItem{{ProductID: "6", Quantity: 1}},
		Total: usd("47.79"),
	})
	assert.NoError(t, err)
}

func TestOrderLifecycle(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, gateway.OrderRequest{Items: []gateway.LineItem{{ProductID: "6", Quantity: 1}}, Total: usd("47.78")})
	require.NoError(t, err)
	id := order.ID.String()

	order, err = svc.AttachCustomer(ctx, id, "sess-9", validCheckoutForm(), models.PaymentProviderEsewa)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", order.Email)
	assert.Equal(t, "90210", order.ShippingAddress["zip"])

	failed, err := svc.MarkFailed(ctx, id, models.PaymentProviderEsewa, "declined")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, failed.Status)

	paid, changed, err := svc.MarkPaid(ctx, id, models.PaymentProviderEsewa, "000AWEO")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Empty(t, paid.FailureReason)

	_, changed, err = svc.MarkPaid(ctx, id, models.PaymentProviderEsewa, "000AWEO")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = svc.MarkFailed(ctx, id, models.PaymentProviderEsewa, "late failure")
	assert.ErrorIs(t, err, ErrOrderAlreadyPaid)

	reloaded, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, reloaded.Status)
	assert.Len(t, reloaded.Items, 1)

	require.NoError(t, svc.RecordRejected(ctx, reloaded, models.PaymentProviderEsewa, "signature mismatch"))

	txns, err := svc.Transactions(ctx, id)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, models.TransactionStatusFailed, txns[0].Status)
	assert.Equal(t, "declined", txns[0].Detail)
	assert.Equal(t, models.TransactionStatusCompleted, txns[1].Status)
	assert.Equal(t, "000AWEO", txns[1].PaymentReference)
	assertAmount(t, "47.78", txns[1].Amount)
	assert.Equal(t, models.TransactionStatusRejected, txns[2].Status)
}

func TestOrderServiceGetUnknown(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.Get(context.Background(), "5f0c7d52-3b0e-4c43-9f33-3f0c2b1f8a10")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestLocalGateway(t *testing.T) {
	svc, _ := newOrderService(t)
	gw := NewLocalGateway(svc)

	resp, err := gw.CreateOrder(context.Background(), gateway.OrderRequest{
		Items: []gateway.LineItem{{ProductID: "6", Quantity: 1}},
		Total: usd("47.78"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assertAmount(t, "47.78", resp.Total)
}

func TestOrderServiceTrack(t *testing.T) {
	req := gateway.OrderRequest{
		Items: []gateway.LineItem{{ProductID: "6", Quantity: 1}},
		Total: usd("47.78"),
		Email: "jane@example.com",
	}

	t.Run("remote uuid becomes the local id", func(t *testing.T) {
		svc, repo := newOrderService(t)
		remoteID := uuid.New()

		order, err := svc.Track(context.Background(), gateway.OrderResponse{ID: remoteID.String(), Total: usd("47.78")}, req)
		require.NoError(t, err)
		assert.Equal(t, remoteID, order.ID)
		assert.Equal(t, remoteID.String(), order.ExternalID)
		assertAmount(t, "47.78", order.Total)

		stored, err := repo.FindByID(context.Background(), remoteID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, stored.Status)
	})

	t.Run("opaque remote id gets a local uuid", func(t *testing.T) {
		svc, _ := newOrderService(t)

		order, err := svc.Track(context.Background(), gateway.OrderResponse{ID: "ord_123"}, req)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, order.ID)
		assert.Equal(t, "ord_123", order.ExternalID)

		found, err := svc.Get(context.Background(), order.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "ord_123", found.ExternalID)
	})

	t.Run("order created locally is returned as is", func(t *testing.T) {
		svc, _ := newOrderService(t)
		created, err := svc.Create(context.Background(), req)
		require.NoError(t, err)

		order, err := svc.Track(context.Background(), gateway.OrderResponse{ID: created.ID.String(), Total: created.Total}, req)
		require.NoError(t, err)
		assert.Equal(t, created.ID, order.ID)
		assert.Empty(t, order.ExternalID)
	})

	t.Run("invalid items are refused", func(t *testing.T) {
		svc, _ := newOrderService(t)

		_, err := svc.Track(context.Background(), gateway.OrderResponse{ID: "ord_124"}, gateway.OrderRequest{})
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})
}
