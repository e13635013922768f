// internal/gateway/client_test.go
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/soundwave/internal/cart"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger, _ := test.NewNullLogger()
	return New(srv.URL+"/v1/orders", WithLogger(logger))
}

func sampleRequest() OrderRequest {
	return OrderRequest{Items: []LineItem{{ProductID: "1", Quantity: 2}}, Total: decimal.RequireFromString("63.99")}
}

func TestCreateOrderSendsWireBody(t *testing.T) {
	var got map[string]interface{}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"ord-1"}`))
	})

	req := sampleRequest()
	req.Email = "jane@example.com"
	resp, err := c.CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "ord-1", resp.ID)
	assert.Equal(t, map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"productId": "1", "quantity": float64(2)}},
		"total": 63.99,
	}, got)
}

func TestCreateOrderAcceptsEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"id":"ord-2","total":63.99}}`))
	})

	resp, err := c.CreateOrder(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "ord-2", resp.ID)
	assert.Equal(t, "63.99", resp.Total.String())
}

func TestCreateOrderFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		retryable bool
		message   string
	}{
		{"server error", http.StatusInternalServerError, `oops`, true, "Internal Server Error"},
		{"unavailable", http.StatusServiceUnavailable, ``, true, "Service Unavailable"},
		{"rejected", http.StatusBadRequest, `{"success":false,"error":{"code":"BAD_REQUEST","message":"Order total does not match the cart"}}`, false, "Order total does not match the cart"},
		{"missing id", http.StatusOK, `{"success":true,"data":{}}`, false, "response carried no order id"},
		{"garbage", http.StatusOK, `<html>`, false, "malformed response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.CreateOrder(context.Background(), sampleRequest())

			var gwErr *Error
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, tt.retryable, gwErr.Retryable())
			assert.Equal(t, tt.message, gwErr.Message)
		})
	}
}

func TestCreateOrderTransportFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	logger, _ := test.NewNullLogger()
	c := New(url, WithLogger(logger), WithHTTPClient(&http.Client{Timeout: time.Second}))

	_, err := c.CreateOrder(context.Background(), sampleRequest())

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.True(t, gwErr.Retryable())
	assert.Zero(t, gwErr.StatusCode)
}

func TestNewOrderRequest(t *testing.T) {
	a := models.Product{ID: "A", Price: decimal.NewFromInt(20)}
	b := models.Product{ID: "B", Price: decimal.NewFromInt(90)}
	state := cart.Reduce(cart.Reduce(cart.State{}, cart.Add(a)), cart.Add(b))
	totals := pricing.DefaultPolicy.Compute(state.Total)

	req := NewOrderRequest(state, totals)

	assert.Equal(t, []LineItem{{ProductID: "A", Quantity: 1}, {ProductID: "B", Quantity: 1}}, req.Items)
	assert.Equal(t, "118.80", req.Total.StringFixed(2))
}
