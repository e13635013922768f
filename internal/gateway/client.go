// internal/gateway/client.go

// Package gateway submits orders to the order-creation endpoint.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/cart"
	"github.com/javajoker/soundwave/internal/pricing"
)

const defaultTimeout = 15 * time.Second

type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderRequest struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	// Email and SessionID are not part of the wire body.
	Email     string `json:"-"`
	SessionID string `json:"-"`
}

type OrderResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// Creator is anything that can turn a cart into an order record.
type Creator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (OrderResponse, error)
}

// NewOrderRequest serializes the cart lines and the computed grand total.
func NewOrderRequest(state cart.State, totals pricing.Totals) OrderRequest {
	items := make([]LineItem, 0, len(state.Lines))
	for _, l := range state.Lines {
		items = append(items, LineItem{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return OrderRequest{Items: items, Total: totals.GrandTotal}
}

// Error is a failed order submission. The cart is never touched when one is
// returned.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("order endpoint returned %d: %s", e.StatusCode, e.Message)
	}
	return "order endpoint unreachable: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request may succeed later: transport
// failures, throttling and server errors.
func (e *Error) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope accepts both {"success":true,"data":{"id":…}} and a bare {"id":…}.
type envelope struct {
	OrderResponse
	Success *bool          `json:"success"`
	Data    *OrderResponse `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (OrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return OrderResponse{}, errors.Wrap(err, "encode order request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return OrderResponse{}, errors.Wrap(err, "build order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log := c.log.WithFields(logrus.Fields{"endpoint": c.endpoint, "items": len(req.Items), "total": req.Total})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithError(err).Warn("Order submission failed")
		return OrderResponse{}, &Error{Message: err.Error(), Err: errors.Wrap(err, "post order")}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return OrderResponse{}, &Error{StatusCode: resp.StatusCode, Message: "unreadable response", Err: errors.Wrap(err, "read order response")}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		log.WithField("status", resp.StatusCode).Warn("Order endpoint rejected submission")
		return OrderResponse{}, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return OrderResponse{}, &Error{StatusCode: resp.StatusCode, Message: "malformed response", Err: errors.Wrap(decodeErr, "decode order response")}
	}

	out := env.OrderResponse
	if env.Data != nil {
		out = *env.Data
	}
	if out.ID == "" {
		return OrderResponse{}, &Error{StatusCode: resp.StatusCode, Message: "response carried no order id"}
	}

	log.WithField("order_id", out.ID).Info("Order created")
	return out, nil
}
