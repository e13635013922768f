// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	SessionID        string          `json:"-" gorm:"size:64;index"`
	ExternalID       string          `json:"external_id,omitempty" gorm:"size:128;index"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Items            []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	ProductIDs       pq.StringArray  `json:"product_ids" gorm:"type:text[]"`
	Subtotal         decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Shipping         decimal.Decimal `json:"shipping" gorm:"type:decimal(10,2);not null"`
	Tax              decimal.Decimal `json:"tax" gorm:"type:decimal(10,2);not null"`
	Total            decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Email            string          `json:"email,omitempty" gorm:"size:255"`
	ShippingAddress  JSONB           `json:"shipping_address,omitempty" gorm:"type:jsonb"`
	PaymentProvider  PaymentProvider `json:"payment_provider,omitempty" gorm:"type:varchar(20)"`
	PaymentReference string          `json:"payment_reference,omitempty" gorm:"size:255"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	FailureReason    string          `json:"failure_reason,omitempty" gorm:"type:text"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"-" gorm:"type:uuid;not null;index"`
	ProductID string          `json:"product_id" gorm:"size:64;not null;index"`
	Name      string          `json:"name" gorm:"size:255"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
}

// CartSnapshot is the durable blob a cart engine writes after each transition.
type CartSnapshot struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Payload   []byte    `json:"-" gorm:"type:bytea"`
	UpdatedAt time.Time `json:"updated_at"`
}
