// internal/models/transaction.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRejected  TransactionStatus = "rejected"
)

// PaymentTransaction is one provider callback for an order. Rejected entries
// are callbacks whose proof of payment did not verify.
type PaymentTransaction struct {
	BaseModel
	OrderID          uuid.UUID         `json:"order_id" gorm:"type:uuid;not null;index"`
	Provider         PaymentProvider   `json:"provider" gorm:"type:varchar(20);not null"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	Amount           decimal.Decimal   `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentReference string            `json:"payment_reference,omitempty" gorm:"size:255"`
	Detail           string            `json:"detail,omitempty" gorm:"type:text"`
	ProcessedAt      time.Time         `json:"processed_at"`
}
