// internal/services/order_repository.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/soundwave/internal/database"
	"github.com/javajoker/soundwave/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	// SaveOutcome appends txn to the payment ledger and, when order is not
	// nil, saves the order in the same transaction.
	SaveOutcome(ctx context.Context, order *models.Order, txn *models.PaymentTransaction) error
	Transactions(ctx context.Context, orderID uuid.UUID) ([]models.PaymentTransaction, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update saves the order row only; items are immutable once created.
func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *GormOrderRepository) SaveOutcome(ctx context.Context, order *models.Order, txn *models.PaymentTransaction) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if order != nil {
			if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
				return err
			}
		}
		return tx.Create(txn).Error
	})
}

func (r *GormOrderRepository) Transactions(ctx context.Context, orderID uuid.UUID) ([]models.PaymentTransaction, error) {
	var txns []models.PaymentTransaction
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("processed_at ASC").Find(&txns).Error
	return txns, err
}

// MemoryOrderRepository backs orders when no database is configured.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]models.Order
	ledger map[uuid.UUID][]models.PaymentTransaction
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[uuid.UUID]models.Order),
		ledger: make(map[uuid.UUID][]models.PaymentTransaction),
	}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt, order.UpdatedAt = now, now
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt, order.Items[i].UpdatedAt = now, now
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	out := cloneOrder(order)
	return &out, nil
}

func (r *MemoryOrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(order)
}

func (r *MemoryOrderRepository) SaveOutcome(_ context.Context, order *models.Order, txn *models.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order != nil {
		if err := r.update(order); err != nil {
			return err
		}
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.CreatedAt, txn.UpdatedAt = time.Now(), time.Now()
	r.ledger[txn.OrderID] = append(r.ledger[txn.OrderID], *txn)
	return nil
}

func (r *MemoryOrderRepository) Transactions(_ context.Context, orderID uuid.UUID) ([]models.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.PaymentTransaction{}, r.ledger[orderID]...), nil
}

// update replaces the stored order row. Caller holds r.mu.
func (r *MemoryOrderRepository) update(order *models.Order) error {
	existing, ok := r.orders[order.ID]
	if !ok {
		return ErrOrderNotFound
	}
	updated := cloneOrder(*order)
	updated.Items = existing.Items
	updated.UpdatedAt = time.Now()
	r.orders[order.ID] = updated
	return nil
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	o.ProductIDs = append([]string(nil), o.ProductIDs...)
	if o.ShippingAddress != nil {
		addr := make(models.JSONB, len(o.ShippingAddress))
		for k, v := range o.ShippingAddress {
			addr[k] = v
		}
		o.ShippingAddress = addr
	}
	return o
}
