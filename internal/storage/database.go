// internal/storage/database.go
package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/soundwave/internal/models"
)

// DatabaseStore keeps snapshots in the cart_snapshots table.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) Load(ctx context.Context, key string) ([]byte, error) {
	var snapshot models.CartSnapshot
	err := d.db.WithContext(ctx).Where("key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot %s", key)
	}
	return snapshot.Payload, nil
}

func (d *DatabaseStore) Save(ctx context.Context, key string, data []byte) error {
	snapshot := models.CartSnapshot{
		Key:       key,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}

	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		return errors.Wrapf(err, "save snapshot %s", key)
	}
	return nil
}
