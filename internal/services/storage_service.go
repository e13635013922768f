// internal/services/storage_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/storage"
)

// NewSnapshotStore picks the cart snapshot backend named by CART_STORAGE.
func NewSnapshotStore(cfg *config.Config, db *gorm.DB, log logrus.FieldLogger) (storage.SnapshotStore, error) {
	driver, err := storage.ParseDriver(cfg.Cart.Storage)
	if err != nil {
		return nil, err
	}

	log = log.WithField("cart_storage", driver)

	switch driver {
	case storage.DriverMemory:
		log.Warn("Cart snapshots are kept in memory and will not survive a restart")
		return storage.NewMemoryStore(), nil

	case storage.DriverFile:
		store, err := storage.NewFileStore(cfg.Cart.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cart snapshot directory: %w", err)
		}
		log.WithField("dir", cfg.Cart.Dir).Info("Cart snapshots stored on disk")
		return store, nil

	case storage.DriverDatabase:
		if db == nil {
			return nil, fmt.Errorf("cart storage %q needs a database connection", driver)
		}
		log.Info("Cart snapshots stored in the database")
		return storage.NewDatabaseStore(db), nil

	case storage.DriverS3:
		store, err := storage.NewS3Store(storage.S3Options{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.S3Bucket,
			Prefix:          cfg.Cart.S3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 snapshot store: %w", err)
		}
		log.WithField("bucket", cfg.AWS.S3Bucket).Info("Cart snapshots stored in S3")
		return store, nil
	}

	return nil, fmt.Errorf("unsupported cart storage %q", driver)
}
