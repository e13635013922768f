// internal/storage/store.go

// Package storage provides the keyed blob stores cart snapshots are written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore persists opaque blobs under a key. Load returns ErrNotFound
// for a key that was never written.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverDatabase Driver = "database"
	DriverS3       Driver = "s3"
)

type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

func (d Driver) String() string {
	return string(d)
}

func ParseDriver(s string) (Driver, error) {
	switch Driver(s) {
	case DriverMemory, DriverFile, DriverDatabase, DriverS3:
		return Driver(s), nil
	}
	return "", fmt.Errorf("unknown cart storage driver %q", s)
}
