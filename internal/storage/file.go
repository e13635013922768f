// internal/storage/file.go
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileStore keeps one JSON file per key under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create snapshot directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %s", key)
	}
	return data, nil
}

// Save writes through a temp file and rename so readers never see a torn snapshot.
func (f *FileStore) Save(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".snapshot-*")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write snapshot %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close snapshot %s", key)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return errors.Wrapf(err, "commit snapshot %s", key)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, key)
}
