package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"bondyard-backend/internal/config"

	"github.com/google/uuid"
)

// Store saves and removes attachment blobs. The backend is picked once at
// startup from STORAGE_BACKEND; a failing backend surfaces its error to the
// caller, it is never retried against the other one.
type Store interface {
	// Save writes the blob under key and returns the public URL clients
	// use to fetch it.
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	// Remove deletes the blob. Removing a key that is already gone is not
	// an error.
	Remove(ctx context.Context, key string) error
}

func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadDir)
	case config.StorageS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewKey builds the storage key for a vehicle attachment. The original file
// name only contributes its extension; the rest is random so repeated uploads
// of the same file never collide.
func NewKey(vehicleID uint, fileName string) string {
	return fmt.Sprintf("vehicles/%d/%s%s", vehicleID, uuid.New(), filepath.Ext(fileName))
}
