package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore writes blobs under a directory on the server disk. The directory
// is mounted by the HTTP layer at /uploads, so the returned URLs are
// root-relative paths.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("upload directory could not be created: %v", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	fullPath := filepath.Join(s.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("directory could not be created: %v", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("file could not be created: %v", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("file could not be written: %v", err)
	}

	return "/uploads/" + key, nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
