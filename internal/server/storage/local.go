package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aegislabs/aegis-backend/internal/filex"
)

// LocalStore writes images under a base directory on the local filesystem.
// The default backend for development and single-node deployments.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := filex.SaveBytes(path, data); err != nil {
		return "", fmt.Errorf("local store: %w", err)
	}
	return path, nil
}
