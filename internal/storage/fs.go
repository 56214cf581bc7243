package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vnnews/crawler/internal/config"
)

// FSStore writes blobs to a local directory tree.
type FSStore struct {
	root      string
	publicURL string
}

// NewFSStore creates the filesystem store, ensuring the root exists.
func NewFSStore(cfg config.FSStoreConfig) (*FSStore, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &FSStore{root: cfg.Root, publicURL: cfg.PublicURL}, nil
}

// Save writes the blob under root/relPath and returns its public URL.
func (s *FSStore) Save(_ context.Context, relPath string, data []byte) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	return publicJoin(s.publicURL, relPath), nil
}
