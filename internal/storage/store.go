// Package storage provides durable blob storage for rewritten article
// media, addressable by a relative path and served from a stable public
// URL prefix.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/vnnews/crawler/internal/config"
)

// Store saves blobs under a relative path and returns the public URL the
// stored copy is served from.
type Store interface {
	Save(ctx context.Context, relPath string, data []byte) (string, error)
}

// New builds the configured store backend.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "fs":
		return NewFSStore(cfg.FS)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// publicJoin joins a public URL prefix and a relative path with exactly
// one slash between them.
func publicJoin(prefix, relPath string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(relPath, "/")
}
