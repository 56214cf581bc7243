package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vnnews/crawler/internal/domain"
)

// sourceColumns lists columns for SELECT queries on sources.
const sourceColumns = `id, name, rss_url, is_active, last_crawled_at`

// SourceRepository handles database operations for feed sources.
type SourceRepository struct {
	db *sqlx.DB
}

// NewSourceRepository creates a new source repository.
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// GetByID returns one source, or ErrNotFound.
func (r *SourceRepository) GetByID(ctx context.Context, id int64) (*domain.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1`

	var src domain.Source
	if err := r.db.GetContext(ctx, &src, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get source: %w", err)
	}

	return &src, nil
}

// ListActive returns all sources with an active flag, oldest-crawled
// first so stale feeds get attention before fresh ones.
func (r *SourceRepository) ListActive(ctx context.Context) ([]*domain.Source, error) {
	query := `
		SELECT ` + sourceColumns + `
		FROM sources
		WHERE is_active
		ORDER BY last_crawled_at ASC NULLS FIRST
	`

	var srcs []*domain.Source
	if err := r.db.SelectContext(ctx, &srcs, query); err != nil {
		return nil, fmt.Errorf("list active sources: %w", err)
	}

	if srcs == nil {
		srcs = []*domain.Source{}
	}

	return srcs, nil
}

// List returns all sources ordered by name.
func (r *SourceRepository) List(ctx context.Context) ([]*domain.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources ORDER BY name`

	var srcs []*domain.Source
	if err := r.db.SelectContext(ctx, &srcs, query); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	if srcs == nil {
		srcs = []*domain.Source{}
	}

	return srcs, nil
}

// TouchLastCrawled stamps the source's last crawl time.
func (r *SourceRepository) TouchLastCrawled(ctx context.Context, id int64) error {
	query := `UPDATE sources SET last_crawled_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	return requireAffected(result, err, fmt.Errorf("source not found: %d", id))
}
