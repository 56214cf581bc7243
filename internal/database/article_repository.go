package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vnnews/crawler/internal/domain"
)

// articleColumns lists columns for SELECT queries on articles.
const articleColumns = `id, source_url, title, excerpt, content_html, main_image_url,
	main_image_caption, blocks, origin, published_at, is_visible, created_at, updated_at`

// articleUpdatable is the fixed set of columns the upsert engine may
// change. The schema is a compile-time contract: anything outside this
// set is rejected instead of probed for at runtime.
var articleUpdatable = map[string]bool{
	"title":              true,
	"excerpt":            true,
	"content_html":       true,
	"main_image_url":     true,
	"main_image_caption": true,
	"blocks":             true,
	"published_at":       true,
	"is_visible":         true,
}

// ArticleRepository handles database operations for articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// GetBySourceURL returns the article crawled from the given URL, or
// ErrNotFound.
func (r *ArticleRepository) GetBySourceURL(ctx context.Context, sourceURL string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE source_url = $1`

	var article domain.Article
	if err := r.db.GetContext(ctx, &article, query, sourceURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get article by source url: %w", err)
	}

	return &article, nil
}

// Create inserts a new article, assigning an id when none is set.
func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}

	query := `
		INSERT INTO articles (id, source_url, title, excerpt, content_html, main_image_url,
			main_image_caption, blocks, origin, published_at, is_visible, created_at, updated_at)
		VALUES (:id, :source_url, :title, :excerpt, :content_html, :main_image_url,
			:main_image_caption, :blocks, :origin, :published_at, :is_visible, NOW(), NOW())
	`

	if _, err := r.db.NamedExecContext(ctx, query, article); err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

// UpdateFields persists only the given columns. Column names outside the
// updatable set are an error, not a silent skip.
func (r *ArticleRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	// Deterministic column order keeps queries stable for logs and tests.
	columns := make([]string, 0, len(fields))
	for col := range fields {
		if !articleUpdatable[col] {
			return fmt.Errorf("update article: column %q is not updatable", col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	args = append(args, id)
	for i, col := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
		args = append(args, fields[col])
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE articles SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, args...)
	return requireAffected(result, err, fmt.Errorf("article not found: %s", id))
}

// HasCategory reports whether the article already carries the category.
func (r *ArticleRepository) HasCategory(ctx context.Context, articleID string, categoryID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM article_categories WHERE article_id = $1 AND category_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, articleID, categoryID); err != nil {
		return false, fmt.Errorf("check article category: %w", err)
	}

	return exists, nil
}

// AddCategory associates the article with a category. Adding an existing
// association is a no-op.
func (r *ArticleRepository) AddCategory(ctx context.Context, articleID string, categoryID int64) error {
	query := `
		INSERT INTO article_categories (article_id, category_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, articleID, categoryID); err != nil {
		return fmt.Errorf("add article category: %w", err)
	}

	return nil
}
