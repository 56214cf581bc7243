package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vnnews/crawler/internal/domain"
)

// categoryColumns lists columns for SELECT queries on categories.
const categoryColumns = `id, name, slug, parent_id`

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetOrCreate returns the category with the given unique name, creating
// it lazily. Uses INSERT ... ON CONFLICT DO NOTHING then SELECT.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name, slug string) (*domain.Category, error) {
	insertQuery := `INSERT INTO categories (name, slug) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insertQuery, name, slug); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	selectQuery := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`

	var cat domain.Category
	if err := r.db.GetContext(ctx, &cat, selectQuery, name); err != nil {
		return nil, fmt.Errorf("select category: %w", err)
	}

	return &cat, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`

	var cats []*domain.Category
	if err := r.db.SelectContext(ctx, &cats, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if cats == nil {
		cats = []*domain.Category{}
	}

	return cats, nil
}
