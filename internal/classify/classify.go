// Package classify maps article text to a topical category through
// ordered keyword rules.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/vnnews/crawler/internal/config"
	"github.com/vnnews/crawler/internal/domain"
	"github.com/vnnews/crawler/internal/logger"
	"github.com/vnnews/crawler/internal/slug"
)

// CategoryStore is the slice of the relational storage collaborator the
// classifier needs: fetch-or-create a category by unique name.
type CategoryStore interface {
	GetOrCreate(ctx context.Context, name, categorySlug string) (*domain.Category, error)
}

// Classifier resolves text to a category. Rules are tested in order and
// the first rule with any keyword present as a substring wins; earlier
// rules take priority on overlapping keywords. When nothing matches, or
// the text is empty, the configured default category is used, so an
// article is never left uncategorized.
type Classifier struct {
	rules       []config.ClassifierRule
	defaultName string
	categories  CategoryStore
	log         logger.Interface
}

// New creates a classifier from the configured rule set.
func New(cfg config.ClassifierConfig, categories CategoryStore, log logger.Interface) *Classifier {
	return &Classifier{
		rules:       cfg.Rules,
		defaultName: cfg.Default,
		categories:  categories,
		log:         log,
	}
}

// Classify resolves the category for the given text.
func (c *Classifier) Classify(ctx context.Context, text string) (*domain.Category, error) {
	name := c.defaultName

	if t := strings.ToLower(text); t != "" {
		if matched := c.match(t); matched != "" {
			name = matched
		}
	}

	cat, err := c.categories.GetOrCreate(ctx, name, slug.Make(name))
	if err != nil {
		return nil, fmt.Errorf("classify %q: %w", name, err)
	}

	return cat, nil
}

// match returns the category name of the first rule with a keyword hit.
func (c *Classifier) match(lowered string) string {
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lowered, kw) {
				return rule.Category
			}
		}
	}
	return ""
}
