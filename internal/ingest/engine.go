// Package ingest decides how extraction results become stored articles:
// create, conditionally enrich, or skip.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vnnews/crawler/internal/config"
	"github.com/vnnews/crawler/internal/database"
	"github.com/vnnews/crawler/internal/domain"
	"github.com/vnnews/crawler/internal/logger"
)

// Outcome reports what an upsert did.
type Outcome string

const (
	// OutcomeCreated means a new article row was inserted.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing article was found; any strictly
	// better fields were persisted.
	OutcomeUpdated Outcome = "updated"
	// OutcomeSkippedTooShort means the extraction fell below the quality
	// threshold and was discarded. A policy decision, not a failure.
	OutcomeSkippedTooShort Outcome = "skipped_too_short"
)

// Field caps matching the storage schema.
const (
	titleMaxLen    = 500
	excerptMaxLen  = 800
	imageURLMaxLen = 1000
	// classifyTextLen bounds how much leading body text stands in for a
	// missing title during classification.
	classifyTextLen = 120
)

// ArticleStore is the article slice of the relational storage
// collaborator. GetBySourceURL returns database.ErrNotFound when the URL
// has never been crawled.
type ArticleStore interface {
	GetBySourceURL(ctx context.Context, sourceURL string) (*domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	HasCategory(ctx context.Context, articleID string, categoryID int64) (bool, error)
	AddCategory(ctx context.Context, articleID string, categoryID int64) error
}

// SourceStore is the source slice of the relational storage collaborator.
type SourceStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Source, error)
	ListActive(ctx context.Context) ([]*domain.Source, error)
	TouchLastCrawled(ctx context.Context, id int64) error
}

// Categorizer resolves text to a category.
type Categorizer interface {
	Classify(ctx context.Context, text string) (*domain.Category, error)
}

// Extractor runs the content pipeline for one fetched page.
type Extractor interface {
	Run(ctx context.Context, pageURL string, rawHTML []byte) *domain.Extraction
}

// PageFetcher retrieves raw HTML.
type PageFetcher interface {
	Page(ctx context.Context, url string) ([]byte, error)
}

// Engine ties the pipeline to storage. It holds no per-invocation state;
// concurrent calls for different URLs are safe. Concurrent calls for the
// same URL are not serialized here: the unique index on source_url plus
// the only-if-strictly-better update rules mean the race settles as
// "last enrichment wins" with no duplicate rows.
type Engine struct {
	articles   ArticleStore
	sources    SourceStore
	classifier Categorizer
	pipeline   Extractor
	fetcher    PageFetcher
	log        logger.Interface

	minContentLength int
	maxFeedItems     int
	now              func() time.Time
}

// New creates an ingest engine.
func New(
	articles ArticleStore,
	sources SourceStore,
	classifier Categorizer,
	pipeline Extractor,
	fetcher PageFetcher,
	cfg config.CrawlerConfig,
	log logger.Interface,
) *Engine {
	return &Engine{
		articles:         articles,
		sources:          sources,
		classifier:       classifier,
		pipeline:         pipeline,
		fetcher:          fetcher,
		log:              log,
		minContentLength: cfg.MinContentLength,
		maxFeedItems:     cfg.MaxFeedItems,
		now:              time.Now,
	}
}

// Upsert stores the extraction for sourceURL: create when absent,
// otherwise enrich only the fields where the candidate is strictly
// better. Running it twice on identical input changes nothing the second
// time.
func (e *Engine) Upsert(
	ctx context.Context,
	sourceURL string,
	ext *domain.Extraction,
	cat *domain.Category,
	publishedHint *time.Time,
) (Outcome, error) {
	content := ext.ContentHTML
	if len(ext.SanitizedHTML) > len(content) {
		content = ext.SanitizedHTML
	}

	if utf8.RuneCountInString(ext.Text) < e.minContentLength &&
		utf8.RuneCountInString(content) < e.minContentLength {
		return OutcomeSkippedTooShort, nil
	}

	article, err := e.articles.GetBySourceURL(ctx, sourceURL)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return e.create(ctx, sourceURL, ext, cat, content, publishedHint)
	case err != nil:
		return "", fmt.Errorf("upsert lookup: %w", err)
	}

	return e.enrich(ctx, article, ext, cat, content, publishedHint)
}

// create inserts a first-pass article with best-available values.
func (e *Engine) create(
	ctx context.Context,
	sourceURL string,
	ext *domain.Extraction,
	cat *domain.Category,
	content string,
	publishedHint *time.Time,
) (Outcome, error) {
	title := truncate(ext.Title, titleMaxLen)
	if title == "" {
		title = sourceURL
	}

	excerpt := ext.Excerpt
	if excerpt == "" {
		excerpt = ext.MetaDescription
	}
	if excerpt == "" {
		excerpt = truncate(ext.Text, e.minContentLength)
	}

	published := publishedHint
	if published == nil {
		n := e.now()
		published = &n
	}

	article := &domain.Article{
		SourceURL:        &sourceURL,
		Title:            title,
		Excerpt:          truncate(excerpt, excerptMaxLen),
		ContentHTML:      content,
		MainImageURL:     truncate(bestImage(ext), imageURLMaxLen),
		MainImageCaption: ext.MainImageCaption,
		Blocks:           domain.BlockList(ext.Blocks),
		Origin:           domain.OriginCrawled,
		PublishedAt:      published,
		IsVisible:        true,
	}

	if err := e.articles.Create(ctx, article); err != nil {
		return "", fmt.Errorf("upsert create: %w", err)
	}

	if err := e.associate(ctx, article.ID, cat); err != nil {
		return "", err
	}

	return OutcomeCreated, nil
}

// enrich updates an existing article, field by field, only where the new
// candidate is strictly better. Only changed fields are persisted.
func (e *Engine) enrich(
	ctx context.Context,
	article *domain.Article,
	ext *domain.Extraction,
	cat *domain.Category,
	content string,
	publishedHint *time.Time,
) (Outcome, error) {
	fields := map[string]any{}

	if content != "" && len(content) > len(article.ContentHTML) {
		fields["content_html"] = content
	}

	if len(article.Blocks) == 0 && len(ext.Blocks) > 0 {
		fields["blocks"] = domain.BlockList(ext.Blocks)
	}

	if img := bestImage(ext); img != "" && article.MainImageURL == "" {
		fields["main_image_url"] = truncate(img, imageURLMaxLen)
	}

	if ext.MainImageCaption != "" && article.MainImageCaption == "" {
		fields["main_image_caption"] = ext.MainImageCaption
	}

	if ext.Excerpt != "" && article.Excerpt == "" {
		fields["excerpt"] = truncate(ext.Excerpt, excerptMaxLen)
	}

	if article.PublishedAt == nil && publishedHint != nil {
		fields["published_at"] = publishedHint
	}

	if !article.IsVisible {
		fields["is_visible"] = true
	}

	if err := e.associate(ctx, article.ID, cat); err != nil {
		return "", err
	}

	if len(fields) > 0 {
		if err := e.articles.UpdateFields(ctx, article.ID, fields); err != nil {
			return "", fmt.Errorf("upsert enrich: %w", err)
		}
	}

	return OutcomeUpdated, nil
}

// associate adds the category association when it is not already there.
// Associations are additive; the engine never removes one.
func (e *Engine) associate(ctx context.Context, articleID string, cat *domain.Category) error {
	if cat == nil {
		return nil
	}

	has, err := e.articles.HasCategory(ctx, articleID, cat.ID)
	if err != nil {
		return fmt.Errorf("upsert category check: %w", err)
	}
	if has {
		return nil
	}

	if err := e.articles.AddCategory(ctx, articleID, cat.ID); err != nil {
		return fmt.Errorf("upsert category add: %w", err)
	}

	return nil
}

// bestImage prefers the pipeline's hero image over the meta fallback.
func bestImage(ext *domain.Extraction) string {
	if ext.MainImageURL != "" {
		return ext.MainImageURL
	}
	return ext.MetaImage
}

// truncate caps a string at max characters, rune-safe.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
