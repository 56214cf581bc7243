package ingest

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
)

// ProcessArticle crawls one URL on behalf of a source and upserts the
// result. publishedHint is the raw feed timestamp, or empty when the
// article was submitted without one.
func (e *Engine) ProcessArticle(ctx context.Context, sourceID int64, url, publishedHint string) (Outcome, error) {
	if _, err := e.sources.GetByID(ctx, sourceID); err != nil {
		return "", fmt.Errorf("process article: %w", err)
	}

	body, err := e.fetcher.Page(ctx, url)
	if err != nil {
		return "", fmt.Errorf("process article: %w", err)
	}

	ext := e.pipeline.Run(ctx, url, body)

	classifyText := ext.Title
	if classifyText == "" {
		classifyText = leadingRunes(ext.Text, classifyTextLen)
	}

	cat, err := e.classifier.Classify(ctx, classifyText)
	if err != nil {
		// The article is still worth keeping; it just goes in uncategorized.
		e.log.Warn("classification failed", "url", url, "error", err)
		cat = nil
	}

	outcome, err := e.Upsert(ctx, url, ext, cat, ParseFeedDate(publishedHint))
	if err != nil {
		return "", err
	}

	e.log.Info("article processed", "url", url, "outcome", string(outcome))
	return outcome, nil
}

// ProcessFeed fetches a source's RSS feed and processes its entries,
// newest-listed first, up to the configured cap. Per-article failures are
// logged and skipped; only feed-level failures abort. Returns the number
// of entries attempted.
func (e *Engine) ProcessFeed(ctx context.Context, sourceID int64) (int, error) {
	src, err := e.sources.GetByID(ctx, sourceID)
	if err != nil {
		return 0, fmt.Errorf("process feed: %w", err)
	}

	if !src.IsActive || src.FeedURL == "" {
		e.log.Info("source skipped", "source", src.Name, "active", src.IsActive)
		return 0, nil
	}

	body, err := e.fetcher.Page(ctx, src.FeedURL)
	if err != nil {
		return 0, fmt.Errorf("process feed: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return 0, fmt.Errorf("parse feed %s: %w", src.FeedURL, err)
	}

	// The cap bounds how far into the feed we look, not how many linked
	// entries we find: a link-less entry still consumes budget.
	items := feed.Items
	if len(items) > e.maxFeedItems {
		items = items[:e.maxFeedItems]
	}

	count := 0
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		published := item.Published
		if published == "" {
			published = item.Updated
		}

		count++
		if _, err := e.ProcessArticle(ctx, sourceID, item.Link, published); err != nil {
			e.log.Warn("feed entry failed", "url", item.Link, "error", err)
		}
	}

	if err := e.sources.TouchLastCrawled(ctx, sourceID); err != nil {
		return count, fmt.Errorf("process feed: %w", err)
	}

	e.log.Info("feed processed", "source", src.Name, "entries", count)
	return count, nil
}

// ProcessAllFeeds runs ProcessFeed for every active source. A failing
// source does not stop the rest. Returns the total entries attempted.
func (e *Engine) ProcessAllFeeds(ctx context.Context) (int, error) {
	srcs, err := e.sources.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("process all feeds: %w", err)
	}

	total := 0
	for _, src := range srcs {
		n, err := e.ProcessFeed(ctx, src.ID)
		total += n
		if err != nil {
			e.log.Error("feed failed", "source", src.Name, "error", err)
		}
	}

	return total, nil
}

// leadingRunes returns the first n runes of s.
func leadingRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
