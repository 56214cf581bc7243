// Package domain provides the persistent and transient models shared
// across the crawl pipeline.
package domain

import "time"

// Origin identifies how an article entered the system.
type Origin string

const (
	// OriginCrawled marks articles produced by the crawl pipeline.
	OriginCrawled Origin = "crawled"
	// OriginUser marks manually authored articles.
	OriginUser Origin = "user"
)

// Article is the persistent article record. SourceURL is unique when
// present; manually authored articles carry none.
type Article struct {
	ID               string     `db:"id" json:"id"`
	SourceURL        *string    `db:"source_url" json:"source_url,omitempty"`
	Title            string     `db:"title" json:"title"`
	Excerpt          string     `db:"excerpt" json:"excerpt,omitempty"`
	ContentHTML      string     `db:"content_html" json:"content_html"`
	MainImageURL     string     `db:"main_image_url" json:"main_image_url,omitempty"`
	MainImageCaption string     `db:"main_image_caption" json:"main_image_caption,omitempty"`
	Blocks           BlockList  `db:"blocks" json:"blocks"`
	Origin           Origin     `db:"origin" json:"origin"`
	PublishedAt      *time.Time `db:"published_at" json:"published_at,omitempty"`
	IsVisible        bool       `db:"is_visible" json:"is_visible"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Category is a topical category. Categories form a tree through ParentID.
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	ParentID *int64 `db:"parent_id" json:"parent_id,omitempty"`
}

// Source is an RSS feed endpoint the pipeline reads candidate URLs from.
type Source struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	FeedURL       string     `db:"rss_url" json:"rss_url"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	LastCrawledAt *time.Time `db:"last_crawled_at" json:"last_crawled_at,omitempty"`
}

// Extraction is the transient result of running the pipeline against one
// URL. ContentHTML is the sanitized fragment with media rewritten to
// durable storage. SanitizedHTML is the readability output after
// sanitization but before media rewriting, kept so the upsert engine can
// prefer whichever path produced more content.
type Extraction struct {
	Title            string         `json:"title"`
	Excerpt          string         `json:"excerpt"`
	ContentHTML      string         `json:"content_html"`
	SanitizedHTML    string         `json:"-"`
	Text             string         `json:"-"`
	MainImageURL     string         `json:"main_image_url,omitempty"`
	MainImageCaption string         `json:"main_image_caption,omitempty"`
	MetaDescription  string         `json:"-"`
	MetaImage        string         `json:"-"`
	Blocks           []ContentBlock `json:"blocks"`
}
