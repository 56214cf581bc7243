package ingest

import (
	"strings"
	"time"
)

// feedDateLayouts covers the date formats seen across the ingested RSS
// feeds, RFC variants first since they dominate.
var feedDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFeedDate parses a feed timestamp, trying each known layout in
// turn. Returns nil when nothing matches; an unparseable date is never a
// reason to drop an article.
func ParseFeedDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}

	return nil
}
