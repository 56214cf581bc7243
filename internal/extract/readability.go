// Package extract isolates the main article content and page metadata
// from raw HTML.
package extract

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// Result holds the readability output for one page.
type Result struct {
	// Title derived from document metadata/heuristics; empty when degraded.
	Title string
	// Fragment is the main content subtree as partial HTML. When
	// extraction fails this is the full raw document instead.
	Fragment string
	// Text is the plain text of the extracted content.
	Text string
	// Description is the readability excerpt, when available.
	Description string
	// Image is the canonical image readability found, when available.
	Image string
	// Degraded is true when readability failed and Fragment carries the
	// raw page. Downstream stages must tolerate a full-page input.
	Degraded bool
}

// Main runs a readability heuristic over the raw HTML and returns the
// highest-scoring content subtree and a candidate title. It never fails:
// on any internal error it degrades to an empty title and the original
// document as the fragment.
func Main(rawHTML []byte, pageURL string) Result {
	degraded := Result{Fragment: string(rawHTML), Degraded: true}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return degraded
	}

	article, err := readability.FromReader(strings.NewReader(string(rawHTML)), parsedURL)
	if err != nil {
		return degraded
	}

	content := strings.TrimSpace(article.Content)
	if content == "" {
		return degraded
	}

	return Result{
		Title:       strings.TrimSpace(article.Title),
		Fragment:    content,
		Text:        strings.TrimSpace(article.TextContent),
		Description: strings.TrimSpace(article.Excerpt),
		Image:       strings.TrimSpace(article.Image),
	}
}
