package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaImageSelectors lists where a page's canonical image may live, in
// priority order.
var metaImageSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[property="og:image:secure_url"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`meta[itemprop="image"]`, "content"},
	{`link[rel="image_src"]`, "href"},
}

// MetaImage scans the document head for a canonical image reference,
// falling back to the first <img> in the document. Returns "" when the
// page offers nothing.
func MetaImage(rawHTML []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	for _, m := range metaImageSelectors {
		if v, ok := doc.Find(m.selector).First().Attr(m.attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}

	if src, ok := doc.Find("img").First().Attr("src"); ok {
		return strings.TrimSpace(src)
	}

	return ""
}

// MetaDescription reads the page description from meta tags, preferring
// the plain description over og:description.
func MetaDescription(rawHTML []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	if v, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	if v, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(v)
	}

	return ""
}
