// Package media rewrites image references in extracted content to durable
// storage and cleans up the textual artifacts extraction leaves behind.
package media

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// imageExts is the set of recognized image file extensions.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".webp": true, ".gif": true, ".svg": true,
}

// parseFragment parses a partial-document fragment. goquery wraps it in a
// synthetic html/body pair; renderFragment unwraps it again.
func parseFragment(fragment string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(fragment))
}

// renderFragment serializes the body's inner HTML as a new fragment.
func renderFragment(doc *goquery.Document) string {
	inner, err := doc.Find("body").Html()
	if err != nil {
		return ""
	}
	return inner
}

// AbsURL resolves a possibly-relative URL against a base page URL.
// Protocol-relative URLs get https. Unparseable input is returned as is.
func AbsURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}

	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return b.ResolveReference(r).String()
}

// isImageURL reports whether the URL path ends in a recognized image
// extension, ignoring query and fragment.
func isImageURL(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return imageExts[strings.ToLower(path.Ext(ref))]
}

// imageExt returns the recognized extension of an image URL, defaulting
// to .jpg when the source extension is unrecognized.
func imageExt(ref string) string {
	if u, err := url.Parse(ref); err == nil {
		ref = u.Path
	}
	ext := strings.ToLower(path.Ext(ref))
	if !imageExts[ext] {
		return ".jpg"
	}
	return ext
}

// collapseText flattens whitespace runs in a selection's text to single
// spaces.
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
