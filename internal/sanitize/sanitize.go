// Package sanitize applies allow-list HTML sanitization to extracted
// content fragments.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/vnnews/crawler/internal/config"
)

// strippedWholesale lists elements removed together with their contents
// before the allow-list pass. The allow-list alone would keep their inner
// text.
const strippedWholesale = "script, style, noscript, iframe"

// newlineRuns matches runs of three or more newlines.
var newlineRuns = regexp.MustCompile(`\n{3,}`)

// Sanitizer filters HTML fragments down to an allow-list of tags,
// attributes, and URL protocols. Disallowed tags are stripped with their
// content kept; sanitization never fails.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds a Sanitizer from the configured allow-list.
func New(cfg config.SanitizerConfig) *Sanitizer {
	policy := bluemonday.NewPolicy()

	policy.AllowElements(cfg.Tags...)
	for element, attrs := range cfg.Attributes {
		policy.AllowAttrs(attrs...).OnElements(element)
	}
	policy.AllowURLSchemes(cfg.Protocols...)
	// Relative srcs and hrefs must survive: the media rewriter resolves
	// them against the page URL after sanitization.
	policy.AllowRelativeURLs(true)

	return &Sanitizer{policy: policy}
}

// Clean returns a safe copy of the fragment: scripting elements removed
// wholesale, everything outside the allow-list stripped, and runs of
// blank lines collapsed to at most two newlines.
func (s *Sanitizer) Clean(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err == nil {
		doc.Find(strippedWholesale).Remove()
		if inner, htmlErr := doc.Find("body").Html(); htmlErr == nil {
			fragment = inner
		}
	}

	cleaned := s.policy.Sanitize(fragment)

	return newlineRuns.ReplaceAllString(cleaned, "\n\n")
}
