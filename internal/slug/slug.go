// Package slug derives URL-friendly slugs from category and article names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxLen caps slug length.
const maxLen = 100

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Make converts a string to a lowercase ASCII slug. Vietnamese diacritics
// fold to their base letters ("Thể thao" becomes "the-thao").
func Make(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = fold(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}

	return s
}

// fold transliterates unicode letters to ASCII by decomposing and
// dropping combining marks. đ has no decomposition and is mapped by hand.
func fold(s string) string {
	s = strings.ReplaceAll(s, "đ", "d")
	s = strings.ReplaceAll(s, "Đ", "d")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
