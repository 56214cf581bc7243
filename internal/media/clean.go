package media

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// imgFilenameRE matches text that ends in an image filename, optionally
// followed by the localized "(ở đây)" marker scrapers leave behind.
var imgFilenameRE = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif|svg)(\s*\(ở đây\))?$`)

// leadingMarks are punctuation and bullet characters commonly found in
// front of a stray filename.
const leadingMarks = "@•-–—:·*[]()“”\"'"

// maxFilenameLen bounds how long a text run can be and still count as a
// lone filename, to avoid deleting real sentences that end in ".jpg".
const maxFilenameLen = 160

// artifactElements are the elements checked for lone-filename content.
const artifactElements = "p, span, em, strong, small, a"

// CleanArtifacts removes the textual residue extraction tools leave after
// stripping an image: elements whose entire visible text is a lone image
// filename, bare filename text nodes, and the empty containers either
// removal leaves behind.
func CleanArtifacts(fragment string) string {
	doc, err := parseFragment(fragment)
	if err != nil {
		return fragment
	}

	var artifacts []*goquery.Selection
	doc.Find(artifactElements).Each(func(_ int, el *goquery.Selection) {
		if looksLikeLoneFilename(el.Text()) {
			artifacts = append(artifacts, el)
		}
	})
	for _, el := range artifacts {
		el.Remove()
	}

	body := doc.Find("body")
	if len(body.Nodes) > 0 {
		stripFilenameTextNodes(body.Nodes[0])
	}

	return renderFragment(doc)
}

// looksLikeLoneFilename reports whether the text, after collapsing
// whitespace and trimming leading punctuation, is nothing but an image
// filename.
func looksLikeLoneFilename(text string) bool {
	t := collapseText(text)
	if t == "" || len([]rune(t)) > maxFilenameLen {
		return false
	}
	t = strings.TrimLeft(t, leadingMarks)
	return imgFilenameRE.MatchString(strings.TrimSpace(t))
}

// stripFilenameTextNodes removes bare text nodes that are lone image
// filenames, then deletes ancestors left with neither text nor children.
func stripFilenameTextNodes(root *html.Node) {
	var victims []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && looksLikeLoneFilename(c.Data) {
				victims = append(victims, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)

	for _, v := range victims {
		parent := v.Parent
		parent.RemoveChild(v)
		removeEmptyAncestors(parent, root)
	}
}

// removeEmptyAncestors deletes n and climbs upward while each ancestor is
// an element with no remaining text or child nodes. The walk stops at the
// fragment root.
func removeEmptyAncestors(n, root *html.Node) {
	for n != nil && n != root && n.Type == html.ElementNode && isEmptyNode(n) {
		parent := n.Parent
		if parent == nil {
			return
		}
		parent.RemoveChild(n)
		n = parent
	}
}

// isEmptyNode reports whether the element has no element children and no
// non-whitespace text.
func isEmptyNode(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return true
}
