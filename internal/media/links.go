package media

import (
	"html"

	"github.com/PuerkitoBio/goquery"
)

// ConvertImageLinks turns anchors that point at image files into <img>
// elements so the rewriter can pick them up. An anchor that is the sole
// child of a paragraph replaces the whole paragraph with a figure,
// preserving the layout intent of "a paragraph that is just an image".
func ConvertImageLinks(fragment, baseURL string) string {
	doc, err := parseFragment(fragment)
	if err != nil {
		return fragment
	}

	// Collect first, then edit: mutating while iterating invalidates the
	// traversal.
	var anchors []*goquery.Selection
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		if isImageURL(a.AttrOr("href", "")) {
			anchors = append(anchors, a)
		}
	})

	for _, a := range anchors {
		href := a.AttrOr("href", "")
		abs := AbsURL(baseURL, href)
		if abs == "" {
			abs = href
		}

		imgHTML := `<img src="` + html.EscapeString(abs) + `"/>`

		parent := a.Parent()
		if goquery.NodeName(parent) == "p" && childCount(parent) == 1 {
			parent.ReplaceWithHtml("<figure>" + imgHTML + "</figure>")
		} else {
			a.ReplaceWithHtml(imgHTML)
		}
	}

	return renderFragment(doc)
}

// childCount counts every child node of the selection's first node,
// including text nodes.
func childCount(s *goquery.Selection) int {
	if len(s.Nodes) == 0 {
		return 0
	}

	count := 0
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}
