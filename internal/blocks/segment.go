// Package blocks converts sanitized content fragments into the ordered,
// typed block sequence the content model stores and renders.
package blocks

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vnnews/crawler/internal/domain"
)

// excerptMaxLen caps the derived excerpt length in characters.
const excerptMaxLen = 240

// headingLevels are the heading tags recognized as heading blocks.
var headingLevels = map[string]bool{
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Segment converts a fragment into content blocks. Only direct children
// of the fragment root are considered, in document order; unrecognized
// elements become raw blocks so no content is silently dropped.
func Segment(fragment string) []domain.ContentBlock {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var out []domain.ContentBlock
	push := func(b domain.ContentBlock) {
		b.Order = len(out)
		out = append(out, b)
	}

	doc.Find("body").Children().Each(func(_ int, el *goquery.Selection) {
		name := goquery.NodeName(el)

		switch {
		case headingLevels[name]:
			push(domain.ContentBlock{
				Type:  domain.BlockHeading,
				Level: name,
				Text:  collapseText(el.Text()),
			})

		case name == "p":
			img := el.Find("img").First()
			if img.Length() > 0 && strings.TrimSpace(el.Text()) == "" {
				push(domain.ContentBlock{
					Type: domain.BlockFigure,
					Src:  img.AttrOr("src", ""),
					Alt:  img.AttrOr("alt", ""),
				})
				return
			}
			push(domain.ContentBlock{Type: domain.BlockParagraph, HTML: outerHTML(el)})

		case name == "ul" || name == "ol":
			var items []string
			el.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				items = append(items, collapseText(li.Text()))
			})
			push(domain.ContentBlock{
				Type:    domain.BlockListing,
				Ordered: name == "ol",
				Items:   items,
			})

		case name == "blockquote":
			push(domain.ContentBlock{Type: domain.BlockQuote, HTML: outerHTML(el)})

		case name == "figure":
			img := el.Find("img").First()
			if img.Length() == 0 {
				return
			}
			push(domain.ContentBlock{
				Type:    domain.BlockFigure,
				Src:     img.AttrOr("src", ""),
				Alt:     img.AttrOr("alt", ""),
				Caption: collapseText(el.Find("figcaption").First().Text()),
			})

		default:
			push(domain.ContentBlock{Type: domain.BlockRaw, HTML: outerHTML(el)})
		}
	})

	return out
}

// Excerpt derives a short plain-text summary from the first paragraph
// block, truncated to 240 characters. Returns "" when no paragraph block
// exists.
func Excerpt(list []domain.ContentBlock) string {
	for _, b := range list {
		if b.Type != domain.BlockParagraph {
			continue
		}

		text := stripHTML(b.HTML)
		if text == "" {
			continue
		}

		runes := []rune(text)
		if len(runes) > excerptMaxLen {
			return string(runes[:excerptMaxLen])
		}
		return text
	}

	return ""
}

// stripHTML reduces an HTML snippet to collapsed plain text.
func stripHTML(snippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return ""
	}
	return collapseText(doc.Text())
}

// outerHTML serializes an element including its own tag.
func outerHTML(el *goquery.Selection) string {
	out, err := goquery.OuterHtml(el)
	if err != nil {
		return ""
	}
	return out
}

// collapseText flattens whitespace runs to single spaces and trims.
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
