package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vnnews/crawler/internal/media"
)

const pageURL = "https://news.example.com/articles/1"

func TestConvertImageLinks_SoleAnchorBecomesFigure(t *testing.T) {
	t.Parallel()

	in := `<p><a href="/photos/closeup.jpg">xem ảnh</a></p><p>Body text.</p>`
	out := media.ConvertImageLinks(in, pageURL)

	assert.Contains(t, out, "<figure>")
	assert.Contains(t, out, `src="https://news.example.com/photos/closeup.jpg"`)
	assert.NotContains(t, out, "<a ")
	assert.NotContains(t, out, "xem ảnh")
	assert.Contains(t, out, "Body text.")
}

func TestConvertImageLinks_InlineAnchorBecomesInlineImage(t *testing.T) {
	t.Parallel()

	in := `<p>Before <a href="https://cdn.example.com/pic.png">ảnh</a> after.</p>`
	out := media.ConvertImageLinks(in, pageURL)

	assert.NotContains(t, out, "<figure>")
	assert.Contains(t, out, `src="https://cdn.example.com/pic.png"`)
	assert.Contains(t, out, "Before")
	assert.Contains(t, out, "after.")
}

func TestConvertImageLinks_NonImageAnchorUntouched(t *testing.T) {
	t.Parallel()

	in := `<p><a href="https://example.com/story">read more</a></p>`
	out := media.ConvertImageLinks(in, pageURL)

	assert.Contains(t, out, `href="https://example.com/story"`)
	assert.Contains(t, out, "read more")
	assert.NotContains(t, out, "<img")
}

func TestConvertImageLinks_QueryStringStillCountsAsImage(t *testing.T) {
	t.Parallel()

	in := `<p><a href="/media/a.webp?w=1200">ảnh</a></p>`
	out := media.ConvertImageLinks(in, pageURL)

	assert.Contains(t, out, "<img")
	assert.Contains(t, out, "a.webp")
}
