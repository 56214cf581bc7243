package blocks_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnnews/crawler/internal/blocks"
	"github.com/vnnews/crawler/internal/domain"
)

func TestSegment_TypesAndOrder(t *testing.T) {
	t.Parallel()

	in := `<h2>Tiêu đề phụ</h2>` +
		`<p>Đoạn mở đầu.</p>` +
		`<figure><img src="/media/a.jpg" alt="ảnh"/><figcaption>Chú thích</figcaption></figure>`

	out := blocks.Segment(in)
	require.Len(t, out, 3)

	assert.Equal(t, domain.BlockHeading, out[0].Type)
	assert.Equal(t, "h2", out[0].Level)
	assert.Equal(t, "Tiêu đề phụ", out[0].Text)

	assert.Equal(t, domain.BlockParagraph, out[1].Type)
	assert.Contains(t, out[1].HTML, "Đoạn mở đầu.")

	assert.Equal(t, domain.BlockFigure, out[2].Type)
	assert.Equal(t, "/media/a.jpg", out[2].Src)
	assert.Equal(t, "ảnh", out[2].Alt)
	assert.Equal(t, "Chú thích", out[2].Caption)

	for i, b := range out {
		assert.Equal(t, i, b.Order)
	}
}

func TestSegment_Lists(t *testing.T) {
	t.Parallel()

	in := `<ul><li>một</li><li>hai</li></ul><ol><li>ba</li></ol>`
	out := blocks.Segment(in)
	require.Len(t, out, 2)

	assert.Equal(t, domain.BlockListing, out[0].Type)
	assert.False(t, out[0].Ordered)
	assert.Equal(t, []string{"một", "hai"}, out[0].Items)

	assert.True(t, out[1].Ordered)
	assert.Equal(t, []string{"ba"}, out[1].Items)
}

func TestSegment_ParagraphWithOnlyImageBecomesFigure(t *testing.T) {
	t.Parallel()

	out := blocks.Segment(`<p><img src="/media/b.jpg" alt=""/></p>`)
	require.Len(t, out, 1)

	assert.Equal(t, domain.BlockFigure, out[0].Type)
	assert.Equal(t, "/media/b.jpg", out[0].Src)
}

func TestSegment_QuoteAndUnknownElement(t *testing.T) {
	t.Parallel()

	out := blocks.Segment(`<blockquote><p>trích dẫn</p></blockquote><table><tr><td>x</td></tr></table>`)
	require.Len(t, out, 2)

	assert.Equal(t, domain.BlockQuote, out[0].Type)
	assert.Contains(t, out[0].HTML, "trích dẫn")

	assert.Equal(t, domain.BlockRaw, out[1].Type)
	assert.Contains(t, out[1].HTML, "<table>")
}

func TestSegment_EmptyFigureSkipped(t *testing.T) {
	t.Parallel()

	out := blocks.Segment(`<figure><figcaption>mồ côi</figcaption></figure><p>text</p>`)
	require.Len(t, out, 1)
	assert.Equal(t, domain.BlockParagraph, out[0].Type)
}

func TestExcerpt_FirstParagraphTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("chữ ", 100)
	list := []domain.ContentBlock{
		{Type: domain.BlockHeading, Text: "Đầu đề"},
		{Type: domain.BlockParagraph, HTML: "<p>" + long + "</p>"},
	}

	got := blocks.Excerpt(list)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len([]rune(got)), 240)
	assert.True(t, strings.HasPrefix(got, "chữ"))
}

func TestExcerpt_NoParagraphReturnsEmpty(t *testing.T) {
	t.Parallel()

	list := []domain.ContentBlock{{Type: domain.BlockFigure, Src: "/a.jpg"}}
	assert.Empty(t, blocks.Excerpt(list))
}
