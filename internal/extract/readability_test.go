package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vnnews/crawler/internal/extract"
)

func articlePage() []byte {
	paragraphs := make([]string, 0, 8)
	for range [8]int{} {
		paragraphs = append(paragraphs,
			"<p>Giá xăng dầu trong nước tiếp tục điều chỉnh theo diễn biến thị trường thế giới, "+
				"với mức thay đổi được liên bộ công bố vào chiều nay sau kỳ điều hành định kỳ.</p>")
	}

	return []byte(`<html><head><title>Giá xăng tăng lần thứ ba liên tiếp</title></head>
	<body>
	<nav><a href="/">Trang chủ</a><a href="/kinh-te">Kinh tế</a></nav>
	<article>` + strings.Join(paragraphs, "\n") + `</article>
	<footer>Bản quyền</footer>
	</body></html>`)
}

func TestMain_ExtractsArticleContent(t *testing.T) {
	t.Parallel()

	res := extract.Main(articlePage(), "https://news.example.com/kinh-te/gia-xang")

	assert.False(t, res.Degraded)
	assert.Contains(t, res.Title, "Giá xăng")
	assert.Contains(t, res.Fragment, "Giá xăng dầu trong nước")
	assert.Contains(t, res.Text, "Giá xăng dầu trong nước")
	assert.NotContains(t, res.Text, "Bản quyền")
}

func TestMain_DegradesToRawDocument(t *testing.T) {
	t.Parallel()

	raw := []byte("")
	res := extract.Main(raw, "https://news.example.com/empty")

	assert.True(t, res.Degraded)
	assert.Equal(t, string(raw), res.Fragment)
	assert.Empty(t, res.Title)
}
