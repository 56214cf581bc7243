package media_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vnnews/crawler/internal/media"
)

func TestCleanArtifacts_RemovesLoneFilenameParagraph(t *testing.T) {
	t.Parallel()

	in := `<p>photo-01.jpg (ở đây)</p><p>Nội dung thật của bài viết.</p>`
	out := media.CleanArtifacts(in)

	assert.NotContains(t, out, "photo-01.jpg")
	assert.Contains(t, out, "Nội dung thật")
}

func TestCleanArtifacts_TrimsLeadingMarksBeforeMatching(t *testing.T) {
	t.Parallel()

	in := `<p>• “anh-bia.png”</p><p>Real.</p>`
	out := media.CleanArtifacts(in)

	assert.NotContains(t, out, "anh-bia.png")
	assert.Contains(t, out, "Real.")
}

func TestCleanArtifacts_BareTextNodeAndEmptyAncestorRemoved(t *testing.T) {
	t.Parallel()

	in := `<div>banner.jpg</div><p>Kept.</p>`
	out := media.CleanArtifacts(in)

	assert.NotContains(t, out, "banner.jpg")
	assert.NotContains(t, out, "<div")
	assert.Contains(t, out, "Kept.")
}

func TestCleanArtifacts_SentenceEndingInExtensionKept(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Một câu rất dài nói về nhiều thứ khác nhau. ", 5) + "Tập tin tên là anh.jpg"
	out := media.CleanArtifacts("<p>" + long + "</p>")

	assert.Contains(t, out, "anh.jpg")
}

func TestCleanArtifacts_PlainTextUntouched(t *testing.T) {
	t.Parallel()

	in := `<p>Đoạn văn bình thường.</p><span>chú thích</span>`
	out := media.CleanArtifacts(in)

	assert.Contains(t, out, "Đoạn văn bình thường.")
	assert.Contains(t, out, "chú thích")
}
