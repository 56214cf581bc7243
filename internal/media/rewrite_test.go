package media_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnnews/crawler/internal/config"
	"github.com/vnnews/crawler/internal/logger"
	"github.com/vnnews/crawler/internal/media"
	"github.com/vnnews/crawler/internal/sanitize"
)

// fakeDownloader serves canned bodies and records requested URLs.
type fakeDownloader struct {
	bodies    map[string][]byte
	requested []string
}

func (f *fakeDownloader) Get(_ context.Context, url string) ([]byte, error) {
	f.requested = append(f.requested, url)
	body, ok := f.bodies[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return body, nil
}

// fakeStore records saved paths and returns deterministic public URLs.
type fakeStore struct {
	saved map[string][]byte
	fail  bool
}

func (f *fakeStore) Save(_ context.Context, relPath string, data []byte) (string, error) {
	if f.fail {
		return "", errors.New("disk full")
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[relPath] = data
	return "/media/" + relPath, nil
}

func newTestRewriter(dl *fakeDownloader, store *fakeStore) *media.Rewriter {
	return media.NewRewriter(store, dl, logger.NewNoop())
}

func TestRewrite_StoresImageAndRewritesAttributes(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{bodies: map[string][]byte{
		"https://news.example.com/pics/a.jpg": []byte("jpegbytes"),
	}}
	store := &fakeStore{}
	r := newTestRewriter(dl, store)

	in := `<figure><img data-src="/pics/a.jpg" srcset="/pics/a.jpg 1x" sizes="100vw"/>` +
		`<figcaption>  Chú thích  ảnh </figcaption></figure>`
	out, hero, caption := r.Rewrite(context.Background(), in, pageURL, "articles/news.example.com")

	require.Len(t, store.saved, 1)
	for path := range store.saved {
		assert.True(t, strings.HasPrefix(path, "articles/news.example.com/"))
		assert.True(t, strings.HasSuffix(path, ".jpg"))
	}

	assert.Contains(t, out, `src="/media/articles/news.example.com/`)
	assert.NotContains(t, out, "data-src")
	assert.NotContains(t, out, "srcset")
	assert.NotContains(t, out, "sizes")
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, `alt=""`)

	assert.True(t, strings.HasPrefix(hero, "/media/articles/news.example.com/"))
	assert.Equal(t, "Chú thích ảnh", caption)
}

func TestRewrite_SrcsetFirstCandidateWins(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{bodies: map[string][]byte{
		"https://news.example.com/a.jpg": []byte("a"),
	}}
	r := newTestRewriter(dl, &fakeStore{})

	in := `<img srcset="/a.jpg 1x, /b.jpg 2x"/>`
	r.Rewrite(context.Background(), in, pageURL, "articles")

	require.Len(t, dl.requested, 1)
	assert.Equal(t, "https://news.example.com/a.jpg", dl.requested[0])
}

func TestRewrite_FailedDownloadDropsImageAndFigure(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{bodies: map[string][]byte{}}
	r := newTestRewriter(dl, &fakeStore{})

	in := `<figure><img src="https://gone.example.com/x.jpg"/><figcaption>cap</figcaption></figure><p>Survives.</p>`
	out, hero, caption := r.Rewrite(context.Background(), in, pageURL, "articles")

	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<figure")
	assert.Contains(t, out, "Survives.")
	assert.Empty(t, hero)
	assert.Empty(t, caption)
}

func TestRewrite_StoreFailureDropsImage(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{bodies: map[string][]byte{
		"https://news.example.com/a.jpg": []byte("a"),
	}}
	r := newTestRewriter(dl, &fakeStore{fail: true})

	out, hero, _ := r.Rewrite(context.Background(), `<img src="/a.jpg"/>`, pageURL, "articles")

	assert.NotContains(t, out, "<img")
	assert.Empty(t, hero)
}

func TestRewrite_DataURLRemoved(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{}
	r := newTestRewriter(dl, &fakeStore{})

	in := `<img src="data:image/gif;base64,R0lGODlh"/><p>text</p>`
	out, _, _ := r.Rewrite(context.Background(), in, pageURL, "articles")

	assert.NotContains(t, out, "<img")
	assert.Empty(t, dl.requested)
}

func TestRewrite_HeroPrefersFigureOverLooseImage(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{bodies: map[string][]byte{
		"https://news.example.com/loose.jpg": []byte("l"),
		"https://news.example.com/fig.jpg":   []byte("f"),
	}}
	store := &fakeStore{}
	r := newTestRewriter(dl, store)

	in := `<p><img src="/loose.jpg"/></p><figure><img src="/fig.jpg"/><figcaption>hero cap</figcaption></figure>`
	_, hero, caption := r.Rewrite(context.Background(), in, pageURL, "articles")

	require.NotEmpty(t, hero)
	assert.Equal(t, "hero cap", caption)
	assert.Equal(t, "/media/"+savedPathFor(store, "f"), hero)
}

// savedPathFor finds the stored path whose content matches.
func savedPathFor(store *fakeStore, content string) string {
	for path, data := range store.saved {
		if string(data) == content {
			return path
		}
	}
	return ""
}

// TestRelativeImageAnchorRoundTrip runs the sanitize, convert, and
// rewrite stages back to back: a relative image anchor alone in a
// paragraph must come out the far end as a figure whose img points at
// storage.
func TestRelativeImageAnchorRoundTrip(t *testing.T) {
	t.Parallel()

	s := sanitize.New(config.SanitizerConfig{
		Tags: []string{"a", "p", "figure", "figcaption", "img"},
		Attributes: map[string][]string{
			"a":   {"href"},
			"img": {"src", "alt", "loading"},
		},
		Protocols: []string{"http", "https"},
	})

	dl := &fakeDownloader{bodies: map[string][]byte{
		"https://news.example.com/photos/b.jpg": []byte("jpegbytes"),
	}}
	store := &fakeStore{}
	r := newTestRewriter(dl, store)

	fragment := s.Clean(`<p><a href="/photos/b.jpg">xem ảnh</a></p><p>Văn bản.</p>`)
	require.Contains(t, fragment, `href="/photos/b.jpg"`)

	fragment = media.ConvertImageLinks(fragment, pageURL)
	out, hero, _ := r.Rewrite(context.Background(), fragment, pageURL, "articles")

	assert.Contains(t, out, "<figure>")
	assert.Contains(t, out, `src="/media/articles/`)
	assert.NotContains(t, out, "xem ảnh")
	assert.True(t, strings.HasPrefix(hero, "/media/articles/"))
	assert.Contains(t, out, "Văn bản.")
}
