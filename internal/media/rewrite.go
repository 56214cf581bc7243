package media

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/vnnews/crawler/internal/logger"
	"github.com/vnnews/crawler/internal/storage"
)

// lazyAttrs are the lazy-loading attribute variants stripped after a
// successful rewrite; the stored copy needs none of them.
var lazyAttrs = []string{"data-src", "data-srcset", "data-original", "srcset", "sizes"}

// Downloader fetches a single binary resource.
type Downloader interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Rewriter downloads every image a fragment references into blob storage
// and rewrites the fragment to point at the stored copies. Failures are
// local to one image: the image (and its emptied figure) is dropped and
// the rest of the document continues.
type Rewriter struct {
	store  storage.Store
	client Downloader
	log    logger.Interface
}

// NewRewriter creates a media rewriter.
func NewRewriter(store storage.Store, client Downloader, log logger.Interface) *Rewriter {
	return &Rewriter{store: store, client: client, log: log}
}

// Rewrite processes all images in the fragment and returns the rewritten
// fragment plus the hero image URL and caption. The hero is the first
// figure containing a rewritten image; its figcaption supplies the
// caption. With no qualifying figure the first rewritten image anywhere
// is the fallback hero, with an empty caption.
func (r *Rewriter) Rewrite(ctx context.Context, fragment, baseURL, subdir string) (string, string, string) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return fragment, "", ""
	}

	var imgs []*goquery.Selection
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		imgs = append(imgs, img)
	})

	for _, img := range imgs {
		r.rewriteOne(ctx, img, baseURL, subdir)
	}

	hero, caption := pickHero(doc)

	return renderFragment(doc), hero, caption
}

// rewriteOne resolves, downloads, and stores a single image, rewriting
// its attributes on success and removing it on any failure.
func (r *Rewriter) rewriteOne(ctx context.Context, img *goquery.Selection, baseURL, subdir string) {
	raw := bestSrc(img)
	abs := NormalizeImageURL(AbsURL(baseURL, raw))

	// Inline data URLs are never persisted.
	if abs == "" || strings.HasPrefix(abs, "data:") {
		dropImage(img)
		return
	}

	data, err := r.client.Get(ctx, abs)
	if err != nil {
		r.log.Warn("image download failed, dropping", "url", abs, "error", err)
		dropImage(img)
		return
	}

	relPath := subdir + "/" + randomName(abs)
	publicURL, err := r.store.Save(ctx, relPath, data)
	if err != nil {
		r.log.Warn("image store failed, dropping", "url", abs, "error", err)
		dropImage(img)
		return
	}

	img.SetAttr("src", publicURL)
	for _, attr := range lazyAttrs {
		img.RemoveAttr(attr)
	}
	if img.AttrOr("loading", "") == "" {
		img.SetAttr("loading", "lazy")
	}
	if _, ok := img.Attr("alt"); !ok {
		img.SetAttr("alt", "")
	}
}

// bestSrc resolves the image source by priority: src, first srcset URL,
// data-src, first data-srcset URL, data-original.
func bestSrc(img *goquery.Selection) string {
	if v := strings.TrimSpace(img.AttrOr("src", "")); v != "" {
		return v
	}
	if v := firstFromSrcset(img.AttrOr("srcset", "")); v != "" {
		return v
	}
	if v := strings.TrimSpace(img.AttrOr("data-src", "")); v != "" {
		return v
	}
	if v := firstFromSrcset(img.AttrOr("data-srcset", "")); v != "" {
		return v
	}
	return strings.TrimSpace(img.AttrOr("data-original", ""))
}

// firstFromSrcset returns the URL of the first srcset candidate.
// "a.jpg 1x, b.jpg 2x" resolves to "a.jpg".
func firstFromSrcset(srcset string) string {
	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(part)
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

// dropImage removes the image, and its enclosing figure when the figure
// holds no other image.
func dropImage(img *goquery.Selection) {
	fig := img.Parent()
	if goquery.NodeName(fig) != "figure" {
		fig = nil
	}

	img.Remove()

	if fig != nil && fig.Find("img").Length() == 0 {
		fig.Remove()
	}
}

// pickHero selects the hero image after rewriting. Only images that
// survived the rewrite still carry a src.
func pickHero(doc *goquery.Document) (string, string) {
	hero, caption := "", ""

	doc.Find("figure").EachWithBreak(func(_ int, fig *goquery.Selection) bool {
		img := fig.Find("img").First()
		if img.Length() == 0 || img.AttrOr("src", "") == "" {
			return true
		}

		hero = img.AttrOr("src", "")
		caption = collapseText(fig.Find("figcaption").First().Text())
		return false
	})

	if hero == "" {
		img := doc.Find("img").First()
		if img.Length() > 0 {
			hero = img.AttrOr("src", "")
		}
	}

	return hero, caption
}

// randomName builds a collision-free stored filename preserving the
// source's recognized image extension.
func randomName(srcURL string) string {
	u := uuid.New()
	return hex.EncodeToString(u[:]) + imageExt(srcURL)
}
