// Package pipeline composes the extraction stages: readability, metadata,
// sanitization, media rewriting, artifact cleanup, and block segmentation.
package pipeline

import (
	"context"
	"net/url"

	"github.com/vnnews/crawler/internal/blocks"
	"github.com/vnnews/crawler/internal/domain"
	"github.com/vnnews/crawler/internal/extract"
	"github.com/vnnews/crawler/internal/logger"
	"github.com/vnnews/crawler/internal/media"
	"github.com/vnnews/crawler/internal/sanitize"
)

// Pipeline runs the full extraction for one already-fetched page. It is
// stateless per invocation: every call owns its parse trees and buffers
// exclusively, so concurrent calls for different URLs need no locking.
type Pipeline struct {
	sanitizer   *sanitize.Sanitizer
	rewriter    *media.Rewriter
	mediaSubdir string
	log         logger.Interface
}

// New creates a pipeline.
func New(sanitizer *sanitize.Sanitizer, rewriter *media.Rewriter, mediaSubdir string, log logger.Interface) *Pipeline {
	return &Pipeline{
		sanitizer:   sanitizer,
		rewriter:    rewriter,
		mediaSubdir: mediaSubdir,
		log:         log,
	}
}

// Run extracts a structured result from the raw HTML of pageURL. It never
// fails outright: stage failures degrade to empty or fallback values, and
// the worst-case return is a sparsely populated result.
func (p *Pipeline) Run(ctx context.Context, pageURL string, rawHTML []byte) *domain.Extraction {
	main := extract.Main(rawHTML, pageURL)
	if main.Degraded {
		p.log.Warn("readability extraction degraded to full page", "url", pageURL)
	}

	metaImage := main.Image
	if metaImage == "" {
		metaImage = extract.MetaImage(rawHTML)
	}
	metaDescription := main.Description
	if metaDescription == "" {
		metaDescription = extract.MetaDescription(rawHTML)
	}

	safe := p.sanitizer.Clean(main.Fragment)

	fragment := media.ConvertImageLinks(safe, pageURL)
	fragment, hero, heroCaption := p.rewriter.Rewrite(ctx, fragment, pageURL, p.subdirFor(pageURL))
	fragment = media.CleanArtifacts(fragment)

	blockList := blocks.Segment(fragment)

	mainImage := hero
	if mainImage == "" && metaImage != "" {
		mainImage = media.AbsURL(pageURL, metaImage)
	}

	return &domain.Extraction{
		Title:            main.Title,
		Excerpt:          blocks.Excerpt(blockList),
		ContentHTML:      fragment,
		SanitizedHTML:    safe,
		Text:             main.Text,
		MainImageURL:     mainImage,
		MainImageCaption: heroCaption,
		MetaDescription:  metaDescription,
		MetaImage:        metaImage,
		Blocks:           blockList,
	}
}

// subdirFor groups stored media by the article's host.
func (p *Pipeline) subdirFor(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return p.mediaSubdir
	}
	return p.mediaSubdir + "/" + u.Host
}
