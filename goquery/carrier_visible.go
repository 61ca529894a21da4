package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/score"
)

var _ recipeclip.Carrier = (*VisibleTextCarrier)(nil)

// DefaultAnnotationScore is the minimum content score a comment-like node
// must reach to survive as an annotation.
const DefaultAnnotationScore = 50.0

// VisibleTextCarrier walks the rendered DOM for description-like containers
// by role and marker attributes, falling back to the longest emphasized text
// node. Comment-like list items are collected separately and pruned through
// the content scorer so only recipe-relevant annotations survive.
type VisibleTextCarrier struct {
	minAnnotationScore float64
}

// VisibleOption configures a VisibleTextCarrier.
type VisibleOption func(*VisibleTextCarrier)

// WithMinAnnotationScore sets the annotation score cutoff.
// Defaults to DefaultAnnotationScore.
func WithMinAnnotationScore(min float64) VisibleOption {
	return func(c *VisibleTextCarrier) {
		c.minAnnotationScore = min
	}
}

// NewVisibleTextCarrier creates a new VisibleTextCarrier.
func NewVisibleTextCarrier(opts ...VisibleOption) *VisibleTextCarrier {
	c := &VisibleTextCarrier{minAnnotationScore: DefaultAnnotationScore}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the carrier's identifier.
func (c *VisibleTextCarrier) Name() string {
	return "visible_text"
}

// descriptionMarkers identify description containers across the supported
// platforms' rendered DOMs.
var descriptionMarkers = []string{
	`[data-e2e="browse-video-desc"]`,
	`[data-e2e="video-desc"]`,
	`[data-e2e="new-desc-span"]`,
	`[data-testid="post-caption"]`,
	`[role="article"] h1`,
}

// commentMarkers identify comment-like list items.
var commentMarkers = []string{
	`[data-e2e="comment-level-1"]`,
	`[data-e2e*="comment-item"] p`,
	`[role="article"] ul li span`,
}

// Read collects a caption from marker-attribute containers (or the longest
// emphasized node as a fallback) and score-filtered comment annotations.
func (c *VisibleTextCarrier) Read(html string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	var caption string
	for _, marker := range descriptionMarkers {
		if text := strings.TrimSpace(doc.Find(marker).First().Text()); text != "" {
			caption = text
			break
		}
	}

	if caption == "" {
		// No marker matched: take the longest strong/paragraph/heading node.
		doc.Find("strong, p, h1, h2").Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); len(text) > len(caption) {
				caption = text
			}
		})
	}

	var raw []string
	for _, marker := range commentMarkers {
		doc.Find(marker).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				raw = append(raw, text)
			}
		})
		if len(raw) > 0 {
			break
		}
	}

	return caption, score.FilterByScore(raw, c.minAnnotationScore)
}
