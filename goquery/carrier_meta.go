package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Carrier = (*MetaCarrier)(nil)

// MetaCarrier falls back to social-preview meta tags. Lowest specificity,
// highest availability: nearly every page carries og: tags even when all
// richer surfaces are stripped.
type MetaCarrier struct{}

// NewMetaCarrier creates a new MetaCarrier.
func NewMetaCarrier() *MetaCarrier {
	return &MetaCarrier{}
}

// Name returns the carrier's identifier.
func (c *MetaCarrier) Name() string {
	return "meta_tags"
}

// descriptionSelectors in preference order.
var descriptionSelectors = []string{
	`meta[property="og:description"]`,
	`meta[name="twitter:description"]`,
	`meta[name="description"]`,
}

// Read returns the preview title and the first non-empty description
// variant, joined as the caption.
func (c *MetaCarrier) Read(html string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	var desc string
	for _, selector := range descriptionSelectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
			desc = strings.TrimSpace(content)
			break
		}
	}

	var name string
	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		name = strings.TrimSpace(content)
	}

	return strings.TrimSpace(name + "\n" + desc), nil
}

// MetaImage returns the page's preview image URL, if any. Used by strategies
// that can attach a hero image to a meta-tag result.
func MetaImage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, selector := range []string{`meta[property="og:image"]`, `meta[name="twitter:image"]`} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}
	return ""
}
