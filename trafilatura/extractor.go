// Package trafilatura extracts the main visible text of a page, used as the
// carrier of last resort when no structured surface yields a caption.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/recipeclip/recipeclip"
)

// Extractor wraps go-trafilatura to pull readable body text out of HTML,
// stripped of navigation, sidebars, and boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (title, text string, err error) {
	if rawHTML == "" {
		return "", "", recipeclip.Errorf(recipeclip.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", recipeclip.Errorf(recipeclip.ENOTFOUND, "no readable content: %v", err)
	}

	return result.Metadata.Title, strings.TrimSpace(result.ContentText), nil
}
