package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Carrier = (*AltTextCarrier)(nil)

// minAltLen filters decorative labels ("play", "avatar") out of the scan.
const minAltLen = 12

// AltTextCarrier scans image alt text, aria-label values, and figure
// captions. The carrier of last resort: creators sometimes paste the whole
// recipe into alt text, but on video posts alt text is usually decorative,
// so the pipeline down-weights this carrier there.
type AltTextCarrier struct{}

// NewAltTextCarrier creates a new AltTextCarrier.
func NewAltTextCarrier() *AltTextCarrier {
	return &AltTextCarrier{}
}

// Name returns the carrier's identifier.
func (c *AltTextCarrier) Name() string {
	return "alt_text"
}

// Read returns the longest accessible-text value as the caption and the
// remaining values as annotations.
func (c *AltTextCarrier) Read(html string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	var texts []string
	collect := func(text string) {
		text = strings.TrimSpace(text)
		if len(text) >= minAltLen {
			texts = append(texts, text)
		}
	}

	doc.Find("img[alt]").Each(func(_ int, sel *goquery.Selection) {
		alt, _ := sel.Attr("alt")
		collect(alt)
	})
	doc.Find("[aria-label]").Each(func(_ int, sel *goquery.Selection) {
		label, _ := sel.Attr("aria-label")
		collect(label)
	})
	doc.Find("figcaption").Each(func(_ int, sel *goquery.Selection) {
		collect(sel.Text())
	})

	if len(texts) == 0 {
		return "", nil
	}

	longest := 0
	for i, text := range texts {
		if len(text) > len(texts[longest]) {
			longest = i
		}
	}

	caption := texts[longest]
	annotations := make([]string, 0, len(texts)-1)
	annotations = append(annotations, texts[:longest]...)
	annotations = append(annotations, texts[longest+1:]...)
	return caption, annotations
}
