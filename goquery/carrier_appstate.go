package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Carrier = (*AppStateCarrier)(nil)

// AppStateCarrier reads the client-side global state blob short-video pages
// inject for hydration (SIGI_STATE and its successor rehydration payload).
// The most specific social carrier: when present, the blob carries the exact
// post description and a flat comment collection.
type AppStateCarrier struct{}

// NewAppStateCarrier creates a new AppStateCarrier.
func NewAppStateCarrier() *AppStateCarrier {
	return &AppStateCarrier{}
}

// Name returns the carrier's identifier.
func (c *AppStateCarrier) Name() string {
	return "app_state"
}

// Read walks the embedded state blob for the post description and comment
// texts. Any missing node or malformed payload yields the empty form.
func (c *AppStateCarrier) Read(html string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	if raw := doc.Find("script#SIGI_STATE").First().Text(); raw != "" {
		if v, ok := decode(raw); ok {
			var caption string
			if items, found := walk(v, "ItemModule"); found {
				if item, found := firstValue(items); found {
					caption, _ = stringAt(item, "desc")
				}
			}
			annotations := mapValueStrings(v, "text", "CommentItem")
			if caption != "" || len(annotations) > 0 {
				return caption, annotations
			}
		}
	}

	if raw := doc.Find("script#__UNIVERSAL_DATA_FOR_REHYDRATION__").First().Text(); raw != "" {
		if v, ok := decode(raw); ok {
			caption, _ := stringAt(v, "__DEFAULT_SCOPE__", "webapp.video-detail", "itemInfo", "itemStruct", "desc")
			if caption != "" {
				return caption, nil
			}
		}
	}

	return "", nil
}
