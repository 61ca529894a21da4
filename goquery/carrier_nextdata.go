package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Carrier = (*NextDataCarrier)(nil)

// NextDataCarrier reads the server-rendered framework data payload
// (__NEXT_DATA__) and walks the known per-platform paths to a post
// description and comment array.
type NextDataCarrier struct{}

// NewNextDataCarrier creates a new NextDataCarrier.
func NewNextDataCarrier() *NextDataCarrier {
	return &NextDataCarrier{}
}

// Name returns the carrier's identifier.
func (c *NextDataCarrier) Name() string {
	return "next_data"
}

// captionPaths are the known locations of a post description under the page
// props, most specific first. Platforms reshuffle these without notice, so
// every path is tried.
var captionPaths = [][]any{
	{"props", "pageProps", "itemInfo", "itemStruct", "desc"},
	{"props", "pageProps", "videoData", "desc"},
	{"props", "pageProps", "data", "shortcode_media", "edge_media_to_caption", "edges", 0, "node", "text"},
	{"props", "pageProps", "seoProps", "metaParams", "description"},
}

// Read walks the framework payload for a caption and comment texts.
func (c *NextDataCarrier) Read(html string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	raw := doc.Find("script#__NEXT_DATA__").First().Text()
	if raw == "" {
		return "", nil
	}
	v, ok := decode(raw)
	if !ok {
		return "", nil
	}

	var caption string
	for _, path := range captionPaths {
		if s, found := stringAt(v, path...); found {
			caption = s
			break
		}
	}

	var annotations []string
	if edges, found := walk(v, "props", "pageProps", "data", "shortcode_media", "edge_media_to_parent_comment", "edges"); found {
		if arr, isArr := edges.([]any); isArr {
			for _, el := range arr {
				if s, found := stringAt(el, "node", "text"); found {
					annotations = append(annotations, s)
				}
			}
		}
	}

	return caption, annotations
}
