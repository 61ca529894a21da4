package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Carrier = (*StructuredDataCarrier)(nil)

// StructuredDataCarrier parses the page's JSON-LD blocks and returns the
// first description or caption found on a recognized object type.
type StructuredDataCarrier struct{}

// NewStructuredDataCarrier creates a new StructuredDataCarrier.
func NewStructuredDataCarrier() *StructuredDataCarrier {
	return &StructuredDataCarrier{}
}

// Name returns the carrier's identifier.
func (c *StructuredDataCarrier) Name() string {
	return "structured_data"
}

// recognizedTypes are the JSON-LD object types that can describe a post or
// recipe page.
var recognizedTypes = map[string]bool{
	"VideoObject":        true,
	"SocialMediaPosting": true,
	"Recipe":             true,
	"Article":            true,
	"NewsArticle":        true,
	"ImageObject":        true,
}

// Read scans every ld+json block for a recognized object and returns its
// name and description joined as the caption.
func (c *StructuredDataCarrier) Read(html string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	var caption string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, ok := decode(sel.Text())
		if !ok {
			return true
		}
		for _, obj := range linkedDataObjects(v) {
			if !isRecognizedType(obj) {
				continue
			}
			name, _ := stringAt(obj, "name")
			desc, found := stringAt(obj, "description")
			if !found {
				desc, found = stringAt(obj, "caption")
			}
			if !found {
				desc, found = stringAt(obj, "articleBody")
			}
			if !found && name == "" {
				continue
			}
			caption = strings.TrimSpace(name + "\n" + desc)
			return false
		}
		return true
	})

	return caption, nil
}

// linkedDataObjects flattens a decoded JSON-LD document into its candidate
// objects: a bare object, an array of objects, or an @graph.
func linkedDataObjects(v any) []any {
	switch node := v.(type) {
	case []any:
		var out []any
		for _, el := range node {
			out = append(out, linkedDataObjects(el)...)
		}
		return out
	case map[string]any:
		if graph, ok := node["@graph"].([]any); ok {
			var out []any
			out = append(out, v)
			for _, el := range graph {
				out = append(out, linkedDataObjects(el)...)
			}
			return out
		}
		return []any{v}
	}
	return nil
}

// isRecognizedType reports whether the object's @type (string or list)
// names a recognized type.
func isRecognizedType(obj any) bool {
	node, ok := walk(obj, "@type")
	if !ok {
		return false
	}
	switch t := node.(type) {
	case string:
		return recognizedTypes[t]
	case []any:
		for _, el := range t {
			if s, isStr := el.(string); isStr && recognizedTypes[s] {
				return true
			}
		}
	}
	return false
}
