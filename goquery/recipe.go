package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/title"
)

var _ recipeclip.SiteParser = (*RecipeSiteParser)(nil)

// RecipeSiteParser extracts recipes from conventional recipe publishers by
// parsing structured recipe markup directly, bypassing the social-carrier
// heuristics. Falls back to preview meta tags when no structured recipe
// object is present.
type RecipeSiteParser struct {
	fetcher recipeclip.Fetcher
	conv    recipeclip.Converter
}

// NewRecipeSiteParser creates a new RecipeSiteParser. The fetcher should
// handle AMP-variant and mirror fallbacks (see http.RecipeFetcher). The
// converter normalizes rich HTML instruction blocks and may be nil.
func NewRecipeSiteParser(fetcher recipeclip.Fetcher, conv recipeclip.Converter) *RecipeSiteParser {
	return &RecipeSiteParser{fetcher: fetcher, conv: conv}
}

// Parse fetches the page and extracts the recipe.
func (p *RecipeSiteParser) Parse(ctx context.Context, pageURL string) (*recipeclip.ExtractionResult, error) {
	rawHTML, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return p.ParseMarkup(rawHTML, pageURL)
}

// ParseMarkup extracts the recipe from already-fetched markup. The page URL
// is used to resolve relative image URLs to absolute form.
func (p *RecipeSiteParser) ParseMarkup(rawHTML, pageURL string) (*recipeclip.ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "failed to parse HTML: %v", err)
	}

	var recipe map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, ok := decode(sel.Text())
		if !ok {
			return true
		}
		for _, obj := range linkedDataObjects(v) {
			if isType(obj, "Recipe") {
				recipe = obj.(map[string]any)
				return false
			}
		}
		return true
	})

	if recipe == nil {
		return p.metaFallback(rawHTML, pageURL)
	}

	name, _ := stringAt(recipe, "name")
	name = title.CleanSiteSuffix(name)
	if name == "" {
		name = title.Placeholder
	}

	ingredients := stringList(recipe["recipeIngredient"])
	steps := p.instructionTexts(recipe["recipeInstructions"])
	image := resolveImageURL(imageURLOf(recipe["image"]), pageURL)

	result := &recipeclip.ExtractionResult{
		Success:      true,
		Title:        name,
		Ingredients:  ingredients,
		Steps:        steps,
		ImageURL:     image,
		Confidence:   recipeclip.DeriveConfidence(recipeclip.StrategyStructuredData, len(ingredients), len(steps), name != title.Placeholder),
		StrategyUsed: recipeclip.StrategyStructuredData,
	}
	return result, nil
}

// metaFallback builds a partial result from preview meta tags. Supported as
// an explicitly partial strategy: title and image only, low confidence.
func (p *RecipeSiteParser) metaFallback(rawHTML, pageURL string) (*recipeclip.ExtractionResult, error) {
	caption, _ := NewMetaCarrier().Read(rawHTML)
	if caption == "" {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "no structured recipe or preview metadata on page")
	}

	name := title.CleanSiteSuffix(title.Extract(caption))
	return &recipeclip.ExtractionResult{
		Success:      true,
		Title:        name,
		Ingredients:  []string{},
		Steps:        []string{},
		ImageURL:     resolveImageURL(MetaImage(rawHTML), pageURL),
		Confidence:   recipeclip.ConfidenceLow,
		StrategyUsed: recipeclip.StrategyStructuredData,
	}, nil
}

// instructionTexts flattens recipeInstructions: a bare string, a list of
// strings, HowToStep objects, or HowToSection groups. Rich HTML fragments
// are normalized to plain text through the converter.
func (p *RecipeSiteParser) instructionTexts(v any) []string {
	var out []string

	var gather func(node any)
	gather = func(node any) {
		switch n := node.(type) {
		case string:
			if text := p.plainText(n); text != "" {
				out = append(out, text)
			}
		case []any:
			for _, el := range n {
				gather(el)
			}
		case map[string]any:
			if isType(n, "HowToSection") {
				gather(n["itemListElement"])
				return
			}
			if text, ok := stringAt(n, "text"); ok {
				if plain := p.plainText(text); plain != "" {
					out = append(out, plain)
				}
				return
			}
			gather(n["itemListElement"])
		}
	}
	gather(v)

	if out == nil {
		return []string{}
	}
	return out
}

// plainText strips markup from an instruction fragment.
func (p *RecipeSiteParser) plainText(s string) string {
	s = strings.TrimSpace(s)
	if p.conv != nil && strings.Contains(s, "<") {
		if converted, err := p.conv.Convert(s); err == nil {
			s = strings.TrimSpace(converted)
		}
	}
	return s
}

// stringList coerces a JSON value into a flat string list.
func stringList(v any) []string {
	out := []string{}
	switch n := v.(type) {
	case string:
		if s := strings.TrimSpace(n); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, el := range n {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

// imageURLOf extracts an image URL from the JSON-LD image field: a bare
// string, a list, or an ImageObject.
func imageURLOf(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case []any:
		if len(n) > 0 {
			return imageURLOf(n[0])
		}
	case map[string]any:
		if s, ok := stringAt(n, "url"); ok {
			return s
		}
	}
	return ""
}

// resolveImageURL resolves an image reference to absolute form against the
// page URL.
func resolveImageURL(image, pageURL string) string {
	if image == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return image
	}
	ref, err := url.Parse(image)
	if err != nil {
		return image
	}
	return base.ResolveReference(ref).String()
}

// isType reports whether a JSON-LD object's @type names the given type.
func isType(obj any, want string) bool {
	node, ok := walk(obj, "@type")
	if !ok {
		return false
	}
	switch t := node.(type) {
	case string:
		return t == want
	case []any:
		for _, el := range t {
			if s, isStr := el.(string); isStr && s == want {
				return true
			}
		}
	}
	return false
}
