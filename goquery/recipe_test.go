package goquery_test

import (
	"context"
	"testing"

	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/goquery"
	"github.com/recipeclip/recipeclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeLDHTML = `<html><head>
<script type="application/ld+json">{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Classic Basil Pesto | Serious Eats",
  "image": {"@type": "ImageObject", "url": "/images/pesto.jpg"},
  "recipeIngredient": ["2 cups fresh basil", "1/2 cup olive oil", "1/3 cup pine nuts"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Toast the pine nuts."},
    {"@type": "HowToStep", "text": "Blend everything until smooth."}
  ]
}</script>
</head></html>`

func TestRecipeSiteParser_ParseMarkup(t *testing.T) {
	t.Parallel()

	t.Run("structured recipe", func(t *testing.T) {
		t.Parallel()

		parser := goquery.NewRecipeSiteParser(nil, nil)
		result, err := parser.ParseMarkup(recipeLDHTML, "https://www.seriouseats.com/pesto")
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, "Classic Basil Pesto", result.Title)
		assert.Equal(t, []string{"2 cups fresh basil", "1/2 cup olive oil", "1/3 cup pine nuts"}, result.Ingredients)
		assert.Equal(t, []string{"Toast the pine nuts.", "Blend everything until smooth."}, result.Steps)
		assert.Equal(t, "https://www.seriouseats.com/images/pesto.jpg", result.ImageURL)
		assert.Equal(t, recipeclip.ConfidenceHigh, result.Confidence)
		assert.Equal(t, recipeclip.StrategyStructuredData, result.StrategyUsed)
	})

	t.Run("sectioned instructions flatten in order", func(t *testing.T) {
		t.Parallel()

		html := `<html><script type="application/ld+json">{
		  "@type": "Recipe",
		  "name": "Lasagna",
		  "recipeIngredient": ["1 lb pasta"],
		  "recipeInstructions": [
		    {"@type": "HowToSection", "name": "Sauce", "itemListElement": [
		      {"@type": "HowToStep", "text": "Simmer the sauce."}
		    ]},
		    {"@type": "HowToSection", "name": "Assembly", "itemListElement": [
		      {"@type": "HowToStep", "text": "Layer and bake."}
		    ]}
		  ]
		}</script></html>`

		result, err := goquery.NewRecipeSiteParser(nil, nil).ParseMarkup(html, "https://example.com/lasagna")
		require.NoError(t, err)

		assert.Equal(t, []string{"Simmer the sauce.", "Layer and bake."}, result.Steps)
	})

	t.Run("bare string instructions and image list", func(t *testing.T) {
		t.Parallel()

		html := `<html><script type="application/ld+json">{
		  "@type": ["Recipe", "NewsArticle"],
		  "name": "Overnight Oats",
		  "image": ["https://cdn.example.com/oats.jpg", "https://cdn.example.com/oats-2.jpg"],
		  "recipeIngredient": ["1 cup oats"],
		  "recipeInstructions": "Mix and refrigerate overnight."
		}</script></html>`

		result, err := goquery.NewRecipeSiteParser(nil, nil).ParseMarkup(html, "https://example.com/oats")
		require.NoError(t, err)

		assert.Equal(t, "Overnight Oats", result.Title)
		assert.Equal(t, []string{"Mix and refrigerate overnight."}, result.Steps)
		assert.Equal(t, "https://cdn.example.com/oats.jpg", result.ImageURL)
	})

	t.Run("rich instruction markup runs through the converter", func(t *testing.T) {
		t.Parallel()

		html := `<html><script type="application/ld+json">{
		  "@type": "Recipe",
		  "name": "Focaccia",
		  "recipeIngredient": ["4 cups flour"],
		  "recipeInstructions": [{"@type": "HowToStep", "text": "<p>Dimple the <b>dough</b>.</p>"}]
		}</script></html>`

		conv := &mock.Converter{ConvertFn: func(fragment string) (string, error) {
			return "Dimple the **dough**.", nil
		}}
		result, err := goquery.NewRecipeSiteParser(nil, conv).ParseMarkup(html, "https://example.com/focaccia")
		require.NoError(t, err)

		assert.Equal(t, []string{"Dimple the **dough**."}, result.Steps)
	})

	t.Run("meta fallback is partial and low confidence", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
		<meta property="og:title" content="Weeknight Chili Recipe - Budget Bytes">
		<meta property="og:image" content="https://cdn.example.com/chili.jpg">
		</head></html>`

		result, err := goquery.NewRecipeSiteParser(nil, nil).ParseMarkup(html, "https://example.com/chili")
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Title)
		assert.Empty(t, result.Ingredients)
		assert.Empty(t, result.Steps)
		assert.Equal(t, "https://cdn.example.com/chili.jpg", result.ImageURL)
		assert.Equal(t, recipeclip.ConfidenceLow, result.Confidence)
	})

	t.Run("no recipe and no metadata is not found", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewRecipeSiteParser(nil, nil).ParseMarkup("<html><body></body></html>", "https://example.com/x")
		require.Error(t, err)
		assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	})
}

func TestRecipeSiteParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("fetches then parses", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			assert.Equal(t, "https://www.seriouseats.com/pesto", url)
			return recipeLDHTML, nil
		}}
		parser := goquery.NewRecipeSiteParser(fetcher, nil)

		result, err := parser.Parse(context.Background(), "https://www.seriouseats.com/pesto")
		require.NoError(t, err)
		assert.Equal(t, "Classic Basil Pesto", result.Title)
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "blocked")
		}}
		_, err := goquery.NewRecipeSiteParser(fetcher, nil).Parse(context.Background(), "https://example.com/x")

		require.Error(t, err)
		assert.Equal(t, recipeclip.EUNAVAILABLE, recipeclip.ErrorCode(err))
	})
}
