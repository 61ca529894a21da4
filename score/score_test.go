package score_test

import (
	"math"
	"strings"
	"testing"

	"github.com/recipeclip/recipeclip/score"
	"github.com/stretchr/testify/assert"
)

func TestScore_RecipeShapedCaption(t *testing.T) {
	t.Parallel()

	caption := "Garlic Butter Shrimp Pasta recipe 🍝 Ingredients: 1 lb shrimp, 3 tbsp butter... Steps: 1) Melt butter 2) Add garlic"

	got := score.Score(caption)

	assert.GreaterOrEqual(t, got, 900.0, "ingredients, steps, and unit tokens should dominate")
}

func TestScore_PromotionalCaption(t *testing.T) {
	t.Parallel()

	caption := "Tour tickets on sale now! Merch link in bio #follow #subscribe"

	got := score.Score(caption)

	assert.Less(t, got, 0.0, "promo phrases and hashtag density should sink the score")
}

func TestScore_EmptyString(t *testing.T) {
	t.Parallel()

	assert.Zero(t, score.Score(""))
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	caption := "½ cup flour\n- 2 eggs\n1. Mix everything 🛒 #baking"

	assert.Equal(t, score.Score(caption), score.Score(caption))
}

func TestScore_MonotonicOnStrongMarker(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"random caption about nothing",
		"Tour dates and merch #follow #subscribe",
		"2 cups sugar\n- mix well",
		strings.Repeat("very long caption ", 200),
	}

	for _, input := range inputs {
		assert.GreaterOrEqual(t, score.Score(input+" ingredients: "), score.Score(input),
			"adding an ingredients marker must never decrease the score")
	}
}

func TestScore_BoundedOnHugeInput(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("1 cup sugar tbsp oz ", 100000)

	got := score.Score(huge)

	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
}

func TestScore_LineMarkers(t *testing.T) {
	t.Parallel()

	base := "plain caption"
	bulleted := "plain caption\n• first item"
	numbered := "plain caption\n1. first step"

	assert.Greater(t, score.Score(bulleted), score.Score(base))
	assert.Greater(t, score.Score(numbered), score.Score(base))
}

func TestWeights_Tunable(t *testing.T) {
	t.Parallel()

	weights := score.DefaultWeights()
	weights.IngredientsMarker = 0

	assert.Less(t, weights.Score("ingredients"), score.Score("ingredients"))
}

func TestFilterByScore(t *testing.T) {
	t.Parallel()

	items := []string{
		"Full recipe: 2 cups flour, 1 tsp salt, 3 eggs — ingredients below!",
		"first!!",
		"omg so good",
	}

	filtered := score.FilterByScore(items, 200)

	assert.Equal(t, []string{items[0]}, filtered)
}

func TestFilterByScore_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, score.FilterByScore(nil, 10))
}
