package caption_test

import (
	"testing"

	"github.com/recipeclip/recipeclip/caption"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections_InlineHeaders(t *testing.T) {
	t.Parallel()

	text := "Garlic Butter Shrimp Pasta recipe 🍝 Ingredients: 1 lb shrimp, 3 tbsp butter... Steps: 1) Melt butter 2) Add garlic"

	ingredients, steps := caption.Sections(text, nil)

	assert.Equal(t, []string{"1 lb shrimp", "3 tbsp butter"}, ingredients)
	assert.Equal(t, []string{"Melt butter", "Add garlic"}, steps)
}

func TestSections_MultilineHeaders(t *testing.T) {
	t.Parallel()

	text := "Best milk bread!\nIngredients:\n- 2 cups flour\n- 1 tsp yeast\n- ½ cup milk\nMethod:\n1. Mix the dough\n2. Proof for an hour\n3. Bake at 350"

	ingredients, steps := caption.Sections(text, nil)

	assert.Equal(t, []string{"2 cups flour", "1 tsp yeast", "½ cup milk"}, ingredients)
	assert.Equal(t, []string{"Mix the dough", "Proof for an hour", "Bake at 350"}, steps)
}

func TestSections_HeadlessMeasurementLines(t *testing.T) {
	t.Parallel()

	text := "easy weeknight dinner\n2 cups rice\n1 lb chicken\n1. Season the chicken\n2. Sear until golden"

	ingredients, steps := caption.Sections(text, nil)

	assert.Equal(t, []string{"2 cups rice", "1 lb chicken"}, ingredients)
	assert.Equal(t, []string{"Season the chicken", "Sear until golden"}, steps)
}

func TestSections_AnnotationsSupplyRecipe(t *testing.T) {
	t.Parallel()

	text := "you asked, here it is!"
	annotations := []string{
		"Ingredients: 2 cups flour, 3 eggs",
		"Steps: 1. whisk 2. fold gently",
	}

	ingredients, steps := caption.Sections(text, annotations)

	assert.Equal(t, []string{"2 cups flour", "3 eggs"}, ingredients)
	require.Len(t, steps, 2)
	assert.Equal(t, "whisk", steps[0])
}

func TestSections_DeduplicatesAcrossSources(t *testing.T) {
	t.Parallel()

	text := "Ingredients: 2 cups flour"
	annotations := []string{"ingredients: 2 cups flour", "Ingredients: 2 Cups Flour"}

	ingredients, _ := caption.Sections(text, annotations)

	assert.Equal(t, []string{"2 cups flour"}, ingredients)
}

func TestSections_EmptyInput(t *testing.T) {
	t.Parallel()

	ingredients, steps := caption.Sections("", nil)

	assert.Empty(t, ingredients)
	assert.Empty(t, steps)
	assert.NotNil(t, ingredients)
	assert.NotNil(t, steps)
}

func TestSections_NonRecipeText(t *testing.T) {
	t.Parallel()

	ingredients, steps := caption.Sections("check out my tour dates, link in bio", nil)

	assert.Empty(t, ingredients)
	assert.Empty(t, steps)
}
