package title_test

import (
	"strings"
	"testing"

	"github.com/recipeclip/recipeclip/title"
	"github.com/stretchr/testify/assert"
)

func TestExtract_RecipeShapedCaption(t *testing.T) {
	t.Parallel()

	caption := "Garlic Butter Shrimp Pasta recipe 🍝 Ingredients: 1 lb shrimp, 3 tbsp butter... Steps: 1) Melt butter 2) Add garlic"

	assert.Equal(t, "Garlic Butter Shrimp Pasta", title.Extract(caption))
}

func TestExtract_RecipeForPattern(t *testing.T) {
	t.Parallel()

	got := title.Extract("here's my recipe for creamy tuscan chicken, you will love it")

	assert.Equal(t, "creamy tuscan chicken", got)
}

func TestExtract_HowToMakePattern(t *testing.T) {
	t.Parallel()

	got := title.Extract("how to make sourdough focaccia at home")

	assert.Equal(t, "sourdough focaccia at home", got)
}

func TestExtract_QuotedTitle(t *testing.T) {
	t.Parallel()

	got := title.Extract(`everyone kept asking for this one... "Nashville Hot Tenders" 🔥🔥`)

	assert.Equal(t, "Nashville Hot Tenders", got)
}

func TestExtract_NeverEmptyAndBounded(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   \n\n  ",
		"#fyp #viral #foodtok",
		"@someone @someoneelse",
		"12345 67890",
		strings.Repeat("Slow Braised Short Rib Ragu With Creamy Polenta And Gremolata ", 5),
	}

	for _, input := range inputs {
		got := title.Extract(input)
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, len([]rune(got)), 72)
	}
}

func TestExtract_PromotionalCaptionFallsThrough(t *testing.T) {
	t.Parallel()

	got := title.Extract("Tour tickets on sale now! Merch link in bio #follow #subscribe")

	// No recipe-shaped pattern exists, so the generic line fallback wins.
	assert.Equal(t, "Tour tickets on sale now! Merch link in bio", got)
}

func TestExtract_SkipsIngredientsLine(t *testing.T) {
	t.Parallel()

	caption := "Ingredients: flour, sugar, eggs\nBrown Butter Chocolate Chip Cookies\nso good"

	assert.Equal(t, "Brown Butter Chocolate Chip Cookies", title.Extract(caption))
}

func TestStripBoilerplate(t *testing.T) {
	t.Parallel()

	t.Run("strips likes and comments prefix", func(t *testing.T) {
		t.Parallel()

		got := title.StripBoilerplate("2,341 likes, 98 comments - chef.anna on May 3, 2025: Best focaccia ever")
		assert.Equal(t, "Best focaccia ever", got)
	})

	t.Run("strips trailing platform suffix", func(t *testing.T) {
		t.Parallel()

		got := title.StripBoilerplate("Crispy Gnocchi | TikTok")
		assert.Equal(t, "Crispy Gnocchi", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		once := title.StripBoilerplate("1.2M likes, 4K comments — baker_joe: Easy milk bread | TikTok")
		assert.Equal(t, once, title.StripBoilerplate(once))
	})
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading handle", "@chef.anna Garlic Noodles", "Garlic Noodles"},
		{"leading hashtags", "#food #yum Garlic Noodles", "Garlic Noodles"},
		{"intro verb", "made this amazing ramen", "this amazing ramen"},
		{"trailing punctuation", "Garlic Noodles!!!", "Garlic Noodles"},
		{"trailing hashtags", "Garlic Noodles #dinner #easy", "Garlic Noodles"},
		{"surrounding quotes", `"Garlic Noodles"`, "Garlic Noodles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, title.Clean(tt.in))
		})
	}
}

func TestCleanSiteSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pipe suffix", "Garlic Butter Shrimp Pasta | Serious Eats", "Garlic Butter Shrimp Pasta"},
		{"dash suffix", "Garlic Butter Shrimp Pasta - Allrecipes", "Garlic Butter Shrimp Pasta"},
		{"no suffix", "Garlic Butter Shrimp Pasta", "Garlic Butter Shrimp Pasta"},
		{"keeps long tail", "Quick - Pickled Onions For Every Single Taco", "Quick - Pickled Onions For Every Single Taco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, title.CleanSiteSuffix(tt.in))
		})
	}
}
