package recipeclip_test

import (
	"testing"

	"github.com/recipeclip/recipeclip"
	"github.com/stretchr/testify/assert"
)

func TestClassifySite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want recipeclip.SiteType
	}{
		{"tiktok video", "https://www.tiktok.com/@cook/video/7234", recipeclip.SiteTikTok},
		{"tiktok short link", "https://vm.tiktok.com/ZMabcdef/", recipeclip.SiteTikTok},
		{"instagram reel", "https://www.instagram.com/reel/Cxyz123/", recipeclip.SiteInstagram},
		{"instagram short domain", "https://instagr.am/p/Cxyz123/", recipeclip.SiteInstagram},
		{"known publisher", "https://www.seriouseats.com/garlic-shrimp-pasta", recipeclip.SiteRecipeSite},
		{"publisher subpage", "https://www.allrecipes.com/recipe/12345/shrimp/", recipeclip.SiteRecipeSite},
		{"unknown host with recipe path", "https://example.com/recipes/shrimp-pasta", recipeclip.SiteRecipeSite},
		{"generic blog", "https://example.com/blog/my-trip", recipeclip.SiteUnknown},
		{"unparseable", "://nope", recipeclip.SiteUnknown},
		{"empty", "", recipeclip.SiteUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, recipeclip.ClassifySite(tt.url))
		})
	}
}
