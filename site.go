package recipeclip

import (
	"net/url"
	"strings"
)

// SiteType classifies the platform family of a target URL. It is determined
// once per URL and is immutable for the life of an extraction attempt.
type SiteType string

// Supported site families.
const (
	SiteUnknown    SiteType = "unknown"
	SiteTikTok     SiteType = "tiktok"
	SiteInstagram  SiteType = "instagram"
	SiteRecipeSite SiteType = "recipe_site"
)

// recipePublisherHosts are conventional recipe publishers with structured
// recipe markup. Pages from these hosts bypass the social-carrier heuristics
// and go straight to the structured-data site parser.
var recipePublisherHosts = map[string]bool{
	"allrecipes.com":            true,
	"bbcgoodfood.com":           true,
	"bonappetit.com":            true,
	"budgetbytes.com":           true,
	"cooking.nytimes.com":       true,
	"delish.com":                true,
	"epicurious.com":            true,
	"food52.com":                true,
	"foodnetwork.com":           true,
	"kingarthurbaking.com":      true,
	"pinchofyum.com":            true,
	"sallysbakingaddiction.com": true,
	"seriouseats.com":           true,
	"simplyrecipes.com":         true,
	"tasty.co":                  true,
}

// ClassifySite determines the SiteType for a URL from its hostname and path
// shape. Unparseable URLs classify as SiteUnknown.
func ClassifySite(rawURL string) SiteType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SiteUnknown
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	switch {
	case host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com"):
		return SiteTikTok
	case host == "instagram.com" || host == "instagr.am":
		return SiteInstagram
	}

	if recipePublisherHosts[host] {
		return SiteRecipeSite
	}

	// Unrecognized hosts with a recipe-shaped path are treated as publishers.
	path := strings.ToLower(u.Path)
	if strings.Contains(path, "/recipe/") || strings.Contains(path, "/recipes/") {
		return SiteRecipeSite
	}

	return SiteUnknown
}
