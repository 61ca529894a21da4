package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Fetcher = (*RecipeFetcher)(nil)

// RecipeFetcher fetches publisher pages with fallback variants. Recipe
// publishers frequently serve paywalled or consent-gated markup on the
// canonical URL while leaving a reduced AMP variant open, so a failed direct
// fetch retries the known variant forms before giving up. Mirror prefixes
// wrap the page in a read-only proxy as a last resort.
type RecipeFetcher struct {
	inner   recipeclip.Fetcher
	mirrors []string
}

// DefaultMirrorPrefixes wrap a page URL in a public read-only mirror.
var DefaultMirrorPrefixes = []string{
	"https://r.jina.ai/",
}

// RecipeFetchOption configures a RecipeFetcher.
type RecipeFetchOption func(*RecipeFetcher)

// WithMirrorPrefixes overrides the mirror prefix list. An empty list
// disables the mirror fallback.
func WithMirrorPrefixes(prefixes []string) RecipeFetchOption {
	return func(f *RecipeFetcher) {
		f.mirrors = prefixes
	}
}

// NewRecipeFetcher wraps an inner fetcher with publisher fallback variants.
func NewRecipeFetcher(inner recipeclip.Fetcher, opts ...RecipeFetchOption) *RecipeFetcher {
	f := &RecipeFetcher{
		inner:   inner,
		mirrors: DefaultMirrorPrefixes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the page, trying the canonical URL first, then AMP
// variants, then mirror prefixes. The first variant that returns a body
// wins; the direct fetch's error is reported if every variant fails.
func (f *RecipeFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	html, directErr := f.inner.Fetch(ctx, pageURL)
	if directErr == nil {
		return html, nil
	}

	for _, variant := range ampVariants(pageURL) {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if html, err := f.inner.Fetch(ctx, variant); err == nil {
			return html, nil
		}
	}

	for _, prefix := range f.mirrors {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if html, err := f.inner.Fetch(ctx, prefix+pageURL); err == nil {
			return html, nil
		}
	}

	return "", directErr
}

// Close releases the inner fetcher's resources.
func (f *RecipeFetcher) Close() error {
	return f.inner.Close()
}

// ampVariants returns the conventional AMP forms of a page URL: a trailing
// /amp path segment and an amp query parameter. Invalid URLs get no
// variants.
func ampVariants(pageURL string) []string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil
	}

	var variants []string

	withPath := *u
	withPath.Path = strings.TrimSuffix(withPath.Path, "/") + "/amp"
	variants = append(variants, withPath.String())

	withQuery := *u
	q := withQuery.Query()
	q.Set("amp", "1")
	withQuery.RawQuery = q.Encode()
	variants = append(variants, withQuery.String())

	return variants
}
