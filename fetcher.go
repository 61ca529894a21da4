package recipeclip

import "context"

// Fetcher retrieves raw HTML from URLs over plain HTTP, without executing
// JavaScript. Suitable for publisher pages and AMP variants.
type Fetcher interface {
	// Fetch retrieves the page body. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases underlying resources.
	Close() error
}

// Renderer retrieves fully rendered markup from URLs via the rendering
// sandbox. Implementations load the page, wait for the readiness protocol
// (document load, render ticks, settle delay), and return the final DOM.
type Renderer interface {
	// Render navigates to the URL, waits for the page to settle, and
	// returns the rendered HTML. The context bounds the whole round trip;
	// exceeding it is a failure, never a hang.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for outbound fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Converter normalizes rich HTML fragments (instruction blocks, publisher
// descriptions) into plain markdown text before scoring and splitting.
type Converter interface {
	Convert(html string) (string, error)
}
