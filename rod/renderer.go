// Package rod provides a Chrome-based implementation of recipeclip.Renderer
// for pages that only materialize their content after JavaScript execution.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/recipeclip/recipeclip"
)

// DefaultRenderTimeout bounds one render round trip.
const DefaultRenderTimeout = 10 * time.Second

// DefaultSettleDelay is how long the renderer waits after the last render
// tick. Social pages hydrate comment sections and description expanders
// shortly after load; capturing the DOM too early loses them.
const DefaultSettleDelay = 500 * time.Millisecond

// Ensure Renderer implements recipeclip.Renderer at compile time.
var _ recipeclip.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML from URLs using Chrome browser
// automation. After document load it waits for two animation frames and a
// settle delay before capturing the DOM, so late-hydrating content is
// included. Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	manager     *BrowserManager
	timeout     time.Duration
	settleDelay time.Duration
	stealth     bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout sets the per-render timeout applied when the caller's
// context carries no deadline. Defaults to DefaultRenderTimeout.
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithSettleDelay sets the post-load settle delay.
// Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.settleDelay = d
	}
}

// WithStealth creates pages with automation-detection countermeasures.
// Social platforms serve login walls to detected headless browsers.
func WithStealth() RendererOption {
	return func(r *Renderer) {
		r.stealth = true
	}
}

// NewRenderer creates a new Renderer backed by a managed headless Chrome
// browser. Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	return NewRendererWithManager(manager, opts...), nil
}

// NewRendererWithManager creates a Renderer on an existing BrowserManager.
// The manager's lifecycle passes to the Renderer: Close closes it.
func NewRendererWithManager(manager *BrowserManager, opts ...RendererOption) *Renderer {
	r := &Renderer{
		manager:     manager,
		timeout:     DefaultRenderTimeout,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to the URL, waits for the page to settle, and returns
// the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	page, err := r.newPage()
	if err != nil {
		return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "creating page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", renderErr(ctx, url, err)
	}

	// Two animation frames guarantee at least one committed paint after
	// load, so framework hydration that runs on the first frame is visible.
	if _, err := page.Eval(`() => new Promise(resolve =>
		requestAnimationFrame(() => requestAnimationFrame(resolve)))`); err != nil {
		return "", renderErr(ctx, url, err)
	}

	if r.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", renderErr(ctx, url, ctx.Err())
		case <-time.After(r.settleDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", renderErr(ctx, url, err)
	}

	r.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// newPage creates a fresh page, with stealth countermeasures when enabled.
func (r *Renderer) newPage() (*rod.Page, error) {
	browser := r.manager.Browser()
	if r.stealth {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{})
}

// renderErr classifies a render failure: deadline overruns become ETIMEOUT,
// everything else EUNAVAILABLE.
func renderErr(ctx context.Context, url string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return recipeclip.Errorf(recipeclip.ETIMEOUT, "render of %s timed out", url)
	}
	return recipeclip.Errorf(recipeclip.EUNAVAILABLE, "rendering %s: %v", url, err)
}
