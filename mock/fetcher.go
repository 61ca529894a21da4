package mock

import (
	"context"

	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of recipeclip.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ recipeclip.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of recipeclip.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ recipeclip.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of recipeclip.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

var _ recipeclip.Converter = (*Converter)(nil)

// Converter is a mock implementation of recipeclip.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
