package http

import (
	"context"
	"time"

	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays between fetch retries.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher wraps a fetcher with backoff retries for transient failures.
// Only timeouts and upstream unavailability are retried; a page that is
// missing or rejected stays missing no matter how often it is asked for.
type RetryFetcher struct {
	inner  recipeclip.Fetcher
	delays []time.Duration
}

// RetryOption configures a RetryFetcher.
type RetryOption func(*RetryFetcher)

// WithRetryDelays overrides the backoff schedule. The number of delays
// determines the number of retries. Useful in tests.
func WithRetryDelays(delays []time.Duration) RetryOption {
	return func(f *RetryFetcher) {
		f.delays = delays
	}
}

// NewRetryFetcher wraps inner with retry behavior.
func NewRetryFetcher(inner recipeclip.Fetcher, opts ...RetryOption) *RetryFetcher {
	f := &RetryFetcher{
		inner:  inner,
		delays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the page, retrying transient failures with backoff.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.inner.Fetch(ctx, url)
	if err == nil || !retryable(err) {
		return html, err
	}

	for _, delay := range f.delays {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		html, err = f.inner.Fetch(ctx, url)
		if err == nil || !retryable(err) {
			return html, err
		}
	}
	return "", err
}

// Close releases the inner fetcher's resources.
func (f *RetryFetcher) Close() error {
	return f.inner.Close()
}

func retryable(err error) bool {
	switch recipeclip.ErrorCode(err) {
	case recipeclip.ETIMEOUT, recipeclip.EUNAVAILABLE:
		return true
	}
	return false
}
