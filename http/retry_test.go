package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/recipeclip/recipeclip"
	recipehttp "github.com/recipeclip/recipeclip/http"
	"github.com/recipeclip/recipeclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	fastDelays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				if calls < 3 {
					return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "upstream returned 503")
				}
				return "<html>ok</html>", nil
			},
		}

		fetcher := recipehttp.NewRetryFetcher(inner, recipehttp.WithRetryDelays(fastDelays))
		html, err := fetcher.Fetch(context.Background(), "https://example.com/pesto")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry not-found", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				return "", recipeclip.Errorf(recipeclip.ENOTFOUND, "page not found")
			},
		}

		fetcher := recipehttp.NewRetryFetcher(inner, recipehttp.WithRetryDelays(fastDelays))
		_, err := fetcher.Fetch(context.Background(), "https://example.com/gone")

		require.Error(t, err)
		assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after exhausting delays", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				return "", recipeclip.Errorf(recipeclip.ETIMEOUT, "fetch timed out")
			},
		}

		fetcher := recipehttp.NewRetryFetcher(inner, recipehttp.WithRetryDelays(fastDelays))
		_, err := fetcher.Fetch(context.Background(), "https://slow.example.com/")

		require.Error(t, err)
		assert.Equal(t, recipeclip.ETIMEOUT, recipeclip.ErrorCode(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("cancellation stops the backoff wait", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", recipeclip.Errorf(recipeclip.EUNAVAILABLE, "upstream returned 502")
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := recipehttp.NewRetryFetcher(inner, recipehttp.WithRetryDelays([]time.Duration{time.Minute}))
		_, err := fetcher.Fetch(ctx, "https://example.com/")

		require.ErrorIs(t, err, context.Canceled)
	})
}
