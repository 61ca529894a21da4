package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/mock"
	recipeslog "github.com/recipeclip/recipeclip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingPatternService(t *testing.T) {
	t.Parallel()

	t.Run("logs lookups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PatternService{
			BestStrategyFn: func(ctx context.Context, site recipeclip.SiteType, fingerprint, parserVersion string) (recipeclip.Strategy, error) {
				return recipeclip.StrategyMetaTags, nil
			},
		}

		svc := recipeslog.NewLoggingPatternService(inner, debugLogger(&buf))
		strategy, err := svc.BestStrategy(context.Background(), recipeclip.SiteTikTok, "fp-1", "v2")

		require.NoError(t, err)
		assert.Equal(t, recipeclip.StrategyMetaTags, strategy)

		output := buf.String()
		assert.Contains(t, output, "pattern lookup")
		assert.Contains(t, output, "site=tiktok")
		assert.Contains(t, output, "strategy=meta_tags")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs observation failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PatternService{
			RecordObservationFn: func(ctx context.Context, site recipeclip.SiteType, fingerprint string, strategy recipeclip.Strategy, parserVersion string, success bool) error {
				return recipeclip.Errorf(recipeclip.EUNAVAILABLE, "store down")
			},
		}

		svc := recipeslog.NewLoggingPatternService(inner, debugLogger(&buf))
		err := svc.RecordObservation(context.Background(), recipeclip.SiteTikTok, "fp-1", recipeclip.StrategyDOM, "v2", true)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "pattern observation")
		assert.Contains(t, output, "success=true")
		assert.Contains(t, output, "store down")
	})

	t.Run("logs attempt appends", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := recipeslog.NewLoggingPatternService(&mock.PatternService{}, debugLogger(&buf))

		err := svc.LogAttempt(context.Background(), &recipeclip.ExtractionAttempt{
			URL:           "https://example.com/post",
			SiteType:      recipeclip.SiteTikTok,
			ParserVersion: "v2",
			Strategy:      recipeclip.StrategyAppState,
			Success:       true,
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "attempt logged")
		assert.Contains(t, buf.String(), "url=https://example.com/post")
	})
}
