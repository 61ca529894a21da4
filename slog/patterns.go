// Package slog provides logging decorators for recipeclip services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/recipeclip/recipeclip"
)

// Ensure LoggingPatternService implements recipeclip.PatternService.
var _ recipeclip.PatternService = (*LoggingPatternService)(nil)

// LoggingPatternService wraps a PatternService with debug logging.
type LoggingPatternService struct {
	next   recipeclip.PatternService
	logger *slog.Logger
}

// NewLoggingPatternService creates a new LoggingPatternService.
func NewLoggingPatternService(next recipeclip.PatternService, logger *slog.Logger) *LoggingPatternService {
	return &LoggingPatternService{next: next, logger: logger}
}

// BestStrategy logs the lookup and delegates to the wrapped service.
func (s *LoggingPatternService) BestStrategy(ctx context.Context, site recipeclip.SiteType, fingerprint, parserVersion string) (strategy recipeclip.Strategy, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("pattern lookup",
			"site", site,
			"fingerprint", fingerprint,
			"strategy", strategy,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BestStrategy(ctx, site, fingerprint, parserVersion)
}

// RecordObservation logs the observation and delegates to the wrapped
// service.
func (s *LoggingPatternService) RecordObservation(ctx context.Context, site recipeclip.SiteType, fingerprint string, strategy recipeclip.Strategy, parserVersion string, success bool) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("pattern observation",
			"site", site,
			"fingerprint", fingerprint,
			"strategy", strategy,
			"success", success,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RecordObservation(ctx, site, fingerprint, strategy, parserVersion, success)
}

// LogAttempt logs the append and delegates to the wrapped service.
func (s *LoggingPatternService) LogAttempt(ctx context.Context, attempt *recipeclip.ExtractionAttempt) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("attempt logged",
			"url", attempt.URL,
			"strategy", attempt.Strategy,
			"success", attempt.Success,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LogAttempt(ctx, attempt)
}

// FindPatterns delegates to the wrapped service.
func (s *LoggingPatternService) FindPatterns(ctx context.Context, filter recipeclip.PatternFilter) ([]*recipeclip.ExtractionPattern, error) {
	return s.next.FindPatterns(ctx, filter)
}

// FindAttempts delegates to the wrapped service.
func (s *LoggingPatternService) FindAttempts(ctx context.Context, filter recipeclip.AttemptFilter) ([]*recipeclip.ExtractionAttempt, error) {
	return s.next.FindAttempts(ctx, filter)
}
