package mock

import (
	"context"

	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.PatternService = (*PatternService)(nil)

// PatternService is a mock implementation of recipeclip.PatternService.
// Unset funcs are no-ops: BestStrategy reports ENOTFOUND and writes succeed,
// which matches a cold store.
type PatternService struct {
	BestStrategyFn      func(ctx context.Context, site recipeclip.SiteType, fingerprint, parserVersion string) (recipeclip.Strategy, error)
	RecordObservationFn func(ctx context.Context, site recipeclip.SiteType, fingerprint string, strategy recipeclip.Strategy, parserVersion string, success bool) error
	LogAttemptFn        func(ctx context.Context, attempt *recipeclip.ExtractionAttempt) error
	FindPatternsFn      func(ctx context.Context, filter recipeclip.PatternFilter) ([]*recipeclip.ExtractionPattern, error)
	FindAttemptsFn      func(ctx context.Context, filter recipeclip.AttemptFilter) ([]*recipeclip.ExtractionAttempt, error)
}

func (s *PatternService) BestStrategy(ctx context.Context, site recipeclip.SiteType, fingerprint, parserVersion string) (recipeclip.Strategy, error) {
	if s.BestStrategyFn == nil {
		return "", recipeclip.Errorf(recipeclip.ENOTFOUND, "no pattern recorded")
	}
	return s.BestStrategyFn(ctx, site, fingerprint, parserVersion)
}

func (s *PatternService) RecordObservation(ctx context.Context, site recipeclip.SiteType, fingerprint string, strategy recipeclip.Strategy, parserVersion string, success bool) error {
	if s.RecordObservationFn == nil {
		return nil
	}
	return s.RecordObservationFn(ctx, site, fingerprint, strategy, parserVersion, success)
}

func (s *PatternService) LogAttempt(ctx context.Context, attempt *recipeclip.ExtractionAttempt) error {
	if s.LogAttemptFn == nil {
		return nil
	}
	return s.LogAttemptFn(ctx, attempt)
}

func (s *PatternService) FindPatterns(ctx context.Context, filter recipeclip.PatternFilter) ([]*recipeclip.ExtractionPattern, error) {
	return s.FindPatternsFn(ctx, filter)
}

func (s *PatternService) FindAttempts(ctx context.Context, filter recipeclip.AttemptFilter) ([]*recipeclip.ExtractionAttempt, error) {
	return s.FindAttemptsFn(ctx, filter)
}
