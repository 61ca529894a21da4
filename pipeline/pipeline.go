// Package pipeline implements the adaptive multi-strategy extraction
// pipeline: site classification, markup fingerprinting, pattern-store
// reordering, sequential strategy trials, and asynchronous outcome logging.
package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/recipeclip/recipeclip"
)

// logTimeout bounds one asynchronous pattern-store write.
const logTimeout = 5 * time.Second

// Selector orchestrates the ordered strategy list for a URL, executing
// strategies until one succeeds. It is the only component that talks to the
// pattern store. The zero value is not usable; populate the collaborator
// fields before calling Execute.
type Selector struct {
	// Renderer produces rendered markup for carrier strategies. Optional:
	// without it the Fetcher's unrendered markup is used.
	Renderer recipeclip.Renderer

	// Fetcher retrieves markup when no renderer is configured.
	Fetcher recipeclip.Fetcher

	// Executors maps each strategy name to its implementation. Strategies
	// in the configured ordering without an executor are skipped as
	// failures.
	Executors map[recipeclip.Strategy]recipeclip.StrategyExecutor

	// Patterns is the pattern store. Optional: without it every attempt
	// runs the static per-site ordering and no outcomes are recorded.
	Patterns recipeclip.PatternService

	// Fingerprints computes the structural page fingerprint.
	Fingerprints recipeclip.Fingerprinter

	// Config holds the per-site strategy orderings and parser version.
	Config recipeclip.ParserConfig

	// Limiter rate-limits outbound page loads per domain. Optional.
	Limiter recipeclip.DomainLimiter

	// Logger receives attempt-level debug logging. Optional.
	Logger *slog.Logger

	wg sync.WaitGroup
}

// Execute runs the extraction pipeline for one URL. It always returns a
// well-formed result for pipeline-level outcomes; the only errors returned
// are context cancellation and rate-limit interruption, in which case no
// partial result is surfaced.
func (s *Selector) Execute(ctx context.Context, pageURL string) (*recipeclip.ExtractionResult, error) {
	site := recipeclip.ClassifySite(pageURL)

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(pageURL)); err != nil {
			return nil, err
		}
	}

	html := s.loadMarkup(ctx, pageURL)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fingerprint string
	if s.Fingerprints != nil && html != "" {
		fingerprint = s.Fingerprints.Fingerprint(html)
	}

	strategies := s.Config.StrategiesFor(site)
	if s.Patterns != nil && fingerprint != "" {
		if best, err := s.Patterns.BestStrategy(ctx, site, fingerprint, s.Config.Version); err == nil {
			strategies = reorderStrategies(strategies, best)
		}
	}

	page := &recipeclip.Page{
		URL:         pageURL,
		SiteType:    site,
		HTML:        html,
		Fingerprint: fingerprint,
	}

	var lastStrategy recipeclip.Strategy
	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lastStrategy = strategy

		result, err := s.try(ctx, strategy, page)
		if err != nil {
			s.logDebug("strategy failed", "url", pageURL, "strategy", strategy, "err", err)
			s.recordOutcome(page, strategy, nil, recipeclip.ErrorMessage(err))
			continue
		}

		s.logDebug("strategy succeeded", "url", pageURL, "strategy", strategy, "confidence", result.Confidence)
		s.recordOutcome(page, strategy, result, "")
		return result, nil
	}

	result := &recipeclip.ExtractionResult{
		Success:      false,
		Ingredients:  []string{},
		Steps:        []string{},
		Confidence:   recipeclip.ConfidenceLow,
		StrategyUsed: lastStrategy,
		Err:          "all extraction strategies failed",
	}
	return result, nil
}

// Flush waits for in-flight outcome logging to finish. Call before
// shutting down the pattern store.
func (s *Selector) Flush() {
	s.wg.Wait()
}

// try runs one strategy, normalizing panics and empty results into errors
// so faults never cross the strategy boundary.
func (s *Selector) try(ctx context.Context, strategy recipeclip.Strategy, page *recipeclip.Page) (result *recipeclip.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = recipeclip.Errorf(recipeclip.EINTERNAL, "strategy %s panicked: %v", strategy, r)
		}
	}()

	executor, ok := s.Executors[strategy]
	if !ok {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "strategy %s not configured", strategy)
	}

	result, err = executor.Extract(ctx, page)
	if err != nil {
		return nil, err
	}
	if result == nil || !result.Success {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "strategy %s produced no result", strategy)
	}
	return result, nil
}

// loadMarkup renders or fetches the page. Failures yield empty markup:
// strategies that need the page fail individually, while markup-free
// strategies (site parser, oEmbed, OCR) still get their turn.
func (s *Selector) loadMarkup(ctx context.Context, pageURL string) string {
	switch {
	case s.Renderer != nil:
		html, err := s.Renderer.Render(ctx, pageURL)
		if err != nil {
			s.logDebug("render failed", "url", pageURL, "err", err)
			return ""
		}
		return html
	case s.Fetcher != nil:
		html, err := s.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			s.logDebug("fetch failed", "url", pageURL, "err", err)
			return ""
		}
		return html
	}
	return ""
}

// recordOutcome logs the attempt row and folds the observation into the
// pattern aggregate. Fire-and-forget: writes run on their own goroutine
// with their own deadline, and failures are swallowed. Flush waits for
// completion.
func (s *Selector) recordOutcome(page *recipeclip.Page, strategy recipeclip.Strategy, result *recipeclip.ExtractionResult, errMessage string) {
	if s.Patterns == nil {
		return
	}

	attempt := &recipeclip.ExtractionAttempt{
		URL:           page.URL,
		SiteType:      page.SiteType,
		ParserVersion: s.Config.Version,
		Strategy:      strategy,
		Success:       result != nil,
		ErrorMessage:  errMessage,
	}
	if result != nil {
		attempt.ConfidenceScore = confidenceScore(result.Confidence)
		attempt.IngredientsCount = len(result.Ingredients)
		attempt.StepsCount = len(result.Steps)
	}
	fingerprint := page.Fingerprint

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()

		if err := s.Patterns.LogAttempt(ctx, attempt); err != nil {
			s.logDebug("attempt log failed", "url", attempt.URL, "err", err)
		}
		if fingerprint == "" {
			return
		}
		if err := s.Patterns.RecordObservation(ctx, attempt.SiteType, fingerprint, strategy, attempt.ParserVersion, attempt.Success); err != nil {
			s.logDebug("pattern update failed", "url", attempt.URL, "err", err)
		}
	}()
}

func (s *Selector) logDebug(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Debug(msg, args...)
	}
}

// reorderStrategies moves the recommended strategy to the front, keeping
// every other strategy in its configured relative order. A recommendation
// not present in the list leaves it untouched.
func reorderStrategies(strategies []recipeclip.Strategy, best recipeclip.Strategy) []recipeclip.Strategy {
	idx := -1
	for i, strategy := range strategies {
		if strategy == best {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return strategies
	}

	reordered := make([]recipeclip.Strategy, 0, len(strategies))
	reordered = append(reordered, best)
	reordered = append(reordered, strategies[:idx]...)
	reordered = append(reordered, strategies[idx+1:]...)
	return reordered
}

// confidenceScore maps the coarse confidence label onto [0,1] for attempt
// rows.
func confidenceScore(c recipeclip.Confidence) float64 {
	switch c {
	case recipeclip.ConfidenceHigh:
		return 0.9
	case recipeclip.ConfidenceMedium:
		return 0.6
	default:
		return 0.3
	}
}

// domainOf extracts the hostname for rate limiting. Unparseable URLs fall
// back to the raw string so they still serialize through one limiter.
func domainOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Hostname()
}
