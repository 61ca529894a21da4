package recipeclip

import (
	"context"
	"time"
)

// ExtractionAttempt is one append-only log row per strategy execution. A
// single URL that tries three strategies before succeeding produces three
// rows, the last marked success. Rows are immutable once written.
type ExtractionAttempt struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	SiteType         SiteType  `json:"siteType"`
	ParserVersion    string    `json:"parserVersion"`
	Strategy         Strategy  `json:"strategy"`
	Success          bool      `json:"success"`
	ConfidenceScore  float64   `json:"confidenceScore,omitempty"`
	IngredientsCount int       `json:"ingredientsCount,omitempty"`
	StepsCount       int       `json:"stepsCount,omitempty"`
	ErrorMessage     string    `json:"errorMessage,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Validate returns an error if the attempt contains invalid fields.
func (a *ExtractionAttempt) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "attempt URL required")
	}
	if a.SiteType == "" {
		return Errorf(EINVALID, "attempt site type required")
	}
	if a.Strategy == "" {
		return Errorf(EINVALID, "attempt strategy required")
	}
	if a.ParserVersion == "" {
		return Errorf(EINVALID, "attempt parser version required")
	}
	return nil
}

// ExtractionPattern is the mutable aggregate of observed outcomes for one
// (site type, page fingerprint, strategy, parser version) key. The store owns
// the rate recomputation rule; the pipeline only appends observations.
// Patterns are never deleted; low-sample keys are simply untrusted.
type ExtractionPattern struct {
	SiteType      SiteType  `json:"siteType"`
	HTMLPattern   string    `json:"htmlPattern"`
	Strategy      Strategy  `json:"strategy"`
	ParserVersion string    `json:"parserVersion"`
	SuccessCount  int       `json:"successCount"`
	AttemptCount  int       `json:"attemptCount"`
	SuccessRate   float64   `json:"successRate"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PatternFilter represents a filter for FindPatterns.
type PatternFilter struct {
	SiteType *SiteType `json:"siteType"`
	Strategy *Strategy `json:"strategy"`

	// MinAttempts excludes low-sample patterns from the listing.
	MinAttempts int `json:"minAttempts"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AttemptFilter represents a filter for FindAttempts.
type AttemptFilter struct {
	SiteType *SiteType `json:"siteType"`
	Strategy *Strategy `json:"strategy"`
	Success  *bool     `json:"success"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PatternService is the durable record of which strategies have historically
// worked for which page shapes. All methods are best-effort from the
// pipeline's perspective: a store failure must never fail or delay an
// extraction result.
type PatternService interface {
	// BestStrategy returns the highest-success-rate strategy observed for a
	// (site type, fingerprint) pair under the given parser version.
	// Returns ENOTFOUND if no sufficiently sampled pattern exists.
	BestStrategy(ctx context.Context, site SiteType, fingerprint, parserVersion string) (Strategy, error)

	// RecordObservation folds one success/failure observation into the
	// pattern for the key, creating it on first sight. Updates are additive
	// and commutative: concurrent observers never lose updates.
	RecordObservation(ctx context.Context, site SiteType, fingerprint string, strategy Strategy, parserVersion string, success bool) error

	// LogAttempt appends one attempt row. Rows are never updated or deleted.
	LogAttempt(ctx context.Context, attempt *ExtractionAttempt) error

	// FindPatterns retrieves learned patterns matching the filter, ordered
	// by success rate. Read by reporting tools, not by the pipeline.
	FindPatterns(ctx context.Context, filter PatternFilter) ([]*ExtractionPattern, error)

	// FindAttempts retrieves attempt rows matching the filter, newest first.
	FindAttempts(ctx context.Context, filter AttemptFilter) ([]*ExtractionAttempt, error)
}
