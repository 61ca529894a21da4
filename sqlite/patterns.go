package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recipeclip/recipeclip"
)

// Compile-time interface verification.
var _ recipeclip.PatternService = (*PatternService)(nil)

// DefaultMinSamples is how many observations a pattern needs before
// BestStrategy trusts it. Below the threshold the pipeline sticks to the
// static per-site ordering.
const DefaultMinSamples = 3

// PatternService implements recipeclip.PatternService using SQLite.
type PatternService struct {
	db         *DB
	minSamples int
}

// PatternOption configures a PatternService.
type PatternOption func(*PatternService)

// WithMinSamples sets the sample threshold for BestStrategy.
// Defaults to DefaultMinSamples.
func WithMinSamples(n int) PatternOption {
	return func(s *PatternService) {
		s.minSamples = n
	}
}

// NewPatternService creates a new PatternService.
func NewPatternService(db *DB, opts ...PatternOption) *PatternService {
	s := &PatternService{db: db, minSamples: DefaultMinSamples}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BestStrategy returns the highest-success-rate strategy observed for a
// (site type, fingerprint) pair under the given parser version. Returns
// ENOTFOUND if no sufficiently sampled pattern exists.
func (s *PatternService) BestStrategy(ctx context.Context, site recipeclip.SiteType, fingerprint, parserVersion string) (recipeclip.Strategy, error) {
	var strategy recipeclip.Strategy

	err := s.db.QueryRowContext(ctx, `
		SELECT strategy
		FROM extraction_patterns
		WHERE site_type = ? AND html_pattern = ? AND parser_version = ? AND attempt_count >= ?
		ORDER BY success_rate DESC, attempt_count DESC, strategy ASC
		LIMIT 1
	`, site, fingerprint, parserVersion, s.minSamples).Scan(&strategy)

	if err == sql.ErrNoRows {
		return "", recipeclip.Errorf(recipeclip.ENOTFOUND, "no learned pattern for this page shape")
	}
	if err != nil {
		return "", err
	}

	return strategy, nil
}

// RecordObservation folds one success/failure observation into the pattern
// for the key, creating it on first sight. The upsert is purely additive:
// counters increment in place and the rate is recomputed from the updated
// counters inside the statement, so concurrent observers never lose updates.
func (s *PatternService) RecordObservation(ctx context.Context, site recipeclip.SiteType, fingerprint string, strategy recipeclip.Strategy, parserVersion string, success bool) error {
	successInc := 0
	rate := 0.0
	if success {
		successInc = 1
		rate = 1.0
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extraction_patterns (site_type, html_pattern, strategy, parser_version, success_count, attempt_count, success_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (site_type, html_pattern, strategy, parser_version) DO UPDATE SET
			success_count = success_count + excluded.success_count,
			attempt_count = attempt_count + 1,
			success_rate = CAST(success_count + excluded.success_count AS REAL) / (attempt_count + 1),
			updated_at = excluded.updated_at
	`, site, fingerprint, strategy, parserVersion, successInc, rate,
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// LogAttempt appends one attempt row. Rows are never updated or deleted.
func (s *PatternService) LogAttempt(ctx context.Context, attempt *recipeclip.ExtractionAttempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	attempt.ID = uuid.New().String()
	attempt.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extraction_attempts (id, url, site_type, parser_version, strategy, success, confidence_score, ingredients_count, steps_count, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.ID, attempt.URL, attempt.SiteType, attempt.ParserVersion, attempt.Strategy,
		attempt.Success, attempt.ConfidenceScore, attempt.IngredientsCount, attempt.StepsCount,
		attempt.ErrorMessage, attempt.CreatedAt.Format(time.RFC3339))

	return err
}

// FindPatterns retrieves learned patterns matching the filter, ordered by
// success rate.
func (s *PatternService) FindPatterns(ctx context.Context, filter recipeclip.PatternFilter) ([]*recipeclip.ExtractionPattern, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT site_type, html_pattern, strategy, parser_version, success_count, attempt_count, success_rate, updated_at FROM extraction_patterns WHERE 1=1")

	if filter.SiteType != nil {
		query.WriteString(" AND site_type = ?")
		args = append(args, *filter.SiteType)
	}
	if filter.Strategy != nil {
		query.WriteString(" AND strategy = ?")
		args = append(args, *filter.Strategy)
	}
	if filter.MinAttempts > 0 {
		query.WriteString(" AND attempt_count >= ?")
		args = append(args, filter.MinAttempts)
	}

	query.WriteString(" ORDER BY success_rate DESC, attempt_count DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patterns := []*recipeclip.ExtractionPattern{}
	for rows.Next() {
		var p recipeclip.ExtractionPattern
		var updatedAt string

		if err := rows.Scan(&p.SiteType, &p.HTMLPattern, &p.Strategy, &p.ParserVersion,
			&p.SuccessCount, &p.AttemptCount, &p.SuccessRate, &updatedAt); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		patterns = append(patterns, &p)
	}
	return patterns, rows.Err()
}

// FindAttempts retrieves attempt rows matching the filter, newest first.
func (s *PatternService) FindAttempts(ctx context.Context, filter recipeclip.AttemptFilter) ([]*recipeclip.ExtractionAttempt, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, site_type, parser_version, strategy, success, confidence_score, ingredients_count, steps_count, error_message, created_at FROM extraction_attempts WHERE 1=1")

	if filter.SiteType != nil {
		query.WriteString(" AND site_type = ?")
		args = append(args, *filter.SiteType)
	}
	if filter.Strategy != nil {
		query.WriteString(" AND strategy = ?")
		args = append(args, *filter.Strategy)
	}
	if filter.Success != nil {
		query.WriteString(" AND success = ?")
		args = append(args, *filter.Success)
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []*recipeclip.ExtractionAttempt{}
	for rows.Next() {
		var a recipeclip.ExtractionAttempt
		var createdAt string

		if err := rows.Scan(&a.ID, &a.URL, &a.SiteType, &a.ParserVersion, &a.Strategy,
			&a.Success, &a.ConfidenceScore, &a.IngredientsCount, &a.StepsCount,
			&a.ErrorMessage, &createdAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}
