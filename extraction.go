package recipeclip

import "context"

// Confidence is a coarse trust label attached to a successful result,
// derived from which strategy succeeded and how many structured fields it
// populated.
type Confidence string

// Confidence levels.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ExtractionResult is the outward contract of an extraction attempt. It is
// created fresh per call, owned by the caller, and never mutated after
// return. All fields come from the single strategy named in StrategyUsed;
// fields are never mixed across strategies.
type ExtractionResult struct {
	Success      bool       `json:"success"`
	Title        string     `json:"title,omitempty"`
	Ingredients  []string   `json:"ingredients"`
	Steps        []string   `json:"steps"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	Confidence   Confidence `json:"confidence"`
	StrategyUsed Strategy   `json:"strategyUsed"`
	Err          string     `json:"error,omitempty"`
}

// Validate returns an error if the result is not well-formed.
func (r *ExtractionResult) Validate() error {
	if r.StrategyUsed == "" {
		return Errorf(EINVALID, "extraction result strategy required")
	}
	if r.Success {
		if r.Title == "" && len(r.Ingredients) == 0 && len(r.Steps) == 0 {
			return Errorf(EINVALID, "successful result must populate at least one field")
		}
	} else if r.Err == "" {
		return Errorf(EINVALID, "failed result must carry an error message")
	}
	return nil
}

// DeriveConfidence maps a winning strategy and its populated field counts to
// a coarse confidence label. Structured publisher markup is trusted most;
// preview surfaces (meta tags, oEmbed) least. Missing either list downgrades
// one level.
func DeriveConfidence(strategy Strategy, ingredients, steps int, titled bool) Confidence {
	var c Confidence
	switch strategy {
	case StrategyStructuredData:
		c = ConfidenceHigh
	case StrategyAppState, StrategyNextData, StrategyDOM:
		c = ConfidenceMedium
	default:
		c = ConfidenceLow
	}

	if ingredients == 0 || steps == 0 || !titled {
		switch c {
		case ConfidenceHigh:
			c = ConfidenceMedium
		case ConfidenceMedium:
			c = ConfidenceLow
		}
	}
	return c
}

// Page is the immutable per-attempt context shared by strategies: the target
// URL, its site classification, the rendered markup, and the markup's
// structural fingerprint.
type Page struct {
	URL         string
	SiteType    SiteType
	HTML        string
	Fingerprint string
}

// SourceCandidate is the scored output of one carrier read. It exists only
// for the duration of one extraction call and is never persisted. Score is
// always a pure function of Caption and Annotations via the content scorer.
type SourceCandidate struct {
	Key         string
	Caption     string
	Annotations []string
	RawLength   int
	Score       float64
}

// Carrier reads one specific surface of a rendered page that may contain
// recipe text. Implementations are independent, side-effect-free, and never
// fail: any internal fault yields the empty form.
type Carrier interface {
	// Name returns the carrier's identifier (e.g., "app_state", "meta").
	Name() string

	// Read pulls a caption and an ordered annotation list out of rendered
	// markup. Missing nodes and malformed payloads yield ("", nil).
	Read(html string) (caption string, annotations []string)
}

// CarrierRegistry returns the carrier set for a site type, in trust order.
type CarrierRegistry interface {
	For(site SiteType) []Carrier
}

// SiteParser extracts a recipe from a recognized publisher page, bypassing
// carrier heuristics. It fetches the page itself (including reduced/AMP
// variants) and parses structured recipe markup directly.
type SiteParser interface {
	Parse(ctx context.Context, url string) (*ExtractionResult, error)
}

// StrategyExecutor runs one named strategy against a page. Errors mark the
// strategy as failed; they never cross the pipeline boundary.
type StrategyExecutor interface {
	Strategy() Strategy
	Extract(ctx context.Context, page *Page) (*ExtractionResult, error)
}

// Fingerprinter computes a normalized structural fingerprint of page markup,
// stable across incidental whitespace and content churn but sensitive to
// real structural changes. The pipeline treats the output as opaque.
type Fingerprinter interface {
	Fingerprint(html string) string
}

// OCRReader recovers visible text from a screenshot of a rendered page. The
// implementation is an external collaborator; the pipeline only depends on
// this interface and treats absence as strategy failure.
type OCRReader interface {
	ReadText(ctx context.Context, url string) (string, error)
}

// OEmbedInfo is the subset of an oEmbed response the pipeline consumes.
type OEmbedInfo struct {
	Title        string
	AuthorName   string
	ThumbnailURL string
	Provider     string
}

// OEmbedService resolves a post URL through a platform's oEmbed endpoint.
type OEmbedService interface {
	Lookup(ctx context.Context, site SiteType, url string) (*OEmbedInfo, error)
}
