package recipeclip

// Strategy names a self-contained method of attempting extraction. The set
// is closed: the pattern store keys learned success rates by these names, so
// renaming one orphans its history.
type Strategy string

// Extraction strategies, roughly in default cost/reliability order.
const (
	StrategyAppState       Strategy = "app_state"       // embedded client-side state blob
	StrategyNextData       Strategy = "next_data"       // server-rendered framework data payload
	StrategyStructuredData Strategy = "structured_data" // JSON-LD blocks or publisher site parser
	StrategyMetaTags       Strategy = "meta_tags"       // social-preview meta tags
	StrategyDOM            Strategy = "dom"             // rendered DOM carrier sweep
	StrategyOEmbed         Strategy = "oembed"          // platform oEmbed endpoint
	StrategyOCR            Strategy = "ocr"             // screenshot/OCR fallback
)

// ParserVersion identifies the current extraction rule set. Learned patterns
// are keyed by this version so a rule change starts a fresh learning history
// instead of trusting rates observed under old rules.
const ParserVersion = "v2"

// ParserConfig holds the versioned, site-type-keyed default strategy
// ordering. The pipeline reprioritizes this ordering per attempt using the
// pattern store, but never adds or removes strategies at runtime.
type ParserConfig struct {
	Version    string
	Strategies map[SiteType][]Strategy
}

// DefaultParserConfig returns the built-in strategy ordering.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Version: ParserVersion,
		Strategies: map[SiteType][]Strategy{
			SiteTikTok: {
				StrategyAppState,
				StrategyNextData,
				StrategyStructuredData,
				StrategyMetaTags,
				StrategyDOM,
				StrategyOEmbed,
				StrategyOCR,
			},
			SiteInstagram: {
				StrategyNextData,
				StrategyStructuredData,
				StrategyMetaTags,
				StrategyDOM,
				StrategyOEmbed,
				StrategyOCR,
			},
			SiteRecipeSite: {
				StrategyStructuredData,
				StrategyMetaTags,
				StrategyDOM,
			},
			SiteUnknown: {
				StrategyStructuredData,
				StrategyMetaTags,
				StrategyDOM,
				StrategyOEmbed,
			},
		},
	}
}

// StrategiesFor returns a copy of the configured ordering for a site type,
// falling back to the SiteUnknown ordering. Callers own the returned slice.
func (c ParserConfig) StrategiesFor(site SiteType) []Strategy {
	strategies, ok := c.Strategies[site]
	if !ok {
		strategies = c.Strategies[SiteUnknown]
	}
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}
