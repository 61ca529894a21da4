package pipeline

import (
	"context"
	"sort"
	"strings"

	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/bloom"
	"github.com/recipeclip/recipeclip/caption"
	"github.com/recipeclip/recipeclip/score"
	"github.com/recipeclip/recipeclip/title"
	"golang.org/x/sync/errgroup"
)

// maxAnnotations caps how many merged annotations feed section splitting.
const maxAnnotations = 20

// altTextVideoWeight down-weights the alt-text carrier on video platforms,
// where alt text is usually decorative rather than recipe content.
const altTextVideoWeight = 0.5

// buildResult turns a carrier reading into an extraction result: split the
// text into sections, extract a display title, and derive confidence. An
// empty or recipe-free reading is ENOTFOUND.
func buildResult(strategy recipeclip.Strategy, captionText string, annotations []string, imageURL string) (*recipeclip.ExtractionResult, error) {
	full := captionText
	if len(annotations) > 0 {
		full = strings.TrimSpace(captionText + "\n" + strings.Join(annotations, "\n"))
	}
	if strings.TrimSpace(full) == "" {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "carrier produced no text")
	}

	ingredients, steps := caption.Sections(captionText, annotations)
	name := title.Extract(full)

	if len(ingredients) == 0 && len(steps) == 0 && score.Score(full) <= 0 {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "text does not look like a recipe")
	}

	return &recipeclip.ExtractionResult{
		Success:      true,
		Title:        name,
		Ingredients:  ingredients,
		Steps:        steps,
		ImageURL:     imageURL,
		Confidence:   recipeclip.DeriveConfidence(strategy, len(ingredients), len(steps), name != title.Placeholder),
		StrategyUsed: strategy,
	}, nil
}

var _ recipeclip.StrategyExecutor = (*CarrierStrategy)(nil)

// CarrierStrategy runs a single carrier against the rendered page and builds
// a result from its reading. Used for the app-state, framework-data, and
// meta-tag strategies, each of which trusts exactly one surface.
type CarrierStrategy struct {
	strategy recipeclip.Strategy
	carrier  recipeclip.Carrier

	// Image, when set, supplies a hero image URL from the page markup.
	Image func(html string) string
}

// NewCarrierStrategy creates a CarrierStrategy.
func NewCarrierStrategy(strategy recipeclip.Strategy, carrier recipeclip.Carrier) *CarrierStrategy {
	return &CarrierStrategy{strategy: strategy, carrier: carrier}
}

// Strategy returns the strategy name.
func (s *CarrierStrategy) Strategy() recipeclip.Strategy {
	return s.strategy
}

// Extract reads the carrier and builds a result.
func (s *CarrierStrategy) Extract(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	captionText, annotations := s.carrier.Read(page.HTML)

	var imageURL string
	if s.Image != nil {
		imageURL = s.Image(page.HTML)
	}

	return buildResult(s.strategy, captionText, annotations, imageURL)
}

var _ recipeclip.StrategyExecutor = (*StructuredDataStrategy)(nil)

// StructuredDataStrategy reads structured linked-data blocks. On recognized
// publisher sites it delegates to the site parser, which re-fetches the page
// with reduced-variant fallbacks and parses the typed recipe object; on
// social pages it reads the structured-data carrier like any other surface.
type StructuredDataStrategy struct {
	carrier recipeclip.Carrier
	parsers map[recipeclip.SiteType]recipeclip.SiteParser

	// Image, when set, supplies a hero image URL from the page markup.
	Image func(html string) string
}

// NewStructuredDataStrategy creates a StructuredDataStrategy. The parsers
// table may be nil when no publisher parsing is wanted.
func NewStructuredDataStrategy(carrier recipeclip.Carrier, parsers map[recipeclip.SiteType]recipeclip.SiteParser) *StructuredDataStrategy {
	return &StructuredDataStrategy{carrier: carrier, parsers: parsers}
}

// Strategy returns the strategy name.
func (s *StructuredDataStrategy) Strategy() recipeclip.Strategy {
	return recipeclip.StrategyStructuredData
}

// Extract parses structured data out of the page or delegates to the site
// parser for recognized publishers.
func (s *StructuredDataStrategy) Extract(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error) {
	if parser, ok := s.parsers[page.SiteType]; ok {
		return parser.Parse(ctx, page.URL)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	captionText, annotations := s.carrier.Read(page.HTML)

	var imageURL string
	if s.Image != nil {
		imageURL = s.Image(page.HTML)
	}

	return buildResult(recipeclip.StrategyStructuredData, captionText, annotations, imageURL)
}

// TextExtractor pulls readable body text out of raw HTML. Implemented by
// trafilatura.Extractor; used as the DOM strategy's last fallback.
type TextExtractor interface {
	Extract(rawHTML string) (title, text string, err error)
}

var _ recipeclip.StrategyExecutor = (*DOMStrategy)(nil)

// DOMStrategy reads every carrier for the site concurrently, scores each
// reading into a SourceCandidate, and builds a result from the best one.
// A challenger re-render can promote a strictly better reading from pages
// that finish hydrating late.
type DOMStrategy struct {
	carriers recipeclip.CarrierRegistry

	// Renderer, when set, enables the challenger re-read: the page is
	// rendered a second time and the fresh reading wins only if its score
	// strictly exceeds the first.
	Renderer recipeclip.Renderer

	// Text, when set, extracts readable body text as a fallback when no
	// carrier produces a scoring candidate.
	Text TextExtractor

	// Image, when set, supplies a hero image URL from the page markup.
	Image func(html string) string
}

// NewDOMStrategy creates a DOMStrategy over a carrier registry.
func NewDOMStrategy(carriers recipeclip.CarrierRegistry) *DOMStrategy {
	return &DOMStrategy{carriers: carriers}
}

// Strategy returns the strategy name.
func (s *DOMStrategy) Strategy() recipeclip.Strategy {
	return recipeclip.StrategyDOM
}

// Extract reads all carriers, picks the best-scoring candidate, and builds
// a result from its caption plus the deduplicated annotations of every
// candidate.
func (s *DOMStrategy) Extract(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error) {
	candidates, err := s.readCandidates(ctx, page.SiteType, page.HTML)
	if err != nil {
		return nil, err
	}

	best, ok := bestCandidate(candidates)
	if !ok || best.Score <= 0 {
		if fallback, found := s.textFallback(page.HTML); found {
			best, ok = fallback, true
		}
	}
	if !ok || best.Score <= 0 {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "no carrier produced recipe content")
	}

	if challenger, found := s.challenge(ctx, page, best.Score); found {
		best = challenger
	}

	annotations := mergeAnnotations(best, candidates)

	var imageURL string
	if s.Image != nil {
		imageURL = s.Image(page.HTML)
	}

	return buildResult(recipeclip.StrategyDOM, best.Caption, annotations, imageURL)
}

// readCandidates runs every carrier for the site concurrently, packing each
// reading into a scored SourceCandidate.
func (s *DOMStrategy) readCandidates(ctx context.Context, site recipeclip.SiteType, html string) ([]recipeclip.SourceCandidate, error) {
	carriers := s.carriers.For(site)
	candidates := make([]recipeclip.SourceCandidate, len(carriers))

	g, _ := errgroup.WithContext(ctx)
	for i, carrier := range carriers {
		g.Go(func() error {
			captionText, annotations := carrier.Read(html)
			candidates[i] = newCandidate(carrier.Name(), site, captionText, annotations)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// challenge re-renders the page and re-reads its carriers, returning the
// fresh best candidate only if its score strictly exceeds the incumbent's.
func (s *DOMStrategy) challenge(ctx context.Context, page *recipeclip.Page, incumbent float64) (recipeclip.SourceCandidate, bool) {
	if s.Renderer == nil {
		return recipeclip.SourceCandidate{}, false
	}

	html, err := s.Renderer.Render(ctx, page.URL)
	if err != nil {
		return recipeclip.SourceCandidate{}, false
	}

	candidates, err := s.readCandidates(ctx, page.SiteType, html)
	if err != nil {
		return recipeclip.SourceCandidate{}, false
	}

	best, ok := bestCandidate(candidates)
	if !ok || best.Score <= incumbent {
		return recipeclip.SourceCandidate{}, false
	}
	return best, true
}

// textFallback extracts readable body text when no carrier scored.
func (s *DOMStrategy) textFallback(html string) (recipeclip.SourceCandidate, bool) {
	if s.Text == nil {
		return recipeclip.SourceCandidate{}, false
	}
	name, text, err := s.Text.Extract(html)
	if err != nil || text == "" {
		return recipeclip.SourceCandidate{}, false
	}
	if name != "" {
		text = name + "\n" + text
	}
	candidate := newCandidate("visible_text", recipeclip.SiteUnknown, text, nil)
	return candidate, candidate.Score > 0
}

// newCandidate scores one carrier reading. Alt text on video platforms is
// down-weighted because it is usually decorative there.
func newCandidate(key string, site recipeclip.SiteType, captionText string, annotations []string) recipeclip.SourceCandidate {
	full := captionText
	if len(annotations) > 0 {
		full = captionText + "\n" + strings.Join(annotations, "\n")
	}

	s := score.Score(full)
	if key == "alt_text" && (site == recipeclip.SiteTikTok || site == recipeclip.SiteInstagram) {
		s *= altTextVideoWeight
	}

	return recipeclip.SourceCandidate{
		Key:         key,
		Caption:     captionText,
		Annotations: annotations,
		RawLength:   len(full),
		Score:       s,
	}
}

// bestCandidate sorts by score, breaking ties on raw length.
func bestCandidate(candidates []recipeclip.SourceCandidate) (recipeclip.SourceCandidate, bool) {
	if len(candidates) == 0 {
		return recipeclip.SourceCandidate{}, false
	}
	sorted := make([]recipeclip.SourceCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].RawLength > sorted[j].RawLength
	})
	return sorted[0], true
}

// mergeAnnotations combines the winner's annotations with those of every
// other candidate, deduplicated, winner first.
func mergeAnnotations(best recipeclip.SourceCandidate, candidates []recipeclip.SourceCandidate) []string {
	seen := bloom.NewFilter(1024, 0.001)
	var merged []string

	add := func(values []string) {
		for _, v := range values {
			if len(merged) >= maxAnnotations {
				return
			}
			key := strings.ToLower(strings.TrimSpace(v))
			if key == "" || seen.TestAndAdd(key) {
				continue
			}
			merged = append(merged, v)
		}
	}

	add(best.Annotations)
	for _, c := range candidates {
		if c.Key != best.Key {
			add(c.Annotations)
		}
	}
	return merged
}

var _ recipeclip.StrategyExecutor = (*OEmbedStrategy)(nil)

// OEmbedStrategy resolves the post through the platform's oEmbed endpoint.
// Explicitly partial: a title and thumbnail, never ingredients or steps.
type OEmbedStrategy struct {
	svc recipeclip.OEmbedService
}

// NewOEmbedStrategy creates an OEmbedStrategy.
func NewOEmbedStrategy(svc recipeclip.OEmbedService) *OEmbedStrategy {
	return &OEmbedStrategy{svc: svc}
}

// Strategy returns the strategy name.
func (s *OEmbedStrategy) Strategy() recipeclip.Strategy {
	return recipeclip.StrategyOEmbed
}

// Extract looks the post up and builds a partial result from the preview.
func (s *OEmbedStrategy) Extract(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error) {
	if s.svc == nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "no oEmbed service configured")
	}

	info, err := s.svc.Lookup(ctx, page.SiteType, page.URL)
	if err != nil {
		return nil, err
	}

	name := title.Extract(info.Title)
	return &recipeclip.ExtractionResult{
		Success:      true,
		Title:        name,
		Ingredients:  []string{},
		Steps:        []string{},
		ImageURL:     info.ThumbnailURL,
		Confidence:   recipeclip.ConfidenceLow,
		StrategyUsed: recipeclip.StrategyOEmbed,
	}, nil
}

var _ recipeclip.StrategyExecutor = (*OCRStrategy)(nil)

// OCRStrategy recovers text from a screenshot of the rendered page. The
// reader is an external collaborator; without one the strategy reports
// itself unavailable and the selector moves on.
type OCRStrategy struct {
	reader recipeclip.OCRReader
}

// NewOCRStrategy creates an OCRStrategy.
func NewOCRStrategy(reader recipeclip.OCRReader) *OCRStrategy {
	return &OCRStrategy{reader: reader}
}

// Strategy returns the strategy name.
func (s *OCRStrategy) Strategy() recipeclip.Strategy {
	return recipeclip.StrategyOCR
}

// Extract reads on-screen text and builds a result from it.
func (s *OCRStrategy) Extract(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error) {
	if s.reader == nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "no OCR reader configured")
	}

	text, err := s.reader.ReadText(ctx, page.URL)
	if err != nil {
		return nil, err
	}

	return buildResult(recipeclip.StrategyOCR, text, nil, "")
}
