package mock

import (
	"context"

	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.Carrier = (*Carrier)(nil)

// Carrier is a mock implementation of recipeclip.Carrier.
type Carrier struct {
	NameFn func() string
	ReadFn func(html string) (string, []string)
}

func (c *Carrier) Name() string {
	return c.NameFn()
}

func (c *Carrier) Read(html string) (string, []string) {
	return c.ReadFn(html)
}

var _ recipeclip.CarrierRegistry = (*CarrierRegistry)(nil)

// CarrierRegistry is a mock implementation of recipeclip.CarrierRegistry.
type CarrierRegistry struct {
	ForFn func(site recipeclip.SiteType) []recipeclip.Carrier
}

func (r *CarrierRegistry) For(site recipeclip.SiteType) []recipeclip.Carrier {
	return r.ForFn(site)
}

var _ recipeclip.SiteParser = (*SiteParser)(nil)

// SiteParser is a mock implementation of recipeclip.SiteParser.
type SiteParser struct {
	ParseFn func(ctx context.Context, url string) (*recipeclip.ExtractionResult, error)
}

func (p *SiteParser) Parse(ctx context.Context, url string) (*recipeclip.ExtractionResult, error) {
	return p.ParseFn(ctx, url)
}

var _ recipeclip.StrategyExecutor = (*StrategyExecutor)(nil)

// StrategyExecutor is a mock implementation of recipeclip.StrategyExecutor.
type StrategyExecutor struct {
	StrategyFn func() recipeclip.Strategy
	ExtractFn  func(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error)
}

func (e *StrategyExecutor) Strategy() recipeclip.Strategy {
	return e.StrategyFn()
}

func (e *StrategyExecutor) Extract(ctx context.Context, page *recipeclip.Page) (*recipeclip.ExtractionResult, error) {
	return e.ExtractFn(ctx, page)
}

var _ recipeclip.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter is a mock implementation of recipeclip.Fingerprinter.
type Fingerprinter struct {
	FingerprintFn func(html string) string
}

func (f *Fingerprinter) Fingerprint(html string) string {
	return f.FingerprintFn(html)
}

var _ recipeclip.OCRReader = (*OCRReader)(nil)

// OCRReader is a mock implementation of recipeclip.OCRReader.
type OCRReader struct {
	ReadTextFn func(ctx context.Context, url string) (string, error)
}

func (r *OCRReader) ReadText(ctx context.Context, url string) (string, error) {
	return r.ReadTextFn(ctx, url)
}

var _ recipeclip.OEmbedService = (*OEmbedService)(nil)

// OEmbedService is a mock implementation of recipeclip.OEmbedService.
type OEmbedService struct {
	LookupFn func(ctx context.Context, site recipeclip.SiteType, url string) (*recipeclip.OEmbedInfo, error)
}

func (s *OEmbedService) Lookup(ctx context.Context, site recipeclip.SiteType, url string) (*recipeclip.OEmbedInfo, error) {
	return s.LookupFn(ctx, site, url)
}
