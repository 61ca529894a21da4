package goquery

import "github.com/recipeclip/recipeclip"

var _ recipeclip.CarrierRegistry = (*Registry)(nil)

// Registry returns the carrier set for each site type, in trust order.
// Dispatch is a lookup table keyed by the closed SiteType variant rather
// than runtime markup inspection: per-site quirks live in the table, not in
// the carriers.
type Registry struct {
	sets map[recipeclip.SiteType][]recipeclip.Carrier
}

// NewRegistry creates a Registry with the default carrier sets.
func NewRegistry(opts ...VisibleOption) *Registry {
	appState := NewAppStateCarrier()
	nextData := NewNextDataCarrier()
	structured := NewStructuredDataCarrier()
	meta := NewMetaCarrier()
	visible := NewVisibleTextCarrier(opts...)
	altText := NewAltTextCarrier()

	return &Registry{
		sets: map[recipeclip.SiteType][]recipeclip.Carrier{
			recipeclip.SiteTikTok: {
				appState, nextData, structured, meta, visible, altText,
			},
			recipeclip.SiteInstagram: {
				nextData, structured, meta, visible, altText,
			},
			recipeclip.SiteRecipeSite: {
				structured, meta, visible, altText,
			},
			recipeclip.SiteUnknown: {
				structured, meta, visible, altText,
			},
		},
	}
}

// For returns the carriers for a site type in trust order, falling back to
// the SiteUnknown set.
func (r *Registry) For(site recipeclip.SiteType) []recipeclip.Carrier {
	carriers, ok := r.sets[site]
	if !ok {
		carriers = r.sets[recipeclip.SiteUnknown]
	}
	out := make([]recipeclip.Carrier, len(carriers))
	copy(out, carriers)
	return out
}
