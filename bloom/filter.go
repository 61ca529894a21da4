// Package bloom provides probabilistic text deduplication. The extraction
// pipeline merges annotations from several carriers that often read the same
// comment nodes; a Bloom filter drops repeats without holding every string.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for annotation deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a text value to the filter.
func (f *Filter) Add(text string) {
	f.f.AddString(text)
}

// Test returns true if the text might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(text string) bool {
	return f.f.TestString(text)
}

// TestAndAdd tests for membership and records the value in one pass.
// Returns true if the text might already have been present.
func (f *Filter) TestAndAdd(text string) bool {
	return f.f.TestAndAddString(text)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
