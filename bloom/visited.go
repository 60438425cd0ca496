// Package bloom provides an approximate sitecrawl.VisitedSet backed by a
// Bloom filter.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/sitecrawl"
)

// Default sizing used by the CLI.
const (
	DefaultCapacity          = 100_000
	DefaultFalsePositiveRate = 0.001
)

var _ sitecrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet records visited URLs in constant memory.
//
// Contains may report a URL that was never added (a false positive), which
// makes the crawler skip that page. It never misses a URL that was added, so
// the crawl still terminates.
type VisitedSet struct {
	f     *bloom.BloomFilter
	count int
}

// NewVisitedSet creates a VisitedSet sized for n expected values
// with the given false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records each value.
func (s *VisitedSet) Add(values ...string) {
	for _, v := range values {
		if !s.f.TestAndAddString(v) {
			s.count++
		}
	}
}

// Contains reports whether value might have been added.
// False positives are possible; false negatives are not.
func (s *VisitedSet) Contains(value string) bool {
	return s.f.TestString(value)
}

// Len returns the number of added values that were not already reported
// as present. It undercounts by the number of false positives seen on Add.
func (s *VisitedSet) Len() int {
	return s.count
}

// EstimatedCount returns the filter's own estimate of its cardinality.
func (s *VisitedSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
