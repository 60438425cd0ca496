package crawl

import (
	"sort"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is an exact, map-backed sitecrawl.VisitedSet.
// Values are stored verbatim; no normalization is applied.
type VisitedSet struct {
	m map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{m: make(map[string]struct{})}
}

// Add records each value.
func (s *VisitedSet) Add(values ...string) {
	for _, v := range values {
		s.m[v] = struct{}{}
	}
}

// Contains reports whether value has been recorded.
func (s *VisitedSet) Contains(value string) bool {
	_, ok := s.m[value]
	return ok
}

// Len returns the number of distinct recorded values.
func (s *VisitedSet) Len() int {
	return len(s.m)
}

// Values returns the recorded values in sorted order.
func (s *VisitedSet) Values() []string {
	values := make([]string, 0, len(s.m))
	for v := range s.m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
