package mock

import "github.com/fwojciec/sitecrawl"

var _ sitecrawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of sitecrawl.Frontier.
type Frontier struct {
	PushFn func(href string) bool
	PopFn  func() (string, bool)
	LenFn  func() int
}

func (f *Frontier) Push(href string) bool {
	return f.PushFn(href)
}

func (f *Frontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

var _ sitecrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a mock implementation of sitecrawl.VisitedSet.
type VisitedSet struct {
	AddFn      func(values ...string)
	ContainsFn func(value string) bool
	LenFn      func() int
}

func (s *VisitedSet) Add(values ...string) {
	s.AddFn(values...)
}

func (s *VisitedSet) Contains(value string) bool {
	return s.ContainsFn(value)
}

func (s *VisitedSet) Len() int {
	return s.LenFn()
}
