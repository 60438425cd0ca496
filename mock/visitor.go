package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Visitor = (*Visitor)(nil)

// Visitor is a mock implementation of sitecrawl.Visitor.
type Visitor struct {
	VisitFn func(ctx context.Context, v *sitecrawl.Visit) error
}

func (v *Visitor) Visit(ctx context.Context, visit *sitecrawl.Visit) error {
	return v.VisitFn(ctx, visit)
}

var _ sitecrawl.LinkFilter = (*LinkFilter)(nil)

// LinkFilter is a mock implementation of sitecrawl.LinkFilter.
type LinkFilter struct {
	AllowFn func(href string) bool
}

func (f *LinkFilter) Allow(href string) bool {
	return f.AllowFn(href)
}
