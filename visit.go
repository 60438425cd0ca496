package sitecrawl

import (
	"context"
	"errors"
)

// Visit is what a Visitor receives for each crawled page.
// All fields are read after navigation has completed.
type Visit struct {
	URL  string
	Log  []LogLine
	Page Document
}

// Visitor acts on each crawled page.
type Visitor interface {
	// Visit is called once per visited page, synchronously.
	// A returned error is reported to the crawler as a callback failure.
	Visit(ctx context.Context, v *Visit) error
}

// VisitorFunc adapts an ordinary function to the Visitor interface.
type VisitorFunc func(ctx context.Context, v *Visit) error

// Visit calls f(ctx, v).
func (f VisitorFunc) Visit(ctx context.Context, v *Visit) error {
	return f(ctx, v)
}

// Visitors returns a Visitor that calls each of visitors in order.
// Every visitor runs even when an earlier one fails; the errors are joined.
func Visitors(visitors ...Visitor) Visitor {
	return VisitorFunc(func(ctx context.Context, v *Visit) error {
		var errs []error
		for _, visitor := range visitors {
			if visitor == nil {
				continue
			}
			if err := visitor.Visit(ctx, v); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
