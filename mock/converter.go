package mock

import "github.com/fwojciec/sitecrawl"

var _ sitecrawl.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitecrawl.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
