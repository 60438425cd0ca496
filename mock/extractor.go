package mock

import "github.com/fwojciec/sitecrawl"

var _ sitecrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitecrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitecrawl.Content, error)
}

func (e *Extractor) Extract(html string) (*sitecrawl.Content, error) {
	return e.ExtractFn(html)
}
