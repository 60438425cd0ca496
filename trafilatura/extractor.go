// Package trafilatura implements sitecrawl.Extractor with
// github.com/markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/sitecrawl"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitecrawl.Extractor at compile time.
var _ sitecrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from a page.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with fallback extractors enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the title and main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*sitecrawl.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, sitecrawl.Wrapf(err, sitecrawl.ENOTFOUND, "no main content")
	}
	if result.ContentNode == nil {
		return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &sitecrawl.Content{
		Title: result.Metadata.Title,
		HTML:  contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
