// Package glob implements sitecrawl.LinkFilter with shell-style patterns
// compiled by github.com/gobwas/glob.
package glob

import (
	"net/url"

	"github.com/fwojciec/sitecrawl"
	"github.com/gobwas/glob"
)

var _ sitecrawl.LinkFilter = (*Filter)(nil)

// Filter rejects hrefs that match any of its exclude patterns.
//
// Patterns use '/' as separator: '*' stays within one path segment and '**'
// spans segments. A pattern is tried against the href as written and, for
// absolute hrefs, against its path, so "/logout" excludes both "/logout" and
// "https://example.com/logout".
type Filter struct {
	patterns []string
	excludes []glob.Glob
}

// NewFilter compiles the exclude patterns.
// Returns EINVALID naming the first pattern that does not compile.
func NewFilter(patterns ...string) (*Filter, error) {
	f := &Filter{patterns: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.excludes = append(f.excludes, g)
	}
	return f, nil
}

// Allow reports whether href matches none of the exclude patterns.
func (f *Filter) Allow(href string) bool {
	path := ""
	if u, err := url.Parse(href); err == nil && u.Host != "" {
		path = u.EscapedPath()
	}

	for _, g := range f.excludes {
		if g.Match(href) {
			return false
		}
		if path != "" && g.Match(path) {
			return false
		}
	}
	return true
}

// Patterns returns the patterns the filter was built from.
func (f *Filter) Patterns() []string {
	return f.patterns
}
