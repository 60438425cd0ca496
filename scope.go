package sitecrawl

import (
	"net/url"
	"strings"
)

// InScope reports whether candidate belongs to the same domain as reference.
//
// An empty candidate (an anchor without an href) is never in scope. A
// root-relative path ("/docs") is always in scope. Otherwise the host of
// candidate must equal the reference domain exactly: no case folding and no
// subdomain matching, so "www.example.com" and "example.com" differ.
// Protocol-relative candidates ("//host/path") are compared by their host.
//
// reference is either a bare domain ("example.com") or a URL, in which case
// its host is used. Unparsable inputs are out of scope.
func InScope(candidate, reference string) bool {
	if candidate == "" {
		return false
	}
	if strings.HasPrefix(candidate, "/") && !strings.HasPrefix(candidate, "//") {
		return true
	}

	domain := reference
	if strings.Contains(reference, "/") {
		u, err := url.Parse(reference)
		if err != nil {
			return false
		}
		domain = u.Host
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	return u.Host == domain
}
