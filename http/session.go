// Package http implements sitecrawl.Session over plain HTTP for sites that
// render their links without JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout is the default timeout for a single page load.
// Kept consistent with rod.DefaultTimeout (30s).
const DefaultTimeout = 30 * time.Second

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 10 << 20

// Ensure Session implements sitecrawl.Session at compile time.
var _ sitecrawl.Session = (*Session)(nil)

// Session loads pages with an http.Client that keeps cookies between
// requests, like a browser tab would. JavaScript is not executed.
//
// Session is not safe for concurrent use.
type Session struct {
	client    *http.Client
	userAgent string
	now       func() time.Time

	current string
	body    string
	lines   []sitecrawl.LogLine
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout sets the timeout for each page load.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// NewSession creates a Session with an empty cookie jar.
func NewSession(opts ...Option) *Session {
	// cookiejar.New only fails on invalid options.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	s := &Session{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Navigate fetches url, following redirects. Transport failures are
// returned as errors. Error statuses load like they would in a browser and
// are reported as a "network" log line.
func (s *Session) Navigate(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	r, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}

	s.current = resp.Request.URL.String()
	s.body = string(body)
	s.lines = nil
	if resp.StatusCode >= http.StatusBadRequest {
		s.lines = append(s.lines, sitecrawl.LogLine{
			Level:     "error",
			Source:    "network",
			Message:   fmt.Sprintf("Failed to load resource: the server responded with a status of %d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode)),
			Timestamp: s.now(),
		})
	}
	return nil
}

// CurrentURL returns the final URL of the last navigation.
func (s *Session) CurrentURL(_ context.Context) (string, error) {
	return s.current, nil
}

// LogLines returns the log lines of the last navigation.
func (s *Session) LogLines(_ context.Context) ([]sitecrawl.LogLine, error) {
	out := make([]sitecrawl.LogLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// HTML returns the decoded body of the last navigation.
func (s *Session) HTML(_ context.Context) (string, error) {
	return s.body, nil
}

// Hrefs tokenizes the last body and returns the href of every anchor.
func (s *Session) Hrefs(_ context.Context) ([]string, error) {
	return hrefs(s.body)
}

// Close releases idle connections.
func (s *Session) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func hrefs(body string) ([]string, error) {
	var out []string
	z := html.NewTokenizer(strings.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return out, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" {
				continue
			}
			href := ""
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "href" {
					href = string(val)
					break
				}
			}
			out = append(out, href)
		}
	}
}
