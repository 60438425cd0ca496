package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure Authenticator implements sitecrawl.Authenticator at compile time.
var _ sitecrawl.Authenticator = (*Authenticator)(nil)

// Authenticator launches a browser, opens the start page and hands control
// to a person (or script) until the ready signal fires.
type Authenticator struct {
	headless bool
	timeout  time.Duration
	ready    sitecrawl.ReadyFunc
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithHeadless runs Chrome without a window. Sign-in flows that need a
// person require a visible browser, so the default is false.
func WithHeadless(headless bool) Option {
	return func(a *Authenticator) {
		a.headless = headless
	}
}

// WithTimeout sets the page-load timeout for every navigation.
// Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Authenticator) {
		a.timeout = d
	}
}

// WithReady sets the function that blocks until the start page is ready.
// Without it the session is returned as soon as the start page has loaded.
func WithReady(ready sitecrawl.ReadyFunc) Option {
	return func(a *Authenticator) {
		a.ready = ready
	}
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(opts ...Option) *Authenticator {
	a := &Authenticator{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate launches Chrome, loads startURL and waits for the ready
// signal. The returned session owns the browser; closing it kills Chrome.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func (a *Authenticator) Authenticate(ctx context.Context, startURL string) (sitecrawl.Session, error) {
	b, err := launchBrowser(a.headless)
	if err != nil {
		return nil, sitecrawl.Wrapf(err, sitecrawl.EINTERNAL, "start browser")
	}

	s, err := newSession(b, a.timeout)
	if err != nil {
		_ = b.Close()
		return nil, sitecrawl.Wrapf(err, sitecrawl.EINTERNAL, "open session")
	}

	if err := s.Navigate(ctx, startURL); err != nil {
		_ = s.Close()
		return nil, sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "open %s", startURL)
	}

	if a.ready != nil {
		if err := a.ready(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("waiting for start page: %w", err)
		}
	}
	return s, nil
}
