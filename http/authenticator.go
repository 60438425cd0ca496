package http

import (
	"context"
	"fmt"

	"github.com/fwojciec/sitecrawl"
)

// Ensure Authenticator implements sitecrawl.Authenticator at compile time.
var _ sitecrawl.Authenticator = (*Authenticator)(nil)

// Authenticator opens the start page in a new Session.
type Authenticator struct {
	opts  []Option
	ready sitecrawl.ReadyFunc
}

// NewAuthenticator creates an Authenticator whose sessions are built with
// opts. If ready is not nil it is called after the start page has loaded.
func NewAuthenticator(ready sitecrawl.ReadyFunc, opts ...Option) *Authenticator {
	return &Authenticator{opts: opts, ready: ready}
}

// Authenticate loads startURL and waits for the ready signal.
func (a *Authenticator) Authenticate(ctx context.Context, startURL string) (sitecrawl.Session, error) {
	s := NewSession(a.opts...)
	if err := s.Navigate(ctx, startURL); err != nil {
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
