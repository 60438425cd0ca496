package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Session = (*Session)(nil)

// Session is a mock implementation of sitecrawl.Session.
type Session struct {
	NavigateFn   func(ctx context.Context, url string) error
	CurrentURLFn func(ctx context.Context) (string, error)
	LogLinesFn   func(ctx context.Context) ([]sitecrawl.LogLine, error)
	HTMLFn       func(ctx context.Context) (string, error)
	HrefsFn      func(ctx context.Context) ([]string, error)
	CloseFn      func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.CurrentURLFn(ctx)
}

func (s *Session) LogLines(ctx context.Context) ([]sitecrawl.LogLine, error) {
	return s.LogLinesFn(ctx)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) Hrefs(ctx context.Context) ([]string, error) {
	return s.HrefsFn(ctx)
}

func (s *Session) Close() error {
	return s.CloseFn()
}

var _ sitecrawl.Authenticator = (*Authenticator)(nil)

// Authenticator is a mock implementation of sitecrawl.Authenticator.
type Authenticator struct {
	AuthenticateFn func(ctx context.Context, startURL string) (sitecrawl.Session, error)
}

func (a *Authenticator) Authenticate(ctx context.Context, startURL string) (sitecrawl.Session, error) {
	return a.AuthenticateFn(ctx, startURL)
}
