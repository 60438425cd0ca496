// Package slog provides log/slog decorators for sitecrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingSession implements sitecrawl.Session.
var _ sitecrawl.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session and logs every navigation.
type LoggingSession struct {
	next   sitecrawl.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next sitecrawl.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Navigate logs the URL, duration and error of the navigation.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

func (s *LoggingSession) CurrentURL(ctx context.Context) (string, error) {
	return s.next.CurrentURL(ctx)
}

func (s *LoggingSession) LogLines(ctx context.Context) ([]sitecrawl.LogLine, error) {
	return s.next.LogLines(ctx)
}

func (s *LoggingSession) HTML(ctx context.Context) (string, error) {
	return s.next.HTML(ctx)
}

// Hrefs logs the number of anchors found at debug level.
func (s *LoggingSession) Hrefs(ctx context.Context) (hrefs []string, err error) {
	defer func() {
		s.logger.Debug("hrefs",
			"count", len(hrefs),
			"err", err,
		)
	}()
	return s.next.Hrefs(ctx)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}

// Ensure LoggingAuthenticator implements sitecrawl.Authenticator.
var _ sitecrawl.Authenticator = (*LoggingAuthenticator)(nil)

// LoggingAuthenticator wraps an Authenticator and returns logging sessions.
type LoggingAuthenticator struct {
	next   sitecrawl.Authenticator
	logger *slog.Logger
}

// NewLoggingAuthenticator creates a new LoggingAuthenticator.
func NewLoggingAuthenticator(next sitecrawl.Authenticator, logger *slog.Logger) *LoggingAuthenticator {
	return &LoggingAuthenticator{next: next, logger: logger}
}

// Authenticate logs the setup phase, which includes the time spent waiting
// for the ready signal, and wraps the session in a LoggingSession.
func (a *LoggingAuthenticator) Authenticate(ctx context.Context, startURL string) (session sitecrawl.Session, err error) {
	defer func(begin time.Time) {
		a.logger.Info("authenticate",
			"url", startURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	session, err = a.next.Authenticate(ctx, startURL)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(session, a.logger), nil
}
