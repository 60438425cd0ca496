package sitecrawl

import (
	"context"
	"time"
)

// LogLine is a diagnostic message emitted by the page, such as a console
// message or a failed resource load.
type LogLine struct {
	Level     string    `json:"level"`
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a navigable browser tab.
// Implementations may use browser automation or plain HTTP.
type Session interface {
	// Navigate loads the URL and blocks until the page has loaded.
	// The implementation enforces its own page-load timeout.
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the URL of the loaded page after redirects.
	CurrentURL(ctx context.Context) (string, error)

	// LogLines returns the diagnostic messages collected since the last
	// navigation, oldest first. The returned slice is owned by the caller.
	LogLines(ctx context.Context) ([]LogLine, error)

	// HTML returns the rendered markup of the current page.
	HTML(ctx context.Context) (string, error)

	// Hrefs returns the href attribute of every anchor on the current page
	// in document order. Anchors without an href yield "".
	Hrefs(ctx context.Context) ([]string, error)

	// Close releases the session's resources.
	Close() error
}

// ReadyFunc blocks until the freshly opened start page is ready to be
// crawled, for example after a person has signed in.
type ReadyFunc func(ctx context.Context) error

// Authenticator performs the setup phase that precedes a crawl.
type Authenticator interface {
	// Authenticate opens startURL, waits for the ready signal and returns
	// a session positioned on the resulting page.
	Authenticate(ctx context.Context, startURL string) (Session, error)
}
