package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout bounds a single navigation including the wait for the
// load event.
const DefaultTimeout = 30 * time.Second

// Ensure Session implements sitecrawl.Session at compile time.
var _ sitecrawl.Session = (*Session)(nil)

// Session is a single browser tab.
//
// Session is not safe for concurrent use, except that console and log
// events are collected on a background goroutine.
type Session struct {
	browser *browser
	page    *rod.Page
	timeout time.Duration
	logs    *logBuffer
	stop    context.CancelFunc
}

// newSession opens a blank tab in b and starts collecting its console and
// log events.
func newSession(b *browser, timeout time.Duration) (*Session, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	if err := (proto.RuntimeEnable{}).Call(page); err != nil {
		return nil, fmt.Errorf("enabling runtime events: %w", err)
	}
	if err := (proto.LogEnable{}).Call(page); err != nil {
		return nil, fmt.Errorf("enabling log events: %w", err)
	}

	logs := newLogBuffer()
	ctx, stop := context.WithCancel(context.Background())
	wait := page.Context(ctx).EachEvent(logs.consoleCalled, logs.entryAdded)
	go wait()

	return &Session{
		browser: b,
		page:    page,
		timeout: timeout,
		logs:    logs,
		stop:    stop,
	}, nil
}

// Navigate loads url and waits for the load event. Log lines collected for
// the previous page are discarded.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page := s.page.Context(ctx).Timeout(s.timeout)
	defer page.CancelTimeout()

	s.logs.reset()
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// CurrentURL returns the URL of the tab after redirects.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// LogLines returns the console and log messages received since the last
// navigation.
func (s *Session) LogLines(_ context.Context) ([]sitecrawl.LogLine, error) {
	return s.logs.snapshot(), nil
}

// HTML returns the rendered DOM serialized as markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Hrefs returns the href attribute of every anchor in document order.
func (s *Session) Hrefs(ctx context.Context) ([]string, error) {
	els, err := s.page.Context(ctx).Elements("a")
	if err != nil {
		return nil, err
	}

	hrefs := make([]string, 0, len(els))
	for _, el := range els {
		href, err := el.Attribute("href")
		if err != nil {
			return nil, err
		}
		if href == nil {
			hrefs = append(hrefs, "")
			continue
		}
		hrefs = append(hrefs, *href)
	}
	return hrefs, nil
}

// Close stops event collection and shuts the browser down.
func (s *Session) Close() error {
	s.stop()
	return s.browser.Close()
}
