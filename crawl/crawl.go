// Package crawl provides the same-domain crawl loop.
// It owns the frontier and visited set, drives a sitecrawl.Session from page
// to page and hands every visited page to a sitecrawl.Visitor.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// FailurePolicy decides what happens when a single link cannot be visited.
type FailurePolicy int

const (
	// AbortOnError stops the crawl at the first navigation or visitor error.
	AbortOnError FailurePolicy = iota
	// ContinueOnError logs and skips the failing link and keeps crawling.
	ContinueOnError
)

// Result holds the outcome of a crawl.
type Result struct {
	// Visited is the number of distinct entries in the visited set.
	// A page reached through several spellings counts once per spelling.
	Visited int
	// Pages is the number of pages handed to the visitor.
	Pages int
	// Failed is the number of links that could not be visited.
	// A page whose visitor failed was visited and is not counted here.
	Failed int
	// Failures lists navigation and visitor errors skipped under
	// ContinueOnError, in the order they happened.
	Failures []Failure
}

// Failure describes a link the crawler gave up on.
type Failure struct {
	Link string
	Href string
	Err  error
}

// Crawler visits every page reachable from the session's current page
// whose links stay on the starting domain.
//
// Crawler is not safe for concurrent use.
type Crawler struct {
	session  sitecrawl.Session
	parser   sitecrawl.Parser
	visited  sitecrawl.VisitedSet
	frontier sitecrawl.Frontier
	filter   sitecrawl.LinkFilter
	logger   *slog.Logger

	policy      FailurePolicy
	maxPages    int
	retryDelays []time.Duration

	startURL string
	domain   string
	scheme   string
	failed   map[string]struct{}
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithVisitedSet replaces the default exact visited set.
func WithVisitedSet(s sitecrawl.VisitedSet) Option {
	return func(c *Crawler) {
		c.visited = s
	}
}

// WithFrontier replaces the default FIFO frontier.
func WithFrontier(f sitecrawl.Frontier) Option {
	return func(c *Crawler) {
		c.frontier = f
	}
}

// WithLinkFilter drops discovered hrefs the filter does not allow.
// The filter is applied in addition to the same-domain scope check.
func WithLinkFilter(f sitecrawl.LinkFilter) Option {
	return func(c *Crawler) {
		c.filter = f
	}
}

// WithFailurePolicy sets how navigation and visitor errors are handled.
// Defaults to AbortOnError.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *Crawler) {
		c.policy = p
	}
}

// WithMaxPages stops the crawl after n links have been attempted.
// Zero means no limit.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		c.maxPages = n
	}
}

// WithRetryDelays retries failed navigations after each of the delays.
// Defaults to no retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Crawler) {
		c.retryDelays = delays
	}
}

// WithLogger sets the logger for skipped links, retries and the summary.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// NewCrawler creates a Crawler for an already authenticated session.
// The starting domain is the host of the session's current URL and stays
// fixed for the lifetime of the Crawler.
func NewCrawler(ctx context.Context, session sitecrawl.Session, parser sitecrawl.Parser, opts ...Option) (*Crawler, error) {
	if session == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "session required")
	}
	if parser == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "parser required")
	}

	current, err := session.CurrentURL(ctx)
	if err != nil {
		return nil, sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "read starting URL")
	}
	u, err := url.Parse(current)
	if err != nil {
		return nil, sitecrawl.Wrapf(err, sitecrawl.EINVALID, "invalid starting URL %q", current)
	}
	if u.Host == "" {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "starting URL %q has no host", current)
	}

	c := &Crawler{
		session:  session,
		parser:   parser,
		visited:  NewVisitedSet(),
		frontier: NewFrontier(FIFO),
		logger:   slog.New(slog.DiscardHandler),
		startURL: current,
		domain:   u.Host,
		scheme:   u.Scheme,
		failed:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// StartURL returns the session's URL at construction time.
func (c *Crawler) StartURL() string {
	return c.startURL
}

// StartingDomain returns the host every crawled link must share.
func (c *Crawler) StartingDomain() string {
	return c.domain
}

// Visited returns the crawler's visited set.
func (c *Crawler) Visited() sitecrawl.VisitedSet {
	return c.visited
}

// Frontier returns the crawler's frontier.
func (c *Crawler) Frontier() sitecrawl.Frontier {
	return c.frontier
}

// Crawl seeds the frontier from the links on the current page and then
// visits links until the frontier is empty. The visitor is called once per
// visited page.
//
// With AbortOnError the first failure is returned together with the partial
// result. Errors carry ENAVIGATION or ECALLBACK codes. Cancelling ctx stops
// the crawl between pages.
func (c *Crawler) Crawl(ctx context.Context, visitor sitecrawl.Visitor) (*Result, error) {
	result := &Result{}

	hrefs, err := c.session.Hrefs(ctx)
	if err != nil {
		return result, sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "enumerate links on %s", c.startURL)
	}
	c.discover(hrefs)

	c.logger.Info("crawl started",
		"url", c.startURL,
		"domain", c.domain,
		"queued", c.frontier.Len(),
	)

	attempted := 0
	for {
		if err := ctx.Err(); err != nil {
			result.Visited = c.visited.Len()
			return result, err
		}
		if c.maxPages > 0 && attempted >= c.maxPages {
			c.logger.Info("page limit reached", "limit", c.maxPages, "queued", c.frontier.Len())
			break
		}

		link, ok := c.frontier.Pop()
		if !ok {
			break
		}

		href := c.resolve(link)
		attempted++
		pages := result.Pages
		if err := c.visit(ctx, link, href, visitor, result); err != nil {
			if c.policy == AbortOnError || ctx.Err() != nil {
				result.Visited = c.visited.Len()
				return result, err
			}
			// A page that reached the visitor is already in the visited set.
			if result.Pages == pages {
				c.failed[link] = struct{}{}
				result.Failed++
			}
			result.Failures = append(result.Failures, Failure{Link: link, Href: href, Err: err})
			c.logger.Warn("skipping link", "link", link, "href", href, "err", err)
		}
	}

	result.Visited = c.visited.Len()
	c.logger.Info("crawl finished",
		"visited", result.Visited,
		"pages", result.Pages,
		"failed", result.Failed,
	)
	return result, nil
}

// visit navigates to href, hands the page to the visitor, records link,
// href and the resulting URL as visited and queues newly discovered links.
func (c *Crawler) visit(ctx context.Context, link, href string, visitor sitecrawl.Visitor, result *Result) error {
	if err := c.navigate(ctx, href); err != nil {
		return sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "navigate to %s", href)
	}

	current, err := c.session.CurrentURL(ctx)
	if err != nil {
		return sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "read URL after navigating to %s", href)
	}
	lines, err := c.session.LogLines(ctx)
	if err != nil {
		return sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "read log of %s", current)
	}
	html, err := c.session.HTML(ctx)
	if err != nil {
		return sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "read content of %s", current)
	}
	page, err := c.parser.Parse(html)
	if err != nil {
		return sitecrawl.Wrapf(err, sitecrawl.EINTERNAL, "parse content of %s", current)
	}

	visitErr := visitor.Visit(ctx, &sitecrawl.Visit{
		URL:  current,
		Log:  lines,
		Page: page,
	})

	c.visited.Add(link, href, current)
	result.Pages++

	hrefs, err := c.session.Hrefs(ctx)
	if err != nil {
		return sitecrawl.Wrapf(err, sitecrawl.ENAVIGATION, "enumerate links on %s", current)
	}
	c.discover(hrefs)

	if visitErr != nil {
		return sitecrawl.Wrapf(visitErr, sitecrawl.ECALLBACK, "visit %s", current)
	}
	return nil
}

func (c *Crawler) navigate(ctx context.Context, href string) error {
	if len(c.retryDelays) == 0 {
		return c.session.Navigate(ctx, href)
	}
	return NavigateWithRetry(ctx, href, c.session.Navigate, c.logger, c.retryDelays)
}

// discover queues every href that is present, not yet visited, not known
// to fail, in scope and allowed by the link filter.
func (c *Crawler) discover(hrefs []string) {
	for _, href := range hrefs {
		if href == "" || c.visited.Contains(href) {
			continue
		}
		if _, ok := c.failed[href]; ok {
			continue
		}
		if !sitecrawl.InScope(href, c.domain) {
			continue
		}
		if c.filter != nil && !c.filter.Allow(href) {
			continue
		}
		c.frontier.Push(href)
	}
}

// resolve turns a frontier entry into a navigable URL. Root-relative links
// are prefixed with the starting scheme and domain, protocol-relative links
// inherit the starting scheme, and anything else is returned unchanged.
func (c *Crawler) resolve(link string) string {
	switch {
	case strings.HasPrefix(link, "//"):
		return c.scheme + ":" + link
	case strings.HasPrefix(link, "/"):
		return c.scheme + "://" + c.domain + link
	default:
		return link
	}
}
