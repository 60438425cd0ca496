package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/bloom"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/glob"
	"github.com/fwojciec/sitecrawl/goquery"
	"github.com/fwojciec/sitecrawl/htmltomarkdown"
	"github.com/fwojciec/sitecrawl/http"
	"github.com/fwojciec/sitecrawl/rod"
	scslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/fwojciec/sitecrawl/trafilatura"
)

// ReadyPrompt is shown while the browser waits for the start page.
const ReadyPrompt = "Press enter once page is ready..."

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	err := c.run(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
	}
	return err
}

func (c *CrawlCmd) run(deps *Dependencies) error {
	ctx := deps.Ctx

	startURL := c.URL
	if startURL == "" && deps.Getenv != nil {
		startURL = deps.Getenv("SITE_TO_CRAWL")
	}
	if startURL == "" {
		return sitecrawl.Errorf(sitecrawl.EINVALID, "start URL required: pass it as an argument or set SITE_TO_CRAWL")
	}

	out, logger := deps.Stdout, deps.Logger
	if c.LogFile != "" {
		f, err := os.Create(c.LogFile)
		if err != nil {
			return sitecrawl.Wrapf(err, sitecrawl.EINVALID, "open log file %s", c.LogFile)
		}
		defer f.Close()
		out = io.MultiWriter(deps.Stdout, f)
		logger = slog.New(slog.NewTextHandler(io.MultiWriter(deps.Stderr, f), &slog.HandlerOptions{Level: deps.LogLevel}))
	}

	opts, err := c.crawlerOptions(logger)
	if err != nil {
		return err
	}

	auth := deps.Authenticator
	if auth == nil {
		auth = c.authenticator(deps)
	}
	auth = scslog.NewLoggingAuthenticator(auth, logger)

	logger.Info("opening browser", "browser", c.Browser, "url", startURL)
	session, err := auth.Authenticate(ctx, startURL)
	if err != nil {
		return err
	}
	defer session.Close()

	crawler, err := crawl.NewCrawler(ctx, session, goquery.NewParser(), opts...)
	if err != nil {
		return err
	}

	printer := c.printer(out, crawler)
	visitor := sitecrawl.Visitor(printer)

	var run *sitecrawl.Run
	if c.Record {
		run = &sitecrawl.Run{StartURL: crawler.StartURL(), Domain: crawler.StartingDomain()}
		if err := deps.Runs.CreateRun(ctx, run); err != nil {
			return err
		}
		visitor = sitecrawl.Visitors(printer, &crawl.Recorder{Pages: deps.Pages, RunID: run.ID})
	}

	logger.Info("starting to crawl", "url", crawler.StartURL(), "domain", crawler.StartingDomain())
	result, crawlErr := crawler.Crawl(ctx, scslog.NewLoggingVisitor(visitor, logger))

	if set, ok := crawler.Visited().(*bloom.VisitedSet); ok {
		logger.Info("approximate visited set", "added", set.Len(), "estimated", set.EstimatedCount())
	}

	if run != nil {
		// The run is finished even when the crawl was cancelled.
		if err := deps.Runs.FinishRun(context.WithoutCancel(ctx), run.ID, result.Visited, result.Failed); err != nil {
			return errors.Join(crawlErr, err)
		}
		logger.Info("recorded run", "id", run.ID)
	}

	fmt.Fprintf(out, "Finished. Visited %d pages.\n", result.Visited)
	for _, f := range result.Failures {
		fmt.Fprintf(out, "Skipped %s: %s\n", f.Href, sitecrawl.ErrorMessage(f.Err))
	}
	return crawlErr
}

func (c *CrawlCmd) crawlerOptions(logger *slog.Logger) ([]crawl.Option, error) {
	order, err := crawl.ParseOrder(c.Order)
	if err != nil {
		return nil, err
	}

	frontier := crawl.NewFrontier(order)
	if order == crawl.Random && c.Seed != 0 {
		frontier = crawl.NewSeededFrontier(c.Seed)
	}

	opts := []crawl.Option{
		crawl.WithLogger(logger),
		crawl.WithFrontier(frontier),
		crawl.WithMaxPages(c.MaxPages),
		crawl.WithRetryDelays(crawl.BackoffDelays(c.Retries)),
	}
	if c.ContinueOnError {
		opts = append(opts, crawl.WithFailurePolicy(crawl.ContinueOnError))
	}
	if c.ApproximateVisited {
		opts = append(opts, crawl.WithVisitedSet(bloom.NewVisitedSet(bloom.DefaultCapacity, bloom.DefaultFalsePositiveRate)))
	}
	if len(c.Exclude) > 0 {
		filter, err := glob.NewFilter(c.Exclude...)
		if err != nil {
			return nil, err
		}
		logger.Debug("excluding links", "patterns", filter.Patterns())
		opts = append(opts, crawl.WithLinkFilter(filter))
	}
	return opts, nil
}

func (c *CrawlCmd) authenticator(deps *Dependencies) sitecrawl.Authenticator {
	ready := func(context.Context) error { return nil }
	if !c.NoWait {
		ready = promptReady(deps.Stdin, deps.Stdout)
	}

	switch c.Browser {
	case "http":
		return http.NewAuthenticator(ready, http.WithTimeout(c.Timeout))
	default:
		return rod.NewAuthenticator(
			rod.WithHeadless(c.Headless),
			rod.WithTimeout(c.Timeout),
			rod.WithReady(ready),
		)
	}
}

func (c *CrawlCmd) printer(out io.Writer, crawler *crawl.Crawler) *Printer {
	all := c.PrintEverything
	p := &Printer{
		Out:         out,
		Images:      all || c.PrintImages,
		Links:       all || c.PrintLinks,
		Scripts:     all || c.PrintScripts,
		LogMessages: all || c.PrintLogMessages,
		Content:     all || c.PrintContent,
	}
	if p.Content {
		p.Extractor = trafilatura.NewExtractor()
		p.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(origin(crawler.StartURL())))
	}
	return p
}

// promptReady returns a ReadyFunc that waits for a line on in.
// End of input counts as ready. When ctx is done first, the reading
// goroutine stays blocked on in until the process exits.
func promptReady(in io.Reader, out io.Writer) sitecrawl.ReadyFunc {
	return func(ctx context.Context) error {
		fmt.Fprintln(out, ReadyPrompt)

		done := make(chan error, 1)
		go func() {
			_, err := bufio.NewReader(in).ReadString('\n')
			done <- err
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-done:
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		}
	}
}

// origin returns the scheme and host of rawURL, for example
// "https://example.com".
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
