package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitecrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Logger   *slog.Logger
	LogLevel slog.Level

	// Authenticator, if set, is used instead of launching a browser.
	Authenticator sitecrawl.Authenticator

	Runs  sitecrawl.RunService
	Pages sitecrawl.PageService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"YAML file with flag defaults" type:"path"`
	Verbose bool            `short:"v" help:"Log debug messages"`

	Crawl  CrawlCmd  `cmd:"" default:"withargs" help:"Crawl a site (default command)"`
	Runs   RunsCmd   `cmd:"" help:"List recorded crawls"`
	Pages  PagesCmd  `cmd:"" help:"List the pages of a recorded crawl"`
	Delete DeleteCmd `cmd:"" help:"Delete a recorded crawl"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL string `arg:"" optional:"" help:"Start page (defaults to $SITE_TO_CRAWL)"`

	Browser  string        `enum:"rod,http" default:"rod" help:"Session implementation: rod (Chrome) or http (no JavaScript)"`
	Headless bool          `help:"Run Chrome without a window"`
	NoWait   bool          `help:"Do not wait for Enter before crawling"`
	Timeout  time.Duration `default:"30s" help:"Page-load timeout"`

	Retries            int      `default:"0" help:"Retry a failed navigation this many times with exponential backoff"`
	ContinueOnError    bool     `help:"Skip pages that fail instead of stopping the crawl"`
	MaxPages           int      `default:"0" help:"Stop after this many pages (0 means no limit)"`
	Order              string   `enum:"fifo,lifo,random,sorted" default:"fifo" help:"Order in which queued links are visited"`
	Seed               uint64   `help:"Seed for --order=random (0 picks a random seed)"`
	Exclude            []string `short:"x" help:"Skip links matching this glob (repeatable)"`
	ApproximateVisited bool     `help:"Track visited URLs in a Bloom filter instead of an exact set"`
	Record             bool     `help:"Store the crawl in the history database"`

	PrintImages      bool   `help:"Print the sources for images found on each page"`
	PrintLinks       bool   `help:"Print the links found on each page"`
	PrintScripts     bool   `help:"Print the scripts found on each page"`
	PrintLogMessages bool   `help:"Print the log messages from the browser for each page"`
	PrintContent     bool   `help:"Print the main content of each page as Markdown"`
	PrintEverything  bool   `help:"Shortcut to turn everything on"`
	LogFile          string `type:"path" help:"Also write the report and logs to this file"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Domain string `help:"Only show crawls of this domain"`
	Limit  int    `default:"20" help:"Maximum number of crawls to show"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	RunID string `arg:"" help:"Crawl ID"`
	Log   bool   `help:"Show the log messages of each page"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	RunID string `arg:"" help:"Crawl ID"`
}
