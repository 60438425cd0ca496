package main

import (
	"fmt"

	"github.com/fwojciec/sitecrawl"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, sitecrawl.PageFilter{RunID: &run.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawl %s of %s (%d pages)\n", run.ID, run.StartURL, len(pages))
	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%4d. %s  %s  %s\n", p.Position+1, p.URL, title, p.ContentHash)
		if c.Log {
			for _, l := range p.Log {
				fmt.Fprintf(deps.Stdout, "        %s\n", formatLogLine(l))
			}
		}
	}

	return nil
}
