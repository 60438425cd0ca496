package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
)

const maxURLWidth = 60

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := sitecrawl.RunFilter{Limit: c.Limit}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawls recorded. Use 'sitecrawl crawl --record' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  visited=%d failed=%d\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			crawl.TruncateURL(r.StartURL, maxURLWidth),
			r.Visited,
			r.Failed,
		)
	}

	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Runs.DeleteRun(deps.Ctx, c.RunID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted crawl %s\n", c.RunID)
	return nil
}
