package sitecrawl

import (
	"context"
	"time"
)

// Run is a recorded crawl.
type Run struct {
	ID         string    `json:"id"`
	StartURL   string    `json:"startUrl"`
	Domain     string    `json:"domain"`
	Visited    int       `json:"visited"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartURL == "" {
		return Errorf(EINVALID, "run start URL required")
	}
	if r.Domain == "" {
		return Errorf(EINVALID, "run domain required")
	}
	return nil
}

// RunService represents a service for managing recorded runs.
type RunService interface {
	// CreateRun records a new run and assigns its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FinishRun stores the final counts and finish time of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, visited, failed int) error

	// DeleteRun removes a run and all of its pages.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string `json:"id"`
	Domain *string `json:"domain"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageRecord is a visited page stored with its run.
type PageRecord struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	Log         []LogLine `json:"log"`
	VisitedAt   time.Time `json:"visitedAt"`
}

// Validate returns an error if the page record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.RunID == "" {
		return Errorf(EINVALID, "page run ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageService represents a service for managing recorded pages.
type PageService interface {
	// CreatePage records a visited page together with its log lines.
	CreatePage(ctx context.Context, page *PageRecord) error

	// FindPages retrieves pages matching the filter in visit order.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageRecord, error)
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
