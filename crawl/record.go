package crawl

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Visitor = (*Recorder)(nil)

// Recorder is a Visitor that stores every visited page under a run.
type Recorder struct {
	Pages sitecrawl.PageService
	RunID string

	position int
}

// Visit stores the page with its title, content hash and log lines.
func (r *Recorder) Visit(ctx context.Context, v *sitecrawl.Visit) error {
	rec := &sitecrawl.PageRecord{
		RunID:    r.RunID,
		URL:      v.URL,
		Position: r.position,
		Log:      v.Log,
	}
	if v.Page != nil {
		rec.Title = v.Page.Title()
		rec.ContentHash = ComputeHash(v.Page.HTML())
	}
	r.position++

	return r.Pages.CreatePage(ctx, rec)
}
