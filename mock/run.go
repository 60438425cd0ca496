package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.RunService = (*RunService)(nil)

// RunService is a mock implementation of sitecrawl.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *sitecrawl.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*sitecrawl.Run, error)
	FindRunsFn    func(ctx context.Context, filter sitecrawl.RunFilter) ([]*sitecrawl.Run, error)
	FinishRunFn   func(ctx context.Context, id string, visited, failed int) error
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *sitecrawl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*sitecrawl.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter sitecrawl.RunFilter) ([]*sitecrawl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FinishRun(ctx context.Context, id string, visited, failed int) error {
	return s.FinishRunFn(ctx, id, visited, failed)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}

var _ sitecrawl.PageService = (*PageService)(nil)

// PageService is a mock implementation of sitecrawl.PageService.
type PageService struct {
	CreatePageFn func(ctx context.Context, page *sitecrawl.PageRecord) error
	FindPagesFn  func(ctx context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.PageRecord, error)
}

func (s *PageService) CreatePage(ctx context.Context, page *sitecrawl.PageRecord) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPages(ctx context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.PageRecord, error) {
	return s.FindPagesFn(ctx, filter)
}
