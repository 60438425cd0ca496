package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Visit(t *testing.T) {
	t.Parallel()

	t.Run("stores pages with increasing positions", func(t *testing.T) {
		t.Parallel()

		var stored []*sitecrawl.PageRecord
		pages := &mock.PageService{
			CreatePageFn: func(_ context.Context, p *sitecrawl.PageRecord) error {
				stored = append(stored, p)
				return nil
			},
		}
		r := &crawl.Recorder{Pages: pages, RunID: "run-1"}
		doc := &mock.Document{
			TitleFn: func() string { return "Settings" },
			HTMLFn:  func() string { return "<html><title>Settings</title></html>" },
		}
		lines := []sitecrawl.LogLine{{Level: "error", Source: "javascript", Message: "boom"}}

		require.NoError(t, r.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/settings", Log: lines, Page: doc}))
		require.NoError(t, r.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/other", Page: doc}))

		require.Len(t, stored, 2)
		assert.Equal(t, "run-1", stored[0].RunID)
		assert.Equal(t, "https://example.com/settings", stored[0].URL)
		assert.Equal(t, "Settings", stored[0].Title)
		assert.Equal(t, crawl.ComputeHash("<html><title>Settings</title></html>"), stored[0].ContentHash)
		assert.Equal(t, lines, stored[0].Log)
		assert.Equal(t, 0, stored[0].Position)
		assert.Equal(t, 1, stored[1].Position)
	})

	t.Run("stores a page without a document", func(t *testing.T) {
		t.Parallel()

		var stored *sitecrawl.PageRecord
		pages := &mock.PageService{
			CreatePageFn: func(_ context.Context, p *sitecrawl.PageRecord) error {
				stored = p
				return nil
			},
		}
		r := &crawl.Recorder{Pages: pages, RunID: "run-1"}

		require.NoError(t, r.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/"}))

		require.NotNil(t, stored)
		assert.Empty(t, stored.Title)
		assert.Empty(t, stored.ContentHash)
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		errDisk := errors.New("disk full")
		pages := &mock.PageService{
			CreatePageFn: func(context.Context, *sitecrawl.PageRecord) error { return errDisk },
		}
		r := &crawl.Recorder{Pages: pages, RunID: "run-1"}

		err := r.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/"})

		assert.ErrorIs(t, err, errDisk)
	})
}
