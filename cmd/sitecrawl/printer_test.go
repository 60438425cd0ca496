package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sitecrawl"
	main "github.com/fwojciec/sitecrawl/cmd/sitecrawl"
	"github.com/fwojciec/sitecrawl/goquery"
	"github.com/fwojciec/sitecrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const printerPage = `<html><head><title>Docs</title>
<script src="/app.js"></script>
</head><body>
<img src="/a.png"><img>
<a href="/guide">Guide</a><a>none</a><a href="">empty</a>
<p>Hello</p>
</body></html>`

func parse(t *testing.T, html string) sitecrawl.Document {
	t.Helper()

	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return doc
}

func TestPrinter_Visit(t *testing.T) {
	t.Parallel()

	t.Run("prints only the page line when nothing is enabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &main.Printer{Out: &buf}

		err := p.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/", Page: parse(t, printerPage)})
		require.NoError(t, err)

		assert.Equal(t, "Page -> https://example.com/\n", buf.String())
	})

	t.Run("prints enabled sections in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &main.Printer{Out: &buf, Images: true, Links: true, Scripts: true, LogMessages: true}

		err := p.Visit(context.Background(), &sitecrawl.Visit{
			URL: "https://example.com/",
			Log: []sitecrawl.LogLine{
				{Level: "warning", Source: "console-api", Message: "deprecated"},
				{Level: "info", Message: "ready"},
			},
			Page: parse(t, printerPage),
		})
		require.NoError(t, err)

		assert.Equal(t, "Page -> https://example.com/\n"+
			"    Images:\n"+
			"        /a.png\n"+
			"    Links:\n"+
			"        /guide\n"+
			"    Scripts:\n"+
			"        <script src=\"/app.js\"></script>\n"+
			"    Log messages:\n"+
			"        [warning] console-api: deprecated\n"+
			"        [info] ready\n", buf.String())
	})

	t.Run("omits empty sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &main.Printer{Out: &buf, Images: true, Scripts: true, LogMessages: true}

		err := p.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/x", Page: parse(t, "<html><body></body></html>")})
		require.NoError(t, err)

		assert.Equal(t, "Page -> https://example.com/x\n", buf.String())
	})

	t.Run("prints main content as markdown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &main.Printer{
			Out:     &buf,
			Content: true,
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitecrawl.Content, error) {
					return &sitecrawl.Content{HTML: "<h1>Docs</h1><p>Hello</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string) (string, error) { return "# Docs\n\nHello\n", nil },
			},
		}

		err := p.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/", Page: parse(t, printerPage)})
		require.NoError(t, err)

		assert.Equal(t, "Page -> https://example.com/\n"+
			"    Content:\n"+
			"        # Docs\n"+
			"\n"+
			"        Hello\n", buf.String())
	})

	t.Run("skips content when none is found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &main.Printer{
			Out:     &buf,
			Content: true,
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitecrawl.Content, error) {
					return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no main content")
				},
			},
			Converter: &mock.Converter{},
		}

		err := p.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/", Page: parse(t, printerPage)})
		require.NoError(t, err)

		assert.Equal(t, "Page -> https://example.com/\n", buf.String())
	})

	t.Run("returns conversion errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &main.Printer{
			Out:     &buf,
			Content: true,
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitecrawl.Content, error) {
					return &sitecrawl.Content{HTML: "<p>x</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string) (string, error) { return "", errors.New("boom") },
			},
		}

		err := p.Visit(context.Background(), &sitecrawl.Visit{URL: "https://example.com/", Page: parse(t, printerPage)})
		require.Error(t, err)
		assert.Empty(t, buf.String())
	})
}
