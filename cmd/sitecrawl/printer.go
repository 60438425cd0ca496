package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/goquery"
)

var _ sitecrawl.Visitor = (*Printer)(nil)

// Printer is a Visitor that writes a report of every visited page:
//
//	Page -> https://example.com/a
//	    Images:
//	        /logo.png
//
// Each section is written only when enabled and non-empty.
type Printer struct {
	Out io.Writer

	Images      bool
	Links       bool
	Scripts     bool
	LogMessages bool
	Content     bool

	// Extractor and Converter render the Content section.
	Extractor sitecrawl.Extractor
	Converter sitecrawl.Converter
}

// Visit writes the report for one page in a single write.
func (p *Printer) Visit(_ context.Context, v *sitecrawl.Visit) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Page -> %s\n", v.URL)

	if v.Page != nil {
		if p.Images {
			writeSection(&buf, "Images", attrs(v.Page, "img", "src"))
		}
		if p.Links {
			writeSection(&buf, "Links", nonEmpty(goquery.Hrefs(v.Page)))
		}
		if p.Scripts {
			var scripts []string
			for _, el := range v.Page.FindAll("script") {
				scripts = append(scripts, el.HTML())
			}
			writeSection(&buf, "Scripts", scripts)
		}
	}
	if p.LogMessages {
		lines := make([]string, 0, len(v.Log))
		for _, l := range v.Log {
			lines = append(lines, formatLogLine(l))
		}
		writeSection(&buf, "Log messages", lines)
	}
	if p.Content && v.Page != nil {
		md, err := p.markdown(v.Page.HTML())
		if err != nil {
			return err
		}
		if md != "" {
			writeSection(&buf, "Content", strings.Split(md, "\n"))
		}
	}

	_, err := p.Out.Write(buf.Bytes())
	return err
}

// markdown returns the page's main content as Markdown, or "" when the page
// has none.
func (p *Printer) markdown(html string) (string, error) {
	if p.Extractor == nil || p.Converter == nil {
		return "", nil
	}
	content, err := p.Extractor.Extract(html)
	if sitecrawl.ErrorCode(err) == sitecrawl.ENOTFOUND {
		return "", nil
	} else if err != nil {
		return "", err
	}
	md, err := p.Converter.Convert(content.HTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// attrs returns the non-empty values of attr on every tag element.
func attrs(doc sitecrawl.Document, tag, attr string) []string {
	var values []string
	for _, el := range doc.FindAll(tag) {
		if v, ok := el.Attr(attr); ok && v != "" {
			values = append(values, v)
		}
	}
	return values
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func writeSection(w io.Writer, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "    %s:\n", name)
	for _, item := range items {
		for _, line := range strings.Split(item, "\n") {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "        %s\n", line)
		}
	}
}

func formatLogLine(l sitecrawl.LogLine) string {
	if l.Source == "" {
		return fmt.Sprintf("[%s] %s", l.Level, l.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", l.Level, l.Source, l.Message)
}
