// Package goquery implements sitecrawl.Parser on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

// Compile-time interface verification.
var (
	_ sitecrawl.Parser   = (*Parser)(nil)
	_ sitecrawl.Document = (*Document)(nil)
	_ sitecrawl.Element  = (*Element)(nil)
)

// Parser parses markup into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html. Malformed markup is repaired the way browsers do, so
// errors only come from the underlying reader.
func (p *Parser) Parse(html string) (sitecrawl.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc, html: html}, nil
}

// Document wraps a goquery document.
type Document struct {
	doc  *goquery.Document
	html string
}

// FindAll returns the elements matching tag in document order.
// Any goquery selector is accepted, not only tag names.
func (d *Document) FindAll(tag string) []sitecrawl.Element {
	sel := d.doc.Find(tag)
	elements := make([]sitecrawl.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}

// Title returns the trimmed text of the first title element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// HTML returns the markup the document was parsed from.
func (d *Document) HTML() string {
	return d.html
}

// Element wraps a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) Text() string {
	return e.sel.Text()
}

// HTML returns the outer markup of the element, or an empty string if it
// cannot be rendered.
func (e *Element) HTML() string {
	html, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return html
}

// Hrefs returns the href of every anchor in doc, in document order, with an
// empty string for anchors that carry no href.
func Hrefs(doc sitecrawl.Document) []string {
	anchors := doc.FindAll("a")
	hrefs := make([]string, 0, len(anchors))
	for _, a := range anchors {
		href, _ := a.Attr("href")
		hrefs = append(hrefs, href)
	}
	return hrefs
}
