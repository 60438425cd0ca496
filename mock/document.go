package mock

import "github.com/fwojciec/sitecrawl"

var _ sitecrawl.Document = (*Document)(nil)

// Document is a mock implementation of sitecrawl.Document.
type Document struct {
	FindAllFn func(tag string) []sitecrawl.Element
	TitleFn   func() string
	HTMLFn    func() string
}

func (d *Document) FindAll(tag string) []sitecrawl.Element {
	return d.FindAllFn(tag)
}

func (d *Document) Title() string {
	return d.TitleFn()
}

func (d *Document) HTML() string {
	return d.HTMLFn()
}

var _ sitecrawl.Element = (*Element)(nil)

// Element is a mock implementation of sitecrawl.Element.
type Element struct {
	AttrFn func(name string) (string, bool)
	TextFn func() string
	HTMLFn func() string
}

func (e *Element) Attr(name string) (string, bool) {
	return e.AttrFn(name)
}

func (e *Element) Text() string {
	return e.TextFn()
}

func (e *Element) HTML() string {
	return e.HTMLFn()
}

var _ sitecrawl.Parser = (*Parser)(nil)

// Parser is a mock implementation of sitecrawl.Parser.
type Parser struct {
	ParseFn func(html string) (sitecrawl.Document, error)
}

func (p *Parser) Parse(html string) (sitecrawl.Document, error) {
	return p.ParseFn(html)
}
