package sitecrawl

// Document is a parsed, queryable page.
type Document interface {
	// FindAll returns every element with the given tag name in document order.
	FindAll(tag string) []Element

	// Title returns the text of the page's title element.
	Title() string

	// HTML returns the markup the document was parsed from.
	HTML() string
}

// Element is a single node of a Document.
type Element interface {
	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the combined text of the element and its descendants.
	Text() string

	// HTML returns the outer markup of the element.
	HTML() string
}

// Parser builds a Document from markup.
type Parser interface {
	Parse(html string) (Document, error)
}
