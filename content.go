package sitecrawl

// Content is the main readable content of a page.
type Content struct {
	// Title is the page title taken from metadata.
	Title string

	// HTML is the main content as clean markup, without navigation,
	// footers, sidebars and ads.
	HTML string
}

// Extractor extracts the main content from a rendered page.
type Extractor interface {
	// Extract returns the main content of html.
	// Returns ENOTFOUND if the page has no recognizable main content.
	Extract(html string) (*Content, error)
}

// Converter converts markup to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
