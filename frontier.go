package sitecrawl

// Frontier is the set of discovered hrefs that have not been visited yet.
type Frontier interface {
	// Push adds href to the frontier.
	// Returns false if href is already queued.
	Push(href string) bool

	// Pop removes and returns the next href according to the frontier's order.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of queued hrefs.
	Len() int
}

// VisitedSet records every spelling under which a page has been visited.
// It only ever grows.
type VisitedSet interface {
	// Add records each value.
	Add(values ...string)

	// Contains reports whether value has been recorded.
	Contains(value string) bool

	// Len returns the number of distinct recorded values.
	Len() int
}

// LinkFilter decides whether a discovered href may enter the frontier.
type LinkFilter interface {
	Allow(href string) bool
}
