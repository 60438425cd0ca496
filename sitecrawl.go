// Package sitecrawl drives a browser across every page reachable from a
// starting URL within the same domain and hands each rendered page to a
// caller-supplied visitor.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package sitecrawl
