// Package setlist parses free-form setlist text files.
//
// These files accompany live recordings and mix venue headers, technical
// metadata, and track listings in half a dozen numbering styles. The
// parser finds the first set header or track line, extracts venue text
// from everything above it, and walks the body with a small state machine
// that tracks set changes and encore numbering.
package setlist
