// Package titlenorm cleans raw track titles from live recording metadata.
//
// Titles arrive with duration stamps, tape cut markers, segue glyphs, file
// extensions, and similar artifacts. Clean strips them in a fixed order and
// reports segue intent separately so it can be restored after matching.
package titlenorm
