// Package corrections persists learned title mappings.
//
// Both the corrections map and the extra-songs map share the same
// pipe-delimited file format with an original_title|canonical_title|source
// header. The writable store rewrites the whole file on every Apply; the
// ReadOnly wrapper keeps learned matches in memory for the current run
// without persisting them.
package corrections
