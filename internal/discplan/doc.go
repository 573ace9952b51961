// Package discplan assigns disc and track numbers from catalog sets.
//
// Each musical set maps to one disc. Filler tracks and unmatched titles
// inherit a disc from neighboring matched songs and are marked inferred.
package discplan
