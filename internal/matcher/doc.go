// Package matcher resolves messy track titles to canonical song names.
//
// Matching runs through strict tiers. Exact vocabulary hits, learned
// corrections, and direct extra-songs hits report full confidence. Titles
// classified as non-song extras resolve by substring against the extra map
// or pass through title-cased. Everything else falls to fuzzy similarity
// governed by a Policy: high scores are applied and written back as
// corrections, mid scores are flagged for review, low scores stay
// unmatched.
package matcher
