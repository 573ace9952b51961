// Package compare detects disagreements between setlist sources.
//
// Two comparisons exist: a parsed document against the canonical catalog,
// and two parsed documents against each other. Both normalize every title
// through the matcher first, so a spelling variant and its canonical name
// count as the same song. Checks that depend on optional data (venue,
// segues) are suppressed when either side lacks it.
package compare
