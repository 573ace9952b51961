package titlenorm

import (
	"regexp"
	"strings"
)

// TapeMarkers are tape cut annotations stripped from titles, longest first
// so that longer runs are not left half-consumed.
var TapeMarkers = []string{"////", "///", "//"}

// SegueMarkers are trailing segue glyphs, longest first. Order is part of
// the contract: a marker is only consulted when no earlier marker matched.
var SegueMarkers = []string{" -->", " ->", ">>", " >"}

var (
	hashSuffixRE       = regexp.MustCompile(`:[a-f0-9]{32}$`)
	trailingDurationRE = regexp.MustCompile(`[\s\t]+\d{1,2}:\d{2}\s*$`)
	colonDurationRE    = regexp.MustCompile(`\s*:\d{1,2}:\d{2}\s*$`)
	bracketTimingRE    = regexp.MustCompile(`\s*\[\s*\d{1,2}:\d{2}#?\]\s*`)
	braceTimingRE      = regexp.MustCompile(`\s*\{\s*\d{1,2}:\d{2}(\.\d+)?\s*\}\s*`)
	parenDurationRE    = regexp.MustCompile(`\s*\(\s*\d{1,2}:\d{2}\s*\)\s*$`)
	equalsTailRE       = regexp.MustCompile(`\s*=\s*.*$`)
	spaceRunRE         = regexp.MustCompile(`\s+`)
)

// Clean normalizes a raw track title and reports whether a trailing segue
// marker was present. The steps run in a fixed order; tape markers are
// stripped before the duration patterns so that end-of-string anchors see
// the real tail.
func Clean(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", false
	}
	hasSegue := false

	title = strings.ReplaceAll(title, `"`, "")
	title = hashSuffixRE.ReplaceAllString(title, "")
	if strings.HasSuffix(strings.ToLower(title), ".flac") {
		title = title[:len(title)-5]
	}
	for _, marker := range TapeMarkers {
		title = strings.ReplaceAll(title, marker, "")
	}
	title = trailingDurationRE.ReplaceAllString(title, "")
	title = colonDurationRE.ReplaceAllString(title, "")
	title = bracketTimingRE.ReplaceAllString(title, " ")
	title = braceTimingRE.ReplaceAllString(title, " ")
	title = parenDurationRE.ReplaceAllString(title, "")
	title = equalsTailRE.ReplaceAllString(title, "")
	title = spaceRunRE.ReplaceAllString(title, " ")

	for _, marker := range SegueMarkers {
		if strings.HasSuffix(title, marker) {
			hasSegue = true
			title = strings.TrimSpace(title[:len(title)-len(marker)])
			break
		}
	}
	if strings.HasSuffix(title, ">") {
		hasSegue = true
		title = strings.TrimSpace(strings.TrimRight(title, ">"))
	}

	title = strings.Trim(title, "/->")
	return strings.TrimSpace(title), hasSegue
}

// FinalTitle re-appends the segue marker to a resolved title.
func FinalTitle(title string, hasSegue bool) string {
	if hasSegue {
		return title + " >"
	}
	return title
}
