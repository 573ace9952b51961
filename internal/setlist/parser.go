package setlist

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"setscan/internal/titlenorm"
)

// ErrUnparsable is returned when a document holds no recognizable setlist
// structure at all.
var ErrUnparsable = errors.New("no setlist structure found")

// Entry is one song line parsed from a setlist document.
type Entry struct {
	Title       string
	SetNumber   int
	SetIsEncore bool
	Position    int // 1-based within its set
	HasSegue    bool
	IsExtra     bool
}

// Document is the structured form of one free-text setlist.
type Document struct {
	SourceID    string
	VenueText   string
	Entries     []Entry
	HeaderLines []string
}

// lineSegueMarkers are checked against the stripped tail of a track line.
// Longest first so a long arrow is not half-consumed by a short one.
var lineSegueMarkers = []string{"-->", "->", ">>", ">"}

var (
	lineTrailingDurationRE = regexp.MustCompile(`\s+\d{1,2}:\d{2}(\.\d+)?\s*$`)
	lineBracketTimingRE    = regexp.MustCompile(`\s*\[\s*\d{1,2}:\d{2}#?\]\s*`)
	lineParenDurationRE    = regexp.MustCompile(`\s*\(\s*\d{1,2}:\d{2}\s*\)\s*$`)
	lineBraceTimingRE      = regexp.MustCompile(`\s*\{\s*\d{1,2}:\d{2}(\.\d+)?\s*\}\s*`)
	lineHashSuffixRE       = regexp.MustCompile(`:[a-f0-9]{32}$`)
	lineSpaceRunRE         = regexp.MustCompile(`\s+`)
)

// Parse turns free-form setlist text into a Document. The first set header
// (or, failing that, the first numbered track line) splits the file into a
// header region and a body; everything above feeds venue extraction and
// everything below runs through the set tracking state machine.
func Parse(sourceID, text string) (*Document, error) {
	lines := strings.Split(text, "\n")

	headerIdx, hasSetHeaders := findFirstSetHeader(lines)
	bodyStart := headerIdx
	if !hasSetHeaders {
		trackIdx, ok := findFirstTrackLine(lines)
		if !ok {
			return nil, ErrUnparsable
		}
		bodyStart = trackIdx
	}

	var headerLines []string
	for _, line := range lines[:bodyStart] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			headerLines = append(headerLines, trimmed)
		}
	}

	doc := &Document{
		SourceID:    sourceID,
		VenueText:   extractVenue(headerLines),
		HeaderLines: headerLines,
	}
	doc.Entries = parseSongs(lines, bodyStart, hasSetHeaders)
	return doc, nil
}

func findFirstSetHeader(lines []string) (int, bool) {
	for i, line := range lines {
		if _, _, ok := parseSetHeader(strings.TrimSpace(line)); ok {
			return i, true
		}
	}
	return 0, false
}

func findFirstTrackLine(lines []string) (int, bool) {
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		for _, pattern := range trackLinePatterns {
			if pattern.MatchString(stripped) {
				return i, true
			}
		}
	}
	return 0, false
}

// parseSetHeader returns (setNumber, isEncore). Encore headers report
// setNumber 0; the caller assigns the real number from running state.
func parseSetHeader(line string) (int, bool, bool) {
	if line == "" {
		return 0, false, false
	}
	m := setHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return 0, false, false
	}

	setNum, ordinal, encore, bareE := m[1], m[2], m[3], m[5]

	if encore != "" || bareE != "" {
		return 0, true, true
	}
	if ordinal != "" {
		if n, ok := ordinalNumbers[strings.ToLower(ordinal)]; ok {
			return n, false, true
		}
		return 1, false, true
	}
	if setNum != "" {
		if n, err := strconv.Atoi(setNum); err == nil {
			return n, false, true
		}
		if n, ok := romanNumbers[strings.ToLower(setNum)]; ok {
			return n, false, true
		}
	}
	return 0, false, false
}

// parseSongs walks the body, tracking set changes and yielding entries.
// Encore sets number after the highest set seen so far.
func parseSongs(lines []string, start int, hasSetHeaders bool) []Entry {
	var entries []Entry
	currentSet := 1
	currentIsEncore := false
	maxNonEncoreSet := 0
	positionInSet := 0

	for i := start; i < len(lines); i++ {
		stripped := strings.TrimSpace(lines[i])
		if stripped == "" {
			continue
		}

		if setNum, isEncore, ok := parseSetHeader(stripped); ok {
			if isEncore {
				currentIsEncore = true
				if maxNonEncoreSet > currentSet {
					currentSet = maxNonEncoreSet
				}
				currentSet++
			} else {
				currentIsEncore = false
				currentSet = setNum
				if setNum > maxNonEncoreSet {
					maxNonEncoreSet = setNum
				}
			}
			positionInSet = 0
			continue
		}

		if isSkipLine(stripped) {
			continue
		}

		title, ok := extractSongTitle(stripped, hasSetHeaders)
		if !ok {
			continue
		}

		hasSegue := false
		trimmed := strings.TrimRight(title, " \t")
		for _, marker := range lineSegueMarkers {
			if strings.HasSuffix(trimmed, marker) {
				hasSegue = true
				title = strings.TrimRight(trimmed[:len(trimmed)-len(marker)], " \t")
				break
			}
		}

		title = cleanSongTitle(title)
		if title == "" {
			continue
		}

		setNumber := currentSet
		if setNumber <= 0 {
			setNumber = 1
		}
		positionInSet++
		entries = append(entries, Entry{
			Title:       title,
			SetNumber:   setNumber,
			SetIsEncore: currentIsEncore,
			Position:    positionInSet,
			HasSegue:    hasSegue,
			IsExtra:     titlenorm.IsExtra(title),
		})
	}

	// A file without any real set header keeps everything in set 1.
	if maxNonEncoreSet == 0 && !currentIsEncore {
		for i := range entries {
			entries[i].SetNumber = 1
		}
	}

	return entries
}

func isSkipLine(line string) bool {
	for _, pattern := range skipLinePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// extractSongTitle pulls the title out of a body line. Numbered track
// grammars run first; a bare line of text only counts when the file has
// real set headers, the line holds letters, is short enough to plausibly
// be a title, and is not a "Label:" line.
func extractSongTitle(line string, hasSetHeaders bool) (string, bool) {
	for _, pattern := range trackLinePatterns {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}

	if hasSetHeaders && letterRE.MatchString(line) && len(line) < 150 && !labelLineRE.MatchString(line) {
		return strings.TrimSpace(line), true
	}
	return "", false
}

func cleanSongTitle(title string) string {
	title = lineTrailingDurationRE.ReplaceAllString(title, "")
	title = lineBracketTimingRE.ReplaceAllString(title, " ")
	title = lineParenDurationRE.ReplaceAllString(title, "")
	title = lineBraceTimingRE.ReplaceAllString(title, " ")
	title = lineHashSuffixRE.ReplaceAllString(title, "")
	if strings.HasSuffix(strings.ToLower(title), ".flac") {
		title = title[:len(title)-5]
	}
	for _, marker := range titlenorm.TapeMarkers {
		title = strings.ReplaceAll(title, marker, "")
	}
	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), "-"))
	return lineSpaceRunRE.ReplaceAllString(title, " ")
}

// extractVenue joins the header lines that survive the band, date,
// technical, and numeric filters.
func extractVenue(headerLines []string) string {
	var parts []string

	for _, line := range headerLines {
		lower := strings.ToLower(strings.TrimSpace(line))

		if containsAny(lower, bandNamePatterns) {
			continue
		}
		if datePatternRE.MatchString(line) {
			continue
		}
		if containsAny(lower, venueSkipKeywords) {
			continue
		}
		if numericLineRE.MatchString(line) {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, "; ")
}

func containsAny(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}
