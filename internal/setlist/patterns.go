package setlist

import "regexp"

// trackLinePatterns extract a song title from a numbered track line. Order
// matters: more specific patterns first, first match wins.
var trackLinePatterns = []*regexp.Regexp{
	// "d1t01 - Song Name"
	regexp.MustCompile(`(?i)^d\d+t\d+\s*[-–—]\s*(.+)`),
	// "01. Song Name"  or  "01) Song Name"  or  "01 - Song Name"
	regexp.MustCompile(`^\d{1,2}\s*[.)\-–—]\s*(.+)`),
	// "01   Song Name"  (number + 2+ spaces)
	regexp.MustCompile(`^\d{1,2}\s{2,}(\S.+)`),
	// "01 Song Name"  (number + single space + letter)
	regexp.MustCompile(`^\d{1,2}\s+([A-Za-z/].+)`),
	// "Track 01: Song Name"
	regexp.MustCompile(`(?i)^track\s*\d+\s*[:\-–—]\s*(.+)`),
	// "t01 Song Name"
	regexp.MustCompile(`(?i)^t\d+\s+(.+)`),
}

// skipLinePatterns mark metadata and technical lines that never hold
// songs. They are evaluated as searches, so the unanchored ones scan the
// whole line.
var skipLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[-=~*_]{3,}`), // horizontal rules
	regexp.MustCompile(`^\s*$`),
	regexp.MustCompile(`(?i)^source\s*:`),
	regexp.MustCompile(`(?i)^taper\s*:`),
	regexp.MustCompile(`(?i)^transfer`),
	regexp.MustCompile(`(?i)^lineage\s*:`),
	regexp.MustCompile(`(?i)^notes?\s*:`),
	regexp.MustCompile(`(?i)^recorded\b`),
	regexp.MustCompile(`(?i)^location\s*:`),
	regexp.MustCompile(`(?i)^gen(eration)?\s*:`),
	regexp.MustCompile(`(?i)^shn\b`),
	regexp.MustCompile(`(?i)^flac\b`),
	regexp.MustCompile(`(?i)^disc\s*\d`),
	regexp.MustCompile(`(?i)^cd\s*\d`),
	regexp.MustCompile(`(?i)^d\d+\s*$`), // bare "d1"
	regexp.MustCompile(`(?i)^total\s+time`),
	regexp.MustCompile(`^\d+:\d+:\d+`), // total timestamps
	regexp.MustCompile(`(?i)^runtime`),
	regexp.MustCompile(`(?i)^archive\.org`),
	regexp.MustCompile(`(?i)^etree\b`),
	regexp.MustCompile(`(?i)^shnid`),
	regexp.MustCompile(`(?i)^https?://`),
	regexp.MustCompile(`(?i)^www\.`),
	regexp.MustCompile(`(?i)^equipment\s*:`),
	regexp.MustCompile(`(?i)^patch(ed)?\s*:`),
	regexp.MustCompile(`(?i)^seeded\b`),
	regexp.MustCompile(`(?i)^\(?\s*\d{1,3}\.\d\s*MB\s*\)?`), // file sizes
	regexp.MustCompile(`(?i)\.flac\b`),
	regexp.MustCompile(`(?i)\.shn\b`),
	regexp.MustCompile(`(?i)\.mp3\b`),
	regexp.MustCompile(`(?i)^[0-9a-f]{32}\s`), // MD5 hash lines
	regexp.MustCompile(`\*\d{2}\s`),           // md5sum format "*01 file"
	regexp.MustCompile(`\b\d+\s+B\b`),         // byte counts "12345 B"
	regexp.MustCompile(`(?i)\bcdr\b.*\bflac\b`),
	regexp.MustCompile(`^\*\*.+\*\*`), // **marker** lines
	regexp.MustCompile(`(?i)\blength\b.*\bexpanded\b.*\bsize\b`),
	regexp.MustCompile(`(?i)^\(\d+\s+files?\)`),
	regexp.MustCompile(`(?i)^\d+\s+bit\b`),
	regexp.MustCompile(`(?i)\bbit\s+\d+\s*khz`),
	regexp.MustCompile(`(?i)^setbreak\s*$`),
	regexp.MustCompile(`(?i)^set\s*break\s*$`),
	regexp.MustCompile(`^\s*\d{1,2}:\d{2}\.\d+\s+\d`), // shntool timing lines
}

// setHeaderRE recognizes set boundary lines: "Set 1", "Set #2", "Set II",
// "First Set", "Encore", "Encore: 2", and a bare "E:".
var setHeaderRE = regexp.MustCompile(
	`(?i)^\s*(?:set\s*[#:]?\s*(\d+|[ivx]+)|(first|second|third)\s+set|(encore)\s*:?\s*(\d*)|(e)\s*:\s*$)\s*:?\s*$`)

var romanNumbers = map[string]int{"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5}

var ordinalNumbers = map[string]int{"first": 1, "second": 2, "third": 3}

// bandNamePatterns filter performer lines out of the header pool when
// extracting venue text.
var bandNamePatterns = []string{
	"grateful dead", "jerry garcia", "garcia", "jgb",
	"jerry garcia band", "legion of mary", "reconstruction",
	"old and in the way", "robert hunter", "bob weir",
	"mickey hart", "phil lesh", "merl saunders",
}

// datePatternRE spots date-like strings in header lines.
var datePatternRE = regexp.MustCompile(
	`(?i)\b(?:\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{1,2},?\s+\d{4})\b`)

// venueSkipKeywords mark source and technical metadata in header lines.
var venueSkipKeywords = []string{
	"source:", "taper:", "transfer", "lineage:", "recording",
	"sbd", "aud", "matrix", "shn", "flac", "archive.org",
	"etree", "http", "www.", ".flac", ".shn", "cd-r",
	"dat", "cassette", "reel", "pre-fm", "fm broadcast",
	"equipment", "patch", "generation",
}

var numericLineRE = regexp.MustCompile(`^[\d\s\-/]+$`)

var labelLineRE = regexp.MustCompile(`^[A-Z][a-z]+\s*:`)

var letterRE = regexp.MustCompile(`[a-zA-Z]`)
