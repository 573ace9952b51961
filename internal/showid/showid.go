package showid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a show date parsed from a folder name.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ShortString drops the century, matching the two-digit convention many
// archive folders use.
func (d Date) ShortString() string {
	return fmt.Sprintf("%02d-%02d-%02d", d.Year%100, d.Month, d.Day)
}

var (
	fourDigitDateRE = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	twoDigitDateRE  = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{2})`)
)

// ParseDate extracts a show date from a folder name such as
// "gd1977-05-08.12345.sbd.miller.flac16" or "gd83-09-04.aud". Two-digit
// years 60 and up land in the 1900s, the rest in the 2000s. padChars is
// the number of prefix characters before the date when both regex forms
// miss.
func ParseDate(folderName string, padChars int) (Date, bool) {
	if m := fourDigitDateRE.FindStringSubmatch(folderName); m != nil {
		return Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}, true
	}

	if m := twoDigitDateRE.FindStringSubmatch(folderName); m != nil {
		year := atoi(m[1])
		if year >= 60 {
			year += 1900
		} else {
			year += 2000
		}
		return Date{Year: year, Month: atoi(m[2]), Day: atoi(m[3])}, true
	}

	// Last resort: parse the slice right after the prefix padding.
	if padChars >= 0 && padChars < len(folderName) {
		slice := folderName[padChars:]
		if len(slice) > 10 {
			slice = slice[:10]
		}
		for _, layout := range []string{"2006-01-02", "2006.01.02", "2006/01/02"} {
			if t, err := time.Parse(layout, slice); err == nil {
				return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true
			}
		}
	}

	return Date{}, false
}

// ParseArchiveID pulls the numeric archive identifier out of a dotted
// folder name. Identifiers are large numbers, so small numeric tokens
// (disc counts, bit depths) are ignored.
func ParseArchiveID(folderName string) string {
	for _, part := range strings.Split(folderName, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		if n > 1000 {
			return strconv.Itoa(n)
		}
	}
	return ""
}

// DetectEarlyLate reports "EARLY" or "LATE" from the folder name, or ""
// when absent or ambiguous.
func DetectEarlyLate(folderName string) string {
	lower := strings.ToLower(folderName)
	hasEarly := strings.Contains(lower, "early")
	hasLate := strings.Contains(lower, "late")
	switch {
	case hasEarly && hasLate:
		return ""
	case hasEarly:
		return "EARLY"
	case hasLate:
		return "LATE"
	default:
		return ""
	}
}

// sourceTypes pairs a source label with the folder-name substrings that
// imply it. Order matters: the first hit wins.
var sourceTypes = []struct {
	name     string
	patterns []string
}{
	{"sbd", []string{"sbd"}},
	{"aud", []string{"aud", "nak", "sony", "akg", "senn"}},
	{"fm", []string{"fm"}},
	{"tv", []string{"tv"}},
	{"fob", []string{"fob"}},
	{"studio", []string{"studio"}},
	{"gmb", []string{"gmb"}},
	{"pa", []string{".pa.", "-pa-", "_pa_", "pa."}},
	{"mtx", []string{"mtx", "matrix"}},
}

// DetectSourceType classifies the recording source from the folder name.
func DetectSourceType(folderName string) string {
	lower := strings.ToLower(folderName)
	for _, source := range sourceTypes {
		for _, pattern := range source.patterns {
			if strings.Contains(lower, pattern) {
				return source.name
			}
		}
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
