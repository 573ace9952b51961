package titlenorm

import "strings"

// extraTrackPatterns are substrings marking non-song filler tracks. The
// dNt entries catch bare disc/track placeholders left by rippers.
var extraTrackPatterns = []string{
	"tuning", "crowd", "banter", "applause", "introduction", "intro",
	"stage banter", "band introductions", "band intros", "announcements",
	"soundcheck", "warmup", "fade in", "fade out", "cut", "tape flip",
	"tape cut", "unknown", "encore break", "technical", "set break",
	"d1t", "d2t", "d3t", "d4t",
}

// IsExtra reports whether a title names a non-song track such as tuning or
// crowd noise. Placeholder titles shaped like d1t07 count too.
func IsExtra(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))

	if len(lower) >= 4 && lower[0] == 'd' && lower[2] == 't' && isDigit(lower[1]) {
		end := len(lower)
		if end > 5 {
			end = 5
		}
		if allDigits(lower[3:end]) {
			return true
		}
	}

	for _, pattern := range extraTrackPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
