package titlenorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// smallWords stay lowercase inside a title unless they open it.
var smallWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "but": {}, "or": {},
	"for": {}, "nor": {}, "on": {}, "at": {}, "to": {}, "from": {},
	"by": {}, "of": {}, "in": {}, "with": {}, "vs": {},
}

var (
	upperCaser = cases.Upper(language.English)
	lowerCaser = cases.Lower(language.English)
)

// TitleCase applies song-title casing. Small words stay lowercase unless
// first, all-caps tokens such as USA or IV are preserved, hyphenated parts
// are capitalized individually, and contractions get a single leading
// capital.
func TitleCase(text string) string {
	if text == "" {
		return text
	}

	words := strings.Fields(text)
	result := make([]string, 0, len(words))

	for i, word := range words {
		if len(word) > 1 && word == upperCaser.String(word) && strings.ContainsFunc(word, isLetterRune) {
			result = append(result, word)
			continue
		}

		lower := lowerCaser.String(word)
		if i > 0 {
			if _, ok := smallWords[lower]; ok {
				result = append(result, lower)
				continue
			}
		}

		if strings.Contains(word, "-") {
			parts := strings.Split(word, "-")
			for j, part := range parts {
				parts[j] = capitalize(part)
			}
			result = append(result, strings.Join(parts, "-"))
			continue
		}

		result = append(result, capitalize(word))
	}

	return strings.Join(result, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	head := upperCaser.String(string(runes[:1]))
	tail := lowerCaser.String(string(runes[1:]))
	return head + tail
}

func isLetterRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r > 127
}
