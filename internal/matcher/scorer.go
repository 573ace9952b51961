package matcher

import (
	"math"

	"github.com/hbollon/go-edlib"
)

// Scorer picks the best candidate for a query and reports a similarity
// score in [0, 100].
type Scorer interface {
	BestMatch(query string, candidates []string) (string, int)
}

type levenshteinScorer struct{}

// NewScorer returns the default Levenshtein similarity scorer.
func NewScorer() Scorer {
	return levenshteinScorer{}
}

func (levenshteinScorer) BestMatch(query string, candidates []string) (string, int) {
	best := ""
	bestScore := -1
	for _, candidate := range candidates {
		similarity, err := edlib.StringsSimilarity(query, candidate, edlib.Levenshtein)
		if err != nil {
			continue
		}
		score := int(math.Round(float64(similarity) * 100))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}
