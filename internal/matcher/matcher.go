package matcher

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"setscan/internal/corrections"
	"setscan/internal/logging"
	"setscan/internal/titlenorm"
)

// Source identifies which tier produced a match.
type Source string

const (
	SourceExact       Source = "exact"
	SourceCorrections Source = "corrections"
	SourceExtra       Source = "extra"
	SourceFuzzy       Source = "fuzzy"
	SourceUnmatched   Source = "unmatched"
)

// Result is the outcome of one title match attempt.
type Result struct {
	OriginalTitle string
	CleanedTitle  string
	MatchedTitle  string
	Confidence    int
	Source        Source
	HasSegue      bool
	NeedsReview   bool
}

// FinalTitle returns the title to apply: the canonical match when one
// exists, otherwise the title-cased cleaned title, with the segue marker
// restored.
func (r Result) FinalTitle() string {
	title := r.MatchedTitle
	if title == "" {
		title = titlenorm.TitleCase(r.CleanedTitle)
	}
	return titlenorm.FinalTitle(title, r.HasSegue)
}

var passthroughCaser = cases.Title(language.English)

// Matcher resolves raw track titles to canonical song names through a
// fixed tier order: exact vocabulary hit, learned correction, extra-songs
// map, extra-track heuristics, then fuzzy similarity.
type Matcher struct {
	vocabulary  map[string]string
	vocabKeys   []string
	corrections corrections.Map
	extras      corrections.Map
	scorer      Scorer
	policy      Policy
	logger      *slog.Logger
}

// New builds a matcher over a lowercased vocabulary. The corrections map
// receives fuzzy auto-applies; pass a read-only store to keep a run from
// mutating shared state.
func New(vocabulary map[string]string, corr corrections.Map, extras corrections.Map, scorer Scorer, policy Policy, logger *slog.Logger) *Matcher {
	keys := make([]string, 0, len(vocabulary))
	for key := range vocabulary {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if scorer == nil {
		scorer = NewScorer()
	}
	return &Matcher{
		vocabulary:  vocabulary,
		vocabKeys:   keys,
		corrections: corr,
		extras:      extras,
		scorer:      scorer,
		policy:      policy.normalized(),
		logger:      logging.NewComponentLogger(logger, "matcher"),
	}
}

// Match resolves one raw title.
func (m *Matcher) Match(raw string) Result {
	cleaned, hasSegue := titlenorm.Clean(raw)
	cleanedLower := strings.ToLower(cleaned)

	base := Result{
		OriginalTitle: raw,
		CleanedTitle:  cleaned,
		HasSegue:      hasSegue,
	}

	if canonical, ok := m.vocabulary[cleanedLower]; ok {
		base.MatchedTitle = canonical
		base.Confidence = 100
		base.Source = SourceExact
		return base
	}

	if m.corrections != nil {
		if canonical, ok := m.corrections.Lookup(cleanedLower); ok {
			base.MatchedTitle = canonical
			base.Confidence = 100
			base.Source = SourceCorrections
			return base
		}
	}

	if m.extras != nil {
		if canonical, ok := m.extras.Lookup(cleanedLower); ok {
			base.MatchedTitle = canonical
			base.Confidence = 100
			base.Source = SourceExtra
			return base
		}
	}

	if titlenorm.IsExtra(cleaned) {
		if m.extras != nil {
			snapshot := m.extras.Snapshot()
			patterns := make([]string, 0, len(snapshot))
			for pattern := range snapshot {
				patterns = append(patterns, pattern)
			}
			sort.Strings(patterns)
			for _, pattern := range patterns {
				if strings.Contains(cleanedLower, pattern) {
					base.MatchedTitle = snapshot[pattern]
					base.Confidence = 90
					base.Source = SourceExtra
					return base
				}
			}
		}

		base.MatchedTitle = passthroughCaser.String(cleaned)
		base.Confidence = 80
		base.Source = SourceExtra
		return base
	}

	if len(m.vocabKeys) > 0 && cleanedLower != "" {
		matchedLower, score := m.scorer.BestMatch(cleanedLower, m.vocabKeys)
		if matchedLower != "" {
			canonical := m.vocabulary[matchedLower]
			switch {
			case score >= m.policy.AutoApplyThreshold:
				if m.corrections != nil {
					if err := m.corrections.Apply(cleanedLower, canonical); err != nil {
						m.logger.Warn("record learned correction",
							logging.String("title", cleaned), logging.Error(err))
					}
				}
				base.MatchedTitle = canonical
				base.Confidence = score
				base.Source = SourceFuzzy
				return base
			case score >= m.policy.ReviewThreshold:
				base.MatchedTitle = canonical
				base.Confidence = score
				base.Source = SourceFuzzy
				base.NeedsReview = true
				return base
			}
		}
	}

	base.Source = SourceUnmatched
	return base
}
