package matcher_test

import (
	"path/filepath"
	"testing"

	"setscan/internal/corrections"
	"setscan/internal/matcher"
)

type fixedScorer struct {
	best  string
	score int
}

func (f fixedScorer) BestMatch(string, []string) (string, int) {
	return f.best, f.score
}

func newStores(t *testing.T) (*corrections.Store, *corrections.Store) {
	t.Helper()
	dir := t.TempDir()
	corr, err := corrections.Load(filepath.Join(dir, "corrections_map.csv"))
	if err != nil {
		t.Fatalf("load corrections: %v", err)
	}
	extras, err := corrections.Load(filepath.Join(dir, "extra_songs.csv"))
	if err != nil {
		t.Fatalf("load extras: %v", err)
	}
	return corr, extras
}

var vocabulary = map[string]string{
	"scarlet begonias":     "Scarlet Begonias",
	"fire on the mountain": "Fire on the Mountain",
	"bertha":               "Bertha",
}

func TestMatchExactIsCaseInsensitive(t *testing.T) {
	corr, extras := newStores(t)
	m := matcher.New(vocabulary, corr, extras, nil, matcher.DefaultPolicy(), nil)

	result := m.Match("BERTHA")
	if result.Source != matcher.SourceExact || result.Confidence != 100 {
		t.Fatalf("result = %+v", result)
	}
	if result.MatchedTitle != "Bertha" {
		t.Fatalf("matched = %q", result.MatchedTitle)
	}
}

func TestMatchUsesCorrectionsBeforeFuzzy(t *testing.T) {
	corr, extras := newStores(t)
	if err := corr.Apply("fotm", "Fire on the Mountain"); err != nil {
		t.Fatal(err)
	}
	m := matcher.New(vocabulary, corr, extras, fixedScorer{}, matcher.DefaultPolicy(), nil)

	result := m.Match("FOTM")
	if result.Source != matcher.SourceCorrections || result.Confidence != 100 {
		t.Fatalf("result = %+v", result)
	}
}

func TestMatchExtraDirectAndSubstring(t *testing.T) {
	corr, extras := newStores(t)
	if err := extras.Apply("tuning", "Tuning"); err != nil {
		t.Fatal(err)
	}
	m := matcher.New(vocabulary, corr, corrections.ReadOnly(extras), fixedScorer{}, matcher.DefaultPolicy(), nil)

	direct := m.Match("Tuning")
	if direct.Source != matcher.SourceExtra || direct.Confidence != 100 {
		t.Fatalf("direct = %+v", direct)
	}

	substring := m.Match("tuning jam")
	if substring.Source != matcher.SourceExtra || substring.Confidence != 90 {
		t.Fatalf("substring = %+v", substring)
	}
	if substring.MatchedTitle != "Tuning" {
		t.Fatalf("substring matched = %q", substring.MatchedTitle)
	}
}

func TestMatchExtraPassthroughTitleCases(t *testing.T) {
	corr, extras := newStores(t)
	m := matcher.New(vocabulary, corr, extras, fixedScorer{}, matcher.DefaultPolicy(), nil)

	result := m.Match("crowd noise")
	if result.Source != matcher.SourceExtra || result.Confidence != 80 {
		t.Fatalf("result = %+v", result)
	}
	if result.MatchedTitle != "Crowd Noise" {
		t.Fatalf("matched = %q", result.MatchedTitle)
	}
}

func TestMatchFuzzyAutoApplyLearnsCorrection(t *testing.T) {
	corr, extras := newStores(t)
	m := matcher.New(vocabulary, corr, extras, nil, matcher.DefaultPolicy(), nil)

	result := m.Match("Scarlet Begonia")
	if result.Source != matcher.SourceFuzzy {
		t.Fatalf("result = %+v", result)
	}
	if result.MatchedTitle != "Scarlet Begonias" {
		t.Fatalf("matched = %q", result.MatchedTitle)
	}
	if result.Confidence < 85 {
		t.Fatalf("confidence = %d, want >= 85", result.Confidence)
	}
	if result.NeedsReview {
		t.Fatal("auto-applied match should not need review")
	}

	if canonical, ok := corr.Lookup("scarlet begonia"); !ok || canonical != "Scarlet Begonias" {
		t.Fatalf("correction not learned: %q, %v", canonical, ok)
	}
}

func TestMatchFuzzyReviewBandDoesNotLearn(t *testing.T) {
	corr, extras := newStores(t)
	scorer := fixedScorer{best: "bertha", score: 80}
	m := matcher.New(vocabulary, corr, extras, scorer, matcher.DefaultPolicy(), nil)

	result := m.Match("Betha Jam")
	if result.Source != matcher.SourceFuzzy || !result.NeedsReview {
		t.Fatalf("result = %+v", result)
	}
	if result.Confidence != 80 {
		t.Fatalf("confidence = %d", result.Confidence)
	}
	if corr.Len() != 0 {
		t.Fatal("review-band match must not write corrections")
	}
}

func TestMatchUnmatchedBelowReviewThreshold(t *testing.T) {
	corr, extras := newStores(t)
	scorer := fixedScorer{best: "bertha", score: 40}
	m := matcher.New(vocabulary, corr, extras, scorer, matcher.DefaultPolicy(), nil)

	result := m.Match("Some Original Composition")
	if result.Source != matcher.SourceUnmatched || result.Confidence != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.MatchedTitle != "" {
		t.Fatalf("matched = %q", result.MatchedTitle)
	}
}

func TestMatchPreservesSegueIntoFinalTitle(t *testing.T) {
	corr, extras := newStores(t)
	m := matcher.New(vocabulary, corr, extras, fixedScorer{}, matcher.DefaultPolicy(), nil)

	result := m.Match("Scarlet Begonias ->")
	if !result.HasSegue {
		t.Fatal("segue not detected")
	}
	if got := result.FinalTitle(); got != "Scarlet Begonias >" {
		t.Fatalf("FinalTitle = %q", got)
	}
}

func TestMatchConfidenceMonotonicity(t *testing.T) {
	corr, extras := newStores(t)
	m := matcher.New(vocabulary, corr, extras, nil, matcher.DefaultPolicy(), nil)

	exact := m.Match("Fire on the Mountain")
	near := m.Match("Fire on the Mountian")
	far := m.Match("Completely Unrelated Improvisation XYZ")

	if exact.Confidence != 100 {
		t.Fatalf("exact confidence = %d", exact.Confidence)
	}
	if near.Confidence >= exact.Confidence {
		t.Fatalf("near confidence %d should be below exact", near.Confidence)
	}
	if far.Confidence != 0 || far.Source != matcher.SourceUnmatched {
		t.Fatalf("far = %+v", far)
	}
}
