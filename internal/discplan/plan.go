package discplan

import (
	"strings"

	"setscan/internal/catalog"
	"setscan/internal/matcher"
	"setscan/internal/titlenorm"
)

// Track is one audio file in physical order with its raw metadata title.
type Track struct {
	Name     string
	RawTitle string
}

// Assignment places one track on a disc. Inferred marks tracks whose disc
// came from neighboring songs rather than a catalog set lookup.
type Assignment struct {
	Name        string
	Disc        int
	TrackNumber int
	Title       string
	MatchedSong string
	IsExtra     bool
	Inferred    bool
}

// Engine maps tracks to discs so each musical set lands on its own disc,
// with the encore (and trailing filler) on the final one.
type Engine struct {
	matcher *matcher.Matcher
}

func NewEngine(m *matcher.Matcher) *Engine {
	return &Engine{matcher: m}
}

// Assign resolves disc and track numbers for files in physical order.
// Matched songs take their catalog set. Extras and unknown titles take the
// nearest following matched set, falling back to the nearest preceding one
// and finally disc 1. Extras after the last non-encore song move to the
// encore disc. Without set info everything lands on a single disc.
func (e *Engine) Assign(tracks []Track, entries []catalog.SetlistEntry, sets []catalog.SetInfo) []Assignment {
	if len(sets) == 0 {
		return e.assignSingleDisc(tracks)
	}

	songToSet := make(map[string]int, len(entries))
	for _, entry := range entries {
		songToSet[strings.ToLower(entry.SongName)] = entry.SetSeq
	}

	assignments := make([]Assignment, 0, len(tracks))
	known := make([]bool, len(tracks))
	for i, track := range tracks {
		result := e.matcher.Match(track.RawTitle)
		matched := result.MatchedTitle
		title := matched
		if title == "" {
			title = result.CleanedTitle
		}
		if title == "" {
			title = track.RawTitle
		}
		isExtra := titlenorm.IsExtra(track.RawTitle) || result.Source == matcher.SourceExtra

		assignment := Assignment{
			Name:        track.Name,
			Title:       title,
			MatchedSong: matched,
			IsExtra:     isExtra,
		}
		if matched != "" && !isExtra {
			if setNum, ok := songToSet[strings.ToLower(matched)]; ok {
				assignment.Disc = setNum
				known[i] = true
			}
		}
		assignments = append(assignments, assignment)
	}

	fillInferredDiscs(assignments, known)
	moveTrailingExtrasToEncore(assignments, sets)
	renumber(assignments)
	return assignments
}

func (e *Engine) assignSingleDisc(tracks []Track) []Assignment {
	assignments := make([]Assignment, 0, len(tracks))
	for i, track := range tracks {
		result := e.matcher.Match(track.RawTitle)
		title := result.MatchedTitle
		if title == "" {
			title = result.CleanedTitle
		}
		if title == "" {
			title = track.RawTitle
		}
		assignments = append(assignments, Assignment{
			Name:        track.Name,
			Disc:        1,
			TrackNumber: i + 1,
			Title:       title,
			MatchedSong: result.MatchedTitle,
			IsExtra:     titlenorm.IsExtra(track.RawTitle),
		})
	}
	return assignments
}

// fillInferredDiscs resolves tracks without a catalog set from their
// neighbors: nearest following known set, then nearest preceding, then
// disc 1.
func fillInferredDiscs(assignments []Assignment, known []bool) {
	for i := range assignments {
		if known[i] {
			continue
		}

		disc := 0
		for j := i + 1; j < len(assignments); j++ {
			if known[j] {
				disc = assignments[j].Disc
				break
			}
		}
		if disc == 0 {
			for j := i - 1; j >= 0; j-- {
				if known[j] {
					disc = assignments[j].Disc
					break
				}
			}
		}
		if disc == 0 {
			disc = 1
		}
		assignments[i].Disc = disc
		assignments[i].Inferred = true
	}
}

// moveTrailingExtrasToEncore puts filler between the set closer and the
// encore (crowd noise, encore break) on the encore disc.
func moveTrailingExtrasToEncore(assignments []Assignment, sets []catalog.SetInfo) {
	encoreSet := 0
	nonEncoreSets := make(map[int]struct{})
	for _, info := range sets {
		if info.Encore {
			encoreSet = info.SetSeq
		} else {
			nonEncoreSets[info.SetSeq] = struct{}{}
		}
	}
	if encoreSet == 0 {
		return
	}

	lastNonEncoreIdx := -1
	for i, assignment := range assignments {
		if assignment.IsExtra {
			continue
		}
		if _, ok := nonEncoreSets[assignment.Disc]; ok {
			lastNonEncoreIdx = i
		}
	}
	if lastNonEncoreIdx < 0 {
		return
	}

	for i := lastNonEncoreIdx + 1; i < len(assignments); i++ {
		if assignments[i].IsExtra {
			assignments[i].Disc = encoreSet
		}
	}
}

// renumber assigns track numbers sequentially per disc, preserving the
// physical file order.
func renumber(assignments []Assignment) {
	counts := make(map[int]int)
	for i := range assignments {
		counts[assignments[i].Disc]++
		assignments[i].TrackNumber = counts[assignments[i].Disc]
	}
}

// Totals derives the disc count and per-disc track totals.
func Totals(assignments []Assignment) (int, map[int]int) {
	perDisc := make(map[int]int)
	for _, assignment := range assignments {
		perDisc[assignment.Disc]++
	}
	return len(perDisc), perDisc
}
