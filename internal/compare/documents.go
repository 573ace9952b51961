package compare

import (
	"fmt"
	"sort"
	"strings"

	"setscan/internal/setlist"
)

// CompareDocuments cross-checks two parsed setlists for the same show.
// Every finding carries the txt_disagreement type; the details string
// names the specific check.
func (e *Engine) CompareDocuments(a, b *setlist.Document) []Discrepancy {
	var discs []Discrepancy
	nameA, nameB := a.SourceID, b.SourceID

	normA := e.normalize(a.Entries)
	normB := e.normalize(b.Entries)

	nonExtraA := canonicalSet(normA, false)
	nonExtraB := canonicalSet(normB, false)

	for _, name := range sortedDiff(nonExtraA, nonExtraB) {
		discs = append(discs, Discrepancy{
			Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
			Details: fmt.Sprintf("Song in %s but not in %s: %q", nameA, nameB, rawTitle(normA, name)),
		})
	}
	for _, name := range sortedDiff(nonExtraB, nonExtraA) {
		discs = append(discs, Discrepancy{
			Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
			Details: fmt.Sprintf("Song in %s but not in %s: %q", nameB, nameA, rawTitle(normB, name)),
		})
	}

	extrasA := canonicalSet(normA, true)
	extrasB := canonicalSet(normB, true)
	for _, name := range sortedDiff(extrasA, extrasB) {
		discs = append(discs, Discrepancy{
			Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
			Details: fmt.Sprintf("Extra track in %s but not %s: %q", nameA, nameB, rawTitle(normA, name)),
		})
	}
	for _, name := range sortedDiff(extrasB, extrasA) {
		discs = append(discs, Discrepancy{
			Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
			Details: fmt.Sprintf("Extra track in %s but not %s: %q", nameB, nameA, rawTitle(normB, name)),
		})
	}

	// Set assignment for songs both documents list.
	setA := setNumbers(normA)
	setB := setNumbers(normB)
	for _, name := range sortedIntersection(nonExtraA, nonExtraB) {
		if setA[name] != setB[name] {
			discs = append(discs, Discrepancy{
				Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
				Details: fmt.Sprintf("Set differs for %q: %s=Set %d, %s=Set %d",
					canonicalName(normA, name), nameA, setA[name], nameB, setB[name]),
			})
		}
	}

	// Order of shared songs per set.
	allSets := make(map[int]struct{})
	for _, n := range normA {
		if !n.isExtra {
			allSets[n.entry.SetNumber] = struct{}{}
		}
	}
	for _, n := range normB {
		if !n.isExtra {
			allSets[n.entry.SetNumber] = struct{}{}
		}
	}
	setNums := make([]int, 0, len(allSets))
	for sn := range allSets {
		setNums = append(setNums, sn)
	}
	sort.Ints(setNums)
	for _, sn := range setNums {
		orderA := orderInSet(normA, sn)
		orderB := orderInSet(normB, sn)
		commonA := intersect(orderA, orderB)
		commonB := intersect(orderB, orderA)
		if len(commonA) > 0 && len(commonB) > 0 && !equalOrder(commonA, commonB) {
			discs = append(discs, Discrepancy{
				Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
				Details: fmt.Sprintf("Set %d song order differs between txt files", sn),
			})
		}
	}

	// Segue flags for songs both documents list, extras included.
	segA := segueFlags(normA)
	segB := segueFlags(normB)
	for _, name := range sortedIntersection(segA, segB) {
		if segA[name] != segB[name] {
			discs = append(discs, Discrepancy{
				Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
				Details: fmt.Sprintf("Segue for %q: %s %s, %s %s",
					canonicalName(normA, name),
					nameA, shortSegueLabel(segA[name]),
					nameB, shortSegueLabel(segB[name])),
			})
		}
	}

	if a.VenueText != "" && b.VenueText != "" {
		if !strings.EqualFold(strings.TrimSpace(a.VenueText), strings.TrimSpace(b.VenueText)) {
			discs = append(discs, Discrepancy{
				Type: TypeTxtDisagreement, SourceA: nameA, SourceB: nameB,
				Details: fmt.Sprintf("Venue text differs: %s=%q vs %s=%q",
					nameA, a.VenueText, nameB, b.VenueText),
			})
		}
	}

	return discs
}

func canonicalSet(norm []normalizedEntry, extras bool) map[string]struct{} {
	out := make(map[string]struct{})
	for _, n := range norm {
		if n.canonicalLower != "" && n.isExtra == extras {
			out[n.canonicalLower] = struct{}{}
		}
	}
	return out
}

func setNumbers(norm []normalizedEntry) map[string]int {
	out := make(map[string]int)
	for _, n := range norm {
		if n.canonicalLower != "" && !n.isExtra {
			out[n.canonicalLower] = n.entry.SetNumber
		}
	}
	return out
}

func segueFlags(norm []normalizedEntry) map[string]bool {
	out := make(map[string]bool)
	for _, n := range norm {
		if n.canonicalLower != "" {
			out[n.canonicalLower] = n.entry.HasSegue
		}
	}
	return out
}

func orderInSet(norm []normalizedEntry, setNum int) []string {
	var out []string
	for _, n := range norm {
		if !n.isExtra && n.entry.SetNumber == setNum && n.canonicalLower != "" {
			out = append(out, n.canonicalLower)
		}
	}
	return out
}

func rawTitle(norm []normalizedEntry, canonicalLower string) string {
	for _, n := range norm {
		if n.canonicalLower == canonicalLower {
			return n.entry.Title
		}
	}
	return canonicalLower
}

func canonicalName(norm []normalizedEntry, canonicalLower string) string {
	for _, n := range norm {
		if n.canonicalLower == canonicalLower && n.canonical != "" {
			return n.canonical
		}
	}
	return canonicalLower
}

func shortSegueLabel(hasSegue bool) string {
	if hasSegue {
		return ">"
	}
	return "(none)"
}

func sortedDiff(a, b map[string]struct{}) []string {
	var out []string
	for name := range a {
		if _, ok := b[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func sortedIntersection[V any](a, b map[string]V) []string {
	var out []string
	for name := range a {
		if _, ok := b[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
