package compare

import (
	"fmt"
	"sort"
	"strings"

	"setscan/internal/catalog"
	"setscan/internal/matcher"
	"setscan/internal/setlist"
)

// Type is a closed enum of discrepancy categories.
type Type string

const (
	TypeSongMissingFromTxt Type = "song_missing_from_txt"
	TypeSongMissingFromDB  Type = "song_missing_from_db"
	TypeSongNameDiff       Type = "song_name_diff"
	TypeSetAssignment      Type = "set_assignment"
	TypeSongOrder          Type = "song_order"
	TypeSegueMismatch      Type = "segue_mismatch"
	TypeVenueMismatch      Type = "venue_mismatch"
	TypeTxtDisagreement    Type = "txt_disagreement"
	TypeMissingTxt         Type = "missing_txt"
)

// Discrepancy is one detected disagreement between two sources.
type Discrepancy struct {
	Type    Type
	SourceA string
	SourceB string
	Details string
}

// catalogSource names the canonical database side in report rows.
const catalogSource = "catalog"

// Engine runs document-vs-catalog and document-vs-document comparisons.
// Every parsed title goes through the matcher first so comparisons work on
// canonical names.
type Engine struct {
	matcher *matcher.Matcher
}

func NewEngine(m *matcher.Matcher) *Engine {
	return &Engine{matcher: m}
}

type normalizedEntry struct {
	entry          setlist.Entry
	result         matcher.Result
	canonical      string
	canonicalLower string
	isExtra        bool
}

func (e *Engine) normalize(entries []setlist.Entry) []normalizedEntry {
	out := make([]normalizedEntry, 0, len(entries))
	for _, entry := range entries {
		result := e.matcher.Match(entry.Title)
		norm := normalizedEntry{
			entry:     entry,
			result:    result,
			canonical: result.MatchedTitle,
			isExtra:   entry.IsExtra || result.Source == matcher.SourceExtra,
		}
		if norm.canonical != "" {
			norm.canonicalLower = strings.ToLower(norm.canonical)
		}
		out = append(out, norm)
	}
	return out
}

// CompareWithCatalog reconciles one parsed document against the catalog
// setlist and venue for the show. A nil show suppresses the venue check.
func (e *Engine) CompareWithCatalog(doc *setlist.Document, entries []catalog.SetlistEntry, show *catalog.Show) []Discrepancy {
	var discs []Discrepancy
	docName := doc.SourceID

	norm := e.normalize(doc.Entries)

	dbNamesLower := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		dbNamesLower[strings.ToLower(entry.SongName)] = struct{}{}
	}

	docCanonLower := make(map[string]struct{})
	for _, n := range norm {
		if n.canonicalLower != "" && !n.isExtra {
			docCanonLower[n.canonicalLower] = struct{}{}
		}
	}

	// Songs in the catalog but absent from the document.
	for _, entry := range entries {
		if _, ok := docCanonLower[strings.ToLower(entry.SongName)]; !ok {
			discs = append(discs, Discrepancy{
				Type: TypeSongMissingFromTxt, SourceA: catalogSource, SourceB: docName,
				Details: fmt.Sprintf("Song in catalog but not in txt: %s (Set %d)", entry.SongName, entry.SetSeq),
			})
		}
	}

	// Songs in the document the catalog never lists.
	for _, n := range norm {
		if n.isExtra {
			continue
		}
		if n.canonical != "" {
			if _, ok := dbNamesLower[n.canonicalLower]; ok {
				continue
			}
			discs = append(discs, Discrepancy{
				Type: TypeSongMissingFromDB, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("Song in txt but not in catalog setlist: %q (matched as %q, Set %d)",
					n.entry.Title, n.canonical, n.entry.SetNumber),
			})
		} else {
			discs = append(discs, Discrepancy{
				Type: TypeSongMissingFromDB, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("Song in txt but not in catalog setlist (unmatched): %q (Set %d)",
					n.entry.Title, n.entry.SetNumber),
			})
		}
	}

	// Fuzzy-resolved spellings.
	for _, n := range norm {
		if n.isExtra {
			continue
		}
		if n.result.Source == matcher.SourceFuzzy && n.result.Confidence < 100 {
			discs = append(discs, Discrepancy{
				Type: TypeSongNameDiff, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("Fuzzy match (%d%%): txt %q -> catalog %q",
					n.result.Confidence, n.entry.Title, n.result.MatchedTitle),
			})
		}
	}

	// Set assignment differences.
	dbSongSet := make(map[string]int, len(entries))
	for _, entry := range entries {
		dbSongSet[strings.ToLower(entry.SongName)] = entry.SetSeq
	}
	for _, n := range norm {
		if n.isExtra || n.canonical == "" {
			continue
		}
		if dbSet, ok := dbSongSet[n.canonicalLower]; ok && dbSet != n.entry.SetNumber {
			discs = append(discs, Discrepancy{
				Type: TypeSetAssignment, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("%q: txt says Set %d, catalog says Set %d",
					n.canonical, n.entry.SetNumber, dbSet),
			})
		}
	}

	// Song order within shared sets, restricted to the intersection so a
	// missing song does not cascade into an order diff.
	dbBySet := make(map[int][]string)
	for _, entry := range entries {
		dbBySet[entry.SetSeq] = append(dbBySet[entry.SetSeq], strings.ToLower(entry.SongName))
	}
	docBySet := make(map[int][]string)
	for _, n := range norm {
		if n.isExtra || n.canonicalLower == "" {
			continue
		}
		docBySet[n.entry.SetNumber] = append(docBySet[n.entry.SetNumber], n.canonicalLower)
	}
	canonNames := make(map[string]string)
	for _, n := range norm {
		if n.canonical != "" {
			canonNames[n.canonicalLower] = n.canonical
		}
	}
	for _, setNum := range sharedKeys(dbBySet, docBySet) {
		dbCommon := intersect(dbBySet[setNum], docBySet[setNum])
		docCommon := intersect(docBySet[setNum], dbBySet[setNum])
		if len(dbCommon) > 0 && len(docCommon) > 0 && !equalOrder(dbCommon, docCommon) {
			discs = append(discs, Discrepancy{
				Type: TypeSongOrder, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("Set %d order differs. Txt: %s | DB: %s",
					setNum, readableOrder(docCommon, canonNames), readableOrder(dbCommon, canonNames)),
			})
		}
	}

	// Segue differences.
	dbSegues := make(map[string]bool, len(entries))
	for _, entry := range entries {
		dbSegues[strings.ToLower(entry.SongName)] = entry.Segue
	}
	for _, n := range norm {
		if n.isExtra || n.canonicalLower == "" {
			continue
		}
		if dbSeg, ok := dbSegues[n.canonicalLower]; ok && dbSeg != n.entry.HasSegue {
			discs = append(discs, Discrepancy{
				Type: TypeSegueMismatch, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("%q: txt %s, catalog %s",
					n.canonical, segueLabel(n.entry.HasSegue), segueLabel(dbSeg)),
			})
		}
	}

	// Venue check, only when both sides have venue data.
	if doc.VenueText != "" && show != nil {
		location := show.State
		if location == "" {
			location = show.Country
		}
		dbVenue := fmt.Sprintf("%s, %s, %s", show.Venue, show.City, location)
		if !fuzzyVenueMatch(dbVenue, doc.VenueText) {
			discs = append(discs, Discrepancy{
				Type: TypeVenueMismatch, SourceA: docName, SourceB: catalogSource,
				Details: fmt.Sprintf("Venue mismatch: txt=%q vs catalog=%q", doc.VenueText, dbVenue),
			})
		}
	}

	return discs
}

// fuzzyVenueMatch is deliberately lenient: free-text headers abbreviate
// and reorder venue names constantly. A match needs either half the
// significant words of the venue name, or the city verbatim.
func fuzzyVenueMatch(dbVenue, txtVenue string) bool {
	txtLower := strings.ToLower(txtVenue)
	parts := strings.Split(dbVenue, ",")

	if len(parts) > 0 {
		venueName := strings.ToLower(strings.TrimSpace(parts[0]))
		var significant []string
		for _, word := range strings.Fields(venueName) {
			if len(word) > 3 {
				significant = append(significant, word)
			}
		}
		if len(significant) > 0 {
			hits := 0
			for _, word := range significant {
				if strings.Contains(txtLower, word) {
					hits++
				}
			}
			needed := len(significant) / 2
			if needed < 1 {
				needed = 1
			}
			if hits >= needed {
				return true
			}
		}
	}

	if len(parts) > 1 {
		city := strings.ToLower(strings.TrimSpace(parts[1]))
		if len(city) > 2 && strings.Contains(txtLower, city) {
			return true
		}
	}

	return false
}

func segueLabel(hasSegue bool) string {
	if hasSegue {
		return ">"
	}
	return "(no segue)"
}

func sharedKeys(a, b map[int][]string) []int {
	var keys []int
	for k := range a {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	return keys
}

func intersect(order []string, other []string) []string {
	otherSet := make(map[string]struct{}, len(other))
	for _, s := range other {
		otherSet[s] = struct{}{}
	}
	var out []string
	for _, s := range order {
		if _, ok := otherSet[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const orderDisplayLimit = 6

func readableOrder(names []string, canonNames map[string]string) string {
	readable := make([]string, 0, len(names))
	for _, name := range names {
		if canonical, ok := canonNames[name]; ok {
			readable = append(readable, canonical)
		} else {
			readable = append(readable, name)
		}
	}
	joined := strings.Join(readable[:min(len(readable), orderDisplayLimit)], " / ")
	if len(readable) > orderDisplayLimit {
		joined += "..."
	}
	return joined
}
