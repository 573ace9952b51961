package discplan_test

import (
	"path/filepath"
	"testing"

	"setscan/internal/catalog"
	"setscan/internal/corrections"
	"setscan/internal/discplan"
	"setscan/internal/matcher"
)

var vocabulary = map[string]string{
	"bertha":                  "Bertha",
	"sugaree":                 "Sugaree",
	"scarlet begonias":        "Scarlet Begonias",
	"fire on the mountain":    "Fire on the Mountain",
	"one more saturday night": "One More Saturday Night",
}

func newEngine(t *testing.T) *discplan.Engine {
	t.Helper()
	dir := t.TempDir()
	corr, err := corrections.Load(filepath.Join(dir, "corrections_map.csv"))
	if err != nil {
		t.Fatal(err)
	}
	extras, err := corrections.Load(filepath.Join(dir, "extra_songs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	m := matcher.New(vocabulary, corrections.ReadOnly(corr), corrections.ReadOnly(extras), nil, matcher.DefaultPolicy(), nil)
	return discplan.NewEngine(m)
}

func showEntries() []catalog.SetlistEntry {
	return []catalog.SetlistEntry{
		{SongName: "Bertha", SetSeq: 1, SongSeq: 1},
		{SongName: "Sugaree", SetSeq: 1, SongSeq: 2},
		{SongName: "Scarlet Begonias", SetSeq: 2, SongSeq: 1, Segue: true},
		{SongName: "Fire on the Mountain", SetSeq: 2, SongSeq: 2},
		{SongName: "One More Saturday Night", SetSeq: 3, SongSeq: 1, Encore: true},
	}
}

func showSets() []catalog.SetInfo {
	return []catalog.SetInfo{
		{SetSeq: 1, SetName: "Set 1", SongCount: 2},
		{SetSeq: 2, SetName: "Set 2", SongCount: 2},
		{SetSeq: 3, SetName: "Encore", Encore: true, SongCount: 1},
	}
}

func TestAssignMapsSetsToDiscs(t *testing.T) {
	engine := newEngine(t)
	tracks := []discplan.Track{
		{Name: "t01.flac", RawTitle: "Tuning"},
		{Name: "t02.flac", RawTitle: "Bertha"},
		{Name: "t03.flac", RawTitle: "Sugaree"},
		{Name: "t04.flac", RawTitle: "Crowd"},
		{Name: "t05.flac", RawTitle: "Scarlet Begonias ->"},
		{Name: "t06.flac", RawTitle: "Fire on the Mountain"},
		{Name: "t07.flac", RawTitle: "Encore Break"},
		{Name: "t08.flac", RawTitle: "One More Saturday Night"},
	}

	assignments := engine.Assign(tracks, showEntries(), showSets())
	if len(assignments) != 8 {
		t.Fatalf("got %d assignments", len(assignments))
	}

	wantDiscs := []int{1, 1, 1, 2, 2, 2, 3, 3}
	wantTracks := []int{1, 2, 3, 1, 2, 3, 1, 2}
	for i, assignment := range assignments {
		if assignment.Disc != wantDiscs[i] {
			t.Errorf("%s disc = %d, want %d", assignment.Name, assignment.Disc, wantDiscs[i])
		}
		if assignment.TrackNumber != wantTracks[i] {
			t.Errorf("%s track = %d, want %d", assignment.Name, assignment.TrackNumber, wantTracks[i])
		}
	}

	if !assignments[0].Inferred || assignments[1].Inferred {
		t.Fatalf("inferred flags wrong: %+v", assignments[:2])
	}
	if !assignments[6].IsExtra || assignments[6].Disc != 3 {
		t.Fatalf("encore break = %+v", assignments[6])
	}
}

func TestAssignLooksAheadThenBehind(t *testing.T) {
	engine := newEngine(t)

	// Leading extra inherits the following song's set; trailing unknown
	// inherits the preceding one. No encore here, so nothing moves.
	entries := []catalog.SetlistEntry{
		{SongName: "Bertha", SetSeq: 1, SongSeq: 1},
		{SongName: "Scarlet Begonias", SetSeq: 2, SongSeq: 1},
	}
	sets := []catalog.SetInfo{
		{SetSeq: 1, SetName: "Set 1", SongCount: 1},
		{SetSeq: 2, SetName: "Set 2", SongCount: 1},
	}
	tracks := []discplan.Track{
		{Name: "t01.flac", RawTitle: "Crowd"},
		{Name: "t02.flac", RawTitle: "Scarlet Begonias"},
		{Name: "t03.flac", RawTitle: "Banter"},
	}
	assignments := engine.Assign(tracks, entries, sets)

	if assignments[0].Disc != 2 || !assignments[0].Inferred {
		t.Fatalf("leading extra = %+v", assignments[0])
	}
	if assignments[2].Disc != 2 || !assignments[2].Inferred {
		t.Fatalf("trailing extra = %+v", assignments[2])
	}
}

func TestAssignWithoutSetInfoUsesSingleDisc(t *testing.T) {
	engine := newEngine(t)
	tracks := []discplan.Track{
		{Name: "t01.flac", RawTitle: "Bertha"},
		{Name: "t02.flac", RawTitle: "Sugaree"},
	}
	assignments := engine.Assign(tracks, nil, nil)

	for i, assignment := range assignments {
		if assignment.Disc != 1 {
			t.Fatalf("disc = %d", assignment.Disc)
		}
		if assignment.TrackNumber != i+1 {
			t.Fatalf("track = %d, want %d", assignment.TrackNumber, i+1)
		}
	}
}

func TestAssignRenumbersAfterEncoreMove(t *testing.T) {
	engine := newEngine(t)

	// Encore break sits physically on the set 2 disc boundary but belongs
	// to the encore disc once moved.
	tracks := []discplan.Track{
		{Name: "t01.flac", RawTitle: "Fire on the Mountain"},
		{Name: "t02.flac", RawTitle: "Encore Break"},
		{Name: "t03.flac", RawTitle: "One More Saturday Night"},
	}
	assignments := engine.Assign(tracks, showEntries(), showSets())

	if assignments[1].Disc != 3 || assignments[1].TrackNumber != 1 {
		t.Fatalf("encore break = %+v", assignments[1])
	}
	if assignments[2].TrackNumber != 2 {
		t.Fatalf("encore closer = %+v", assignments[2])
	}

	discTotal, perDisc := discplan.Totals(assignments)
	if discTotal != 2 {
		t.Fatalf("disc total = %d", discTotal)
	}
	if perDisc[2] != 1 || perDisc[3] != 2 {
		t.Fatalf("per-disc totals = %v", perDisc)
	}
}
