package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"setscan/internal/catalog"
	"setscan/internal/testsupport"
)

func barton1977() testsupport.ShowFixture {
	return testsupport.ShowFixture{
		Key:     catalog.ShowKey{Year: 1977, Month: 5, Day: 8, Band: 1},
		Artist:  "Grateful Dead",
		Venue:   "Barton Hall, Cornell University",
		City:    "Ithaca",
		State:   "NY",
		Country: "USA",
		Sets: []testsupport.SetFixture{
			{Name: "Set 1", Songs: []testsupport.SongFixture{
				{Title: "New Minglewood Blues"},
				{Title: "Loser"},
				{Title: "El Paso"},
			}},
			{Name: "Set 2", Songs: []testsupport.SongFixture{
				{Title: "Scarlet Begonias", Segue: true},
				{Title: "Fire on the Mountain"},
				{Title: "Estimated Prophet"},
			}},
			{Name: "Encore", Encore: true, Songs: []testsupport.SongFixture{
				{Title: "One More Saturday Night"},
			}},
		},
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	if _, err := catalog.Open(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestSetlistOrderAndSegues(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
	testsupport.SeedShow(t, store, barton1977())

	entries, err := store.Setlist(context.Background(), catalog.ShowKey{Year: 1977, Month: 5, Day: 8, Band: 1})
	if err != nil {
		t.Fatalf("Setlist: %v", err)
	}
	if len(entries) != 7 {
		t.Fatalf("got %d entries, want 7", len(entries))
	}
	if entries[0].SongName != "New Minglewood Blues" || entries[0].SetSeq != 1 {
		t.Fatalf("first entry = %+v", entries[0])
	}
	if !entries[3].Segue || entries[3].SongName != "Scarlet Begonias" {
		t.Fatalf("expected segue on Scarlet Begonias, got %+v", entries[3])
	}
	last := entries[len(entries)-1]
	if !last.Encore || last.SongName != "One More Saturday Night" {
		t.Fatalf("expected encore closer, got %+v", last)
	}
}

func TestSetInfoCountsSongs(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
	testsupport.SeedShow(t, store, barton1977())

	sets, err := store.SetInfo(context.Background(), catalog.ShowKey{Year: 1977, Month: 5, Day: 8, Band: 1})
	if err != nil {
		t.Fatalf("SetInfo: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	if sets[0].SongCount != 3 || sets[2].SongCount != 1 {
		t.Fatalf("song counts = %d, %d", sets[0].SongCount, sets[2].SongCount)
	}
	if !sets[2].Encore {
		t.Fatal("third set should be encore")
	}
}

func TestVocabularyLowercasesKeys(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
	testsupport.SeedShow(t, store, barton1977())

	vocab, err := store.Vocabulary(context.Background())
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}
	if canonical := vocab["fire on the mountain"]; canonical != "Fire on the Mountain" {
		t.Fatalf("vocab lookup = %q", canonical)
	}
}

func TestShowInfoPrefersEarlyLateMatch(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))

	early := barton1977()
	early.Key.EarlyLate = "EARLY"
	late := barton1977()
	late.Key.EarlyLate = "LATE"
	late.Venue = "Late Show Hall"
	testsupport.SeedShow(t, store, early)
	testsupport.SeedShow(t, store, late)

	show, err := store.ShowInfo(context.Background(), catalog.ShowKey{Year: 1977, Month: 5, Day: 8, Band: 1, EarlyLate: "LATE"})
	if err != nil {
		t.Fatalf("ShowInfo: %v", err)
	}
	if show.Venue != "Late Show Hall" {
		t.Fatalf("venue = %q", show.Venue)
	}

	if _, err := store.ShowInfo(context.Background(), catalog.ShowKey{Year: 1980, Month: 1, Day: 1, Band: 1}); err == nil {
		t.Fatal("expected ErrShowNotFound")
	}
}
