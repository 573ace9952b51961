package scanner_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"setscan/internal/catalog"
	"setscan/internal/compare"
	"setscan/internal/corrections"
	"setscan/internal/logging"
	"setscan/internal/matcher"
	"setscan/internal/scanner"
	"setscan/internal/testsupport"
)

const cleanShowTxt = `Set 1
01. Scarlet Begonias >
02. Fire on the Mountain

Encore
03. Casey Jones
`

func newScanner(t *testing.T, store *catalog.Store) *scanner.Scanner {
	t.Helper()

	vocabulary, err := store.Vocabulary(context.Background())
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}
	corr, err := corrections.Load(filepath.Join(t.TempDir(), "corrections_map.csv"))
	if err != nil {
		t.Fatalf("load corrections: %v", err)
	}
	extras, err := corrections.Load(filepath.Join(t.TempDir(), "extra_songs.csv"))
	if err != nil {
		t.Fatalf("load extras: %v", err)
	}
	m := matcher.New(vocabulary, corrections.ReadOnly(corr), corrections.ReadOnly(extras),
		nil, matcher.DefaultPolicy(), logging.NewNop())
	engine := compare.NewEngine(m)
	return scanner.New(store, engine, scanner.Options{Band: 1, PadChars: 2}, logging.NewNop())
}

func seedBarton(t *testing.T, store *catalog.Store) {
	t.Helper()

	testsupport.SeedShow(t, store, testsupport.ShowFixture{
		Key:    catalog.ShowKey{Year: 1977, Month: 5, Day: 8, Band: 1},
		Artist: "Grateful Dead",
		Venue:  "Barton Hall",
		City:   "Ithaca",
		State:  "NY",
		Sets: []testsupport.SetFixture{
			{Name: "Set 1", Songs: []testsupport.SongFixture{
				{Title: "Scarlet Begonias", Segue: true},
				{Title: "Fire on the Mountain"},
			}},
			{Name: "Encore", Encore: true, Songs: []testsupport.SongFixture{
				{Title: "Casey Jones"},
			}},
		},
	})
}

func TestRunCleanShow(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
	seedBarton(t, store)

	root := t.TempDir()
	show := filepath.Join(root, "gd1977-05-08.89214.sbd")
	testsupport.WriteText(t, filepath.Join(show, "d1t01.flac"), "")
	testsupport.WriteText(t, filepath.Join(show, "gd1977-05-08.89214.sbd.txt"), cleanShowTxt)

	report, err := newScanner(t, store).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.FoldersScanned != 1 {
		t.Fatalf("FoldersScanned = %d, want 1", report.FoldersScanned)
	}
	if len(report.Rows) != 0 {
		t.Fatalf("clean show produced %d rows: %+v", len(report.Rows), report.Rows)
	}
	if report.FoldersWithIssues != 0 {
		t.Fatalf("FoldersWithIssues = %d, want 0", report.FoldersWithIssues)
	}
	if report.RunID == "" {
		t.Fatal("report has no run ID")
	}
}

func TestRunMissingTxt(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))

	root := t.TempDir()
	show := filepath.Join(root, "gd1978-04-16.sbd")
	testsupport.WriteText(t, filepath.Join(show, "d1t01.flac"), "")

	report, err := newScanner(t, store).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	if row.Discrepancy.Type != compare.TypeMissingTxt {
		t.Fatalf("type = %s, want %s", row.Discrepancy.Type, compare.TypeMissingTxt)
	}
	if row.Date != "1978-04-16" {
		t.Fatalf("date = %q", row.Date)
	}
	if report.FoldersWithIssues != 1 {
		t.Fatalf("FoldersWithIssues = %d, want 1", report.FoldersWithIssues)
	}
}

func TestRunDetectsSetlistDrift(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
	seedBarton(t, store)

	// Document drops the encore and inverts the opening pair.
	driftTxt := `Set 1
01. Fire on the Mountain
02. Scarlet Begonias >
`
	root := t.TempDir()
	show := filepath.Join(root, "gd1977-05-08.89214.sbd")
	testsupport.WriteText(t, filepath.Join(show, "d1t01.flac"), "")
	testsupport.WriteText(t, filepath.Join(show, "gd1977-05-08.89214.sbd.txt"), driftTxt)

	report, err := newScanner(t, store).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	counts := report.TypeCounts()
	if counts[compare.TypeSongMissingFromTxt] == 0 {
		t.Error("expected a song_missing_from_txt row for the dropped encore")
	}
	if counts[compare.TypeSongOrder] == 0 {
		t.Error("expected a song_order row for the inverted opener")
	}
	if report.FoldersWithIssues != 1 {
		t.Errorf("FoldersWithIssues = %d, want 1", report.FoldersWithIssues)
	}
}

func TestRunRecursesGroupingDirs(t *testing.T) {
	store := testsupport.MustCreateCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
	seedBarton(t, store)

	root := t.TempDir()
	show := filepath.Join(root, "1977", "gd1977-05-08.89214.sbd")
	testsupport.WriteText(t, filepath.Join(show, "d1t01.flac"), "")
	testsupport.WriteText(t, filepath.Join(show, "gd1977-05-08.89214.sbd.txt"), cleanShowTxt)

	// Hidden directories and folders without a parseable date are skipped.
	testsupport.WriteText(t, filepath.Join(root, ".cache", "junk.flac"), "")
	testsupport.WriteText(t, filepath.Join(root, "misc", "stray.flac"), "")

	report, err := newScanner(t, store).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.FoldersScanned != 2 {
		t.Fatalf("FoldersScanned = %d, want 2", report.FoldersScanned)
	}
	if len(report.Rows) != 0 {
		t.Fatalf("unexpected rows: %+v", report.Rows)
	}
}

func TestReportWriteCSV(t *testing.T) {
	report := &scanner.Report{
		Rows: []scanner.Row{
			{
				FolderName:    "gd1977-05-08.89214.sbd",
				Date:          "1977-05-08",
				TxtFilesFound: "gd1977-05-08.89214.sbd.txt",
				Discrepancy: compare.Discrepancy{
					Type:    compare.TypeSegueMismatch,
					SourceA: "gd1977-05-08.89214.sbd.txt",
					SourceB: "catalog",
					Details: "'Scarlet Begonias': document >, catalog (no segue)",
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	if err := report.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header plus one row", len(records))
	}
	if records[0][3] != "discrepancy_type" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][3] != "segue_mismatch" || records[1][1] != "1977-05-08" {
		t.Fatalf("row = %v", records[1])
	}
}
