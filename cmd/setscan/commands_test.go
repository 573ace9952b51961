package main

import (
	"os"
	"path/filepath"
	"testing"

	"setscan/internal/testsupport"
)

func TestMatchCommandExactHit(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"match", "Scarlet Begonias  07:42"}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "Scarlet Begonias")
	requireContains(t, out, "exact")
	requireContains(t, out, "100")
}

func TestMatchCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"match", "--json", "Fire on the Mountain >"}, env.configPath)
	if err != nil {
		t.Fatalf("match --json: %v", err)
	}
	requireContains(t, out, `"source": "exact"`)
	requireContains(t, out, `"has_segue": true`)
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gd1977-05-08.txt")
	testsupport.WriteText(t, path, "Set 1\n01. Scarlet Begonias >\n02. Fire on the Mountain\n")

	out, _, err := runCLI(t, []string{"parse", path}, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, out, "Scarlet Begonias")
	requireContains(t, out, "Fire on the Mountain")
}

func TestParseCommandRejectsProse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	testsupport.WriteText(t, path, "Great show, wish you were there.\n")

	if _, _, err := runCLI(t, []string{"parse", path}, ""); err == nil {
		t.Fatal("expected parse error for prose file")
	}
}

func TestScanCommandWritesReport(t *testing.T) {
	env := setupCLITestEnv(t)

	root := t.TempDir()
	show := filepath.Join(root, "gd1977-05-08.89214.sbd")
	testsupport.WriteText(t, filepath.Join(show, "d1t01.flac"), "")
	testsupport.WriteText(t, filepath.Join(show, "gd1977-05-08.89214.sbd.txt"),
		"Set 1\n01. Scarlet Begonias >\n02. Fire on the Mountain\n\nEncore\n03. Casey Jones\n")

	out, _, err := runCLI(t, []string{"scan", root}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Folders scanned:            1")
	requireContains(t, out, "Total discrepancies:        0")

	if _, err := os.Stat(filepath.Join(env.baseDir, "report.csv")); err != nil {
		t.Fatalf("expected report file: %v", err)
	}
}

func TestDiscsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	show := filepath.Join(t.TempDir(), "gd1977-05-08.89214.sbd")
	for _, name := range []string{
		"d1t01 - Scarlet Begonias.flac",
		"d1t02 - Fire on the Mountain.flac",
		"d2t01 - Casey Jones.flac",
	} {
		testsupport.WriteText(t, filepath.Join(show, name), "")
	}

	out, _, err := runCLI(t, []string{"discs", show}, env.configPath)
	if err != nil {
		t.Fatalf("discs: %v", err)
	}
	requireContains(t, out, "Scarlet Begonias")
	requireContains(t, out, "2 discs")
}
