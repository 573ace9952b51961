package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setscan/internal/catalog"
	"setscan/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	catalogPath := filepath.Join(base, "catalog.db")

	store := testsupport.MustCreateCatalog(t, catalogPath)
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

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
catalog_db = %q
corrections_map = %q
extra_songs = %q
log_dir = %q
report_path = %q

[logging]
format = "json"
level = "error"
`,
		catalogPath,
		filepath.Join(base, "corrections_map.csv"),
		filepath.Join(base, "extra_songs.csv"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "report.csv"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
