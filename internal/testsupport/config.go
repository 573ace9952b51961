package testsupport

import (
	"path/filepath"
	"testing"

	"setscan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogDB = filepath.Join(base, "catalog.db")
	cfg.Paths.CorrectionsMap = filepath.Join(base, "corrections_map.csv")
	cfg.Paths.ExtraSongs = filepath.Join(base, "extra_songs.csv")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportPath = filepath.Join(base, "discrepancy_report.csv")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithThresholds overrides the matching thresholds on the test config.
func WithThresholds(autoApply, review int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.AutoApplyThreshold = autoApply
		cfg.Matching.ReviewThreshold = review
	}
}
