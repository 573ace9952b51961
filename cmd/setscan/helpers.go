package main

import (
	"context"
	"fmt"
	"log/slog"

	"setscan/internal/catalog"
	"setscan/internal/config"
	"setscan/internal/corrections"
	"setscan/internal/matcher"
)

// openCatalog opens the configured catalog database.
func openCatalog(cfg *config.Config) (*catalog.Store, error) {
	store, err := catalog.Open(cfg.Paths.CatalogDB)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", cfg.Paths.CatalogDB, err)
	}
	return store, nil
}

// buildMatcher assembles a matcher over the catalog vocabulary and the
// configured correction files. When learn is false the corrections store
// is wrapped read-only so the run cannot grow the map on disk.
func buildMatcher(ctx context.Context, cfg *config.Config, store *catalog.Store, learn bool, logger *slog.Logger) (*matcher.Matcher, error) {
	vocabulary, err := store.Vocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	corr, err := corrections.Load(cfg.Paths.CorrectionsMap)
	if err != nil {
		return nil, fmt.Errorf("load corrections map: %w", err)
	}
	extras, err := corrections.Load(cfg.Paths.ExtraSongs)
	if err != nil {
		return nil, fmt.Errorf("load extra songs map: %w", err)
	}

	var corrMap corrections.Map = corr
	if !learn {
		corrMap = corrections.ReadOnly(corr)
	}

	return matcher.New(vocabulary, corrMap, corrections.ReadOnly(extras),
		nil, matcher.PolicyFromConfig(cfg), logger), nil
}
