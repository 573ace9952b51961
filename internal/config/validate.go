package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.CatalogDB == "" {
		return errors.New("paths.catalog_db must be set")
	}
	if c.Matching.AutoApplyThreshold < 0 || c.Matching.AutoApplyThreshold > 100 {
		return errors.New("matching.auto_apply_threshold must be between 0 and 100")
	}
	if c.Matching.ReviewThreshold < 0 || c.Matching.ReviewThreshold > 100 {
		return errors.New("matching.review_threshold must be between 0 and 100")
	}
	if c.Matching.ReviewThreshold > c.Matching.AutoApplyThreshold {
		return errors.New("matching.review_threshold must not exceed matching.auto_apply_threshold")
	}
	if c.Matching.Band != 0 && c.Matching.Band != 1 {
		return errors.New("matching.band must be 0 or 1")
	}
	if c.Scanning.PadChars < 0 {
		return errors.New("scanning.pad_chars must not be negative")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
