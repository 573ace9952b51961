package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	CatalogDB      string `toml:"catalog_db"`
	CorrectionsMap string `toml:"corrections_map"`
	ExtraSongs     string `toml:"extra_songs"`
	LogDir         string `toml:"log_dir"`
	ReportPath     string `toml:"report_path"`
}

// Matching contains fuzzy-match thresholds and band selection.
type Matching struct {
	// AutoApplyThreshold is the fuzzy score at or above which a match is
	// accepted and learned into the corrections map.
	AutoApplyThreshold int `toml:"auto_apply_threshold"`
	// ReviewThreshold is the fuzzy score at or above which a match is
	// returned but flagged for human review instead of being learned.
	ReviewThreshold int `toml:"review_threshold"`
	// Band selects which act's shows are queried from the catalog
	// (1 = primary band, 0 = side project).
	Band int `toml:"band"`
}

// Scanning contains folder-name parsing settings.
type Scanning struct {
	// PadChars is the number of prefix characters before the date in a
	// show folder name (e.g. 2 for "gd1977-05-08...").
	PadChars int `toml:"pad_chars"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for setscan.
//
// Configuration sections by subsystem:
//   - Paths: catalog database, learned maps, log directory, report output
//   - Matching: fuzzy thresholds and band selection
//   - Scanning: folder-name parsing settings
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Scanning Scanning `toml:"scanning"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/setscan/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/setscan/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("setscan.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for scan runs.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.CatalogDB, err = expandPath(c.Paths.CatalogDB); err != nil {
		return fmt.Errorf("paths.catalog_db: %w", err)
	}
	if c.Paths.CorrectionsMap, err = expandPath(c.Paths.CorrectionsMap); err != nil {
		return fmt.Errorf("paths.corrections_map: %w", err)
	}
	if c.Paths.ExtraSongs, err = expandPath(c.Paths.ExtraSongs); err != nil {
		return fmt.Errorf("paths.extra_songs: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.ReportPath) == "" {
		c.Paths.ReportPath = defaultReportPath
	}
	if c.Paths.ReportPath, err = expandPath(c.Paths.ReportPath); err != nil {
		return fmt.Errorf("paths.report_path: %w", err)
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	if c.Matching.AutoApplyThreshold == 0 {
		c.Matching.AutoApplyThreshold = defaultAutoApplyThreshold
	}
	if c.Matching.ReviewThreshold == 0 {
		c.Matching.ReviewThreshold = defaultReviewThreshold
	}
	if c.Scanning.PadChars == 0 {
		c.Scanning.PadChars = defaultPadChars
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
