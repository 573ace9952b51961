package config

const (
	defaultCatalogDB          = "~/.local/share/setscan/catalog.db"
	defaultCorrectionsMap     = "~/.local/share/setscan/corrections_map.csv"
	defaultExtraSongs         = "~/.local/share/setscan/extra_songs.csv"
	defaultLogDir             = "~/.local/share/setscan/logs"
	defaultReportPath         = "discrepancy_report.csv"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultAutoApplyThreshold = 85
	defaultReviewThreshold    = 75
	defaultBand               = 1
	defaultPadChars           = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDB:      defaultCatalogDB,
			CorrectionsMap: defaultCorrectionsMap,
			ExtraSongs:     defaultExtraSongs,
			LogDir:         defaultLogDir,
			ReportPath:     defaultReportPath,
		},
		Matching: Matching{
			AutoApplyThreshold: defaultAutoApplyThreshold,
			ReviewThreshold:    defaultReviewThreshold,
			Band:               defaultBand,
		},
		Scanning: Scanning{
			PadChars: defaultPadChars,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
