// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. All settings live in a single YAML file (config.yaml by
// default) and fall back to sensible defaults when unset, so the tool runs
// out of the box against the conventional data/ and output/ layout.
//
// CONFIGURATION AREAS:
//   1. File locations: input export, enriched output, report output, archive
//   2. Parser settings: delimiter, expected field count, encoding fallbacks
//   3. Enrichment settings: catalog API base URL, timeout, fetch limit
//   4. Report settings: top-N sizes, low-performer threshold
//   5. Logging settings: level and format
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
// This is loaded from the main config.yaml file.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the sales export to analyze. Both pipe-delimited text
	// files and .xlsx workbooks are accepted; the extension decides which
	// parser is used.
	// Default: "data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// EnrichedFile is where the enriched transaction data is written.
	// Default: "data/enriched_sales_data.txt"
	EnrichedFile string `yaml:"enriched_file"`

	// ReportFile is where the formatted text report is written.
	// Default: "output/sales_report.txt"
	ReportFile string `yaml:"report_file"`

	// ArchiveDir is where processed input files are moved after a
	// successful run. Leave empty to disable archival.
	ArchiveDir string `yaml:"archive_dir"`

	// Parser holds the record parsing settings.
	Parser ParserSettings `yaml:"parser"`

	// Enrichment holds the product catalog API settings.
	Enrichment EnrichmentSettings `yaml:"enrichment"`

	// Report holds the report generation settings.
	Report ReportSettings `yaml:"report"`

	// Logging holds the structured logging settings.
	Logging LoggingSettings `yaml:"logging"`
}

// ParserSettings controls how raw export lines are split and cleaned.
type ParserSettings struct {
	// Delimiter separates fields within a line.
	// Default: "|"
	Delimiter string `yaml:"delimiter"`

	// FieldCount is the number of fields a well-formed line must have.
	// Lines with any other count are dropped and counted as invalid.
	// Default: 8
	FieldCount int `yaml:"field_count"`

	// Encodings is the ordered list of encodings attempted when the file
	// is not valid UTF-8. Supported values: utf-8, latin-1, cp1252.
	// Default: [utf-8, latin-1, cp1252]
	Encodings []string `yaml:"encodings"`
}

// EnrichmentSettings controls the external product catalog lookup.
type EnrichmentSettings struct {
	// Enabled toggles enrichment. When false, the pipeline skips the
	// catalog fetch entirely and every record is reported as unmatched.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// BaseURL is the catalog API root, e.g. "https://dummyjson.com".
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds the catalog HTTP call.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// FetchLimit is the page size requested from the catalog.
	// Default: 100
	FetchLimit int `yaml:"fetch_limit"`
}

// ReportSettings controls the aggregate report contents.
type ReportSettings struct {
	// TopProducts is the ranking size for the product section.
	// Default: 5
	TopProducts int `yaml:"top_products"`

	// TopCustomers is the ranking size for the customer section.
	// Default: 5
	TopCustomers int `yaml:"top_customers"`

	// LowPerformerThreshold marks products whose total units sold fall
	// below this value as low performers.
	// Default: 10
	LowPerformerThreshold int `yaml:"low_performer_threshold"`
}

// LoggingSettings controls the zap logger.
type LoggingSettings struct {
	// Level is the minimum log level (debug, info, warn, error).
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format (console, json).
	// Default: "console"
	Format string `yaml:"format"`
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Load reads, defaults, and validates the configuration file.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be parsed or fails validation.
//
// A missing configuration file is not an error: the defaults describe a
// fully working setup, so Load falls back to Default() in that case.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = filepath.Join("data", "sales_data.txt")
	}
	if cfg.EnrichedFile == "" {
		cfg.EnrichedFile = filepath.Join("data", "enriched_sales_data.txt")
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = filepath.Join("output", "sales_report.txt")
	}
	if cfg.Parser.Delimiter == "" {
		cfg.Parser.Delimiter = "|"
	}
	if cfg.Parser.FieldCount == 0 {
		cfg.Parser.FieldCount = 8
	}
	if len(cfg.Parser.Encodings) == 0 {
		cfg.Parser.Encodings = []string{"utf-8", "latin-1", "cp1252"}
	}
	if cfg.Enrichment.BaseURL == "" {
		cfg.Enrichment.BaseURL = "https://dummyjson.com"
		// Enrichment defaults on only when no enrichment block was given
		// at all; an explicit "enabled: false" must survive defaulting.
		cfg.Enrichment.Enabled = true
	}
	if cfg.Enrichment.TimeoutSeconds == 0 {
		cfg.Enrichment.TimeoutSeconds = 10
	}
	if cfg.Enrichment.FetchLimit == 0 {
		cfg.Enrichment.FetchLimit = 100
	}
	if cfg.Report.TopProducts == 0 {
		cfg.Report.TopProducts = 5
	}
	if cfg.Report.TopCustomers == 0 {
		cfg.Report.TopCustomers = 5
	}
	if cfg.Report.LowPerformerThreshold == 0 {
		cfg.Report.LowPerformerThreshold = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// validate checks the configuration for values the pipeline cannot work with.
func validate(cfg *Config) error {
	if len(cfg.Parser.Delimiter) != 1 {
		return fmt.Errorf("parser.delimiter must be a single character, got %q", cfg.Parser.Delimiter)
	}
	if cfg.Parser.FieldCount < 6 {
		return fmt.Errorf("parser.field_count must be at least 6, got %d", cfg.Parser.FieldCount)
	}
	for _, enc := range cfg.Parser.Encodings {
		switch enc {
		case "utf-8", "latin-1", "cp1252":
		default:
			return fmt.Errorf("unsupported encoding %q (supported: utf-8, latin-1, cp1252)", enc)
		}
	}
	if cfg.Enrichment.Enabled && cfg.Enrichment.BaseURL == "" {
		return fmt.Errorf("enrichment.base_url is required when enrichment is enabled")
	}
	if cfg.Enrichment.TimeoutSeconds < 0 {
		return fmt.Errorf("enrichment.timeout_seconds must not be negative")
	}
	if cfg.Report.TopProducts < 1 || cfg.Report.TopCustomers < 1 {
		return fmt.Errorf("report top-N sizes must be at least 1")
	}
	return nil
}
