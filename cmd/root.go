// =============================================================================
// Sales Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'analyze', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (analyzer)
//   ├── analyzeCmd (analyzer analyze)
//   ├── validateCmd (analyzer validate)
//   └── versionCmd (analyzer version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration in the subcommands that need it
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "analyzer",

	Short: "Sales Analytics - Clean, enrich, and report on legacy sales exports",

	Long: `Sales Analytics is a batch CLI tool that reads a delimited sales export
from a legacy reporting system, repairs its encoding, cleans and validates the
records, enriches them against an external product catalog, and writes a
formatted text report of the aggregate metrics.

Key Features:
  - Encoding recovery for legacy exports (utf-8, latin-1, cp1252)
  - Robust record cleaning: thousands separators, stray commas, bad rows
  - Optional region and amount filters, interactive or via flags
  - Product catalog enrichment with graceful degradation
  - Deterministic rankings with defined tie-breaks

Example Usage:
  analyzer analyze                       # Analyze the configured input file
  analyzer analyze --input export.txt    # Analyze a specific file
  analyzer analyze --interactive         # Prompt for filters on the console
  analyzer validate                      # Check config and input without output`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration file and initializes logging from it.
// Shared by the subcommands that run the pipeline.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	logging.Initialize(cfg.Logging.Level, cfg.Logging.Format)

	return cfg, nil
}
