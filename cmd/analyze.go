// =============================================================================
// Sales Analytics - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the full analysis
// pipeline over a sales export.
//
// COMMAND USAGE:
//   analyzer analyze [flags]
//
// FLAGS:
//   --input            : Path to the sales export (overrides the config)
//   --region           : Keep only records from this region
//   --min-amount       : Keep only records with revenue >= this amount
//   --max-amount       : Keep only records with revenue <= this amount
//   --top              : Override the product/customer ranking size
//   --interactive      : Prompt for filters on the console
//   --skip-enrichment  : Skip the product catalog lookup
//   --dry-run          : Compute everything but write no files
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read and parse the sales export
//   3. Show data insights and resolve filters (flags or prompt)
//   4. Enrich against the product catalog
//   5. Compute aggregates
//   6. Write the enriched data file and the report
//
// =============================================================================

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/retailops/sales-analytics/internal/analyzer"
	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/enrichment"
	"github.com/retailops/sales-analytics/internal/logging"
	"github.com/retailops/sales-analytics/internal/types"
	"github.com/retailops/sales-analytics/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile overrides the configured sales export path.
var inputFile string

// regionFilter keeps only records from this region.
var regionFilter string

// minAmount and maxAmount bound per-transaction revenue.
var minAmount string
var maxAmount string

// topN overrides the configured ranking sizes.
var topN int

// interactive prompts for filters on the console.
var interactive bool

// skipEnrichment disables the catalog lookup for this run.
var skipEnrichment bool

// dryRun computes everything but writes no files.
var dryRun bool

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis pipeline over a sales export",
	Long: `The analyze command reads the configured sales export, cleans and validates
its records, optionally filters them by region or amount, enriches them against
the external product catalog, computes the aggregate metrics, and writes both
the enriched data file and the formatted text report.

Malformed records are dropped and counted, never fatal. A failed catalog
lookup degrades to an unenriched run. Only an unreadable input file or an
unwritable output aborts the command.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the analyze command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&inputFile, "input", "", "Path to the sales export (overrides the config)")
	analyzeCmd.Flags().StringVar(&regionFilter, "region", "", "Keep only records from this region")
	analyzeCmd.Flags().StringVar(&minAmount, "min-amount", "", "Keep only records with revenue >= this amount")
	analyzeCmd.Flags().StringVar(&maxAmount, "max-amount", "", "Keep only records with revenue <= this amount")
	analyzeCmd.Flags().IntVar(&topN, "top", 0, "Override the product/customer ranking size")
	analyzeCmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for filters on the console")
	analyzeCmd.Flags().BoolVar(&skipEnrichment, "skip-enrichment", false, "Skip the product catalog lookup")
	analyzeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute everything but write no files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runAnalyze is the main function that orchestrates the pipeline.
func runAnalyze() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Sales Analytics ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.Sync()

	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if topN > 0 {
		cfg.Report.TopProducts = topN
		cfg.Report.TopCustomers = topN
	}

	a := analyzer.New(cfg, analyzer.Options{
		Source: catalogSource(cfg),
		DryRun: dryRun,
	})

	// =========================================================================
	// STEP 2: READ AND PARSE THE EXPORT
	// =========================================================================
	// An unreadable input file is the one fatal input error; every
	// malformed line inside a readable file is dropped and counted.

	fmt.Printf("Reading sales data from %s...\n", cfg.InputFile)

	records, parseStats, err := a.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Lines read:      %d\n", parseStats.LinesRead)
	fmt.Printf("  Records parsed:  %d\n", parseStats.Parsed)
	fmt.Printf("  Records dropped: %d\n", parseStats.Dropped)

	if len(records) == 0 {
		return fmt.Errorf("no valid records found in %s", cfg.InputFile)
	}

	// =========================================================================
	// STEP 3: RESOLVE FILTERS
	// =========================================================================
	// Flags win; the interactive prompt fills in anything not given on
	// the command line.

	filter, err := filterFromFlags()
	if err != nil {
		return err
	}

	if interactive && filter.IsZero() {
		filter = promptForFilter(os.Stdin, records)
	}

	// =========================================================================
	// STEP 4-6: ENRICH, AGGREGATE, WRITE
	// =========================================================================

	fmt.Println("Analyzing...")

	result := a.Run(context.Background(), records, parseStats, filter)
	if result.Error != nil {
		return result.Error
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	fmt.Println("\n=== Analysis Complete ===")
	fmt.Printf("Records included:  %d\n", result.Stats.RecordsIncluded)
	fmt.Printf("Records filtered:  %d\n", result.Stats.RecordsFiltered)
	fmt.Printf("Records enriched:  %d\n", result.Stats.RecordsEnriched)
	if result.Report != nil {
		fmt.Printf("Total revenue:     $%s\n", result.Report.TotalRevenue.StringFixed(2))
	}
	if dryRun {
		fmt.Println("Dry run: no files were written.")
	} else {
		fmt.Printf("Enriched data:     %s\n", result.EnrichedFile)
		fmt.Printf("Report:            %s\n", result.ReportFile)
	}
	fmt.Printf("Time elapsed:      %s\n", time.Since(startTime))

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// catalogSource builds the enrichment source for this run, or nil when
// enrichment is disabled by flag or configuration.
func catalogSource(cfg *config.Config) enrichment.Source {
	if skipEnrichment || !cfg.Enrichment.Enabled {
		return nil
	}
	return enrichment.NewClient(
		cfg.Enrichment.BaseURL,
		cfg.Enrichment.FetchLimit,
		time.Duration(cfg.Enrichment.TimeoutSeconds)*time.Second,
	)
}

// filterFromFlags builds the record filter from the command-line flags.
// Unlike console input, a malformed flag value is an error: the user
// asked for something specific and silently ignoring it would be worse.
func filterFromFlags() (validation.Filter, error) {
	filter := validation.Filter{Region: strings.TrimSpace(regionFilter)}

	if minAmount != "" {
		amount, err := decimal.NewFromString(minAmount)
		if err != nil {
			return validation.Filter{}, fmt.Errorf("invalid --min-amount %q: %w", minAmount, err)
		}
		filter.MinAmount = &amount
	}
	if maxAmount != "" {
		amount, err := decimal.NewFromString(maxAmount)
		if err != nil {
			return validation.Filter{}, fmt.Errorf("invalid --max-amount %q: %w", maxAmount, err)
		}
		filter.MaxAmount = &amount
	}

	return filter, nil
}

// promptForFilter shows the data insights and asks for filters on the
// console. Invalid numeric input is re-prompted once, then the filter is
// skipped; the prompt never aborts the run.
func promptForFilter(in io.Reader, records []types.Transaction) validation.Filter {
	insights := validation.Inspect(records)

	fmt.Println("\n--- Data Insights ---")
	fmt.Printf("Available Regions: %s\n", strings.Join(insights.Regions, ", "))
	if insights.HasAmounts {
		fmt.Printf("Transaction Amount Range: $%s - $%s\n",
			insights.MinAmount.StringFixed(2),
			insights.MaxAmount.StringFixed(2),
		)
	}

	reader := bufio.NewReader(in)

	if !promptYesNo(reader, "\nDo you want to filter data? (y/n): ") {
		return validation.Filter{}
	}

	filter := validation.Filter{}
	fmt.Print("Enter region to filter by (or leave blank): ")
	filter.Region = strings.TrimSpace(readLine(reader))

	for attempt := 0; attempt < 2; attempt++ {
		fmt.Print("Enter minimum transaction amount (or leave blank): ")
		raw := strings.TrimSpace(readLine(reader))
		if raw == "" {
			break
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("! Invalid amount entered.")
			continue
		}
		filter.MinAmount = &amount
		break
	}
	if filter.MinAmount == nil {
		// Either left blank or twice invalid; proceed unfiltered.
		fmt.Println("No amount filter applied.")
	}

	return filter
}

// promptYesNo asks a yes/no question and returns true for "y"/"yes".
func promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Print(question)
	answer := strings.ToLower(strings.TrimSpace(readLine(reader)))
	return answer == "y" || answer == "yes"
}

// readLine reads one line of console input, returning "" on EOF.
// Both LF and CRLF line endings are stripped; Windows consoles send the
// latter.
func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil {
		return strings.TrimSpace(line)
	}
	return strings.TrimRight(line, "\r\n")
}
