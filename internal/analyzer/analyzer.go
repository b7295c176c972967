// =============================================================================
// Sales Analytics - Pipeline Orchestrator
// =============================================================================
//
// This module wires the stages of the analysis pipeline together:
//
//   1. Read raw input (delimited text or XLSX workbook)
//   2. Parse and clean records
//   3. Validate and apply the optional region/amount filter
//   4. Fetch the product catalog and enrich records
//   5. Compute aggregates
//   6. Write the enriched data file and the text report
//   7. Archive the input file
//
// Each run is an isolated invocation: nothing is shared or persisted
// between runs beyond the output files.
//
// ERROR HANDLING:
//   Only input-level failures (unreadable file, unparseable workbook) and
//   output-write failures abort the run. Per-record problems are counted,
//   and an enrichment failure degrades to an unenriched run with a logged
//   warning.
//
// =============================================================================

package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/enrichment"
	"github.com/retailops/sales-analytics/internal/logging"
	"github.com/retailops/sales-analytics/internal/reportwriter"
	"github.com/retailops/sales-analytics/internal/salesparser"
	"github.com/retailops/sales-analytics/internal/types"
	"github.com/retailops/sales-analytics/internal/validation"
	"github.com/retailops/sales-analytics/internal/xlsxparser"
	"github.com/retailops/sales-analytics/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one pipeline run.
type Result struct {
	// RunID uniquely identifies this run; it also appears in the report
	// header.
	RunID string

	// InputFile is the sales export that was processed.
	InputFile string

	// ReportFile is the path of the written report.
	// Empty for dry runs and failed runs.
	ReportFile string

	// EnrichedFile is the path of the written enriched data file.
	// Empty for dry runs and failed runs.
	EnrichedFile string

	// Report holds the computed aggregates for console summaries.
	Report *analytics.SalesReport

	// Success indicates whether the run completed.
	Success bool

	// Error contains the failure when Success is false.
	Error error

	// Stats contains the per-stage record counts.
	Stats Stats
}

// Stats contains statistics about one pipeline run.
type Stats struct {
	// LinesRead is the number of candidate data lines/rows in the input.
	LinesRead int

	// RecordsParsed is the number of structurally valid records.
	RecordsParsed int

	// RecordsDropped is the number of malformed or invalid lines dropped
	// during parsing.
	RecordsDropped int

	// RecordsFiltered is the number of valid records removed by the
	// region/amount filter.
	RecordsFiltered int

	// RecordsIncluded is the number of records that reached aggregation.
	RecordsIncluded int

	// RecordsEnriched is the number of records with a catalog match.
	RecordsEnriched int

	// ProcessingTime is the wall-clock duration of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// ANALYZER STRUCTURE
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Source is the product catalog. Nil disables enrichment (every
	// record is reported as unmatched).
	Source enrichment.Source

	// DryRun computes everything but writes no files.
	DryRun bool
}

// Analyzer runs the analysis pipeline for a single input file.
type Analyzer struct {
	cfg  *config.Config
	opts Options
	log  *zap.SugaredLogger
}

// New creates an Analyzer for the configured input file.
func New(cfg *config.Config, opts Options) *Analyzer {
	return &Analyzer{
		cfg:  cfg,
		opts: opts,
		log:  logging.Sugar,
	}
}

// =============================================================================
// PIPELINE STAGES
// =============================================================================

// Load reads and parses the input file. The returned records are
// structurally valid; malformed lines are dropped and counted.
//
// This stage is separate from Run so the interactive prompt can show data
// insights (available regions, amount range) before filters are chosen,
// and so the validate command can check an input without producing output.
func (a *Analyzer) Load() ([]types.Transaction, salesparser.Stats, error) {
	path := a.cfg.InputFile

	if xlsxparser.IsWorkbook(path) {
		rows, err := xlsxparser.ReadRows(path)
		if err != nil {
			return nil, salesparser.Stats{}, fmt.Errorf("could not read workbook: %w", err)
		}
		records, stats := salesparser.ParseRows(rows, a.cfg.Parser)
		return records, stats, nil
	}

	lines, err := salesparser.ReadLines(path, a.cfg.Parser.Encodings)
	if err != nil {
		return nil, salesparser.Stats{}, fmt.Errorf("could not read sales data: %w", err)
	}
	records, stats := salesparser.ParseRecords(lines, a.cfg.Parser)
	return records, stats, nil
}

// Run executes the pipeline over pre-loaded records.
//
// PARAMETERS:
//   - ctx:        Bounds the catalog fetch.
//   - records:    The parsed records from Load.
//   - parseStats: The parse statistics from Load.
//   - filter:     The optional region/amount filter; filters are decided
//                 after Load so the interactive prompt can run in between.
//
// RETURNS:
//   - A Result struct; Result.Error is set when the run failed.
func (a *Analyzer) Run(ctx context.Context, records []types.Transaction, parseStats salesparser.Stats, filter validation.Filter) Result {
	startTime := time.Now()
	result := Result{
		RunID:     uuid.NewString(),
		InputFile: a.cfg.InputFile,
		Stats: Stats{
			LinesRead:      parseStats.LinesRead,
			RecordsParsed:  parseStats.Parsed,
			RecordsDropped: parseStats.Dropped,
		},
	}

	a.log.Debugw("starting analysis run",
		"run_id", result.RunID,
		"input", a.cfg.InputFile,
		"records", len(records),
	)

	// =========================================================================
	// STEP 1: VALIDATE AND FILTER
	// =========================================================================

	included, filterSummary := validation.Apply(records, filter)
	result.Stats.RecordsFiltered = filterSummary.FilteredByRegion + filterSummary.FilteredByAmount
	result.Stats.RecordsDropped += filterSummary.Invalid
	result.Stats.RecordsIncluded = len(included)

	a.log.Debugw("validation complete",
		"invalid", filterSummary.Invalid,
		"filtered_by_region", filterSummary.FilteredByRegion,
		"filtered_by_amount", filterSummary.FilteredByAmount,
		"included", len(included),
	)

	// =========================================================================
	// STEP 2: ENRICH
	// =========================================================================
	// A failed or disabled catalog fetch leaves the index empty; records
	// proceed unenriched and the run continues.

	index := enrichment.Index{}
	if a.opts.Source != nil {
		products, err := a.opts.Source.FetchProducts(ctx)
		if err != nil {
			a.log.Warnw("catalog fetch failed, continuing unenriched", "error", err)
		} else {
			index = enrichment.BuildIndex(products)
			a.log.Debugw("catalog fetched", "products", len(products))
		}
	}

	enriched := enrichment.Enrich(included, index)
	result.Stats.RecordsEnriched = enrichment.MatchedCount(enriched)

	// =========================================================================
	// STEP 3: AGGREGATE
	// =========================================================================

	report := analytics.BuildReport(included, enriched, analytics.Options{
		TopProducts:           a.cfg.Report.TopProducts,
		TopCustomers:          a.cfg.Report.TopCustomers,
		LowPerformerThreshold: a.cfg.Report.LowPerformerThreshold,
	})
	result.Report = report

	// =========================================================================
	// STEP 4: WRITE OUTPUTS
	// =========================================================================

	if a.opts.DryRun {
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	if err := reportwriter.WriteEnriched(a.cfg.EnrichedFile, enriched); err != nil {
		result.Error = fmt.Errorf("failed to save enriched data: %w", err)
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}
	result.EnrichedFile = a.cfg.EnrichedFile

	document := reportwriter.Generate(report, reportwriter.Meta{
		GeneratedAt: time.Now(),
		RunID:       result.RunID,
	})
	if err := reportwriter.Write(a.cfg.ReportFile, document); err != nil {
		result.Error = fmt.Errorf("failed to write report: %w", err)
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}
	result.ReportFile = a.cfg.ReportFile

	// =========================================================================
	// STEP 5: ARCHIVE INPUT
	// =========================================================================
	// Archival failures are logged but never fail a completed run.

	if a.cfg.ArchiveDir != "" {
		fm := utils.NewFileManager(a.cfg.ArchiveDir)
		if archived, err := fm.ArchiveFile(a.cfg.InputFile); err != nil {
			a.log.Warnw("failed to archive input file", "error", err)
		} else {
			a.log.Debugw("archived input file", "path", archived)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}
