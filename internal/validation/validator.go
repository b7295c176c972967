// =============================================================================
// Sales Analytics - Validation and Filtering
// =============================================================================
//
// This module provides the pre-aggregation validation and filtering pass.
// It re-applies the record validity rules (defense in depth over the
// parser), derives the data insights shown before the interactive prompt,
// and applies the optional region and amount filters.
//
// ERROR HANDLING:
//   - Invalid records are dropped and counted, never returned as errors
//   - An empty post-filter set is a valid result; the aggregation stage
//     produces zero/empty metrics for it
//
// =============================================================================

package validation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailops/sales-analytics/internal/types"
)

// =============================================================================
// FILTER TYPES
// =============================================================================

// Filter holds the optional record filters applied before aggregation.
// Zero values mean "no filter" for the corresponding criterion.
type Filter struct {
	// Region keeps only records whose region matches (case-insensitive).
	Region string

	// MinAmount keeps only records with revenue >= MinAmount.
	MinAmount *decimal.Decimal

	// MaxAmount keeps only records with revenue <= MaxAmount.
	MaxAmount *decimal.Decimal
}

// IsZero reports whether no filtering criteria are set.
func (f Filter) IsZero() bool {
	return f.Region == "" && f.MinAmount == nil && f.MaxAmount == nil
}

// Summary describes what the validation and filtering pass did.
type Summary struct {
	// TotalInput is the number of records fed into the pass.
	TotalInput int

	// Invalid is the number of records dropped by the validity rules.
	Invalid int

	// FilteredByRegion is the number of valid records removed by the
	// region filter.
	FilteredByRegion int

	// FilteredByAmount is the number of valid records removed by the
	// amount filter.
	FilteredByAmount int

	// FinalCount is the number of records that survived the pass.
	FinalCount int
}

// Insights summarizes the valid record set for the interactive prompt.
type Insights struct {
	// Regions is the sorted list of distinct regions.
	Regions []string

	// MinAmount and MaxAmount bound the per-transaction revenue.
	// Both are zero when there are no valid records.
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal

	// HasAmounts is false when there were no valid records to inspect.
	HasAmounts bool
}

// =============================================================================
// VALIDATION AND FILTERING
// =============================================================================

// Apply validates the records and applies the filter.
//
// PARAMETERS:
//   - records: The parsed transactions.
//   - filter:  The optional region/amount filter.
//
// RETURNS:
//   - The valid, filtered records in input order.
//   - A Summary of the drop and filter counts.
func Apply(records []types.Transaction, filter Filter) ([]types.Transaction, Summary) {
	summary := Summary{TotalInput: len(records)}

	valid := make([]types.Transaction, 0, len(records))
	for _, record := range records {
		if !isValid(record) {
			summary.Invalid++
			continue
		}
		valid = append(valid, record)
	}

	filtered := valid
	if filter.Region != "" {
		kept := filtered[:0:0]
		for _, record := range filtered {
			if strings.EqualFold(record.Region, filter.Region) {
				kept = append(kept, record)
			}
		}
		summary.FilteredByRegion = len(filtered) - len(kept)
		filtered = kept
	}

	if filter.MinAmount != nil || filter.MaxAmount != nil {
		kept := filtered[:0:0]
		for _, record := range filtered {
			amount := record.Revenue()
			if filter.MinAmount != nil && amount.LessThan(*filter.MinAmount) {
				continue
			}
			if filter.MaxAmount != nil && amount.GreaterThan(*filter.MaxAmount) {
				continue
			}
			kept = append(kept, record)
		}
		summary.FilteredByAmount = len(filtered) - len(kept)
		filtered = kept
	}

	summary.FinalCount = len(filtered)
	return filtered, summary
}

// Inspect derives the prompt insights from the valid subset of records.
func Inspect(records []types.Transaction) Insights {
	insights := Insights{}

	regionSet := make(map[string]struct{})
	for _, record := range records {
		if !isValid(record) {
			continue
		}

		regionSet[record.Region] = struct{}{}

		amount := record.Revenue()
		if !insights.HasAmounts {
			insights.MinAmount = amount
			insights.MaxAmount = amount
			insights.HasAmounts = true
			continue
		}
		if amount.LessThan(insights.MinAmount) {
			insights.MinAmount = amount
		}
		if amount.GreaterThan(insights.MaxAmount) {
			insights.MaxAmount = amount
		}
	}

	insights.Regions = make([]string, 0, len(regionSet))
	for region := range regionSet {
		insights.Regions = append(insights.Regions, region)
	}
	sort.Strings(insights.Regions)

	return insights
}

// isValid applies the record validity rules.
// The parser already enforces these; re-checking here keeps the guarantee
// local to the aggregation boundary regardless of where records came from.
func isValid(record types.Transaction) bool {
	return strings.HasPrefix(record.TransactionID, "T") &&
		strings.HasPrefix(record.ProductID, "P") &&
		strings.HasPrefix(record.CustomerID, "C") &&
		record.Quantity > 0 &&
		record.UnitPrice.IsPositive() &&
		record.Region != ""
}
