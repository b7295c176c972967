// =============================================================================
// Sales Analytics - Record Enrichment
// =============================================================================
//
// This file attaches catalog metadata to transactions. The lookup is keyed
// by the numeric part of the export's ProductID: the legacy system writes
// "P101" where the catalog knows the product as id 101.
//
// A missing catalog entry is a valid outcome; the record keeps flowing
// through every non-enrichment aggregate unchanged.
//
// =============================================================================

package enrichment

import (
	"strconv"
	"strings"

	"github.com/retailops/sales-analytics/internal/types"
)

// Index maps catalog product IDs to their metadata.
type Index map[int]types.Product

// BuildIndex converts a fetched product list into a lookup index.
func BuildIndex(products []types.Product) Index {
	index := make(Index, len(products))
	for _, product := range products {
		index[product.ID] = product
	}
	return index
}

// Enrich pairs each transaction with its catalog metadata, when found.
// With an empty or nil index every record comes back unmatched.
func Enrich(records []types.Transaction, index Index) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(records))
	for _, record := range records {
		entry := types.EnrichedTransaction{Transaction: record}

		if id, ok := catalogID(record.ProductID); ok {
			if product, found := index[id]; found {
				p := product
				entry.Product = &p
				entry.Matched = true
			}
		}

		enriched = append(enriched, entry)
	}
	return enriched
}

// MatchedCount returns how many records carry catalog metadata.
func MatchedCount(records []types.EnrichedTransaction) int {
	count := 0
	for _, record := range records {
		if record.Matched {
			count++
		}
	}
	return count
}

// catalogID extracts the numeric catalog ID from an export ProductID.
// "P101" -> 101. Returns false when no numeric part is present.
func catalogID(productID string) (int, bool) {
	trimmed := strings.TrimLeft(productID, "P")
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return id, true
}
