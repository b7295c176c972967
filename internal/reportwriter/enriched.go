// =============================================================================
// Sales Analytics - Enriched Data Writer
// =============================================================================
//
// Alongside the report, the pipeline saves the enriched record set as a
// pipe-delimited file: the original eight columns followed by the catalog
// metadata columns (brand, category, rating, match flag). Unmatched
// records carry empty metadata columns so the file keeps a fixed shape.
//
// =============================================================================

package reportwriter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/retailops/sales-analytics/internal/types"
)

// enrichedHeader is the column header of the enriched-data file.
const enrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|Brand|Category|Rating|APIMatch"

// GenerateEnriched renders the enriched record set as delimited text.
func GenerateEnriched(records []types.EnrichedTransaction) []byte {
	var buf bytes.Buffer
	buf.WriteString(enrichedHeader + "\n")

	for _, record := range records {
		brand, category, rating := "", "", ""
		if record.Matched && record.Product != nil {
			brand = record.Product.Brand
			category = record.Product.Category
			rating = strconv.FormatFloat(record.Product.Rating, 'f', 2, 64)
		}

		fmt.Fprintf(&buf, "%s|%s|%s|%s|%d|%s|%s|%s|%s|%s|%s|%t\n",
			record.TransactionID,
			record.DateKey(),
			record.ProductID,
			record.ProductName,
			record.Quantity,
			record.UnitPrice.StringFixed(2),
			record.CustomerID,
			record.Region,
			brand,
			category,
			rating,
			record.Matched,
		)
	}

	return buf.Bytes()
}

// WriteEnriched writes the enriched data file, creating the parent
// directory when needed.
func WriteEnriched(path string, records []types.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create enriched data directory: %w", err)
		}
	}
	if err := os.WriteFile(path, GenerateEnriched(records), 0644); err != nil {
		return fmt.Errorf("failed to write enriched data: %w", err)
	}
	return nil
}
