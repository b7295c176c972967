// =============================================================================
// Sales Analytics - XLSX Export Reader
// =============================================================================
//
// Some source systems hand over the sales export as an Excel workbook
// instead of a delimited text file. This module reads the first sheet of
// such a workbook into raw field rows so the same record parser can be
// used for both input formats.
//
// SHEET LAYOUT (fixed by the legacy export, matching the text format):
//   Row 1:  column headers (skipped)
//   Row 2+: one transaction per row, eight columns:
//           TransactionID | Date | ProductID | ProductName |
//           Quantity | UnitPrice | CustomerID | Region
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRows reads the first sheet of an XLSX sales export and returns its
// data rows as raw string fields, header row removed.
//
// PARAMETERS:
//   - path: The path to the .xlsx workbook.
//
// RETURNS:
//   - The data rows, one string slice per transaction row.
//   - An error if the workbook cannot be opened or read.
//
// Blank rows are skipped; everything else is passed through untouched so
// that the record parser applies the same cleaning and validity rules as
// it does for delimited lines.
func ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	var data [][]string
	headerSkipped := false
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		// The first non-empty row is the column header.
		if !headerSkipped {
			headerSkipped = true
			continue
		}
		data = append(data, row)
	}

	return data, nil
}

// IsWorkbook reports whether path looks like an XLSX workbook.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// isRowEmpty reports whether every cell in the row is blank.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
