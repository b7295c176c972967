// =============================================================================
// Sales Analytics - Record Parser
// =============================================================================
//
// This module turns raw export lines into structurally valid Transaction
// records. It handles the quirks of the legacy reporting system:
//   - Pipe-delimited lines (delimiter configurable)
//   - Thousands separators inside numeric fields
//   - Stray commas inside product names
//   - Rows with the wrong number of fields
//
// ERROR HANDLING:
//   A line that cannot be parsed or fails the record validity rules is
//   dropped and counted, never propagated as an error. Only the caller's
//   file-level failures abort a run.
//
// VALIDITY RULES (applied per record):
//   - TransactionID must start with "T"
//   - ProductID must start with "P"
//   - CustomerID must start with "C"
//   - Quantity must be > 0
//   - UnitPrice must be > 0
//   - Region must be non-empty
//   - Date must parse as YYYY-MM-DD
//
// =============================================================================

package salesparser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/types"
)

// =============================================================================
// PARSE STATISTICS
// =============================================================================

// Stats summarizes a parsing pass over the export.
type Stats struct {
	// LinesRead is the number of candidate data lines seen.
	LinesRead int

	// Parsed is the number of lines that produced a valid Transaction.
	Parsed int

	// Dropped is the number of lines discarded as malformed or invalid.
	Dropped int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseRecords parses raw data lines into Transactions.
//
// PARAMETERS:
//   - lines:    The data lines from ReadLines (header already removed).
//   - settings: The parser settings from the configuration.
//
// RETURNS:
//   - The valid Transactions, in input order.
//   - A Stats struct with the parsed/dropped counts.
func ParseRecords(lines []string, settings config.ParserSettings) ([]types.Transaction, Stats) {
	stats := Stats{LinesRead: len(lines)}

	records := make([]types.Transaction, 0, len(lines))
	for _, line := range lines {
		record, err := parseLine(line, settings)
		if err != nil {
			stats.Dropped++
			continue
		}
		records = append(records, record)
	}

	stats.Parsed = len(records)
	return records, stats
}

// ParseRows parses pre-split rows (from the XLSX reader) using the same
// cleaning and validity rules as delimited lines.
func ParseRows(rows [][]string, settings config.ParserSettings) ([]types.Transaction, Stats) {
	stats := Stats{LinesRead: len(rows)}

	records := make([]types.Transaction, 0, len(rows))
	for _, row := range rows {
		record, err := parseFields(row, settings.FieldCount)
		if err != nil {
			stats.Dropped++
			continue
		}
		records = append(records, record)
	}

	stats.Parsed = len(records)
	return records, stats
}

// parseLine splits a single line on the configured delimiter and parses it.
func parseLine(line string, settings config.ParserSettings) (types.Transaction, error) {
	fields := strings.Split(line, settings.Delimiter)
	return parseFields(fields, settings.FieldCount)
}

// parseFields converts one row of raw fields into a Transaction.
//
// FIELD ORDER (fixed by the legacy export):
//   0: TransactionID  1: Date  2: ProductID  3: ProductName
//   4: Quantity       5: UnitPrice          6: CustomerID  7: Region
func parseFields(fields []string, fieldCount int) (types.Transaction, error) {
	if len(fields) != fieldCount {
		return types.Transaction{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	record := types.Transaction{
		TransactionID: CleanIdentifierField(fields[0]),
		ProductID:     CleanIdentifierField(fields[2]),
		ProductName:   CleanTextField(fields[3]),
		CustomerID:    CleanIdentifierField(fields[6]),
		Region:        strings.TrimSpace(fields[7]),
	}

	date, err := time.Parse(types.DateLayout, strings.TrimSpace(fields[1]))
	if err != nil {
		return types.Transaction{}, fmt.Errorf("invalid date %q: %w", fields[1], err)
	}
	record.Date = date

	quantity, err := strconv.Atoi(CleanNumericField(fields[4]))
	if err != nil {
		return types.Transaction{}, fmt.Errorf("invalid quantity %q: %w", fields[4], err)
	}
	record.Quantity = quantity

	unitPrice, err := decimal.NewFromString(CleanNumericField(fields[5]))
	if err != nil {
		return types.Transaction{}, fmt.Errorf("invalid unit price %q: %w", fields[5], err)
	}
	record.UnitPrice = unitPrice

	if err := checkValidity(record); err != nil {
		return types.Transaction{}, err
	}

	return record, nil
}

// checkValidity applies the record validity rules.
func checkValidity(record types.Transaction) error {
	switch {
	case !strings.HasPrefix(record.TransactionID, "T"):
		return fmt.Errorf("transaction ID %q missing T prefix", record.TransactionID)
	case !strings.HasPrefix(record.ProductID, "P"):
		return fmt.Errorf("product ID %q missing P prefix", record.ProductID)
	case !strings.HasPrefix(record.CustomerID, "C"):
		return fmt.Errorf("customer ID %q missing C prefix", record.CustomerID)
	case record.Quantity <= 0:
		return fmt.Errorf("quantity %d is not positive", record.Quantity)
	case !record.UnitPrice.IsPositive():
		return fmt.Errorf("unit price %s is not positive", record.UnitPrice)
	case record.Region == "":
		return fmt.Errorf("region is empty")
	case record.ProductName == "":
		return fmt.Errorf("product name is empty")
	}
	return nil
}
