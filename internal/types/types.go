// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - salesparser
//   - validation
//   - enrichment
//   - analytics
//   - reportwriter
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of the Date column in sales exports.
const DateLayout = "2006-01-02"

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents one cleaned sales line from the input export.
// All fields have already been trimmed and type-converted by the parser;
// a Transaction that reaches the aggregation stage is structurally valid.
type Transaction struct {
	// TransactionID is the unique transaction identifier (prefix "T").
	TransactionID string

	// Date is the transaction date, parsed from the export's
	// YYYY-MM-DD column.
	Date time.Time

	// ProductID is the product identifier (prefix "P").
	ProductID string

	// ProductName is the cleaned product name. Embedded thousands
	// separators and stray delimiter characters are removed during parsing.
	ProductName string

	// Quantity is the number of units sold. Always > 0 for a valid record.
	Quantity int

	// UnitPrice is the per-unit price. Always > 0 for a valid record.
	UnitPrice decimal.Decimal

	// CustomerID is the customer identifier (prefix "C").
	CustomerID string

	// Region is the sales region the transaction belongs to.
	Region string
}

// Revenue returns Quantity * UnitPrice for this transaction.
func (t Transaction) Revenue() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// DateKey returns the transaction date formatted as YYYY-MM-DD.
// Used as the grouping key for the daily trend.
func (t Transaction) DateKey() string {
	return t.Date.Format(DateLayout)
}

// =============================================================================
// ENRICHMENT TYPES
// =============================================================================

// Product is the metadata returned by the external product catalog for a
// single product. Absence of a Product for a transaction is a valid
// outcome, not an error.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// EnrichedTransaction pairs a Transaction with the catalog metadata that
// was (or was not) found for it.
type EnrichedTransaction struct {
	Transaction

	// Product is the matched catalog entry, nil when no match was found.
	Product *Product

	// Matched reports whether the catalog lookup succeeded.
	Matched bool
}
