// =============================================================================
// Sales Analytics - Field Cleaning
// =============================================================================
//
// Legacy exports carry formatting artifacts inside individual fields:
// thousands separators in numeric columns ("1,200"), currency symbols
// pasted into prices ("$10.50"), and stray commas inside product names.
// The cleaning functions here normalize a raw field into something the
// type converters can parse.
//
// Cleaning never rejects a value; rejection is the parser's job once the
// cleaned value still fails conversion.
//
// =============================================================================

package salesparser

import "strings"

// currencySymbols are stripped from numeric fields before parsing.
var currencySymbols = []string{"$", "€", "£"}

// CleanNumericField prepares a raw numeric field for parsing by removing
// thousands separators, currency symbols, and surrounding whitespace.
//
// Examples:
//   "1,200"    -> "1200"
//   " $10.50 " -> "10.50"
func CleanNumericField(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, ",", "")
	for _, sym := range currencySymbols {
		value = strings.ReplaceAll(value, sym, "")
	}
	return strings.TrimSpace(value)
}

// CleanTextField prepares a raw text field (product names in particular)
// by removing embedded commas and collapsing surrounding whitespace.
// Commas are removed because the enriched-data output is delimited and
// downstream consumers of that file do not handle quoting.
func CleanTextField(value string) string {
	value = strings.ReplaceAll(value, ",", "")
	return strings.TrimSpace(value)
}

// CleanIdentifierField trims an identifier field. Identifiers keep their
// original casing; the prefix checks are case-sensitive on purpose.
func CleanIdentifierField(value string) string {
	return strings.TrimSpace(value)
}
