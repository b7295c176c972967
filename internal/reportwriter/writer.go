// =============================================================================
// Sales Analytics - Report Writer
// =============================================================================
//
// This module serializes the computed SalesReport into the fixed-layout
// text report. The section set and ordering are stable:
//
//   1. Header (generated-at, run ID, records processed)
//   2. Overall summary
//   3. Region-wise performance
//   4. Top products
//   5. Top customers
//   6. Daily sales trend
//   7. Product performance analysis (peak day, low performers, ATV)
//   8. API enrichment summary
//
// Generation is split from writing so tests can assert on the document
// without touching the filesystem.
//
// =============================================================================

package reportwriter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/sales-analytics/internal/analytics"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// Meta carries the per-run header values.
type Meta struct {
	// GeneratedAt is the report timestamp.
	GeneratedAt time.Time

	// RunID uniquely identifies this pipeline run.
	RunID string
}

const (
	reportWidth  = 60
	headerRule   = "============================================================"
	sectionRule  = "------------------------------------------------------------"
	reportTitle  = "SALES ANALYTICS REPORT"
	timestampFmt = "2006-01-02 15:04:05"
)

// =============================================================================
// REPORT GENERATION
// =============================================================================

// Generate renders the report document.
//
// PARAMETERS:
//   - report: The computed aggregates.
//   - meta:   The per-run header values.
//
// RETURNS:
//   - The report as a byte slice, ready to be written.
func Generate(report *analytics.SalesReport, meta Meta) []byte {
	var buf bytes.Buffer

	writeHeader(&buf, report, meta)
	writeOverallSummary(&buf, report)
	writeRegionSection(&buf, report)
	writeTopProducts(&buf, report)
	writeTopCustomers(&buf, report)
	writeDailyTrend(&buf, report)
	writePerformanceAnalysis(&buf, report)
	writeEnrichmentSummary(&buf, report)

	return buf.Bytes()
}

// Write writes the generated document to path, creating the parent
// directory when needed.
func Write(path string, document []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, document, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// =============================================================================
// SECTION WRITERS
// =============================================================================

func writeHeader(buf *bytes.Buffer, report *analytics.SalesReport, meta Meta) {
	buf.WriteString(headerRule + "\n")
	buf.WriteString(center(reportTitle) + "\n")
	buf.WriteString(center("Generated: "+meta.GeneratedAt.Format(timestampFmt)) + "\n")
	buf.WriteString(center("Run ID: "+meta.RunID) + "\n")
	buf.WriteString(center(fmt.Sprintf("Records Processed: %d", report.TransactionCount)) + "\n")
	buf.WriteString(headerRule + "\n\n")
}

func writeOverallSummary(buf *bytes.Buffer, report *analytics.SalesReport) {
	dateRange := "N/A"
	if report.FirstDate != "" {
		dateRange = fmt.Sprintf("%s to %s", report.FirstDate, report.LastDate)
	}

	buf.WriteString("OVERALL SUMMARY\n")
	buf.WriteString(sectionRule + "\n")
	fmt.Fprintf(buf, "Total Revenue:       %s\n", money(report.TotalRevenue))
	fmt.Fprintf(buf, "Total Transactions:  %d\n", report.TransactionCount)
	fmt.Fprintf(buf, "Average Order Value: %s\n", money(report.AverageOrderValue))
	fmt.Fprintf(buf, "Date Range:          %s\n\n", dateRange)
}

func writeRegionSection(buf *bytes.Buffer, report *analytics.SalesReport) {
	buf.WriteString("REGION-WISE PERFORMANCE\n")
	buf.WriteString(sectionRule + "\n")
	fmt.Fprintf(buf, "%-15s %-15s %-15s %-10s\n", "Region", "Sales", "% of Total", "Transactions")
	for _, region := range report.Regions {
		fmt.Fprintf(buf, "%-15s %-15s %-15s %-10d\n",
			region.Region,
			money(region.TotalSales),
			region.Percentage.StringFixed(2)+"%",
			region.TransactionCount,
		)
	}
	buf.WriteString("\n")
}

func writeTopProducts(buf *bytes.Buffer, report *analytics.SalesReport) {
	fmt.Fprintf(buf, "TOP %d PRODUCTS BY REVENUE\n", len(report.TopProducts))
	buf.WriteString(sectionRule + "\n")
	fmt.Fprintf(buf, "%-6s %-12s %-25s %-12s %-15s\n", "Rank", "Product ID", "Product Name", "Qty Sold", "Revenue")
	for i, product := range report.TopProducts {
		fmt.Fprintf(buf, "%-6d %-12s %-25s %-12d %s\n",
			i+1,
			product.ProductID,
			product.ProductName,
			product.QuantitySold,
			money(product.Revenue),
		)
	}
	buf.WriteString("\n")
}

func writeTopCustomers(buf *bytes.Buffer, report *analytics.SalesReport) {
	fmt.Fprintf(buf, "TOP %d CUSTOMERS\n", len(report.TopCustomers))
	buf.WriteString(sectionRule + "\n")
	fmt.Fprintf(buf, "%-6s %-15s %-20s %-10s %-15s\n", "Rank", "Customer ID", "Total Spent", "Orders", "Avg Order")
	for i, customer := range report.TopCustomers {
		fmt.Fprintf(buf, "%-6d %-15s %-20s %-10d %s\n",
			i+1,
			customer.CustomerID,
			money(customer.TotalSpent),
			customer.PurchaseCount,
			money(customer.AvgOrderValue),
		)
	}
	buf.WriteString("\n")
}

func writeDailyTrend(buf *bytes.Buffer, report *analytics.SalesReport) {
	buf.WriteString("DAILY SALES TREND\n")
	buf.WriteString(sectionRule + "\n")
	fmt.Fprintf(buf, "%-15s %-15s %-15s %-10s\n", "Date", "Revenue", "Transactions", "Customers")
	for _, day := range report.DailyTrend {
		fmt.Fprintf(buf, "%-15s %-15s %-15d %-10d\n",
			day.Date,
			money(day.Revenue),
			day.TransactionCount,
			day.UniqueCustomers,
		)
	}
	buf.WriteString("\n")
}

func writePerformanceAnalysis(buf *bytes.Buffer, report *analytics.SalesReport) {
	buf.WriteString("PRODUCT PERFORMANCE ANALYSIS\n")
	buf.WriteString(sectionRule + "\n")

	if report.PeakDay != nil {
		fmt.Fprintf(buf, "Peak Sales Day: %s (Revenue: %s, Transactions: %d)\n",
			report.PeakDay.Date,
			money(report.PeakDay.Revenue),
			report.PeakDay.TransactionCount,
		)
	}

	buf.WriteString("Low Performing Products: ")
	if len(report.LowPerformers) == 0 {
		buf.WriteString("None\n")
	} else {
		names := make([]string, 0, len(report.LowPerformers))
		for _, product := range report.LowPerformers {
			names = append(names, fmt.Sprintf("%s (%d units)", product.ProductName, product.QuantitySold))
		}
		buf.WriteString(strings.Join(names, ", ") + "\n")
	}

	buf.WriteString("\nAvg Transaction Value per Region:\n")
	for _, region := range report.Regions {
		if region.TransactionCount == 0 {
			continue
		}
		atv := region.TotalSales.Div(decimal.NewFromInt(int64(region.TransactionCount))).Round(2)
		fmt.Fprintf(buf, " - %s: %s\n", region.Region, money(atv))
	}
	buf.WriteString("\n")
}

func writeEnrichmentSummary(buf *bytes.Buffer, report *analytics.SalesReport) {
	buf.WriteString("API ENRICHMENT SUMMARY\n")
	buf.WriteString(sectionRule + "\n")
	fmt.Fprintf(buf, "Records Enriched: %d of %d\n", report.Enrichment.Matched, report.Enrichment.Total)
	fmt.Fprintf(buf, "Success Rate:     %s%%\n", report.Enrichment.SuccessRate.StringFixed(2))
	if len(report.Enrichment.UnmatchedProducts) > 0 {
		fmt.Fprintf(buf, "Products Not Found in Catalog: %s\n", strings.Join(report.Enrichment.UnmatchedProducts, ", "))
	}
	buf.WriteString(sectionRule + "\n")
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// money formats a decimal amount as "$1,234.56".
func money(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	out := "$" + grouped + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// groupThousands inserts commas into an unsigned integer string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var buf strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		buf.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if buf.Len() > 0 {
			buf.WriteString(",")
		}
		buf.WriteString(digits[i : i+3])
	}
	return buf.String()
}

// center pads a line to the report width.
func center(text string) string {
	if len(text) >= reportWidth {
		return text
	}
	pad := (reportWidth - len(text)) / 2
	return strings.Repeat(" ", pad) + text
}
