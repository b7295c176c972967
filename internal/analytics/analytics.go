// =============================================================================
// Sales Analytics - Aggregation Engine
// =============================================================================
//
// This module computes the fixed set of aggregate metrics over the cleaned
// (and optionally filtered) record set. Each metric is a pure function of
// its inputs; BuildReport composes them into the SalesReport consumed by
// the report writer.
//
// DETERMINISM:
//   Every ranking has a defined tie-break so repeated runs over the same
//   data produce byte-identical reports:
//   - products:  revenue descending, then product ID ascending
//   - customers: total spent descending, then customer ID ascending
//   - regions:   sales descending, then region name ascending
//   - daily:     chronological
//
// ROUNDING:
//   Aggregates keep full decimal precision internally. Derived ratios
//   (percentages, average order values) are rounded half-away-from-zero to
//   two decimal places; totals are rounded only at display time.
//
// =============================================================================

package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailops/sales-analytics/internal/types"
)

// =============================================================================
// METRIC TYPES
// =============================================================================

// RegionStat is the aggregate for one sales region.
type RegionStat struct {
	Region           string
	TotalSales       decimal.Decimal
	TransactionCount int

	// Percentage is this region's share of total revenue, 0-100,
	// rounded to two decimal places.
	Percentage decimal.Decimal
}

// ProductStat is the aggregate for one product.
type ProductStat struct {
	ProductID    string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// CustomerStat is the aggregate for one customer.
type CustomerStat struct {
	CustomerID    string
	TotalSpent    decimal.Decimal
	PurchaseCount int
	AvgOrderValue decimal.Decimal

	// Products is the sorted list of distinct product names bought.
	Products []string
}

// DailyStat is the aggregate for one calendar day.
type DailyStat struct {
	// Date is the day in YYYY-MM-DD form.
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// EnrichmentStats summarizes the catalog enrichment outcome.
type EnrichmentStats struct {
	Total   int
	Matched int

	// SuccessRate is Matched/Total as a 0-100 percentage, two decimals.
	SuccessRate decimal.Decimal

	// UnmatchedProducts lists the distinct product names that found no
	// catalog entry, sorted ascending.
	UnmatchedProducts []string
}

// =============================================================================
// SALES REPORT
// =============================================================================

// SalesReport is the complete set of aggregates for one run. It is
// computed once and treated as read-only by the report writer.
type SalesReport struct {
	TotalRevenue      decimal.Decimal
	TransactionCount  int
	AverageOrderValue decimal.Decimal

	// FirstDate and LastDate bound the daily trend; empty when there are
	// no records.
	FirstDate string
	LastDate  string

	Regions       []RegionStat
	TopProducts   []ProductStat
	TopCustomers  []CustomerStat
	DailyTrend    []DailyStat
	PeakDay       *DailyStat
	LowPerformers []ProductStat
	Enrichment    EnrichmentStats
}

// Options controls the report rankings.
type Options struct {
	// TopProducts is the product ranking size.
	TopProducts int

	// TopCustomers is the customer ranking size.
	TopCustomers int

	// LowPerformerThreshold marks products with fewer total units sold
	// as low performers.
	LowPerformerThreshold int
}

// BuildReport computes every aggregate over the included records.
// An empty record set produces zero totals and empty rankings.
func BuildReport(records []types.Transaction, enriched []types.EnrichedTransaction, opts Options) *SalesReport {
	report := &SalesReport{
		TotalRevenue:     TotalRevenue(records),
		TransactionCount: len(records),
		Regions:          RegionSummary(records),
		TopProducts:      TopProducts(records, opts.TopProducts),
		TopCustomers:     TopCustomers(records, opts.TopCustomers),
		DailyTrend:       DailyTrend(records),
		LowPerformers:    LowPerformers(records, opts.LowPerformerThreshold),
		Enrichment:       EnrichmentSummary(enriched),
	}

	if report.TransactionCount > 0 {
		count := decimal.NewFromInt(int64(report.TransactionCount))
		report.AverageOrderValue = report.TotalRevenue.Div(count).Round(2)
	}

	if len(report.DailyTrend) > 0 {
		report.FirstDate = report.DailyTrend[0].Date
		report.LastDate = report.DailyTrend[len(report.DailyTrend)-1].Date
		report.PeakDay = PeakDay(report.DailyTrend)
	}

	return report
}

// =============================================================================
// METRIC FUNCTIONS
// =============================================================================

// TotalRevenue sums quantity x unit price over all records.
func TotalRevenue(records []types.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.Revenue())
	}
	return total
}

// RegionSummary groups revenue and transaction counts by region, sorted by
// sales descending (ties by region name ascending).
func RegionSummary(records []types.Transaction) []RegionStat {
	total := TotalRevenue(records)

	byRegion := make(map[string]*RegionStat)
	for _, record := range records {
		stat, ok := byRegion[record.Region]
		if !ok {
			stat = &RegionStat{Region: record.Region, TotalSales: decimal.Zero}
			byRegion[record.Region] = stat
		}
		stat.TotalSales = stat.TotalSales.Add(record.Revenue())
		stat.TransactionCount++
	}

	stats := make([]RegionStat, 0, len(byRegion))
	hundred := decimal.NewFromInt(100)
	for _, stat := range byRegion {
		if total.IsPositive() {
			stat.Percentage = stat.TotalSales.Mul(hundred).Div(total).Round(2)
		}
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].TotalSales.Equal(stats[j].TotalSales) {
			return stats[i].TotalSales.GreaterThan(stats[j].TotalSales)
		}
		return stats[i].Region < stats[j].Region
	})

	return stats
}

// productSummary groups quantity and revenue by product ID.
func productSummary(records []types.Transaction) []ProductStat {
	byProduct := make(map[string]*ProductStat)
	for _, record := range records {
		stat, ok := byProduct[record.ProductID]
		if !ok {
			stat = &ProductStat{
				ProductID:   record.ProductID,
				ProductName: record.ProductName,
				Revenue:     decimal.Zero,
			}
			byProduct[record.ProductID] = stat
		}
		stat.QuantitySold += record.Quantity
		stat.Revenue = stat.Revenue.Add(record.Revenue())
	}

	stats := make([]ProductStat, 0, len(byProduct))
	for _, stat := range byProduct {
		stats = append(stats, *stat)
	}
	return stats
}

// TopProducts ranks products by revenue descending, ties broken by product
// ID ascending, and returns at most n entries.
func TopProducts(records []types.Transaction, n int) []ProductStat {
	stats := productSummary(records)

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].ProductID < stats[j].ProductID
	})

	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformers returns products whose total units sold fall below
// threshold, sorted by quantity ascending (ties by product ID ascending).
func LowPerformers(records []types.Transaction, threshold int) []ProductStat {
	var low []ProductStat
	for _, stat := range productSummary(records) {
		if stat.QuantitySold < threshold {
			low = append(low, stat)
		}
	}

	sort.Slice(low, func(i, j int) bool {
		if low[i].QuantitySold != low[j].QuantitySold {
			return low[i].QuantitySold < low[j].QuantitySold
		}
		return low[i].ProductID < low[j].ProductID
	})

	return low
}

// TopCustomers ranks customers by total spent descending, ties broken by
// customer ID ascending, and returns at most n entries.
func TopCustomers(records []types.Transaction, n int) []CustomerStat {
	type customerAccum struct {
		stat     CustomerStat
		products map[string]struct{}
	}

	byCustomer := make(map[string]*customerAccum)
	for _, record := range records {
		accum, ok := byCustomer[record.CustomerID]
		if !ok {
			accum = &customerAccum{
				stat:     CustomerStat{CustomerID: record.CustomerID, TotalSpent: decimal.Zero},
				products: make(map[string]struct{}),
			}
			byCustomer[record.CustomerID] = accum
		}
		accum.stat.TotalSpent = accum.stat.TotalSpent.Add(record.Revenue())
		accum.stat.PurchaseCount++
		accum.products[record.ProductName] = struct{}{}
	}

	stats := make([]CustomerStat, 0, len(byCustomer))
	for _, accum := range byCustomer {
		count := decimal.NewFromInt(int64(accum.stat.PurchaseCount))
		accum.stat.AvgOrderValue = accum.stat.TotalSpent.Div(count).Round(2)

		accum.stat.Products = make([]string, 0, len(accum.products))
		for name := range accum.products {
			accum.stat.Products = append(accum.stat.Products, name)
		}
		sort.Strings(accum.stat.Products)

		stats = append(stats, accum.stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].TotalSpent.Equal(stats[j].TotalSpent) {
			return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent)
		}
		return stats[i].CustomerID < stats[j].CustomerID
	})

	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// DailyTrend groups revenue, transaction counts, and unique customers by
// calendar day, in chronological order.
func DailyTrend(records []types.Transaction) []DailyStat {
	type dayAccum struct {
		stat      DailyStat
		customers map[string]struct{}
	}

	byDay := make(map[string]*dayAccum)
	for _, record := range records {
		key := record.DateKey()
		accum, ok := byDay[key]
		if !ok {
			accum = &dayAccum{
				stat:      DailyStat{Date: key, Revenue: decimal.Zero},
				customers: make(map[string]struct{}),
			}
			byDay[key] = accum
		}
		accum.stat.Revenue = accum.stat.Revenue.Add(record.Revenue())
		accum.stat.TransactionCount++
		accum.customers[record.CustomerID] = struct{}{}
	}

	stats := make([]DailyStat, 0, len(byDay))
	for _, accum := range byDay {
		accum.stat.UniqueCustomers = len(accum.customers)
		stats = append(stats, accum.stat)
	}

	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})

	return stats
}

// PeakDay returns the day with the highest revenue. The trend is already
// chronological, so a strict comparison keeps the earliest day on ties.
func PeakDay(trend []DailyStat) *DailyStat {
	if len(trend) == 0 {
		return nil
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue.GreaterThan(peak.Revenue) {
			peak = day
		}
	}
	return &peak
}

// EnrichmentSummary computes match counts and the distinct unmatched
// product names.
func EnrichmentSummary(enriched []types.EnrichedTransaction) EnrichmentStats {
	stats := EnrichmentStats{Total: len(enriched)}

	unmatched := make(map[string]struct{})
	for _, record := range enriched {
		if record.Matched {
			stats.Matched++
			continue
		}
		unmatched[record.ProductName] = struct{}{}
	}

	if stats.Total > 0 {
		matched := decimal.NewFromInt(int64(stats.Matched))
		total := decimal.NewFromInt(int64(stats.Total))
		stats.SuccessRate = matched.Mul(decimal.NewFromInt(100)).Div(total).Round(2)
	}

	stats.UnmatchedProducts = make([]string, 0, len(unmatched))
	for name := range unmatched {
		stats.UnmatchedProducts = append(stats.UnmatchedProducts, name)
	}
	sort.Strings(stats.UnmatchedProducts)

	return stats
}
