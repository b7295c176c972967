package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/sales-analytics/internal/types"
)

// tx builds a transaction for aggregation tests.
func tx(id, date, productID, productName string, quantity int, price, customerID, region string) types.Transaction {
	day, err := time.Parse(types.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return types.Transaction{
		TransactionID: id,
		Date:          day,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     decimal.RequireFromString(price),
		CustomerID:    customerID,
		Region:        region,
	}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestTotalRevenue(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-15", "P101", "Laptop", 2, "1200.00", "C501", "North"),
		tx("T002", "2024-01-15", "P102", "Mouse", 3, "25.50", "C502", "South"),
	}

	// 2*1200.00 + 3*25.50 = 2476.50
	assert.True(t, TotalRevenue(records).Equal(dec("2476.50")))
	assert.True(t, TotalRevenue(nil).Equal(decimal.Zero))
}

func TestRegionSummary(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-15", "P101", "Laptop", 1, "300.00", "C501", "North"),
		tx("T002", "2024-01-15", "P102", "Mouse", 1, "100.00", "C502", "South"),
		tx("T003", "2024-01-16", "P103", "Desk", 1, "100.00", "C503", "East"),
		tx("T004", "2024-01-16", "P104", "Lamp", 1, "300.00", "C504", "North"),
	}

	regions := RegionSummary(records)
	require.Len(t, regions, 3)

	// North leads with 600 of 800 total.
	assert.Equal(t, "North", regions[0].Region)
	assert.True(t, regions[0].TotalSales.Equal(dec("600")))
	assert.Equal(t, 2, regions[0].TransactionCount)
	assert.True(t, regions[0].Percentage.Equal(dec("75")))

	// East and South tie on 100; the tie-break is region name ascending.
	assert.Equal(t, "East", regions[1].Region)
	assert.Equal(t, "South", regions[2].Region)
	assert.True(t, regions[1].Percentage.Equal(dec("12.5")))
}

func TestTopProducts(t *testing.T) {
	records := []types.Transaction{
		// P101: 3 units, 300 revenue (two transactions)
		tx("T001", "2024-01-15", "P101", "Laptop", 1, "100.00", "C501", "North"),
		tx("T002", "2024-01-15", "P101", "Laptop", 2, "100.00", "C502", "North"),
		// P103: 50 units, 250 revenue
		tx("T003", "2024-01-16", "P103", "Cable", 50, "5.00", "C503", "South"),
		// P102 and P104 tie on 300 revenue
		tx("T004", "2024-01-16", "P104", "Desk", 1, "300.00", "C504", "East"),
		tx("T005", "2024-01-16", "P102", "Chair", 2, "150.00", "C505", "East"),
	}

	top := TopProducts(records, 3)
	require.Len(t, top, 3)

	// Revenue is the ranking key, not quantity: P103's 50 units do not
	// outrank the 300-revenue products. The 300 tie breaks on product ID.
	assert.Equal(t, "P101", top[0].ProductID)
	assert.Equal(t, "P102", top[1].ProductID)
	assert.Equal(t, "P104", top[2].ProductID)

	assert.Equal(t, 3, top[0].QuantitySold)
	assert.True(t, top[0].Revenue.Equal(dec("300")))
}

func TestTopProductsCapsAtN(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-15", "P101", "A", 1, "10.00", "C501", "North"),
		tx("T002", "2024-01-15", "P102", "B", 1, "20.00", "C502", "North"),
		tx("T003", "2024-01-15", "P103", "C", 1, "30.00", "C503", "North"),
	}

	assert.Len(t, TopProducts(records, 2), 2)
	assert.Len(t, TopProducts(records, 10), 3)
}

func TestLowPerformers(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-15", "P101", "Laptop", 15, "100.00", "C501", "North"),
		tx("T002", "2024-01-15", "P102", "Mouse", 4, "10.00", "C502", "North"),
		tx("T003", "2024-01-16", "P103", "Desk", 9, "50.00", "C503", "South"),
		tx("T004", "2024-01-16", "P104", "Lamp", 4, "20.00", "C504", "South"),
	}

	low := LowPerformers(records, 10)
	require.Len(t, low, 3)

	// Quantity ascending; the P102/P104 tie on 4 breaks on product ID.
	assert.Equal(t, "P102", low[0].ProductID)
	assert.Equal(t, "P104", low[1].ProductID)
	assert.Equal(t, "P103", low[2].ProductID)
}

func TestTopCustomers(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-15", "P101", "Laptop", 1, "500.00", "C501", "North"),
		tx("T002", "2024-01-16", "P102", "Mouse", 2, "25.00", "C501", "North"),
		tx("T003", "2024-01-16", "P103", "Desk", 1, "550.00", "C502", "South"),
		tx("T004", "2024-01-17", "P101", "Laptop", 1, "550.00", "C503", "East"),
	}

	top := TopCustomers(records, 3)
	require.Len(t, top, 3)

	// All three customers spent exactly 550, so the ranking falls back to
	// customer ID ascending.
	assert.Equal(t, "C501", top[0].CustomerID)
	assert.Equal(t, "C502", top[1].CustomerID)
	assert.Equal(t, "C503", top[2].CustomerID)

	assert.True(t, top[0].TotalSpent.Equal(dec("550")))
	assert.Equal(t, 2, top[0].PurchaseCount)
	assert.True(t, top[0].AvgOrderValue.Equal(dec("275")))
	assert.Equal(t, []string{"Laptop", "Mouse"}, top[0].Products)
}

func TestDailyTrend(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-16", "P101", "Laptop", 1, "100.00", "C501", "North"),
		tx("T002", "2024-01-15", "P102", "Mouse", 1, "50.00", "C502", "South"),
		tx("T003", "2024-01-16", "P103", "Desk", 1, "200.00", "C501", "North"),
		tx("T004", "2024-01-16", "P104", "Lamp", 1, "25.00", "C503", "East"),
	}

	trend := DailyTrend(records)
	require.Len(t, trend, 2)

	assert.Equal(t, "2024-01-15", trend[0].Date)
	assert.True(t, trend[0].Revenue.Equal(dec("50")))
	assert.Equal(t, 1, trend[0].TransactionCount)
	assert.Equal(t, 1, trend[0].UniqueCustomers)

	assert.Equal(t, "2024-01-16", trend[1].Date)
	assert.True(t, trend[1].Revenue.Equal(dec("325")))
	assert.Equal(t, 3, trend[1].TransactionCount)
	assert.Equal(t, 2, trend[1].UniqueCustomers, "C501 bought twice on the 16th")
}

func TestPeakDay(t *testing.T) {
	trend := []DailyStat{
		{Date: "2024-01-15", Revenue: dec("300")},
		{Date: "2024-01-16", Revenue: dec("500")},
		{Date: "2024-01-17", Revenue: dec("500")},
	}

	peak := PeakDay(trend)
	require.NotNil(t, peak)
	// Ties keep the earliest day.
	assert.Equal(t, "2024-01-16", peak.Date)

	assert.Nil(t, PeakDay(nil))
}

func TestEnrichmentSummary(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{Transaction: tx("T001", "2024-01-15", "P101", "Laptop", 1, "100.00", "C501", "North"), Matched: true},
		{Transaction: tx("T002", "2024-01-15", "P999", "Widget", 1, "10.00", "C502", "North")},
		{Transaction: tx("T003", "2024-01-15", "P998", "Gadget", 1, "10.00", "C503", "North")},
		{Transaction: tx("T004", "2024-01-15", "P999", "Widget", 1, "10.00", "C504", "South")},
	}

	stats := EnrichmentSummary(enriched)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Matched)
	assert.True(t, stats.SuccessRate.Equal(dec("25")))
	assert.Equal(t, []string{"Gadget", "Widget"}, stats.UnmatchedProducts)
}

func TestBuildReport(t *testing.T) {
	records := []types.Transaction{
		tx("T001", "2024-01-15", "P101", "Laptop", 2, "1200.00", "C501", "North"),
		tx("T002", "2024-01-16", "P102", "Mouse", 3, "25.00", "C502", "South"),
		tx("T003", "2024-01-17", "P101", "Laptop", 1, "1200.00", "C501", "North"),
	}
	enriched := []types.EnrichedTransaction{
		{Transaction: records[0], Matched: true},
		{Transaction: records[1]},
		{Transaction: records[2], Matched: true},
	}

	report := BuildReport(records, enriched, Options{
		TopProducts:           5,
		TopCustomers:          5,
		LowPerformerThreshold: 10,
	})

	assert.True(t, report.TotalRevenue.Equal(dec("3675")))
	assert.Equal(t, 3, report.TransactionCount)
	assert.True(t, report.AverageOrderValue.Equal(dec("1225")))
	assert.Equal(t, "2024-01-15", report.FirstDate)
	assert.Equal(t, "2024-01-17", report.LastDate)
	require.NotNil(t, report.PeakDay)
	assert.Equal(t, "2024-01-15", report.PeakDay.Date)
	assert.Len(t, report.Regions, 2)
	assert.Len(t, report.TopProducts, 2)
	assert.Equal(t, 2, report.Enrichment.Matched)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, nil, Options{TopProducts: 5, TopCustomers: 5, LowPerformerThreshold: 10})

	assert.True(t, report.TotalRevenue.Equal(decimal.Zero))
	assert.Equal(t, 0, report.TransactionCount)
	assert.True(t, report.AverageOrderValue.Equal(decimal.Zero))
	assert.Empty(t, report.FirstDate)
	assert.Nil(t, report.PeakDay)
	assert.Empty(t, report.Regions)
	assert.Empty(t, report.TopProducts)
	assert.Empty(t, report.TopCustomers)
	assert.Empty(t, report.DailyTrend)
	assert.Equal(t, 0, report.Enrichment.Total)
}
