package salesparser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/types"
)

// testSettings returns the parser settings of the default configuration.
func testSettings() config.ParserSettings {
	return config.ParserSettings{
		Delimiter:  "|",
		FieldCount: 8,
		Encodings:  []string{"utf-8", "latin-1", "cp1252"},
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(types.DateLayout, value)
	assert.NoError(t, err)
	return date
}

func TestParseRecords(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		expected    []types.Transaction
		wantDropped int
	}{
		{
			name: "clean line",
			lines: []string{
				"T001|2024-01-15|P101|Laptop|2|1200.00|C501|North",
			},
			expected: []types.Transaction{
				{
					TransactionID: "T001",
					Date:          mustDate(t, "2024-01-15"),
					ProductID:     "P101",
					ProductName:   "Laptop",
					Quantity:      2,
					UnitPrice:     decimal.RequireFromString("1200.00"),
					CustomerID:    "C501",
					Region:        "North",
				},
			},
		},
		{
			name: "thousands separator in unit price",
			lines: []string{
				"T002|2024-01-15|P102|Monitor|1|1,250.50|C502|South",
			},
			expected: []types.Transaction{
				{
					TransactionID: "T002",
					Date:          mustDate(t, "2024-01-15"),
					ProductID:     "P102",
					ProductName:   "Monitor",
					Quantity:      1,
					UnitPrice:     decimal.RequireFromString("1250.50"),
					CustomerID:    "C502",
					Region:        "South",
				},
			},
		},
		{
			name: "stray comma inside product name",
			lines: []string{
				"T003|2024-01-16|P103|Mouse, Wireless|3|25.00|C503|East",
			},
			expected: []types.Transaction{
				{
					TransactionID: "T003",
					Date:          mustDate(t, "2024-01-16"),
					ProductID:     "P103",
					ProductName:   "Mouse Wireless",
					Quantity:      3,
					UnitPrice:     decimal.RequireFromString("25.00"),
					CustomerID:    "C503",
					Region:        "East",
				},
			},
		},
		{
			name: "currency symbol in unit price",
			lines: []string{
				"T004|2024-01-16|P104|Keyboard|1|$45.99|C504|West",
			},
			expected: []types.Transaction{
				{
					TransactionID: "T004",
					Date:          mustDate(t, "2024-01-16"),
					ProductID:     "P104",
					ProductName:   "Keyboard",
					Quantity:      1,
					UnitPrice:     decimal.RequireFromString("45.99"),
					CustomerID:    "C504",
					Region:        "West",
				},
			},
		},
		{
			name: "wrong field count is dropped",
			lines: []string{
				"T005|2024-01-17|P105|Webcam|2|80.00|C505",
			},
			wantDropped: 1,
		},
		{
			name: "non-positive quantity is dropped",
			lines: []string{
				"T006|2024-01-17|P106|Headset|0|60.00|C506|North",
				"T007|2024-01-17|P106|Headset|-2|60.00|C507|North",
			},
			wantDropped: 2,
		},
		{
			name: "non-positive unit price is dropped",
			lines: []string{
				"T008|2024-01-17|P107|Dock|1|0.00|C508|South",
			},
			wantDropped: 1,
		},
		{
			name: "missing identifier prefixes are dropped",
			lines: []string{
				"X009|2024-01-18|P108|Cable|1|5.00|C509|East",
				"T010|2024-01-18|108|Cable|1|5.00|C510|East",
				"T011|2024-01-18|P108|Cable|1|5.00|509|East",
			},
			wantDropped: 3,
		},
		{
			name: "unparseable date is dropped",
			lines: []string{
				"T012|18/01/2024|P109|Stand|1|30.00|C511|West",
				"T013|not-a-date|P109|Stand|1|30.00|C512|West",
			},
			wantDropped: 2,
		},
		{
			name: "empty region is dropped",
			lines: []string{
				"T014|2024-01-19|P110|Lamp|1|22.00|C513|",
			},
			wantDropped: 1,
		},
		{
			name: "bad lines do not poison good ones",
			lines: []string{
				"T015|2024-01-19|P111|Desk|1|300.00|C514|North",
				"garbage line",
				"T016|2024-01-19|P112|Chair|2|150.00|C515|South",
			},
			expected: []types.Transaction{
				{
					TransactionID: "T015",
					Date:          mustDate(t, "2024-01-19"),
					ProductID:     "P111",
					ProductName:   "Desk",
					Quantity:      1,
					UnitPrice:     decimal.RequireFromString("300.00"),
					CustomerID:    "C514",
					Region:        "North",
				},
				{
					TransactionID: "T016",
					Date:          mustDate(t, "2024-01-19"),
					ProductID:     "P112",
					ProductName:   "Chair",
					Quantity:      2,
					UnitPrice:     decimal.RequireFromString("150.00"),
					CustomerID:    "C515",
					Region:        "South",
				},
			},
			wantDropped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, stats := ParseRecords(tt.lines, testSettings())

			assert.Equal(t, len(tt.lines), stats.LinesRead)
			assert.Equal(t, tt.wantDropped, stats.Dropped)
			assert.Equal(t, len(tt.expected), stats.Parsed)
			assert.Len(t, records, len(tt.expected))

			for i, want := range tt.expected {
				got := records[i]
				assert.Equal(t, want.TransactionID, got.TransactionID)
				assert.Equal(t, want.Date, got.Date)
				assert.Equal(t, want.ProductID, got.ProductID)
				assert.Equal(t, want.ProductName, got.ProductName)
				assert.Equal(t, want.Quantity, got.Quantity)
				assert.True(t, want.UnitPrice.Equal(got.UnitPrice),
					"unit price: want %s, got %s", want.UnitPrice, got.UnitPrice)
				assert.Equal(t, want.CustomerID, got.CustomerID)
				assert.Equal(t, want.Region, got.Region)
			}
		})
	}
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"T001", "2024-01-15", "P101", "Laptop", "2", "1,200.00", "C501", "North"},
		{"T002", "2024-01-15", "P102", "Monitor"}, // short row
	}

	records, stats := ParseRows(rows, testSettings())

	assert.Equal(t, 2, stats.LinesRead)
	assert.Equal(t, 1, stats.Parsed)
	assert.Equal(t, 1, stats.Dropped)
	assert.Len(t, records, 1)
	assert.Equal(t, "T001", records[0].TransactionID)
	assert.True(t, records[0].UnitPrice.Equal(decimal.RequireFromString("1200")))
}

func TestTransactionRevenue(t *testing.T) {
	record := types.Transaction{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("10.50"),
	}
	assert.True(t, record.Revenue().Equal(decimal.RequireFromString("31.50")))
}
