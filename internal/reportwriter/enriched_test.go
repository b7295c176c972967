package reportwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/sales-analytics/internal/types"
)

func TestGenerateEnriched(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []types.EnrichedTransaction{
		{
			Transaction: types.Transaction{
				TransactionID: "T001",
				Date:          date,
				ProductID:     "P101",
				ProductName:   "Laptop",
				Quantity:      2,
				UnitPrice:     dec("1200.00"),
				CustomerID:    "C501",
				Region:        "North",
			},
			Product: &types.Product{ID: 101, Title: "Laptop Pro", Category: "electronics", Brand: "Acme", Rating: 4.5},
			Matched: true,
		},
		{
			Transaction: types.Transaction{
				TransactionID: "T002",
				Date:          date,
				ProductID:     "P999",
				ProductName:   "Widget",
				Quantity:      1,
				UnitPrice:     dec("9.99"),
				CustomerID:    "C502",
				Region:        "South",
			},
		},
	}

	lines := strings.Split(strings.TrimRight(string(GenerateEnriched(records)), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|Brand|Category|Rating|APIMatch", lines[0])
	assert.Equal(t, "T001|2024-01-15|P101|Laptop|2|1200.00|C501|North|Acme|electronics|4.50|true", lines[1])

	// Unmatched records keep the fixed column shape with empty metadata.
	assert.Equal(t, "T002|2024-01-15|P999|Widget|1|9.99|C502|South||||false", lines[2])
}

func TestGenerateEnrichedEmpty(t *testing.T) {
	lines := strings.Split(strings.TrimRight(string(GenerateEnriched(nil)), "\n"), "\n")
	require.Len(t, lines, 1, "header only")
}

func TestWriteEnriched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "enriched.txt")

	require.NoError(t, WriteEnriched(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "TransactionID|"))
}
