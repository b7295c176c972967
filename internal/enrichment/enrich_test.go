package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/sales-analytics/internal/types"
)

func testCatalog() Index {
	return BuildIndex([]types.Product{
		{ID: 101, Title: "Laptop Pro", Category: "electronics", Brand: "Acme", Rating: 4.5},
		{ID: 102, Title: "Wireless Mouse", Category: "electronics", Brand: "Logi", Rating: 4.1},
	})
}

func TestBuildIndex(t *testing.T) {
	index := testCatalog()

	require.Len(t, index, 2)
	assert.Equal(t, "Laptop Pro", index[101].Title)
	assert.Equal(t, "Logi", index[102].Brand)
}

func TestEnrich(t *testing.T) {
	records := []types.Transaction{
		{TransactionID: "T001", ProductID: "P101", ProductName: "Laptop"},
		{TransactionID: "T002", ProductID: "P999", ProductName: "Unknown Widget"},
		{TransactionID: "T003", ProductID: "Pabc", ProductName: "Bad ID"},
		{TransactionID: "T004", ProductID: "P102", ProductName: "Mouse"},
	}

	enriched := Enrich(records, testCatalog())
	require.Len(t, enriched, 4)

	// P101 matches catalog id 101.
	assert.True(t, enriched[0].Matched)
	require.NotNil(t, enriched[0].Product)
	assert.Equal(t, "Acme", enriched[0].Product.Brand)

	// P999 has no catalog entry.
	assert.False(t, enriched[1].Matched)
	assert.Nil(t, enriched[1].Product)

	// Pabc has no numeric part; it stays unmatched rather than erroring.
	assert.False(t, enriched[2].Matched)

	assert.True(t, enriched[3].Matched)

	// Unmatched records keep their original fields untouched.
	assert.Equal(t, "Unknown Widget", enriched[1].ProductName)

	assert.Equal(t, 2, MatchedCount(enriched))
}

func TestEnrichEmptyIndex(t *testing.T) {
	records := []types.Transaction{
		{TransactionID: "T001", ProductID: "P101"},
	}

	for _, index := range []Index{nil, {}} {
		enriched := Enrich(records, index)
		require.Len(t, enriched, 1)
		assert.False(t, enriched[0].Matched)
	}
	assert.Empty(t, Enrich(nil, testCatalog()))
}
