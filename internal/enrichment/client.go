// =============================================================================
// Sales Analytics - Product Catalog Client
// =============================================================================
//
// This module talks to the external product-metadata service. The service
// exposes a dummyjson-style endpoint:
//
//   GET {base_url}/products?limit={n}
//   -> {"products": [{"id": 1, "title": ..., "category": ...,
//                     "brand": ..., "rating": ...}, ...], "total": ...}
//
// The catalog is fetched once per run (one batch call, not one call per
// record) and turned into an in-memory index for the enrichment pass.
//
// ERROR HANDLING:
//   A fetch failure never aborts a run. The caller logs the failure and
//   proceeds with an empty index, which leaves every record unenriched.
//
// =============================================================================

package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/retailops/sales-analytics/internal/types"
)

// Source is the abstract product catalog the pipeline enriches against.
// The HTTP client below is the production implementation; tests use the
// generated mock.
//
//go:generate mockgen -destination=mocks/mock_source.go -package=mocks -source=client.go Source
type Source interface {
	FetchProducts(ctx context.Context) ([]types.Product, error)
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// Client fetches product metadata over HTTP.
type Client struct {
	baseURL    string
	fetchLimit int
	httpClient *http.Client
}

// NewClient creates a catalog client.
//
// PARAMETERS:
//   - baseURL:    The catalog API root, e.g. "https://dummyjson.com".
//   - fetchLimit: The page size requested from the catalog.
//   - timeout:    The overall HTTP timeout for the fetch.
func NewClient(baseURL string, fetchLimit int, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		fetchLimit: fetchLimit,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// productsResponse mirrors the catalog's list payload.
type productsResponse struct {
	Products []types.Product `json:"products"`
	Total    int             `json:"total"`
}

// FetchProducts retrieves the product catalog in a single batch call.
func (c *Client) FetchProducts(ctx context.Context) ([]types.Product, error) {
	endpoint := fmt.Sprintf("%s/products?limit=%s", c.baseURL, url.QueryEscape(strconv.Itoa(c.fetchLimit)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return payload.Products, nil
}
