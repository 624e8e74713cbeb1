// Package listing scrapes the paginated public symbol listing.
package listing

import (
	"context"
	"fmt"

	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/service/upstream"
)

// Client implements repository.ListingSource over the listing site.
type Client struct {
	fetcher *upstream.Fetcher
	baseURL string
}

// New creates a listing client.
func New(fetcher *upstream.Fetcher, baseURL string) repository.ListingSource {
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

// FetchPage fetches and parses one listing page. Page numbers start at 1.
func (c *Client) FetchPage(ctx context.Context, page int) ([]string, bool, error) {
	url := c.baseURL
	if page > 1 {
		url = fmt.Sprintf("%s?page=%d", c.baseURL, page)
	}

	doc, err := c.fetcher.GetDocument(ctx, url)
	if err != nil {
		return nil, false, fmt.Errorf("listing page %d: %w", page, err)
	}

	symbols, hasNext := ExtractSymbols(doc)
	return symbols, hasNext, nil
}
