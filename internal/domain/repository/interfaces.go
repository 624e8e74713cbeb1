package repository

import (
	"context"

	"RiskRadar/internal/domain/models"
)

// ListingSource fetches one page of the paginated symbol listing. Returns the
// symbols extracted from the page and whether a further page is advertised.
type ListingSource interface {
	FetchPage(ctx context.Context, page int) (symbols []string, hasNext bool, err error)
}

// ChartSource fetches the historical daily close/volume series for a symbol.
type ChartSource interface {
	DailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error)
}

// ProfileSource scrapes the company profile page for a symbol.
type ProfileSource interface {
	CompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
}

// NewsSource queries a recency-scoped news feed.
type NewsSource interface {
	Search(ctx context.Context, query string) ([]models.NewsItem, error)
}

// SearchSource queries a general web search surface.
type SearchSource interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// Metrics records pipeline counters and timings.
type Metrics interface {
	RecordPageFetched()
	RecordSymbolOutcome(outcome string)
	RecordSignal(category string)
	RecordError(kind string)
	RecordScanDuration(seconds float64)
	RecordDiscoveredSymbols(n int)
}
