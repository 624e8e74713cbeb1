package usecase

import (
	"context"
	"sync"

	"RiskRadar/internal/domain/models"
)

type listingPage struct {
	symbols []string
	hasNext bool
	err     error
}

type fakeListing struct {
	pages map[int]listingPage
	calls []int
}

func (f *fakeListing) FetchPage(_ context.Context, page int) ([]string, bool, error) {
	f.calls = append(f.calls, page)
	p, ok := f.pages[page]
	if !ok {
		return nil, false, nil
	}
	return p.symbols, p.hasNext, p.err
}

// retryListing fails with err for the first n calls to a page, then delegates.
type retryListing struct {
	inner    *fakeListing
	failures int
	err      error
	attempts int
}

func (f *retryListing) FetchPage(ctx context.Context, page int) ([]string, bool, error) {
	f.attempts++
	if f.attempts <= f.failures {
		return nil, false, f.err
	}
	return f.inner.FetchPage(ctx, page)
}

type fakeChart struct {
	series map[string]*models.PriceSeries
	errs   map[string]error
}

func (f *fakeChart) DailySeries(_ context.Context, symbol string) (*models.PriceSeries, error) {
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	if s, ok := f.series[symbol]; ok {
		return s, nil
	}
	return &models.PriceSeries{Symbol: symbol}, nil
}

type fakeProfile struct {
	profiles map[string]*models.CompanyProfile
	err      error
}

func (f *fakeProfile) CompanyProfile(_ context.Context, symbol string) (*models.CompanyProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[symbol]; ok {
		return p, nil
	}
	return &models.CompanyProfile{}, nil
}

type fakeNewsSource struct {
	items []models.NewsItem
	err   error
}

func (f *fakeNewsSource) Search(context.Context, string) ([]models.NewsItem, error) {
	return f.items, f.err
}

type fakeSearchSource struct {
	results []models.SearchResult
	err     error
}

func (f *fakeSearchSource) Search(context.Context, string) ([]models.SearchResult, error) {
	return f.results, f.err
}

type fakeMetrics struct {
	mu         sync.Mutex
	pages      int
	outcomes   map[string]int
	signals    map[string]int
	errors     map[string]int
	durations  int
	discovered int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		outcomes: make(map[string]int),
		signals:  make(map[string]int),
		errors:   make(map[string]int),
	}
}

func (m *fakeMetrics) RecordPageFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages++
}

func (m *fakeMetrics) RecordSymbolOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

func (m *fakeMetrics) RecordSignal(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals[category]++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordScanDuration(float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *fakeMetrics) RecordDiscoveredSymbols(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discovered = n
}

// risingSeries returns n closes climbing from 100 so the last close clears
// both the moving average and the all-time-high fraction.
func risingSeries(symbol string, n int) *models.PriceSeries {
	s := &models.PriceSeries{Symbol: symbol}
	for i := 0; i < n; i++ {
		vol := 1000.0
		s.Points = append(s.Points, models.PricePoint{Close: 100 + float64(i), Volume: &vol})
	}
	return s
}

// fallingSeries returns n closes declining from a peak so the last close sits
// below the moving average.
func fallingSeries(symbol string, n int) *models.PriceSeries {
	s := &models.PriceSeries{Symbol: symbol}
	for i := 0; i < n; i++ {
		vol := 1000.0
		s.Points = append(s.Points, models.PricePoint{Close: 200 - float64(i), Volume: &vol})
	}
	return s
}
