package usecase

import (
	"context"
	"fmt"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
)

const (
	defaultSMAWindow  = 200
	defaultMinSamples = 50
)

// TechnicalFilter evaluates the moving-average / all-time-high screen for a
// single symbol.
type TechnicalFilter struct {
	charts       repository.ChartSource
	athThreshold float64
	smaWindow    int
	minSamples   int
}

// FilterOption configures a TechnicalFilter.
type FilterOption func(*TechnicalFilter)

// WithFilterWindows overrides the moving-average window length and the
// minimum number of samples required to evaluate a symbol.
func WithFilterWindows(smaWindow, minSamples int) FilterOption {
	return func(f *TechnicalFilter) {
		if smaWindow > 0 {
			f.smaWindow = smaWindow
		}
		if minSamples > 0 {
			f.minSamples = minSamples
		}
	}
}

// NewTechnicalFilter creates the filter. athThreshold is the fraction of the
// all-time high the current price must hold.
func NewTechnicalFilter(charts repository.ChartSource, athThreshold float64, opts ...FilterOption) *TechnicalFilter {
	f := &TechnicalFilter{
		charts:       charts,
		athThreshold: athThreshold,
		smaWindow:    defaultSMAWindow,
		minSamples:   defaultMinSamples,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Evaluate fetches the symbol's daily series and computes the filter metrics.
// The series is returned alongside so callers can run further analysis without
// refetching. Data-unavailable conditions surface as the repository sentinel
// errors and should skip the symbol, not abort the run.
func (f *TechnicalFilter) Evaluate(ctx context.Context, symbol string) (*models.TechnicalMetrics, *models.PriceSeries, error) {
	series, err := f.charts.DailySeries(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("daily series for %s: %w", symbol, err)
	}
	closes := series.Closes()
	if len(closes) == 0 {
		return nil, nil, fmt.Errorf("daily series for %s: %w", symbol, repository.ErrEmptySeries)
	}

	window := closes
	if len(window) > f.smaWindow {
		window = window[len(window)-f.smaWindow:]
	}
	if len(window) < f.minSamples {
		return nil, nil, fmt.Errorf("daily series for %s has %d samples: %w", symbol, len(window), repository.ErrInsufficientHistory)
	}

	var sum float64
	for _, c := range window {
		sum += c
	}
	sma := sum / float64(len(window))

	ath := closes[0]
	for _, c := range closes {
		if c > ath {
			ath = c
		}
	}

	current := closes[len(closes)-1]
	metrics := &models.TechnicalMetrics{
		Symbol:       symbol,
		CurrentPrice: current,
		SMA200:       sma,
		AllTimeHigh:  ath,
		Passes:       current > sma && current >= ath*f.athThreshold,
	}
	if len(closes) >= 2 && closes[len(closes)-2] != 0 {
		prev := closes[len(closes)-2]
		pct := (current - prev) / prev * 100
		metrics.DailyChangePct = &pct
	}
	return metrics, series, nil
}
