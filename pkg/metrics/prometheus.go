package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	pagesFetched    prometheus.Counter
	symbolOutcomes  *prometheus.CounterVec
	signalsEmitted  *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	scanDuration    prometheus.Histogram
	lastScanSymbols prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		pagesFetched: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "riskradar_listing_pages_fetched_total",
				Help: "Total number of listing pages fetched during discovery",
			},
		),
		symbolOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskradar_symbols_screened_total",
				Help: "Total number of symbols screened, by outcome",
			},
			[]string{"outcome"},
		),
		signalsEmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskradar_warning_signals_total",
				Help: "Total number of warning signals emitted, by category",
			},
			[]string{"category"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskradar_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "riskradar_scan_duration_seconds",
				Help:    "Duration of full screening runs in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
			},
		),
		lastScanSymbols: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "riskradar_last_scan_symbols",
				Help: "Number of symbols discovered in the most recent scan",
			},
		),
	}
}

// RecordPageFetched records one fetched listing page.
func (r *Recorder) RecordPageFetched() {
	r.pagesFetched.Inc()
}

// RecordSymbolOutcome records a screened symbol outcome (passed, failed, skipped).
func (r *Recorder) RecordSymbolOutcome(outcome string) {
	r.symbolOutcomes.WithLabelValues(outcome).Inc()
}

// RecordSignal records one emitted warning signal.
func (r *Recorder) RecordSignal(category string) {
	r.signalsEmitted.WithLabelValues(category).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordScanDuration records the duration of a full run in seconds.
func (r *Recorder) RecordScanDuration(seconds float64) {
	r.scanDuration.Observe(seconds)
}

// RecordDiscoveredSymbols records the discovered universe size of the last run.
func (r *Recorder) RecordDiscoveredSymbols(n int) {
	r.lastScanSymbols.Set(float64(n))
}
