package usecase

import (
	"context"
	"fmt"
	"time"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/services/risk"
	applogger "RiskRadar/pkg/logger"
	"RiskRadar/pkg/sector"
)

// PipelineConfig controls batching and per-symbol pacing.
type PipelineConfig struct {
	BatchSize   int
	SymbolDelay time.Duration
}

// Pipeline runs a full scan end to end and streams typed events to the
// caller: progress events while stages run, then either a single result event
// or a single error event, never both.
type Pipeline struct {
	discoverer *Discoverer
	filter     *TechnicalFilter
	structural *risk.StructuralDetector
	enricher   *Enricher
	cfg        PipelineConfig
	metrics    repository.Metrics
	l          *applogger.Logger
	sleep      func(time.Duration)
}

// NewPipeline wires the scan stages together.
func NewPipeline(
	discoverer *Discoverer,
	filter *TechnicalFilter,
	structural *risk.StructuralDetector,
	enricher *Enricher,
	cfg PipelineConfig,
	metrics repository.Metrics,
	l *applogger.Logger,
) *Pipeline {
	return &Pipeline{
		discoverer: discoverer,
		filter:     filter,
		structural: structural,
		enricher:   enricher,
		cfg:        cfg,
		metrics:    metrics,
		l:          l,
		sleep:      time.Sleep,
	}
}

// Run starts a scan and returns its event stream. The channel is closed after
// the terminal event. withFilters false stops after discovery and returns the
// bare universe.
func (p *Pipeline) Run(ctx context.Context, withFilters bool) <-chan models.StreamEvent {
	out := make(chan models.StreamEvent)
	go func() {
		defer close(out)
		p.run(ctx, withFilters, out)
	}()
	return out
}

func (p *Pipeline) run(ctx context.Context, withFilters bool, out chan<- models.StreamEvent) {
	start := time.Now()
	emit := func(ev models.StreamEvent) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	progress := func(stage, message string, current, total int) bool {
		return emit(models.StreamEvent{
			Type: models.EventProgress,
			Progress: &models.ProgressEvent{
				Stage:   stage,
				Message: message,
				Current: current,
				Total:   total,
			},
		})
	}

	symbols, err := p.discoverer.Run(ctx, func(page, added int) {
		progress(models.StageScreener,
			fmt.Sprintf("Fetched listing page %d (%d new symbols)", page, added), page, 0)
	})
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordError("discovery")
		}
		if p.l != nil {
			p.l.Error("symbol discovery failed", applogger.Error(err))
		}
		emit(models.StreamEvent{
			Type: models.EventError,
			Err:  "symbol discovery failed, please retry the scan",
		})
		return
	}
	if p.metrics != nil {
		p.metrics.RecordDiscoveredSymbols(len(symbols))
	}
	if !progress(models.StageScreener,
		fmt.Sprintf("Discovered %d symbols", len(symbols)), len(symbols), len(symbols)) {
		return
	}

	result := &models.ScanResult{
		Symbols:       symbols,
		SymbolBatches: models.BatchJoin(symbols, p.cfg.BatchSize),
		Total:         len(symbols),
	}

	if withFilters {
		p.runFilterStage(ctx, symbols, result, progress)
	}

	if !progress(models.StageComplete, "Scan complete", result.Total, result.Total) {
		return
	}
	if p.metrics != nil {
		p.metrics.RecordScanDuration(time.Since(start).Seconds())
	}
	emit(models.StreamEvent{Type: models.EventResult, Result: result})
}

func (p *Pipeline) runFilterStage(ctx context.Context, symbols []string, result *models.ScanResult, progress func(string, string, int, int) bool) {
	total := len(symbols)
	for i, symbol := range symbols {
		if ctx.Err() != nil {
			return
		}

		technical, series, err := p.filter.Evaluate(ctx, symbol)
		switch {
		case err != nil:
			if p.metrics != nil {
				p.metrics.RecordSymbolOutcome("skipped")
			}
			if p.l != nil {
				p.l.Warn("symbol skipped", applogger.String("symbol", symbol), applogger.Error(err))
			}
			progress(models.StageFilter, fmt.Sprintf("Skipped %s: no usable price data", symbol), i+1, total)

		case !technical.Passes:
			if p.metrics != nil {
				p.metrics.RecordSymbolOutcome("failed")
			}
			progress(models.StageFilter, fmt.Sprintf("%s below filter thresholds", symbol), i+1, total)

		default:
			if p.metrics != nil {
				p.metrics.RecordSymbolOutcome("passed")
			}
			structural := p.structural.Detect(series)
			info := p.enricher.Enrich(ctx, symbol, technical.DailyChangePct, structural)
			if p.metrics != nil {
				for _, s := range info.WarningSignals {
					p.metrics.RecordSignal(s.Category)
				}
			}
			result.Filtered = append(result.Filtered, info)
			progress(models.StageFilter,
				fmt.Sprintf("%s passed (%d warnings)", symbol, len(info.WarningSignals)), i+1, total)
		}

		if p.cfg.SymbolDelay > 0 && i < total-1 {
			p.sleep(p.cfg.SymbolDelay)
		}
	}

	var matched []string
	for _, info := range result.Filtered {
		if info.Industry == nil || !sector.Allowed(*info.Industry) {
			continue
		}
		result.SectorMatches = append(result.SectorMatches, info)
		matched = append(matched, info.Symbol)
	}
	result.SectorBatches = models.BatchJoin(matched, p.cfg.BatchSize)
}
