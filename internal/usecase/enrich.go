package usecase

import (
	"context"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/services/risk"
	applogger "RiskRadar/pkg/logger"
	"RiskRadar/pkg/sector"
)

// Enricher assembles the per-symbol record for the final aggregate: profile
// fields, coarse category, and the merged set of warning signals.
type Enricher struct {
	profiles repository.ProfileSource
	textual  *risk.TextualDetector
	l        *applogger.Logger
}

// NewEnricher creates an enricher over the profile source and the textual
// detector.
func NewEnricher(profiles repository.ProfileSource, textual *risk.TextualDetector, l *applogger.Logger) *Enricher {
	return &Enricher{profiles: profiles, textual: textual, l: l}
}

// Enrich builds the SectorInfo for a symbol that passed the technical filter.
// A failed profile scrape degrades to nil fields; the textual checks then run
// on the symbol alone. structural carries the already-computed price/volume
// signals.
func (e *Enricher) Enrich(ctx context.Context, symbol string, dailyChangePct *float64, structural []models.WarningSignal) models.SectorInfo {
	var name, sectorLabel, industryLabel string
	if profile, err := e.profiles.CompanyProfile(ctx, symbol); err != nil {
		if e.l != nil {
			e.l.Warn("profile scrape failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	} else {
		name = profile.Name
		sectorLabel = profile.Sector
		industryLabel = profile.Industry
	}

	signals := append(append([]models.WarningSignal{}, structural...), e.textual.Detect(ctx, symbol, name)...)
	signals = risk.Dedup(signals)

	info := models.SectorInfo{
		Symbol:         symbol,
		DailyChangePct: dailyChangePct,
		HasRiskWarning: len(signals) > 0,
		WarningReasons: risk.Reasons(signals),
		WarningSignals: signals,
	}
	if name != "" {
		info.Name = &name
	}
	if sectorLabel != "" {
		info.Sector = &sectorLabel
	}
	if industryLabel != "" {
		info.Industry = &industryLabel
	}
	if category, ok := sector.Category(industryLabel, sectorLabel); ok {
		info.Category = &category
	}
	return info
}
