package risk

import (
	"fmt"
	"math"
	"sort"

	"RiskRadar/internal/domain/models"
	"RiskRadar/pkg/util"
)

// Default trailing-year analysis windows in trading sessions.
const (
	defaultYearCloses  = 260
	defaultYearReturns = 252
)

// Structural signal IDs.
const (
	SignalExtremeMoves    = "structure-extreme-moves"
	SignalVolumeBurst     = "structure-volume-burst"
	SignalPumpDump        = "structure-pump-dump"
	SignalSpikeReversal   = "structure-spike-reversal"
	SignalVolatilityShift = "structure-volatility-shift"
)

// StructuralConfig holds the thresholds and window lengths of the five
// structural rules. All values are injected from configuration.
type StructuralConfig struct {
	YearCloses  int
	YearReturns int

	ExtremeMovePct   float64
	ExtremeMoveCount int

	BurstVolumeRatio float64
	BurstMovePct     float64
	BurstCount       int

	PumpWindow  int
	PumpRisePct float64
	DumpWindow  int
	DumpDropPct float64

	SpikePct       float64
	ReversalWindow int
	ReversalPct    float64

	VolRecentWindow   int
	VolBaselineWindow int
	VolMinReturns     int
	VolShiftRatio     float64
	VolMinRecentPct   float64
}

// StructuralDetector runs the five price/volume geometry rules over the
// trailing-year window of a symbol's series.
type StructuralDetector struct {
	cfg StructuralConfig
}

// NewStructuralDetector creates a detector with the given thresholds. Zero
// window lengths fall back to the trailing-year defaults.
func NewStructuralDetector(cfg StructuralConfig) *StructuralDetector {
	if cfg.YearCloses <= 0 {
		cfg.YearCloses = defaultYearCloses
	}
	if cfg.YearReturns <= 0 {
		cfg.YearReturns = defaultYearReturns
	}
	return &StructuralDetector{cfg: cfg}
}

// Detect returns zero or more structural warning signals for series. Each
// rule contributes at most one signal.
func (d *StructuralDetector) Detect(series *models.PriceSeries) []models.WarningSignal {
	points := series.Tail(d.cfg.YearCloses)
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}

	// returns[i] is the percentage move into session i+1; zero when the
	// previous close is non-positive.
	returns := make([]float64, 0, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1]*100)
	}
	if len(returns) > d.cfg.YearReturns {
		returns = returns[len(returns)-d.cfg.YearReturns:]
	}

	var signals []models.WarningSignal
	if s := d.extremeMoves(returns); s != nil {
		signals = append(signals, *s)
	}
	if s := d.volumeBurst(points, returns); s != nil {
		signals = append(signals, *s)
	}
	if s := d.pumpDump(closes); s != nil {
		signals = append(signals, *s)
	}
	if s := d.spikeReversal(closes); s != nil {
		signals = append(signals, *s)
	}
	if s := d.volatilityShift(returns); s != nil {
		signals = append(signals, *s)
	}
	return signals
}

func (d *StructuralDetector) extremeMoves(returns []float64) *models.WarningSignal {
	count := 0
	for _, r := range returns {
		if math.Abs(r) >= d.cfg.ExtremeMovePct {
			count++
		}
	}
	if count < d.cfg.ExtremeMoveCount {
		return nil
	}
	return structureSignal(SignalExtremeMoves, "Extreme single-day moves",
		fmt.Sprintf("%d sessions moved ±%.1f%% or more in the trailing year", count, d.cfg.ExtremeMovePct))
}

func (d *StructuralDetector) volumeBurst(points []models.PricePoint, returns []float64) *models.WarningSignal {
	var volumes []float64
	for _, p := range points {
		if p.Volume != nil && *p.Volume > 0 {
			volumes = append(volumes, *p.Volume)
		}
	}
	if len(volumes) == 0 {
		return nil
	}
	med := median(volumes)
	if med <= 0 {
		return nil
	}

	// Session i (i >= 1) pairs the volume of points[i] with returns entry for
	// the move into it.
	offset := len(points) - 1 - len(returns)
	count := 0
	for i := 1; i < len(points); i++ {
		ri := i - 1 - offset
		if ri < 0 || ri >= len(returns) {
			continue
		}
		v := points[i].Volume
		if v == nil || *v < d.cfg.BurstVolumeRatio*med {
			continue
		}
		if math.Abs(returns[ri]) >= d.cfg.BurstMovePct {
			count++
		}
	}
	if count < d.cfg.BurstCount {
		return nil
	}
	return structureSignal(SignalVolumeBurst, "Abnormal volume bursts",
		fmt.Sprintf("%d sessions traded at least %.0fx the median volume (%s) on moves of %.1f%% or more",
			count, d.cfg.BurstVolumeRatio, util.CompactNumber(med), d.cfg.BurstMovePct))
}

func (d *StructuralDetector) pumpDump(closes []float64) *models.WarningSignal {
	w := d.cfg.PumpWindow
	for i := 0; i+w < len(closes); i++ {
		if closes[i] <= 0 {
			continue
		}
		pump := (closes[i+w] - closes[i]) / closes[i] * 100
		if pump < d.cfg.PumpRisePct {
			continue
		}

		start := i + w + 1
		end := start + d.cfg.DumpWindow
		if end > len(closes) {
			end = len(closes)
		}
		if start >= end {
			continue
		}
		peak, low := closes[start], closes[start]
		for _, c := range closes[start:end] {
			if c > peak {
				peak = c
			}
			if c < low {
				low = c
			}
		}
		if peak <= 0 {
			continue
		}
		dump := (peak - low) / peak * 100
		if dump >= d.cfg.DumpDropPct {
			return structureSignal(SignalPumpDump, "Pump-and-dump pattern",
				fmt.Sprintf("Rose %.1f%% over %d sessions, then fell %.1f%% from the peak within %d sessions",
					pump, w, dump, d.cfg.DumpWindow))
		}
	}
	return nil
}

func (d *StructuralDetector) spikeReversal(closes []float64) *models.WarningSignal {
	w := d.cfg.ReversalWindow
	count := 0
	for i := 1; i+w < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		spike := (closes[i] - closes[i-1]) / closes[i-1] * 100
		if spike < d.cfg.SpikePct {
			continue
		}
		reversal := (closes[i] - closes[i+w]) / closes[i] * 100
		if reversal >= d.cfg.ReversalPct {
			count++
		}
	}
	if count < 1 {
		return nil
	}
	return structureSignal(SignalSpikeReversal, "Spike and reversal",
		fmt.Sprintf("%d spikes of %.1f%%+ gave back %.1f%%+ within %d sessions",
			count, d.cfg.SpikePct, d.cfg.ReversalPct, w))
}

func (d *StructuralDetector) volatilityShift(returns []float64) *models.WarningSignal {
	if len(returns) < d.cfg.VolMinReturns {
		return nil
	}
	recent := returns[len(returns)-d.cfg.VolRecentWindow:]
	baseEnd := len(returns) - d.cfg.VolRecentWindow
	baseStart := baseEnd - d.cfg.VolBaselineWindow
	if baseStart < 0 {
		return nil
	}
	baseline := returns[baseStart:baseEnd]

	recentVol := popStdDev(recent)
	baselineVol := popStdDev(baseline)
	if baselineVol <= 0 {
		return nil
	}
	if recentVol < d.cfg.VolShiftRatio*baselineVol || recentVol < d.cfg.VolMinRecentPct {
		return nil
	}
	return structureSignal(SignalVolatilityShift, "Volatility regime shift",
		fmt.Sprintf("Recent %d-session volatility %.1f pts vs baseline %.1f pts (%.1fx)",
			d.cfg.VolRecentWindow, recentVol, baselineVol, recentVol/baselineVol))
}

func structureSignal(id, reason, details string) *models.WarningSignal {
	return &models.WarningSignal{
		ID:       id,
		Category: models.CategoryStructure,
		Reason:   reason,
		Details:  details,
	}
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func popStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}
