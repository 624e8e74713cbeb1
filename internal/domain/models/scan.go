package models

import (
	"strings"
	"time"
)

// Warning signal categories.
const (
	CategoryStructure  = "structure"
	CategoryNews       = "news"
	CategoryRegulatory = "regulatory"
)

// Progress stages emitted while a scan runs.
const (
	StageScreener = "screener"
	StageFilter   = "filter"
	StageComplete = "complete"
)

// PricePoint is one daily sample. Volume is nil when the upstream series has
// no volume entry for the session.
type PricePoint struct {
	Close  float64
	Volume *float64
}

// PriceSeries is an ordered daily close/volume series, oldest first. Only
// samples with a numeric close are retained.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Closes returns the ordered close prices.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Tail returns the trailing n points, or all points if fewer exist.
func (s *PriceSeries) Tail(n int) []PricePoint {
	if len(s.Points) <= n {
		return s.Points
	}
	return s.Points[len(s.Points)-n:]
}

// TechnicalMetrics is the outcome of the moving-average / all-time-high filter
// for a single symbol.
type TechnicalMetrics struct {
	Symbol         string   `json:"symbol"`
	CurrentPrice   float64  `json:"currentPrice"`
	SMA200         float64  `json:"sma200"`
	AllTimeHigh    float64  `json:"allTimeHigh"`
	Passes         bool     `json:"passes"`
	DailyChangePct *float64 `json:"dailyChangePct"`
}

// WarningSignal is one risk finding for a symbol. Identity for deduplication
// is (ID, Details, SourceURL).
type WarningSignal struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Reason      string  `json:"reason"`
	Details     string  `json:"details"`
	SourceURL   *string `json:"sourceUrl"`
	SourceLabel *string `json:"sourceLabel"`
}

// CompanyProfile holds the fields scraped from a company profile page. Empty
// strings mean the field could not be extracted.
type CompanyProfile struct {
	Name     string
	Sector   string
	Industry string
}

// NewsItem is one entry from the news feed. Published is the zero time when
// the feed date could not be parsed.
type NewsItem struct {
	Title       string
	Description string
	Link        string
	Published   time.Time
}

// SearchResult is one entry from the general web search surface.
type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// SectorInfo is the merged per-symbol record in the final aggregate. Scraped
// fields are nil when the profile fetch failed or the field was absent.
type SectorInfo struct {
	Symbol         string          `json:"symbol"`
	Sector         *string         `json:"sector"`
	Industry       *string         `json:"industry"`
	Category       *string         `json:"category"`
	Name           *string         `json:"name"`
	DailyChangePct *float64        `json:"dailyChangePct"`
	HasRiskWarning bool            `json:"hasRiskWarning"`
	WarningReasons []string        `json:"warningReasons"`
	WarningSignals []WarningSignal `json:"warningSignals"`
}

// ProgressEvent reports one unit of work while a scan runs. Transient; not
// part of the final aggregate.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// ScanResult is the terminal aggregate of a successful run.
type ScanResult struct {
	Symbols       []string     `json:"symbols"`
	SymbolBatches []string     `json:"symbolBatches"`
	Filtered      []SectorInfo `json:"filtered"`
	SectorMatches []SectorInfo `json:"sectorMatches"`
	SectorBatches []string     `json:"sectorBatches"`
	Total         int          `json:"total"`
}

// Stream event types.
const (
	EventProgress = "progress"
	EventResult   = "result"
	EventError    = "error"
)

// StreamEvent is one typed event on the scan stream. Exactly one of Progress,
// Result, or Err is set, matching Type.
type StreamEvent struct {
	Type     string         `json:"-"`
	Progress *ProgressEvent `json:"progress,omitempty"`
	Result   *ScanResult    `json:"result,omitempty"`
	Err      string         `json:"error,omitempty"`
}

// BatchJoin chunks items into comma-joined strings of at most size entries.
func BatchJoin(items []string, size int) []string {
	if size <= 0 || len(items) == 0 {
		if len(items) == 0 {
			return nil
		}
		return []string{strings.Join(items, ",")}
	}
	out := make([]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, strings.Join(items[start:end], ","))
	}
	return out
}
