// Package risk produces warning signals for a symbol: structural signals from
// price/volume geometry and textual signals from adverse news and regulatory
// coverage.
package risk

import "RiskRadar/internal/domain/models"

// Dedup removes duplicate signals, identified by (id, details, sourceUrl),
// preserving first-seen order.
func Dedup(signals []models.WarningSignal) []models.WarningSignal {
	type key struct {
		id      string
		details string
		url     string
	}
	seen := make(map[key]struct{}, len(signals))
	out := make([]models.WarningSignal, 0, len(signals))
	for _, s := range signals {
		k := key{id: s.ID, details: s.Details}
		if s.SourceURL != nil {
			k.url = *s.SourceURL
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Reasons returns the ordered distinct reason labels of signals.
func Reasons(signals []models.WarningSignal) []string {
	seen := make(map[string]struct{}, len(signals))
	var out []string
	for _, s := range signals {
		if _, dup := seen[s.Reason]; dup {
			continue
		}
		seen[s.Reason] = struct{}{}
		out = append(out, s.Reason)
	}
	return out
}
