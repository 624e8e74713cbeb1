package models

// ScanRequest is the inbound trigger for a screening run. Filters controls
// whether the technical filter and enrichment stages run after discovery;
// absent means true.
type ScanRequest struct {
	Filters *bool `query:"filters" json:"filters"`
}

// WithFilters resolves the optional flag, defaulting to running all stages.
func (r *ScanRequest) WithFilters() bool {
	return r.Filters == nil || *r.Filters
}
