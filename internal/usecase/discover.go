// Package usecase orchestrates the scan: symbol discovery, the technical
// filter, risk enrichment, and the streaming pipeline tying them together.
package usecase

import (
	"context"
	"time"

	"RiskRadar/internal/domain/repository"
	applogger "RiskRadar/pkg/logger"
)

// DiscovererConfig controls pagination and rate-limit retry behaviour.
type DiscovererConfig struct {
	MaxPages   int
	PageDelay  time.Duration
	RetryMax   int
	RetryDelay time.Duration
}

// Discoverer walks the paginated listing and accumulates the symbol universe.
type Discoverer struct {
	src     repository.ListingSource
	cfg     DiscovererConfig
	metrics repository.Metrics
	l       *applogger.Logger
	sleep   func(time.Duration)
}

// NewDiscoverer creates a discoverer over the listing source.
func NewDiscoverer(src repository.ListingSource, cfg DiscovererConfig, metrics repository.Metrics, l *applogger.Logger) *Discoverer {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	return &Discoverer{src: src, cfg: cfg, metrics: metrics, l: l, sleep: time.Sleep}
}

// Run fetches listing pages in order until the listing stops advertising a
// next page, a page contributes no new symbols, or MaxPages is reached.
// onPage, when non-nil, is invoked after each page with the page number and
// the count of newly discovered symbols. Any non-rate-limit fetch failure
// aborts the whole discovery.
func (d *Discoverer) Run(ctx context.Context, onPage func(page, added int)) ([]string, error) {
	seen := make(map[string]struct{})
	var ordered []string

	for page := 1; page <= d.cfg.MaxPages; page++ {
		symbols, hasNext, err := d.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if d.metrics != nil {
			d.metrics.RecordPageFetched()
		}

		added := 0
		for _, s := range symbols {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			ordered = append(ordered, s)
			added++
		}
		if d.l != nil {
			d.l.Debug("listing page fetched",
				applogger.Int("page", page),
				applogger.Int("added", added),
				applogger.Bool("hasNext", hasNext))
		}
		if onPage != nil {
			onPage(page, added)
		}

		// A page that adds nothing means the listing has started repeating
		// itself; stop rather than loop to MaxPages.
		if !hasNext || added == 0 {
			break
		}
		if d.cfg.PageDelay > 0 && page < d.cfg.MaxPages {
			d.sleep(d.cfg.PageDelay)
		}
	}
	return ordered, nil
}

// fetchPage fetches one page, retrying rate-limit responses with linearly
// increasing backoff (RetryDelay x attempt) up to RetryMax retries.
func (d *Discoverer) fetchPage(ctx context.Context, page int) ([]string, bool, error) {
	for attempt := 0; ; attempt++ {
		symbols, hasNext, err := d.src.FetchPage(ctx, page)
		if err == nil {
			return symbols, hasNext, nil
		}
		if !repository.IsRateLimited(err) || attempt >= d.cfg.RetryMax {
			return nil, false, err
		}
		wait := d.cfg.RetryDelay * time.Duration(attempt+1)
		if d.l != nil {
			d.l.Warn("listing page rate limited, backing off",
				applogger.Int("page", page),
				applogger.Int("attempt", attempt+1),
				applogger.Duration("wait", wait))
		}
		d.sleep(wait)
	}
}
