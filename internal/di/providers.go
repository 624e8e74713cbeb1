package di

import (
	"fmt"
	"time"

	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/handler/api"
	"RiskRadar/internal/service/chart"
	"RiskRadar/internal/service/listing"
	"RiskRadar/internal/service/news"
	"RiskRadar/internal/service/profile"
	"RiskRadar/internal/service/ratelimit"
	"RiskRadar/internal/service/search"
	"RiskRadar/internal/service/upstream"
	"RiskRadar/internal/services/risk"
	"RiskRadar/internal/usecase"
	"RiskRadar/pkg/cache"
	"RiskRadar/pkg/config"
	xhttp "RiskRadar/pkg/http"
	applogger "RiskRadar/pkg/logger"
	"RiskRadar/pkg/metrics"
	"RiskRadar/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	l, err := applogger.New(lc)
	if err != nil {
		return nil, err
	}

	// Scrape failures repeat heavily during a scan; aggregate error logs into
	// periodic rollups instead of flooding the stream.
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          "error-rollup",
		Publisher:      applogger.StdoutPublisher{},
	})
	return l, nil
}

// ProvideCacheStore builds the upstream response cache: in-memory only, or
// layered over Redis when enabled.
func ProvideCacheStore(cfg *config.Config) (cache.Store, error) {
	memOpts := []cache.MemoryOption{cache.WithMemoryMaxSize(cfg.Cache.MaxEntries)}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(memOpts...), nil
	}

	redisOpts := []cache.RedisOption{
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Prefix != "" {
		redisOpts = append(redisOpts, cache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	rc, err := cache.NewRedisCache(redisOpts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc, memOpts...), nil
}

// ProvideFetcher creates the shared upstream fetcher. The chart timeout is the
// tightest budget in play, so it governs all scrape requests.
func ProvideFetcher(cfg *config.Config, store cache.Store) *upstream.Fetcher {
	return upstream.NewFetcher(cfg.Chart.Timeout, upstream.WithCache(store, cfg.Cache.TTL))
}

// ProvideListingSource creates the listing scrape client.
func ProvideListingSource(f *upstream.Fetcher, cfg *config.Config) repository.ListingSource {
	return listing.New(f, cfg.Listing.BaseURL)
}

// ProvideChartSource creates the chart API client.
func ProvideChartSource(f *upstream.Fetcher, cfg *config.Config) repository.ChartSource {
	return chart.New(f, cfg.Chart.BaseURL, cfg.Chart.Range, cfg.Chart.Interval, cfg.Chart.Suffix)
}

// ProvideProfileSource creates the company profile scrape client.
func ProvideProfileSource(f *upstream.Fetcher, cfg *config.Config) repository.ProfileSource {
	return profile.New(f, cfg.Profile.BaseURL)
}

// ProvideNewsSource creates the news feed client.
func ProvideNewsSource(f *upstream.Fetcher, cfg *config.Config) repository.NewsSource {
	return news.New(f, cfg.News.FeedURL)
}

// ProvideSearchSource creates the web search client.
func ProvideSearchSource(f *upstream.Fetcher, cfg *config.Config) repository.SearchSource {
	return search.New(f, cfg.Regulatory.SearchURL)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStructuralDetector creates the price/volume rule detector.
func ProvideStructuralDetector(cfg *config.Config) *risk.StructuralDetector {
	st := cfg.Screener.Structural
	return risk.NewStructuralDetector(risk.StructuralConfig{
		YearCloses:        st.YearCloses,
		YearReturns:       st.YearReturns,
		ExtremeMovePct:    st.ExtremeMovePct,
		ExtremeMoveCount:  st.ExtremeMoveCount,
		BurstVolumeRatio:  st.BurstVolumeRatio,
		BurstMovePct:      st.BurstMovePct,
		BurstCount:        st.BurstCount,
		PumpWindow:        st.PumpWindow,
		PumpRisePct:       st.PumpRisePct,
		DumpWindow:        st.DumpWindow,
		DumpDropPct:       st.DumpDropPct,
		SpikePct:          st.SpikePct,
		ReversalWindow:    st.ReversalWindow,
		ReversalPct:       st.ReversalPct,
		VolRecentWindow:   st.VolRecentWindow,
		VolBaselineWindow: st.VolBaselineWindow,
		VolMinReturns:     st.VolMinReturns,
		VolShiftRatio:     st.VolShiftRatio,
		VolMinRecentPct:   st.VolMinRecentPct,
	})
}

// ProvideTextualDetector creates the news/regulatory detector.
func ProvideTextualDetector(
	newsSrc repository.NewsSource,
	searchSrc repository.SearchSource,
	cfg *config.Config,
	l *applogger.Logger,
) *risk.TextualDetector {
	return risk.NewTextualDetector(newsSrc, searchSrc, risk.TextualConfig{
		Keywords:        cfg.News.Keywords,
		RecencyDays:     cfg.News.RecencyDays,
		RegulatorDomain: cfg.Regulatory.Domain,
		RegulatorLabel:  cfg.Regulatory.Label,
		OrderPhrase:     cfg.Regulatory.Phrase,
	}, l)
}

// ProvideDiscoverer creates the symbol discovery use case.
func ProvideDiscoverer(src repository.ListingSource, cfg *config.Config, m repository.Metrics, l *applogger.Logger) *usecase.Discoverer {
	return usecase.NewDiscoverer(src, usecase.DiscovererConfig{
		MaxPages:   cfg.Listing.MaxPages,
		PageDelay:  cfg.Listing.PageDelay,
		RetryMax:   cfg.Listing.RetryMax,
		RetryDelay: cfg.Listing.RetryDelay,
	}, m, l)
}

// ProvideTechnicalFilter creates the moving-average filter use case.
func ProvideTechnicalFilter(charts repository.ChartSource, cfg *config.Config) *usecase.TechnicalFilter {
	return usecase.NewTechnicalFilter(charts, cfg.Screener.ATHThreshold,
		usecase.WithFilterWindows(cfg.Screener.SMAWindow, cfg.Screener.MinWindowSamples))
}

// ProvideEnricher creates the per-symbol enrichment use case.
func ProvideEnricher(profiles repository.ProfileSource, textual *risk.TextualDetector, l *applogger.Logger) *usecase.Enricher {
	return usecase.NewEnricher(profiles, textual, l)
}

// ProvidePipeline wires the scan pipeline.
func ProvidePipeline(
	discoverer *usecase.Discoverer,
	filter *usecase.TechnicalFilter,
	structural *risk.StructuralDetector,
	enricher *usecase.Enricher,
	cfg *config.Config,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Pipeline {
	return usecase.NewPipeline(discoverer, filter, structural, enricher, usecase.PipelineConfig{
		BatchSize:   cfg.Screener.BatchSize,
		SymbolDelay: cfg.Chart.SymbolDelay,
	}, m, l)
}

// ProvideLimiter creates the inbound rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideScanHandler creates the HTTP handler for the scan endpoints.
func ProvideScanHandler(pipeline *usecase.Pipeline, limiter *ratelimit.Limiter, l *applogger.Logger) xhttp.Handler {
	return api.NewScanHandler(pipeline, limiter, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	store cache.Store,
	limiter *ratelimit.Limiter,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, store, limiter, l)
}
