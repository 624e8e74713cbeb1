//go:build wireinject
// +build wireinject

package di

import (
	"RiskRadar/pkg/config"
	"RiskRadar/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideCacheStore,
		ProvideMetrics,
		ProvideLimiter,

		// Upstream fetch path and scrape sources
		ProvideFetcher,
		ProvideListingSource,
		ProvideChartSource,
		ProvideProfileSource,
		ProvideNewsSource,
		ProvideSearchSource,

		// Risk detectors
		ProvideStructuralDetector,
		ProvideTextualDetector,

		// Use cases
		ProvideDiscoverer,
		ProvideTechnicalFilter,
		ProvideEnricher,
		ProvidePipeline,

		// HTTP surface and application server
		ProvideScanHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
