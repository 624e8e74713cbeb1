package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RiskRadar/internal/service/ratelimit"
	"RiskRadar/pkg/cache"
	"RiskRadar/pkg/config"
	xhttp "RiskRadar/pkg/http"
	applogger "RiskRadar/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	store      cache.Store
	limiter    *ratelimit.Limiter
	l          *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	store cache.Store,
	limiter *ratelimit.Limiter,
	l *applogger.Logger,
) *App {
	return &App{
		cfg:     cfg,
		handler: handler,
		store:   store,
		limiter: limiter,
		l:       l,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	go a.pruneLimiter(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// pruneLimiter periodically drops idle rate-limit buckets.
func (a *App) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.limiter.Prune(time.Hour)
		case <-ctx.Done():
			return
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
