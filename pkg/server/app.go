package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
	"github.com/roteirods-byte/autotrader/internal/service/feed"
	"github.com/roteirods-byte/autotrader/internal/usecase"
	"github.com/roteirods-byte/autotrader/pkg/config"
	xhttp "github.com/roteirods-byte/autotrader/pkg/http"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	feed       *feed.Client
	coins      *usecase.CoinSet
	ledger     *usecase.Ledger
	handler    xhttp.Handler
	store      domrepo.StateStore
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	feedClient *feed.Client,
	coins *usecase.CoinSet,
	ledger *usecase.Ledger,
	handler xhttp.Handler,
	store domrepo.StateStore,
) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		feed:    feedClient,
		coins:   coins,
		ledger:  ledger,
		handler: handler,
		store:   store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load persisted state before anything can save over it.
	a.coins.Load(ctx)
	a.ledger.Load(ctx)

	opts := []xhttp.ServerOption{
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(!a.cfg.Server.DisableCORS),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	// Poller goroutine; the context cancel below is its only stop signal.
	go a.feed.Start(ctx)
	a.logger.Info("feed poller started",
		applogger.String("url", a.cfg.Feed.URL),
		applogger.Duration("interval_ms", a.cfg.Feed.Interval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("state store close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
