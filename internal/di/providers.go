package di

import (
	"fmt"

	"github.com/roteirods-byte/autotrader/internal/domain/repository"
	"github.com/roteirods-byte/autotrader/internal/handler/api"
	internalrepo "github.com/roteirods-byte/autotrader/internal/repository"
	"github.com/roteirods-byte/autotrader/internal/service/feed"
	"github.com/roteirods-byte/autotrader/internal/usecase"
	"github.com/roteirods-byte/autotrader/pkg/config"
	xhttp "github.com/roteirods-byte/autotrader/pkg/http"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
	"github.com/roteirods-byte/autotrader/pkg/metrics"
	"github.com/roteirods-byte/autotrader/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStateStore creates the configured persistence backend.
func ProvideStateStore(cfg *config.Config) (repository.StateStore, error) {
	if cfg.State.Backend == "redis" {
		store, err := internalrepo.NewRedisStateStore(internalrepo.RedisStateConfig{
			Addr:     cfg.State.Redis.Addr,
			Password: cfg.State.Redis.Password,
			DB:       cfg.State.Redis.DB,
			Prefix:   cfg.State.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("redis state store: %w", err)
		}
		return store, nil
	}

	store, err := internalrepo.NewFileStateStore(cfg.State.Dir)
	if err != nil {
		return nil, fmt.Errorf("file state store: %w", err)
	}
	return store, nil
}

// ProvideEntradaFile creates the signal file reader.
func ProvideEntradaFile(cfg *config.Config, l *applogger.Logger) repository.SnapshotReader {
	return internalrepo.NewEntradaFile(cfg.Entrada.Path, l)
}

// ProvideManualOps creates the manual operations file.
func ProvideManualOps(cfg *config.Config) *internalrepo.ManualOpsFile {
	path := cfg.SaidaManual.Path
	if path == "" {
		path = "data/saida_manual.json"
	}
	return internalrepo.NewManualOpsFile(path)
}

// ProvideFeedClient creates the signal feed poller. With no explicit feed
// URL the client polls this service's own entrada endpoint, which matches
// the single-host deployment.
func ProvideFeedClient(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *feed.Client {
	url := cfg.Feed.URL
	if url == "" {
		url = fmt.Sprintf("http://127.0.0.1:%d/api/entrada", cfg.Server.Port)
	}
	return feed.New(url, cfg.Feed.Interval, l, m)
}

// ProvideSnapshotProvider exposes the feed client behind its domain port.
func ProvideSnapshotProvider(c *feed.Client) repository.SnapshotProvider {
	return c
}

// ProvideCoinSet creates the coin set manager.
func ProvideCoinSet(store repository.StateStore, l *applogger.Logger, m repository.Metrics) *usecase.CoinSet {
	return usecase.NewCoinSet(store, l, m)
}

// ProvideLedger creates the position ledger.
func ProvideLedger(
	store repository.StateStore,
	snap repository.SnapshotProvider,
	coins *usecase.CoinSet,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.Ledger {
	return usecase.NewLedger(store, snap, coins, l, m)
}

// ProvideMailConfig creates the mail configuration store.
func ProvideMailConfig(store repository.StateStore, l *applogger.Logger, m repository.Metrics) *usecase.MailConfig {
	return usecase.NewMailConfig(store, l, m)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	entrada repository.SnapshotReader,
	snap repository.SnapshotProvider,
	ledger *usecase.Ledger,
	coins *usecase.CoinSet,
	mail *usecase.MailConfig,
	manualOps *internalrepo.ManualOpsFile,
) xhttp.Handler {
	return api.NewAutotraderEchoHandler(l, entrada, snap, ledger, coins, mail, manualOps, cfg.Static.Dir)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	feedClient *feed.Client,
	coins *usecase.CoinSet,
	ledger *usecase.Ledger,
	handler xhttp.Handler,
	store repository.StateStore,
) *server.App {
	return server.New(cfg, l, feedClient, coins, ledger, handler, store)
}
