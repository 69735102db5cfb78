//go:build wireinject
// +build wireinject

package di

import (
	"github.com/roteirods-byte/autotrader/pkg/config"
	"github.com/roteirods-byte/autotrader/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideStateStore,
		ProvideEntradaFile,
		ProvideManualOps,

		// Feed
		ProvideFeedClient,
		ProvideSnapshotProvider,

		// Use cases
		ProvideCoinSet,
		ProvideLedger,
		ProvideMailConfig,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
