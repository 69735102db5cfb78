package repository

import (
	"context"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
)

// StateStore is the key-value persistence port. Each logical key holds one
// JSON-serialized document. Absence is not an error: Get reports it with
// ok=false.
type StateStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// State store keys, partitioned by logical purpose. The names carry over from
// the dashboard's browser storage so exported documents stay compatible.
const (
	KeyCoins      = "autotrader_coins_v1"
	KeyExitOps    = "autotrader_exit_ops_v2"
	KeyMailConfig = "autotrader_email_config_v1"
)

// SnapshotReader reads the worker-produced signal file from disk.
type SnapshotReader interface {
	Read() (*models.SignalSnapshot, error)
	Exists() bool
	Path() string
}

// SnapshotProvider exposes the freshest obtainable snapshot and its health.
// Implemented by the feed client; consumed by the position ledger.
type SnapshotProvider interface {
	Snapshot() *models.SignalSnapshot
	Status() models.FeedStatus
}

// Metrics is the domain metrics recorder.
type Metrics interface {
	FeedRefresh(result string)
	SnapshotSize(horizon string, n int)
	LedgerSize(n int)
	CoinsTracked(n int)
	StoreError(op string)
}
