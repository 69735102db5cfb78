package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
)

func newTestLedger(store *memStore, feed *fakeFeed) *Ledger {
	cs := NewCoinSet(store, nil, nil)
	l := NewLedger(store, feed, cs, nil, nil)
	l.now = func() time.Time { return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC) }
	return l
}

func TestGain(t *testing.T) {
	assert.InDelta(t, 10.0, models.Gain(models.SideLong, 100, 110), 1e-9)
	assert.InDelta(t, -10.0, models.Gain(models.SideShort, 100, 110), 1e-9)
	assert.InDelta(t, 10.0, models.Gain(models.SideShort, 100, 90), 1e-9)
	assert.Zero(t, models.Gain(models.SideLong, 0, 110))
	assert.Zero(t, models.Gain(models.SideLong, 100, -5))
}

func TestLedgerAdd(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	feed := &fakeFeed{snap: &models.SignalSnapshot{
		Swing: []models.SignalRecord{{
			Par: "BTC", Direction: "LONG", Price: 50500,
			Target1: 52000, Target2: 54000, Target3: 56000,
		}},
	}}
	l := newTestLedger(store, feed)
	l.Load(ctx)

	op, err := l.Add(ctx, &models.AddPositionRequest{
		Par:   "BTC",
		Entry: "100,50",
		Lev:   "3",
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.50, op.Entry, 1e-9)
	assert.Equal(t, models.SideLong, op.Side)
	assert.Equal(t, models.ModeSwing, op.Mode)
	assert.Equal(t, models.StatusOpen, op.Status)
	assert.Equal(t, 3, op.Leverage)
	assert.Equal(t, "2025-03-10", op.Date)
	assert.Equal(t, "14:30", op.Time)
	assert.InDelta(t, 52000, op.Target1, 1e-9)
	assert.InDelta(t, models.Gain(models.SideLong, 100.50, 52000), op.Gain1Pct, 1e-9)

	// Saved document is a JSON array the next activation can load.
	b, ok, err := store.Get(ctx, domrepo.KeyExitOps)
	require.NoError(t, err)
	require.True(t, ok)
	var raws []json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raws))
	assert.Len(t, raws, 1)
}

func TestLedgerAddValidation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(newMemStore(), &fakeFeed{})
	l.Load(ctx)

	cases := []models.AddPositionRequest{
		{Par: "", Entry: "100", Lev: "1"},
		{Par: "NOPE", Entry: "100", Lev: "1"},
		{Par: "BTC", Entry: "abc", Lev: "1"},
		{Par: "BTC", Entry: "-5", Lev: "1"},
		{Par: "BTC", Entry: "100", Lev: "0"},
	}
	for _, req := range cases {
		_, err := l.Add(ctx, &req)
		require.Error(t, err, "request %+v", req)
	}
	// Nothing was appended.
	assert.Empty(t, l.Positions(ctx))
}

func TestLedgerAddNoSignalUsesEntryAsTarget(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(newMemStore(), &fakeFeed{})
	l.Load(ctx)

	op, err := l.Add(ctx, &models.AddPositionRequest{Par: "BTC", Entry: "200", Lev: "1"})
	require.NoError(t, err)
	assert.InDelta(t, 200, op.Target1, 1e-9)
	assert.Zero(t, op.Gain1Pct)
}

func TestLedgerRemove(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := newTestLedger(store, &fakeFeed{})
	l.Load(ctx)

	op, err := l.Add(ctx, &models.AddPositionRequest{Par: "BTC", Entry: "100", Lev: "1"})
	require.NoError(t, err)

	require.NoError(t, l.Remove(ctx, op.ID))
	assert.Empty(t, l.Positions(ctx))

	// Removing an absent id is a no-op.
	require.NoError(t, l.Remove(ctx, 42))
}

func TestLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	l := newTestLedger(store, &fakeFeed{})
	l.Load(ctx)
	for _, par := range []string{"ETH", "BTC", "SOL"} {
		_, err := l.Add(ctx, &models.AddPositionRequest{Par: par, Entry: "100", Lev: "2"})
		require.NoError(t, err)
	}

	// Fresh instance over the same store sees all three, sorted by pair.
	l2 := newTestLedger(store, &fakeFeed{})
	views := l2.Positions(ctx)
	require.Len(t, views, 3)
	assert.Equal(t, "BTC", views[0].Par)
	assert.Equal(t, "ETH", views[1].Par)
	assert.Equal(t, "SOL", views[2].Par)
}

func TestLedgerIDsUnique(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(newMemStore(), &fakeFeed{})
	l.Load(ctx)

	// Frozen clock forces the collision bump on every subsequent insert.
	a, err := l.Add(ctx, &models.AddPositionRequest{Par: "BTC", Entry: "100", Lev: "1"})
	require.NoError(t, err)
	b, err := l.Add(ctx, &models.AddPositionRequest{Par: "ETH", Entry: "100", Lev: "1"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestLedgerCurrentPrice(t *testing.T) {
	feed := &fakeFeed{snap: &models.SignalSnapshot{
		Swing: []models.SignalRecord{{Par: "BTC", Price: 51000}},
	}}
	l := newTestLedger(newMemStore(), feed)

	withSignal := &models.Position{Par: "BTC", Mode: models.ModeSwing, Entry: 50000}
	assert.InDelta(t, 51000, l.CurrentPriceFor(withSignal), 1e-9)

	noSignal := &models.Position{Par: "XRP", Mode: models.ModeSwing, Entry: 0.5}
	assert.InDelta(t, 0.5, l.CurrentPriceFor(noSignal), 1e-9)
}

func TestLedgerSaveFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	l := newTestLedger(store, &fakeFeed{})
	l.Load(ctx)

	store.failSet = true
	op, err := l.Add(ctx, &models.AddPositionRequest{Par: "BTC", Entry: "100", Lev: "1"})
	require.ErrorIs(t, err, ErrSaveFailed)
	require.NotNil(t, op)

	// The session keeps working on the in-memory ledger.
	views := l.Positions(ctx)
	require.Len(t, views, 1)
	assert.Equal(t, "BTC", views[0].Par)
}

func TestLedgerCorruptEntriesDropped(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Set(ctx, domrepo.KeyExitOps,
		[]byte(`[{"id":1,"par":"BTC","entrada":100},{"id":"bad"},{"id":2,"par":"ETH","entrada":200}]`)))

	l := newTestLedger(store, &fakeFeed{})
	views := l.Positions(ctx)
	require.Len(t, views, 2)
	assert.Equal(t, "BTC", views[0].Par)
	assert.Equal(t, "ETH", views[1].Par)
}
