package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
	"swing": [
		{"par": "BTC", "sinal": "LONG", "preco": 50000, "alvo": 52000, "ganho_pct": 4.0, "assert_pct": 80, "modo": "SWING", "data": "2025-01-02", "hora": "10:00"}
	],
	"posicional": [
		{"par": "ETH", "sinal": "SHORT", "preco": 3000, "alvo": 2800, "ganho_pct": 6.6, "assert_pct": 75, "modo": "POSICIONAL", "data": "2025-01-02", "hora": "10:00"}
	]
}`

func TestRefreshSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)
	c.Refresh(context.Background())

	snap := c.Snapshot()
	require.Len(t, snap.Swing, 1)
	require.Len(t, snap.Positional, 1)
	assert.Equal(t, "BTC", snap.Swing[0].Par)

	st := c.Status()
	assert.Empty(t, st.Error)
	assert.False(t, st.Stale)
	assert.NotEqual(t, "--:--:--", st.LastUpdate)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)
	c.Refresh(context.Background())
	require.Len(t, c.Snapshot().Swing, 1)

	fail.Store(true)
	c.Refresh(context.Background())

	// Held snapshot survives; only the error flag changes.
	assert.Len(t, c.Snapshot().Swing, 1)
	st := c.Status()
	assert.Equal(t, "erro ao carregar dados de entrada", st.Error)
	assert.True(t, st.Stale)

	// Recovery clears the flag and replaces the snapshot wholesale.
	fail.Store(false)
	c.Refresh(context.Background())
	st = c.Status()
	assert.Empty(t, st.Error)
	assert.False(t, st.Stale)
}

func TestRefreshBeforeAnySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)
	c.Refresh(context.Background())

	snap := c.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Swing)
	assert.Empty(t, snap.Positional)

	st := c.Status()
	assert.Equal(t, "--:--:--", st.LastUpdate)
	assert.True(t, st.Stale)
}

func TestRefreshMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"swing": not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)
	c.Refresh(context.Background())

	assert.Empty(t, c.Snapshot().Swing)
	assert.NotEmpty(t, c.Status().Error)
}

func TestRefreshBareArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"par": "BTC"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)
	c.Refresh(context.Background())

	// Tolerated as an empty snapshot, not an error.
	snap := c.Snapshot()
	assert.Empty(t, snap.Swing)
	assert.Empty(t, c.Status().Error)
}

func TestRefreshSlowStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			w.Write([]byte(`{"swing":[{"par":"STALE","sinal":"LONG","preco":1}],"posicional":[]}`))
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return calls.Load() >= 1 },
		time.Second, time.Millisecond, "first request never arrived")

	// A later refresh completes while the first is still in flight.
	c.Refresh(context.Background())
	require.Len(t, c.Snapshot().Swing, 1)
	require.Equal(t, "BTC", c.Snapshot().Swing[0].Par)

	close(release)
	<-done

	// The slow response resolved after a newer one was applied, so it is
	// discarded instead of rolling the snapshot back.
	assert.Equal(t, "BTC", c.Snapshot().Swing[0].Par)
	assert.Empty(t, c.Status().Error)
}

func TestRefreshStaleFailureDoesNotFlagError(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return calls.Load() >= 1 },
		time.Second, time.Millisecond, "first request never arrived")

	c.Refresh(context.Background())
	require.Len(t, c.Snapshot().Swing, 1)

	close(release)
	<-done

	// A failure observed after a newer success does not mark the feed stale.
	st := c.Status()
	assert.Empty(t, st.Error)
	assert.False(t, st.Stale)
	assert.Len(t, c.Snapshot().Swing, 1)
}

func TestRefreshEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  "))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil, nil)
	c.Refresh(context.Background())

	assert.Empty(t, c.Snapshot().Swing)
	assert.Empty(t, c.Status().Error)
}
