// Package feed maintains the freshest obtainable signal snapshot by polling
// the signals endpoint on a fixed interval.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
	xhttp "github.com/roteirods-byte/autotrader/pkg/http"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
	"github.com/roteirods-byte/autotrader/pkg/util"
)

const fetchErrMsg = "erro ao carregar dados de entrada"

// Client polls the signals endpoint. Refreshes are safe to overlap: each
// carries a sequence number taken at issue time, and a response is discarded
// if a later request has already been applied, so a slow stale response never
// overwrites a newer snapshot.
type Client struct {
	url      string
	interval time.Duration
	httpc    *xhttp.Client
	logger   *applogger.Logger
	metrics  domrepo.Metrics

	mu         sync.RWMutex
	snapshot   *models.SignalSnapshot
	lastUpdate time.Time
	errMsg     string
	issued     uint64
	applied    uint64
}

func New(url string, interval time.Duration, l *applogger.Logger, m domrepo.Metrics) *Client {
	return &Client{
		url:      url,
		interval: interval,
		httpc:    xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
		logger:   l,
		metrics:  m,
		snapshot: models.EmptySnapshot(),
	}
}

// Start refreshes once immediately and then on every tick until ctx is
// canceled. It blocks; run it in a goroutine.
func (c *Client) Start(ctx context.Context) {
	c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

// Refresh fetches the snapshot once. Failures are terminal for this cycle
// only: the held snapshot stays untouched and the error flag is raised.
func (c *Client) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	snap, err := c.fetch(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("feed refresh failed", applogger.String("url", c.url), applogger.Error(err))
		}
		if c.metrics != nil {
			c.metrics.FeedRefresh("error")
		}
		c.mu.Lock()
		if seq >= c.applied {
			c.errMsg = fetchErrMsg
		}
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if seq < c.applied {
		// A later request already resolved; last-issued wins.
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.FeedRefresh("superseded")
		}
		return
	}
	c.applied = seq
	c.snapshot = snap
	c.lastUpdate = time.Now()
	c.errMsg = ""
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.FeedRefresh("success")
		c.metrics.SnapshotSize("swing", len(snap.Swing))
		c.metrics.SnapshotSize("posicional", len(snap.Positional))
	}
	if c.logger != nil {
		c.logger.Debug("feed refreshed",
			applogger.Int("swing", len(snap.Swing)),
			applogger.Int("posicional", len(snap.Positional)))
	}
}

func (c *Client) fetch(ctx context.Context) (*models.SignalSnapshot, error) {
	var body []byte
	err := c.httpc.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  http.MethodGet,
		URL:     c.url,
		Headers: map[string]string{"Cache-Control": "no-store"},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("fetch signals: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return models.EmptySnapshot(), nil
	}
	if trimmed[0] == '[' {
		if c.logger != nil {
			c.logger.Warn("feed body is a bare array, expected object with swing/posicional")
		}
		return models.EmptySnapshot(), nil
	}

	var snap models.SignalSnapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

// Snapshot returns the latest applied snapshot. Never nil.
func (c *Client) Snapshot() *models.SignalSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Status reports fetch health for display.
func (c *Client) Status() models.FeedStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := models.FeedStatus{Error: c.errMsg, Stale: c.errMsg != ""}
	if c.lastUpdate.IsZero() {
		st.LastUpdate = "--:--:--"
		st.Stale = true
	} else {
		st.LastUpdate = util.ClockStamp(c.lastUpdate)
	}
	return st
}
