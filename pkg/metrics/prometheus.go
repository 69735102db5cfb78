package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	feedRefreshes   *prometheus.CounterVec
	snapshotSignals *prometheus.GaugeVec
	ledgerPositions prometheus.Gauge
	coinsTracked    prometheus.Gauge
	storeErrors     *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		feedRefreshes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autotrader_feed_refresh_total",
				Help: "Total number of signal feed refresh attempts",
			},
			[]string{"result"},
		),
		snapshotSignals: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "autotrader_snapshot_signals",
				Help: "Number of signals in the latest snapshot per horizon",
			},
			[]string{"horizon"},
		),
		ledgerPositions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "autotrader_ledger_positions",
				Help: "Number of manually tracked positions",
			},
		),
		coinsTracked: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "autotrader_coins_tracked",
				Help: "Number of tracked instrument symbols",
			},
		),
		storeErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autotrader_store_errors_total",
				Help: "Total number of state store failures",
			},
			[]string{"op"},
		),
	}
}

func (r *Recorder) FeedRefresh(result string) {
	r.feedRefreshes.WithLabelValues(result).Inc()
}

func (r *Recorder) SnapshotSize(horizon string, n int) {
	r.snapshotSignals.WithLabelValues(horizon).Set(float64(n))
}

func (r *Recorder) LedgerSize(n int) {
	r.ledgerPositions.Set(float64(n))
}

func (r *Recorder) CoinsTracked(n int) {
	r.coinsTracked.Set(float64(n))
}

func (r *Recorder) StoreError(op string) {
	r.storeErrors.WithLabelValues(op).Inc()
}
