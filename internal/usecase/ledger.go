package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
	xhttp "github.com/roteirods-byte/autotrader/pkg/http"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
	"github.com/roteirods-byte/autotrader/pkg/util"
)

// ErrSaveFailed reports that a mutation succeeded in memory but could not be
// written to the state store. The session keeps working on the in-memory
// ledger; the caller surfaces a "could not save" notice.
var ErrSaveFailed = errors.New("could not save ledger")

// Ledger owns the manually entered positions. Positions are re-priced at
// read time against the latest feed snapshot; nothing derived is persisted.
type Ledger struct {
	store   domrepo.StateStore
	feed    domrepo.SnapshotProvider
	coins   *CoinSet
	logger  *applogger.Logger
	metrics domrepo.Metrics

	mu     sync.Mutex
	ops    []models.Position
	loaded bool
	lastID int64

	now func() time.Time
}

func NewLedger(store domrepo.StateStore, feed domrepo.SnapshotProvider, coins *CoinSet, l *applogger.Logger, m domrepo.Metrics) *Ledger {
	return &Ledger{
		store:   store,
		feed:    feed,
		coins:   coins,
		logger:  l,
		metrics: m,
		now:     time.Now,
	}
}

// Load deserializes the persisted ledger once per activation. No save is
// possible before this ran, so a slow start can never clobber a previously
// saved ledger with an empty one. Entries that fail to parse are dropped.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(ctx)
}

func (l *Ledger) loadLocked(ctx context.Context) {
	if l.loaded {
		return
	}
	l.loaded = true
	l.ops = []models.Position{}

	b, ok, err := l.store.Get(ctx, domrepo.KeyExitOps)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("ledger load failed", applogger.Error(err))
		}
		if l.metrics != nil {
			l.metrics.StoreError("ledger_load")
		}
		return
	}
	if !ok {
		return
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		if l.logger != nil {
			l.logger.Warn("ledger document corrupt, starting empty", applogger.Error(err))
		}
		return
	}
	for _, raw := range raws {
		var op models.Position
		if err := json.Unmarshal(raw, &op); err != nil {
			continue
		}
		l.ops = append(l.ops, op)
		if op.ID > l.lastID {
			l.lastID = op.ID
		}
	}
	if l.metrics != nil {
		l.metrics.LedgerSize(len(l.ops))
	}
}

// Add validates the request, derives targets from the matching signal and
// appends the position. Validation failures mutate nothing.
func (l *Ledger) Add(ctx context.Context, req *models.AddPositionRequest) (*models.Position, error) {
	if req.Par == "" {
		return nil, xhttp.ValidationFieldError("par", "par is required")
	}
	if l.coins != nil && !l.coins.Contains(ctx, req.Par) {
		return nil, xhttp.ValidationFieldError("par", "par is not a tracked coin")
	}

	entry, ok := util.ParsePositiveDecimal(req.Entry)
	if !ok {
		return nil, xhttp.ValidationFieldError("entrada", "entrada must be a positive number")
	}
	lev, ok := util.ParsePositiveInt(req.Lev)
	if !ok {
		return nil, xhttp.ValidationFieldError("alav", "alav must be a positive integer")
	}

	side := models.Side(req.Side)
	if side == "" {
		side = models.SideLong
	}
	mode := models.Mode(req.Mode)
	if mode == "" {
		mode = models.ModeSwing
	}

	// Reference targets from the signal feed; entry price when no signal
	// covers this pair yet.
	t1, t2, t3 := entry, entry, entry
	if rec := l.feed.Snapshot().Find(req.Par, mode); rec != nil {
		t1, t2, t3 = rec.Targets()
		if t1 <= 0 {
			t1 = entry
		}
		if t2 <= 0 {
			t2 = entry
		}
		if t3 <= 0 {
			t3 = entry
		}
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(ctx)

	op := models.Position{
		ID:       l.nextIDLocked(now),
		Par:      req.Par,
		Side:     side,
		Mode:     mode,
		Entry:    entry,
		Target1:  t1,
		Gain1Pct: models.Gain(side, entry, t1),
		Target2:  t2,
		Gain2Pct: models.Gain(side, entry, t2),
		Target3:  t3,
		Gain3Pct: models.Gain(side, entry, t3),
		Status:   models.StatusOpen,
		Date:     util.DateStamp(now),
		Time:     util.TimeStamp(now),
		Leverage: lev,
	}

	l.ops = append(l.ops, op)
	if err := l.persistLocked(ctx); err != nil {
		return &op, ErrSaveFailed
	}
	return &op, nil
}

// Remove deletes the position with the given id. Absence is a no-op, not an
// error.
func (l *Ledger) Remove(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(ctx)

	kept := l.ops[:0]
	removed := false
	for _, op := range l.ops {
		if op.ID == id {
			removed = true
			continue
		}
		kept = append(kept, op)
	}
	l.ops = kept

	if !removed {
		return nil
	}
	if err := l.persistLocked(ctx); err != nil {
		return ErrSaveFailed
	}
	return nil
}

// Positions returns the ledger re-priced against the latest snapshot, sorted
// by instrument ascending. Sorting is a view concern; the stored collection
// keeps insertion order.
func (l *Ledger) Positions(ctx context.Context) []models.PositionView {
	l.mu.Lock()
	l.loadLocked(ctx)
	ops := make([]models.Position, len(l.ops))
	copy(ops, l.ops)
	l.mu.Unlock()

	views := make([]models.PositionView, 0, len(ops))
	for _, op := range ops {
		views = append(views, models.PositionView{
			Position: op,
			Price:    l.CurrentPriceFor(&op),
		})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Par < views[j].Par })
	return views
}

// CurrentPriceFor resolves the display price for a position: the matching
// signal's live price when available and positive, otherwise the position's
// own entry price. Never zero, to avoid a flickering display.
func (l *Ledger) CurrentPriceFor(op *models.Position) float64 {
	if rec := l.feed.Snapshot().Find(op.Par, op.Mode); rec != nil && rec.Price > 0 {
		return rec.Price
	}
	return op.Entry
}

func (l *Ledger) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

func (l *Ledger) persistLocked(ctx context.Context) error {
	if l.metrics != nil {
		l.metrics.LedgerSize(len(l.ops))
	}
	b, err := json.Marshal(l.ops)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, domrepo.KeyExitOps, b); err != nil {
		if l.logger != nil {
			l.logger.Error("ledger save failed", applogger.Error(err))
		}
		if l.metrics != nil {
			l.metrics.StoreError("ledger_save")
		}
		return err
	}
	return nil
}
