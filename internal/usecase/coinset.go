package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
	xhttp "github.com/roteirods-byte/autotrader/pkg/http"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
)

// DefaultCoins is the project's official instrument list, used to seed a
// fresh state store.
var DefaultCoins = []string{
	"AAVE", "ADA", "APE", "APT", "AR", "ARB", "ATOM", "AVAX", "AXS", "BAT",
	"BCH", "BLUR", "BNB", "BONK", "BTC", "COMP", "CRV", "DASH", "DGB", "DENT",
	"DOGE", "DOT", "EGLD", "EOS", "ETC", "ETH", "FET", "FIL", "FLOKI", "FLOW",
	"FTM", "GALA", "GLM", "GRT", "HBAR", "IMX", "INJ", "IOST", "ICP", "KAS",
	"KAVA", "KSM", "LINK", "LTC", "MANA", "MATIC", "MKR", "NEO", "NEAR", "OMG",
	"ONT", "OP", "ORDI", "PEPE", "QNT", "QTUM", "RNDR", "ROSE", "RUNE", "SAND",
	"SEI", "SHIB", "SNX", "SOL", "STX", "SUSHI", "TIA", "THETA", "TRX", "UNI",
	"VET", "XRP", "XEM", "XLM", "XVS", "ZEC", "ZRX",
}

// CoinSet owns the tracked-instrument list consumed by the signal panels and
// the position ledger. Always uppercase, deduplicated, alphabetically sorted.
type CoinSet struct {
	store   domrepo.StateStore
	logger  *applogger.Logger
	metrics domrepo.Metrics

	mu     sync.Mutex
	coins  []string
	loaded bool
}

func NewCoinSet(store domrepo.StateStore, l *applogger.Logger, m domrepo.Metrics) *CoinSet {
	return &CoinSet{store: store, logger: l, metrics: m}
}

// Load deserializes the persisted set once per activation. A corrupt or
// missing document falls back to the default list.
func (c *CoinSet) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)
}

func (c *CoinSet) loadLocked(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true
	c.coins = normalizeCoins(DefaultCoins)

	b, ok, err := c.store.Get(ctx, domrepo.KeyCoins)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("coin set load failed", applogger.Error(err))
		}
		if c.metrics != nil {
			c.metrics.StoreError("coins_load")
		}
		return
	}
	if !ok {
		return
	}

	var stored []string
	if err := json.Unmarshal(b, &stored); err != nil {
		if c.logger != nil {
			c.logger.Warn("coin set document corrupt, using defaults", applogger.Error(err))
		}
		return
	}
	if cleaned := normalizeCoins(stored); len(cleaned) > 0 {
		c.coins = cleaned
	}
	if c.metrics != nil {
		c.metrics.CoinsTracked(len(c.coins))
	}
}

// List returns the current set, sorted ascending.
func (c *CoinSet) List(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)

	out := make([]string, len(c.coins))
	copy(out, c.coins)
	return out
}

// Contains reports whether ticker (case-insensitive) is tracked.
func (c *CoinSet) Contains(ctx context.Context, ticker string) bool {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	for _, coin := range c.List(ctx) {
		if coin == ticker {
			return true
		}
	}
	return false
}

// Add splits raw input on commas, normalizes the tokens and unions them into
// the set. The reported count is the number of parsed tokens, even when some
// were already present.
func (c *CoinSet) Add(ctx context.Context, raw string) (added int, coins []string, err error) {
	parts := splitTokens(raw)
	if len(parts) == 0 {
		return 0, nil, xhttp.ValidationFieldError("ticker", "informe pelo menos uma moeda")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)

	c.coins = normalizeCoins(append(append([]string{}, c.coins...), parts...))
	c.persistLocked(ctx)

	out := make([]string, len(c.coins))
	copy(out, c.coins)
	return len(parts), out, nil
}

// RemoveSelected removes the given subset. An empty selection leaves the set
// untouched and reports a user-facing notice.
func (c *CoinSet) RemoveSelected(ctx context.Context, selection []string) (coins []string, err error) {
	if len(selection) == 0 {
		return nil, xhttp.BadRequestError("nenhuma moeda selecionada para remover")
	}

	drop := make(map[string]bool, len(selection))
	for _, s := range selection {
		drop[strings.ToUpper(strings.TrimSpace(s))] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)

	kept := c.coins[:0]
	for _, coin := range c.coins {
		if !drop[coin] {
			kept = append(kept, coin)
		}
	}
	c.coins = kept
	c.persistLocked(ctx)

	out := make([]string, len(c.coins))
	copy(out, c.coins)
	return out, nil
}

func (c *CoinSet) persistLocked(ctx context.Context) {
	if c.metrics != nil {
		c.metrics.CoinsTracked(len(c.coins))
	}
	b, err := json.Marshal(c.coins)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, domrepo.KeyCoins, b); err != nil {
		if c.logger != nil {
			c.logger.Error("coin set save failed", applogger.Error(err))
		}
		if c.metrics != nil {
			c.metrics.StoreError("coins_save")
		}
	}
}

func splitTokens(raw string) []string {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func normalizeCoins(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
