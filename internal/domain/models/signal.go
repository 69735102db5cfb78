package models

// Mode is the holding-period class of a signal or position.
type Mode string

const (
	ModeSwing      Mode = "SWING"
	ModePositional Mode = "POSICIONAL"
)

// Direction values emitted by the signal worker.
const (
	DirectionLong    = "LONG"
	DirectionShort   = "SHORT"
	DirectionNoEntry = "NAO ENTRAR"
)

// SignalRecord is one row produced by the external signal worker. JSON tags
// follow the worker's wire format, which predates this service.
type SignalRecord struct {
	Par       string  `json:"par"`
	Direction string  `json:"sinal"`
	Mode      Mode    `json:"modo,omitempty"`
	Price     float64 `json:"preco"`
	Target    float64 `json:"alvo"`
	Target1   float64 `json:"alvo_1,omitempty"`
	Target2   float64 `json:"alvo_2,omitempty"`
	Target3   float64 `json:"alvo_3,omitempty"`
	GainPct   float64 `json:"ganho_pct"`
	AssertPct float64 `json:"assert_pct"`
	Date      string  `json:"data"`
	Time      string  `json:"hora"`
}

// Targets returns up to three target levels. Older worker revisions publish a
// single alvo; in that case it is used for every level.
func (s *SignalRecord) Targets() (float64, float64, float64) {
	t1, t2, t3 := s.Target1, s.Target2, s.Target3
	if t1 <= 0 {
		t1 = s.Target
	}
	if t2 <= 0 {
		t2 = s.Target
	}
	if t3 <= 0 {
		t3 = s.Target
	}
	return t1, t2, t3
}

// SignalSnapshot is one complete copy of the feed, replaced atomically on
// every successful read.
type SignalSnapshot struct {
	Swing      []SignalRecord `json:"swing"`
	Positional []SignalRecord `json:"posicional"`
}

// EmptySnapshot returns a snapshot with non-nil, empty arrays so it always
// serializes as {"swing":[],"posicional":[]}.
func EmptySnapshot() *SignalSnapshot {
	return &SignalSnapshot{Swing: []SignalRecord{}, Positional: []SignalRecord{}}
}

// Normalize replaces nil arrays with empty ones.
func (s *SignalSnapshot) Normalize() {
	if s.Swing == nil {
		s.Swing = []SignalRecord{}
	}
	if s.Positional == nil {
		s.Positional = []SignalRecord{}
	}
}

// Find returns the record matching (par, mode), or nil. Within one snapshot
// at most one record exists per pair.
func (s *SignalSnapshot) Find(par string, mode Mode) *SignalRecord {
	if s == nil {
		return nil
	}
	list := s.Swing
	if mode == ModePositional {
		list = s.Positional
	}
	for i := range list {
		if list[i].Par == par {
			return &list[i]
		}
	}
	return nil
}

// FeedStatus describes the health of the polled feed.
type FeedStatus struct {
	LastUpdate string `json:"last_update"`
	Error      string `json:"error,omitempty"`
	Stale      bool   `json:"stale"`
}
