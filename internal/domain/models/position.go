package models

import "math"

// Side of a manually entered position.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Position status values. Free-form on the wire: the external reconciliation
// worker advances them, the service only writes StatusOpen.
const (
	StatusOpen    = "ABERTA"
	StatusTarget1 = "ALVO 1"
	StatusTarget2 = "ALVO 2"
	StatusTarget3 = "ALVO 3"
	StatusClosed  = "FECHADA"
)

// Position is a manually entered, locally owned trade. JSON tags match the
// document format the dashboard persisted, so existing saved ledgers keep
// loading.
type Position struct {
	ID       int64   `json:"id"`
	Par      string  `json:"par"`
	Side     Side    `json:"side"`
	Mode     Mode    `json:"modo"`
	Entry    float64 `json:"entrada"`
	Target1  float64 `json:"alvo_1"`
	Gain1Pct float64 `json:"ganho_1_pct"`
	Target2  float64 `json:"alvo_2"`
	Gain2Pct float64 `json:"ganho_2_pct"`
	Target3  float64 `json:"alvo_3"`
	Gain3Pct float64 `json:"ganho_3_pct"`
	Status   string  `json:"situacao"`
	Date     string  `json:"data"`
	Time     string  `json:"hora"`
	Leverage int     `json:"alav"`
}

// PositionView is a Position plus the display-only current price. The price
// is recomputed at read time from the latest snapshot, never persisted.
type PositionView struct {
	Position
	Price float64 `json:"preco"`
}

// Gain is the percentage gain from entry to target for the given side.
// Defined as 0 when either level is non-positive or non-finite.
func Gain(side Side, entry, target float64) float64 {
	if entry <= 0 || target <= 0 ||
		math.IsNaN(entry) || math.IsInf(entry, 0) ||
		math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}
	if side == SideShort {
		return (entry - target) / entry * 100
	}
	return (target - entry) / entry * 100
}
