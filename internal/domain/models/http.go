package models

// AddPositionRequest is the body of POST /api/saida. Entry price and leverage
// arrive as strings because the panel inputs accept comma decimals.
type AddPositionRequest struct {
	Par   string `json:"par" validate:"required"`
	Side  string `json:"side" validate:"oneof=LONG SHORT" default:"LONG"`
	Mode  string `json:"modo" validate:"oneof=SWING POSICIONAL" default:"SWING"`
	Entry string `json:"entrada" validate:"required"`
	Lev   string `json:"alav" validate:"required"`
}

// AddCoinsRequest is the body of POST /api/moedas. Ticker may hold a
// comma-separated list.
type AddCoinsRequest struct {
	Ticker string `json:"ticker" validate:"required"`
}

// RemoveCoinsRequest is the body of DELETE /api/moedas.
type RemoveCoinsRequest struct {
	Tickers []string `json:"tickers" validate:"required"`
}

// MailConfigRequest is the body of POST /api/email.
type MailConfigRequest struct {
	From     string `json:"from" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	To       string `json:"to" validate:"required,email"`
}

// HealthResponse mirrors the historical /health payload.
type HealthResponse struct {
	Status            string `json:"status"`
	EntradaJSONExists bool   `json:"entrada_json_exists"`
	EntradaJSONPath   string `json:"entrada_json_path"`
}

// FeedResponse is the latest polled snapshot plus its health flag.
type FeedResponse struct {
	Snapshot *SignalSnapshot `json:"snapshot"`
	Status   FeedStatus      `json:"status"`
}

// CoinsResponse lists the tracked instrument symbols.
type CoinsResponse struct {
	Moedas []string `json:"moedas"`
}

// AddCoinsResponse reports how many tokens were parsed from the raw input.
type AddCoinsResponse struct {
	Moedas []string `json:"moedas"`
	Added  int      `json:"added"`
}
