package market

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is a live market snapshot for one symbol.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Last      decimal.Decimal `json:"last"`
	PrevClose decimal.Decimal `json:"prev_close"`
	DayHigh   decimal.Decimal `json:"day_high"`
	DayLow    decimal.Decimal `json:"day_low"`
	Volume    int64           `json:"volume"`
}

// Bar is one daily OHLC bar, reduced to the fields the resolver needs.
type Bar struct {
	Open  decimal.Decimal `json:"open"`
	Close decimal.Decimal `json:"close"`
}

// Provider is the market-data boundary. Both calls block on network I/O;
// callers bound them with the context.
type Provider interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
	DailyBar(ctx context.Context, symbol string) (*Bar, error)
}
