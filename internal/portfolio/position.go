package portfolio

import (
	"github.com/shopspring/decimal"

	"foliopulse/internal/news"
)

// Position is the priced form of one holding for a single run. It is
// built once by the aggregator and never mutated afterwards.
type Position struct {
	Symbol    string
	Shares    decimal.Decimal
	CostBasis decimal.Decimal // zero = unknown, value-tracking only

	// Price is nil when every price strategy failed this run. The
	// position still appears in the report, flagged as a data error.
	Price       *decimal.Decimal
	PrevClose   *decimal.Decimal
	PriceSource string

	News news.Digest
}

// Priced reports whether a price was resolved this run.
func (p Position) Priced() bool {
	return p.Price != nil
}

// HasCostBasis reports whether a real cost basis is configured.
func (p Position) HasCostBasis() bool {
	return p.CostBasis.IsPositive()
}

// MarketValue is shares times the resolved price, or zero when the price
// fetch failed; unpriced positions contribute nothing to equity.
func (p Position) MarketValue() decimal.Decimal {
	if !p.Priced() {
		return decimal.Zero
	}
	return p.Shares.Mul(*p.Price)
}

// CostValue is shares times cost basis. Only meaningful when a cost basis
// is configured.
func (p Position) CostValue() decimal.Decimal {
	return p.Shares.Mul(p.CostBasis)
}

// HasPnL reports whether an unrealized P&L is defined: a price plus a
// positive cost value. Sentinel and zero-share positions never have one.
func (p Position) HasPnL() bool {
	return p.Priced() && p.CostValue().IsPositive()
}

// UnrealizedPnL is market value minus cost value. Call only when HasPnL.
func (p Position) UnrealizedPnL() decimal.Decimal {
	return p.MarketValue().Sub(p.CostValue())
}

// UnrealizedPnLPct is the unrealized P&L relative to cost. Call only when
// HasPnL.
func (p Position) UnrealizedPnLPct() decimal.Decimal {
	return p.UnrealizedPnL().Div(p.CostValue()).Mul(decimal.NewFromInt(100))
}

// DayChangePct returns the move against the previous close, when the
// resolver produced one (bar-sourced prices do not carry it).
func (p Position) DayChangePct() (decimal.Decimal, bool) {
	if !p.Priced() || p.PrevClose == nil || !p.PrevClose.IsPositive() {
		return decimal.Zero, false
	}
	change := p.Price.Sub(*p.PrevClose).Div(*p.PrevClose).Mul(decimal.NewFromInt(100))
	return change, true
}
