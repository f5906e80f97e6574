package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pricedPosition(symbol, shares, costBasis, price string) Position {
	p := dec(price)
	return Position{
		Symbol:    symbol,
		Shares:    dec(shares),
		CostBasis: dec(costBasis),
		Price:     &p,
	}
}

func TestPositionDerivedValues(t *testing.T) {
	p := pricedPosition("AAA", "100", "10.00", "12.00")

	if !p.MarketValue().Equal(dec("1200")) {
		t.Errorf("MarketValue = %s", p.MarketValue())
	}
	if !p.HasPnL() {
		t.Fatal("expected P&L to be defined")
	}
	if !p.UnrealizedPnL().Equal(dec("200")) {
		t.Errorf("UnrealizedPnL = %s", p.UnrealizedPnL())
	}
	if !p.UnrealizedPnLPct().Equal(dec("20")) {
		t.Errorf("UnrealizedPnLPct = %s", p.UnrealizedPnLPct())
	}
}

func TestSentinelCostBasisHasNoPnL(t *testing.T) {
	p := pricedPosition("BBB", "50", "0", "4.00")

	if p.HasCostBasis() {
		t.Error("zero cost basis must read as unknown")
	}
	if p.HasPnL() {
		t.Error("sentinel position must never define a P&L")
	}
	if !p.MarketValue().Equal(dec("200")) {
		t.Errorf("value tracking still works: MarketValue = %s", p.MarketValue())
	}
}

func TestUnpricedPositionContributesZero(t *testing.T) {
	p := Position{Symbol: "CCC", Shares: dec("10"), CostBasis: dec("5")}

	if p.Priced() {
		t.Fatal("no price was set")
	}
	if !p.MarketValue().Equal(decimal.Zero) {
		t.Errorf("MarketValue = %s, want 0", p.MarketValue())
	}
	if p.HasPnL() {
		t.Error("P&L undefined without a price")
	}
}

func TestDayChangePct(t *testing.T) {
	p := pricedPosition("DDD", "1", "0", "102.00")
	prev := dec("100.00")
	p.PrevClose = &prev

	change, ok := p.DayChangePct()
	if !ok {
		t.Fatal("expected a day change")
	}
	if !change.Equal(dec("2")) {
		t.Errorf("DayChangePct = %s", change)
	}

	p.PrevClose = nil
	if _, ok := p.DayChangePct(); ok {
		t.Error("no previous close, no day change")
	}
}

func TestMarketOpen(t *testing.T) {
	et, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	cases := []struct {
		at   time.Time
		open bool
	}{
		{time.Date(2026, 8, 31, 10, 0, 0, 0, et), true},   // Monday mid-morning
		{time.Date(2026, 8, 31, 9, 29, 0, 0, et), false},  // just before the bell
		{time.Date(2026, 8, 31, 16, 0, 0, 0, et), false},  // right at the close
		{time.Date(2026, 8, 30, 12, 0, 0, 0, et), false},  // Sunday
		{time.Date(2026, 8, 31, 15, 59, 0, 0, et), true},  // last minute of the session
	}
	for _, c := range cases {
		if got := MarketOpen(c.at); got != c.open {
			t.Errorf("MarketOpen(%s) = %v, want %v", c.at, got, c.open)
		}
	}
}
