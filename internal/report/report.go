package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"foliopulse/internal/news"
	"foliopulse/internal/portfolio"
)

const (
	headerRule = "=============================="
	blockRule  = "--------------------------------"
)

// Day-change thresholds for the trend markers.
var (
	one    = decimal.NewFromInt(1)
	negOne = decimal.NewFromInt(-1)
)

// Render turns a snapshot into the report text. It is pure: the same
// snapshot always renders to byte-identical output, and section order is
// fixed (header, then one block per position in snapshot order).
func Render(snap *portfolio.Snapshot) string {
	var b strings.Builder

	renderHeader(&b, snap)
	for _, pos := range snap.Positions {
		renderPosition(&b, pos)
		b.WriteString(blockRule)
		b.WriteString("\n")
	}

	return b.String()
}

func renderHeader(b *strings.Builder, snap *portfolio.Snapshot) {
	fmt.Fprintf(b, "💰 TOTAL PORTFOLIO: %s\n", moneyWhole(snap.TotalEquity))
	fmt.Fprintf(b, "📊 Positions: %d configured, %d priced\n",
		len(snap.Positions), snap.PricedCount())

	// Equity and cost basis are accounted over different position subsets;
	// the P&L line names its subset instead of blending the two.
	if pct, ok := snap.TotalPnLPct(); ok {
		fmt.Fprintf(b, "📈 P&L on cost-basis positions: %s (%s)\n",
			signedMoneyWhole(snap.TotalPnL), signedPct(pct))
	} else {
		b.WriteString("📈 P&L: not computed (no cost basis configured)\n")
	}

	session := "market closed"
	if snap.MarketOpen {
		session = "market open"
	}
	fmt.Fprintf(b, "📅 %s · %s\n", snap.TakenAt.Format("2006-01-02 15:04 MST"), session)
	b.WriteString(headerRule)
	b.WriteString("\n")
}

func renderPosition(b *strings.Builder, pos portfolio.Position) {
	fmt.Fprintf(b, "%s %s\n", trendMarker(pos), pos.Symbol)

	if !pos.Priced() {
		b.WriteString("   • Price: ⚠️ data error\n")
		b.WriteString("   • Value: $0.00 (no price this run)\n")
	} else {
		priceLine := "   • Price: " + money2(*pos.Price)
		if change, ok := pos.DayChangePct(); ok {
			priceLine += fmt.Sprintf(" (%s today)", signedPct(change))
		} else if pos.PriceSource == "daily-bar" {
			priceLine += " (last daily close)"
		}
		b.WriteString(priceLine + "\n")
		fmt.Fprintf(b, "   • Value: %s\n", money2(pos.MarketValue()))
	}

	switch {
	case pos.HasPnL():
		fmt.Fprintf(b, "   • P&L: %s (%s)\n",
			signedMoney2(pos.UnrealizedPnL()), signedPct(pos.UnrealizedPnLPct()))
	case pos.HasCostBasis():
		// Basis is known but the price fetch failed.
		b.WriteString("   • P&L: n/a (price unavailable)\n")
	default:
		b.WriteString("   • P&L: value-tracking only (no cost basis)\n")
	}

	renderNews(b, pos.News)
}

func renderNews(b *strings.Builder, d news.Digest) {
	b.WriteString("   • News:\n")
	switch {
	case d.Failed():
		b.WriteString("     • news unavailable (fetch error)\n")
	case d.Empty():
		b.WriteString("     • no recent headlines\n")
	default:
		for _, h := range d.Headlines {
			if h.PublishedAt.IsZero() {
				fmt.Fprintf(b, "     • %s\n", h.Text)
				continue
			}
			fmt.Fprintf(b, "     • %s (%s)\n", h.Text, h.PublishedAt.Format("02 Jan 15:04"))
		}
	}
}

func trendMarker(pos portfolio.Position) string {
	if !pos.Priced() {
		return "⚠️"
	}
	change, ok := pos.DayChangePct()
	if !ok {
		return "🔹"
	}
	switch {
	case change.GreaterThan(one):
		return "🚀"
	case change.IsPositive():
		return "🟢"
	case change.LessThan(negOne):
		return "🩸"
	default:
		return "🔴"
	}
}
