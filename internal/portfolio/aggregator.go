package portfolio

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"foliopulse/internal/config"
	"foliopulse/internal/market"
	"foliopulse/internal/news"
)

// PriceResolver resolves one symbol to a typed price outcome.
type PriceResolver interface {
	Resolve(ctx context.Context, symbol string) market.Resolution
}

// NewsFetcher looks up the headline digest for a query.
type NewsFetcher interface {
	Fetch(ctx context.Context, query string) news.Digest
}

// Snapshot is the complete result of one aggregation pass. Equity and
// cost basis are accumulated under disjoint rules: equity counts every
// position with a resolved price, cost basis counts exactly the positions
// with a configured cost basis. TotalPnL is accounted only over the
// cost-basis subset, so sentinel positions can never inflate profit.
type Snapshot struct {
	Positions []Position

	TotalEquity    decimal.Decimal
	TotalCostBasis decimal.Decimal
	TotalPnL       decimal.Decimal

	TakenAt    time.Time
	MarketOpen bool
}

// PricedCount returns how many positions resolved a price this run.
func (s *Snapshot) PricedCount() int {
	n := 0
	for _, p := range s.Positions {
		if p.Priced() {
			n++
		}
	}
	return n
}

// TotalPnLPct returns the aggregate P&L percentage over the cost-basis
// subset. The second return is false when no cost basis is configured
// anywhere; the percentage is then undefined, not zero.
func (s *Snapshot) TotalPnLPct() (decimal.Decimal, bool) {
	if !s.TotalCostBasis.IsPositive() {
		return decimal.Zero, false
	}
	return s.TotalPnL.Div(s.TotalCostBasis).Mul(decimal.NewFromInt(100)), true
}

// Aggregator drives the resolver and news fetcher across the holding set
// and assembles the snapshot. Per-symbol failures are absorbed here: a
// bad symbol never blanks the run.
type Aggregator struct {
	resolver PriceResolver
	news     NewsFetcher
	workers  int
	log      zerolog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewAggregator creates an aggregator with a bounded fetch concurrency.
func NewAggregator(resolver PriceResolver, fetcher NewsFetcher, workers int, log zerolog.Logger) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		resolver: resolver,
		news:     fetcher,
		workers:  workers,
		now:      time.Now,
		log:      log,
	}
}

// BuildSnapshot values every holding and accumulates the totals. Holdings
// are fetched with at most `workers` in flight, but results land in an
// index-addressed slice so snapshot order is always the configured holding
// order, never completion order. The only error returned is context
// cancellation; per-symbol failures are recorded on the positions.
func (a *Aggregator) BuildSnapshot(ctx context.Context, holdings []config.Holding) (*Snapshot, error) {
	positions := make([]Position, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, h := range holdings {
		g.Go(func() error {
			positions[i] = a.buildPosition(gctx, h)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		// Half-built snapshots are simply discarded.
		return nil, err
	}

	snap := &Snapshot{
		Positions: positions,
		TakenAt:   a.now(),
	}
	snap.MarketOpen = MarketOpen(snap.TakenAt)

	for _, p := range positions {
		if p.Priced() {
			snap.TotalEquity = snap.TotalEquity.Add(p.MarketValue())
		}
		if p.HasCostBasis() {
			snap.TotalCostBasis = snap.TotalCostBasis.Add(p.CostValue())
			// An unpriced position with a known basis contributes its full
			// cost as a (visible) loss-side drag: market value counts as
			// zero, exactly as it does in the equity sum.
			snap.TotalPnL = snap.TotalPnL.Add(p.MarketValue().Sub(p.CostValue()))
		}
	}
	return snap, nil
}

func (a *Aggregator) buildPosition(ctx context.Context, h config.Holding) Position {
	pos := Position{
		Symbol:    h.Symbol,
		Shares:    h.Shares,
		CostBasis: h.CostBasis,
	}

	res := a.resolver.Resolve(ctx, h.Symbol)
	if res.Failed() {
		a.log.Error().Str("symbol", h.Symbol).Err(res.Err).Msg("position marked as data error")
	} else {
		price := res.Price
		pos.Price = &price
		pos.PriceSource = res.Source
		if res.HasPrevClose {
			prev := res.PrevClose
			pos.PrevClose = &prev
		}
	}

	// News trouble is independent of pricing trouble; the digest carries
	// its own error marker.
	pos.News = a.news.Fetch(ctx, h.Query())
	if pos.News.Failed() {
		a.log.Warn().Str("symbol", h.Symbol).Err(pos.News.Err).Msg("news digest unavailable")
	}

	return pos
}
