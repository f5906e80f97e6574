package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Resolution is the typed outcome of resolving one symbol to a price. A
// failed resolution is a value, not an error that escapes to the caller:
// the aggregator decides what to do with it.
type Resolution struct {
	Symbol string

	Price     decimal.Decimal
	PrevClose decimal.Decimal
	// HasPrevClose is only set on the live-quote path; a daily bar carries
	// no reliable previous close.
	HasPrevClose bool
	// Source names the strategy that produced the price.
	Source string

	Err error
}

// Failed reports whether every strategy failed for this symbol.
func (r Resolution) Failed() bool {
	return r.Err != nil
}

// strategy is one ordered attempt at producing a price.
type strategy struct {
	name  string
	fetch func(ctx context.Context, symbol string) (Resolution, error)
}

// Resolver turns a symbol into a price by trying an ordered list of
// strategies: the live quote first, then the latest daily bar close. The
// order is fixed and visible so fallback behavior stays testable.
type Resolver struct {
	provider   Provider
	timeout    time.Duration
	log        zerolog.Logger
	strategies []strategy
}

// NewResolver creates a resolver over the given provider. timeout bounds
// each individual provider call, not the whole resolution.
func NewResolver(provider Provider, timeout time.Duration, log zerolog.Logger) *Resolver {
	r := &Resolver{
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
	r.strategies = []strategy{
		{name: "quote", fetch: r.fromQuote},
		{name: "daily-bar", fetch: r.fromDailyBar},
	}
	return r
}

// Resolve tries each strategy in order and returns the first price found.
// It never retries a strategy within a run and never panics; if every
// strategy fails the Resolution carries the joined failure.
func (r *Resolver) Resolve(ctx context.Context, symbol string) Resolution {
	var failures []string

	for _, s := range r.strategies {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		res, err := s.fetch(callCtx, symbol)
		cancel()

		if err == nil {
			res.Symbol = symbol
			res.Source = s.name
			r.log.Debug().Str("symbol", symbol).Str("source", s.name).
				Str("price", res.Price.String()).Msg("price resolved")
			return res
		}

		r.log.Warn().Str("symbol", symbol).Str("source", s.name).Err(err).
			Msg("price strategy failed")
		failures = append(failures, fmt.Sprintf("%s: %v", s.name, err))
	}

	return Resolution{
		Symbol: symbol,
		Err:    fmt.Errorf("all price sources failed for %s: %s", symbol, strings.Join(failures, "; ")),
	}
}

func (r *Resolver) fromQuote(ctx context.Context, symbol string) (Resolution, error) {
	q, err := r.provider.Quote(ctx, symbol)
	if err != nil {
		return Resolution{}, err
	}
	// Yahoo reports zero for the fast price field when the symbol has no
	// live quote; treat it as unavailable and fall through to the bar.
	if !q.Last.IsPositive() {
		return Resolution{}, fmt.Errorf("quote for %s has no usable last price", symbol)
	}
	return Resolution{
		Price:        q.Last,
		PrevClose:    q.PrevClose,
		HasPrevClose: q.PrevClose.IsPositive(),
	}, nil
}

func (r *Resolver) fromDailyBar(ctx context.Context, symbol string) (Resolution, error) {
	b, err := r.provider.DailyBar(ctx, symbol)
	if err != nil {
		return Resolution{}, err
	}
	if !b.Close.IsPositive() {
		return Resolution{}, fmt.Errorf("daily bar for %s has no usable close", symbol)
	}
	return Resolution{Price: b.Close}, nil
}
