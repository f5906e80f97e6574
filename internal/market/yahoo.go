package market

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// YahooProvider fetches quotes and daily bars from Yahoo Finance.
type YahooProvider struct{}

// NewYahooProvider creates a Yahoo Finance provider.
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{}
}

// Quote fetches the live quote for a symbol. The finance-go client has no
// context support, so the call runs in a goroutine and the context deadline
// is enforced here; a timed-out fetch is reported as an ordinary error.
func (p *YahooProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	type outcome struct {
		q   *Quote
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		q, err := quote.Get(symbol)
		if err != nil {
			ch <- outcome{err: fmt.Errorf("yahoo quote %s: %w", symbol, err)}
			return
		}
		if q == nil {
			ch <- outcome{err: fmt.Errorf("yahoo quote %s: no data", symbol)}
			return
		}
		ch <- outcome{q: &Quote{
			Symbol:    symbol,
			Last:      decimal.NewFromFloat(q.RegularMarketPrice),
			PrevClose: decimal.NewFromFloat(q.RegularMarketPreviousClose),
			DayHigh:   decimal.NewFromFloat(q.RegularMarketDayHigh),
			DayLow:    decimal.NewFromFloat(q.RegularMarketDayLow),
			Volume:    int64(q.RegularMarketVolume),
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, ctx.Err())
	case out := <-ch:
		return out.q, out.err
	}
}

// DailyBar fetches the most recent daily bar for a symbol. A week-long
// window covers weekends and market holidays.
func (p *YahooProvider) DailyBar(ctx context.Context, symbol string) (*Bar, error) {
	type outcome struct {
		b   *Bar
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		end := time.Now()
		start := end.AddDate(0, 0, -7)
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)
		var last *Bar
		for iter.Next() {
			bar := iter.Bar()
			last = &Bar{Open: bar.Open, Close: bar.Close}
		}
		if err := iter.Err(); err != nil {
			ch <- outcome{err: fmt.Errorf("yahoo chart %s: %w", symbol, err)}
			return
		}
		if last == nil {
			ch <- outcome{err: fmt.Errorf("yahoo chart %s: no bars returned", symbol)}
			return
		}
		ch <- outcome{b: last}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ctx.Err())
	case out := <-ch:
		return out.b, out.err
	}
}
