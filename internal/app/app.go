package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"foliopulse/internal/commentary"
	"foliopulse/internal/config"
	"foliopulse/internal/market"
	"foliopulse/internal/news"
	"foliopulse/internal/notify"
	"foliopulse/internal/portfolio"
	"foliopulse/internal/report"
)

// snapshotBuilder is what the pipeline needs from the aggregator.
type snapshotBuilder interface {
	BuildSnapshot(ctx context.Context, holdings []config.Holding) (*portfolio.Snapshot, error)
}

// App wires the pipeline: aggregate, render, annotate, deliver.
type App struct {
	cfg        *config.Config
	log        zerolog.Logger
	aggregator snapshotBuilder
	generator  commentary.Generator // nil when commentary is disabled
	dispatcher *notify.Dispatcher
}

// New assembles the pipeline from a validated configuration. It creates
// clients but performs no network I/O itself.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	resolver := market.NewResolver(market.NewYahooProvider(), cfg.FetchTimeout, log)
	fetcher := news.NewFetcher(cfg.MaxHeadlines, cfg.FetchTimeout, log)
	aggregator := portfolio.NewAggregator(resolver, fetcher, cfg.Workers, log)

	generator, err := commentary.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := newNotifier(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:        cfg,
		log:        log,
		aggregator: aggregator,
		generator:  generator,
		dispatcher: notify.NewDispatcher(notifier, log),
	}, nil
}

func newNotifier(cfg *config.Config) (notify.Notifier, error) {
	switch cfg.Transport {
	case config.TransportTelegram:
		return notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.FetchTimeout), nil
	case config.TransportWhatsApp:
		return notify.NewWhatsApp(cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken,
			cfg.WhatsAppRecipient, cfg.FetchTimeout), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// Run executes one pipeline pass. Per-symbol trouble is already absorbed
// by the aggregator; generation trouble degrades to the raw report; only
// delivery failure (and cancellation) surface as errors.
func (a *App) Run(ctx context.Context) error {
	snap, err := a.aggregator.BuildSnapshot(ctx, a.cfg.Holdings)
	if err != nil {
		return err
	}
	a.log.Info().
		Int("positions", len(snap.Positions)).
		Int("priced", snap.PricedCount()).
		Str("equity", snap.TotalEquity.StringFixed(2)).
		Msg("snapshot built")

	rendered := report.Render(snap)
	message := a.composeMessage(ctx, rendered)

	delivered, err := a.dispatcher.Dispatch(ctx, message)
	if err != nil {
		return err
	}
	a.log.Info().Int("segments", delivered).Msg("report delivered")
	return nil
}

// composeMessage attaches AI commentary when a generator is configured
// and working. Any generation failure falls back to the raw report; the
// run never goes silent because the text service is down.
func (a *App) composeMessage(ctx context.Context, rendered string) string {
	if a.generator == nil {
		return rendered
	}

	genCtx, cancel := context.WithTimeout(ctx, a.cfg.GenerateTimeout)
	defer cancel()

	text, err := a.generator.Generate(genCtx, commentary.BuildPrompt(rendered))
	if err != nil {
		a.log.Warn().Err(err).Msg("commentary unavailable, sending raw report")
		return rendered
	}
	return text + "\n\n" + "====================" + "\n" + rendered
}

// Preview builds and renders a snapshot without generation or delivery.
func (a *App) Preview(ctx context.Context) (string, error) {
	snap, err := a.aggregator.BuildSnapshot(ctx, a.cfg.Holdings)
	if err != nil {
		return "", err
	}
	return report.Render(snap), nil
}
