package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cdfisher/osrs-tools/internal/alerting"
	"github.com/cdfisher/osrs-tools/internal/config"
	"github.com/cdfisher/osrs-tools/internal/fetcher"
	"github.com/cdfisher/osrs-tools/internal/highscores"
	"github.com/cdfisher/osrs-tools/internal/prices"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	// Out receives command output; logs go to the logger.
	Out io.Writer

	fetcher *fetcher.Client
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger.With().Str("component", "app").Logger(),
		Out:    os.Stdout,
	}
}

func (a *App) httpClient() *fetcher.Client {
	if a.fetcher != nil {
		return a.fetcher
	}
	retries := a.Config.HTTP.MaxRetries
	if retries == 0 {
		// fetcher treats zero as "use the default".
		retries = -1
	}
	a.fetcher = fetcher.New(fetcher.Options{
		Timeout:    a.Config.HTTP.Timeout,
		MaxRetries: retries,
		RetryDelay: a.Config.HTTP.RetryDelay,
		RateLimit:  a.Config.HTTP.RateLimit,
		Burst:      a.Config.HTTP.Burst,
	}, a.Logger)
	return a.fetcher
}

func (a *App) newHighscores() *highscores.Client {
	return highscores.NewClient(a.httpClient(), highscores.Options{
		BaseURL: a.Config.Highscores.BaseURL,
	}, a.Logger)
}

func (a *App) openPrices(ctx context.Context, mode, window string) (*prices.Checker, error) {
	if mode == "" {
		mode = a.Config.Prices.Mode
	}
	if window == "" {
		window = a.Config.Prices.Window
	}
	m, err := prices.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	return prices.Open(ctx, a.httpClient(), prices.Options{
		UserAgent: a.Config.Prices.UserAgent,
		Mode:      m,
		Window:    window,
		BaseURL:   a.Config.Prices.BaseURL,
	}, a.Logger)
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, a.Config.HTTP.Timeout, a.Logger)
	}
	return nil
}

// HighscoresOptions configure the highscores command.
type HighscoresOptions struct {
	Player   string
	Category string
	// All includes unranked activities and bosses.
	All bool
}

// EHBOptions configure the ehb command.
type EHBOptions struct {
	Player   string
	Category string
	// Account is "auto", "main" or "ironman". Auto probes the ironman board.
	Account string
}

// PriceOptions configure the price command.
type PriceOptions struct {
	Queries []string
	Mode    string
	Window  string
	// Suggest is how many similar names to print for an unknown item.
	Suggest int
}

// MarginCheckOptions configure a one-shot margin check.
type MarginCheckOptions struct {
	Items  []string
	Mode   string
	Window string
}

// ExportOptions hold parameters for exporting a player's highscores.
type ExportOptions struct {
	Player   string
	Category string
	PNGPath  string
	CSVPath  string
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
