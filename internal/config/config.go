package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/cdfisher/osrs-tools/internal/apperr"
	"github.com/cdfisher/osrs-tools/internal/highscores"
	"github.com/cdfisher/osrs-tools/internal/logging"
	"github.com/cdfisher/osrs-tools/internal/prices"
)

// EnvPrefix prefixes every environment override, e.g. OSRSTOOLS_PRICES_USER_AGENT.
const EnvPrefix = "OSRSTOOLS"

// Config materialises application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logging    logging.Config   `mapstructure:"logging"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Highscores HighscoresConfig `mapstructure:"highscores"`
	Prices     PricesConfig     `mapstructure:"prices"`
	Alerting   AlertingConfig   `mapstructure:"alerting"`
	Export     ExportConfig     `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name string `mapstructure:"name"`
}

// HTTPConfig tunes the shared retrying fetcher.
type HTTPConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// RateLimit is in requests per second; zero disables throttling.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// HighscoresConfig selects the highscores host and default board.
type HighscoresConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Category string `mapstructure:"category"`
}

// PricesConfig covers the real-time prices API.
type PricesConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	Mode      string `mapstructure:"mode"`
	Window    string `mapstructure:"window"`
}

// AlertingConfig defines the margin check threshold and routing.
type AlertingConfig struct {
	Enabled         bool           `mapstructure:"enabled"`
	ROIThresholdPct float64        `mapstructure:"roi_threshold_pct"`
	Items           []string       `mapstructure:"items"`
	Telegram        TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig describes Telegram alert parameters.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load builds configuration from file, environment, and defaults. Variables
// from a .env file in the working directory are applied first without
// overriding the real environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("osrs-tools")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "osrs-tools")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.time_format", "")
	v.SetDefault("logging.caller", false)
	v.SetDefault("logging.pretty", false)

	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.max_retries", 5)
	v.SetDefault("http.retry_delay", "0s")
	v.SetDefault("http.rate_limit", 0.0)
	v.SetDefault("http.burst", 1)

	v.SetDefault("highscores.base_url", highscores.DefaultBaseURL)
	v.SetDefault("highscores.category", string(highscores.CategoryDefault))

	v.SetDefault("prices.base_url", prices.DefaultBaseURL)
	v.SetDefault("prices.user_agent", "")
	v.SetDefault("prices.mode", "latest")
	v.SetDefault("prices.window", "")

	v.SetDefault("alerting.enabled", false)
	v.SetDefault("alerting.roi_threshold_pct", 2.0)
	v.SetDefault("alerting.items", []string{})
	v.SetDefault("alerting.telegram.enabled", false)
	v.SetDefault("alerting.telegram.bot_token", "")
	v.SetDefault("alerting.telegram.chat_id", "")
	v.SetDefault("alerting.telegram.api_base", "https://api.telegram.org")

	v.SetDefault("export.dir", ".")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("%w: http.timeout must be greater than zero", apperr.ErrConfiguration)
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("%w: http.max_retries cannot be negative", apperr.ErrConfiguration)
	}
	if c.HTTP.RetryDelay < 0 {
		return fmt.Errorf("%w: http.retry_delay cannot be negative", apperr.ErrConfiguration)
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("%w: http.rate_limit cannot be negative", apperr.ErrConfiguration)
	}
	if _, err := highscores.ParseCategory(c.Highscores.Category); err != nil {
		return fmt.Errorf("highscores.category: %w", err)
	}
	mode, err := prices.ParseMode(c.Prices.Mode)
	if err != nil {
		return fmt.Errorf("prices.mode: %w", err)
	}
	if mode == prices.ModeAverage || c.Prices.Window != "" {
		if _, err := prices.ParseWindow(c.Prices.Window); err != nil {
			return fmt.Errorf("prices.window: %w", err)
		}
	}
	if c.Alerting.ROIThresholdPct < 0 {
		return fmt.Errorf("%w: alerting.roi_threshold_pct cannot be negative", apperr.ErrConfiguration)
	}
	if c.Alerting.Telegram.Enabled {
		if c.Alerting.Telegram.BotToken == "" {
			return fmt.Errorf("%w: alerting.telegram.bot_token is required", apperr.ErrConfiguration)
		}
		if c.Alerting.Telegram.ChatID == "" {
			return fmt.Errorf("%w: alerting.telegram.chat_id is required", apperr.ErrConfiguration)
		}
	}
	return nil
}

// ResolveCategory returns either the CLI override or the configured board.
func (c *Config) ResolveCategory(override string) (highscores.Category, error) {
	if override != "" {
		return highscores.ParseCategory(override)
	}
	return highscores.ParseCategory(c.Highscores.Category)
}

// ResolveExportDir returns either the CLI override or the configured directory.
func (c *Config) ResolveExportDir(override string) string {
	if override != "" {
		return override
	}
	return c.Export.Dir
}
