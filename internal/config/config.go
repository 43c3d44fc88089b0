package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"CoinSentinel/internal/model"
)

// Duration wraps time.Duration so YAML values like "120s" or "5m" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		SecretKey string `yaml:"secret_key"`
		Live      bool   `yaml:"live"` // false targets the paper endpoint
	} `yaml:"alpaca"`
	Trading struct {
		Symbol           string   `yaml:"symbol"`
		Notional         float64  `yaml:"notional"`
		MinTradeInterval Duration `yaml:"min_trade_interval"`
		PollInterval     Duration `yaml:"poll_interval"`
	} `yaml:"trading"`
	Strategy struct {
		Policy             string   `yaml:"policy"`
		WindowSize         int      `yaml:"window_size"`
		HistorySize        int      `yaml:"history_size"`
		LocalMinWindow     int      `yaml:"local_min_window"`
		SMAThreshold       float64  `yaml:"sma_threshold"`
		PriceDropThreshold float64  `yaml:"price_drop_threshold"`
		DailyLowProximity  float64  `yaml:"daily_low_proximity"`
		HourLowProximity   float64  `yaml:"hour_low_proximity"`
		HourLowDecline     float64  `yaml:"hour_low_decline"`
		RefreshInterval    Duration `yaml:"refresh_interval"`
	} `yaml:"strategy"`
	Schedule struct {
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Dir string `yaml:"dir"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		cfg.Alpaca.SecretKey = v
	}
	if v := os.Getenv("ALPACA_LIVE"); v == "true" {
		cfg.Alpaca.Live = true
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Trading.Symbol = v
	}
	if v := os.Getenv("NOTIONAL"); v != "" {
		var notional float64
		if _, err := fmt.Sscanf(v, "%f", &notional); err == nil {
			cfg.Trading.Notional = notional
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Trading.Symbol == "" {
		cfg.Trading.Symbol = "BTC/USD"
	}
	if cfg.Trading.Notional == 0 {
		cfg.Trading.Notional = 10
	}
	if cfg.Trading.MinTradeInterval == 0 {
		cfg.Trading.MinTradeInterval = Duration(120 * time.Second)
	}
	if cfg.Trading.PollInterval == 0 {
		cfg.Trading.PollInterval = Duration(15 * time.Second)
	}
	if cfg.Strategy.Policy == "" {
		cfg.Strategy.Policy = string(model.PolicyHourlyLow)
	}
	if cfg.Strategy.WindowSize == 0 {
		cfg.Strategy.WindowSize = 500
	}
	if cfg.Strategy.HistorySize == 0 {
		cfg.Strategy.HistorySize = 30
	}
	if cfg.Strategy.LocalMinWindow == 0 {
		cfg.Strategy.LocalMinWindow = 5
	}
	if cfg.Strategy.SMAThreshold == 0 {
		cfg.Strategy.SMAThreshold = 0.95
	}
	if cfg.Strategy.PriceDropThreshold == 0 {
		cfg.Strategy.PriceDropThreshold = 1.0
	}
	if cfg.Strategy.DailyLowProximity == 0 {
		cfg.Strategy.DailyLowProximity = 0.005
	}
	if cfg.Strategy.HourLowProximity == 0 {
		cfg.Strategy.HourLowProximity = 0.005
	}
	if cfg.Strategy.HourLowDecline == 0 {
		cfg.Strategy.HourLowDecline = -0.1
	}
	if cfg.Strategy.RefreshInterval == 0 {
		cfg.Strategy.RefreshInterval = Duration(5 * time.Minute)
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 0 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/coin_sentinel.db"
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = "logs"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Alpaca.APIKey == "" {
		return fmt.Errorf("alpaca.api_key is required")
	}
	if c.Alpaca.SecretKey == "" {
		return fmt.Errorf("alpaca.secret_key is required")
	}
	if c.Trading.Notional <= 0 {
		return fmt.Errorf("trading.notional must be positive")
	}
	switch model.Policy(c.Strategy.Policy) {
	case model.PolicyHourlyLow, model.PolicySMA, model.PolicyLocalMin:
	default:
		return fmt.Errorf("strategy.policy must be one of hourly_low, sma, local_min")
	}
	if c.Strategy.LocalMinWindow < 3 {
		return fmt.Errorf("strategy.local_min_window must be at least 3")
	}
	return nil
}
