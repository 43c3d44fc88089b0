package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"CoinSentinel/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Trading.Symbol != "BTC/USD" {
		t.Errorf("default symbol = %q", cfg.Trading.Symbol)
	}
	if cfg.Trading.MinTradeInterval.Std() != 120*time.Second {
		t.Errorf("default min_trade_interval = %v", cfg.Trading.MinTradeInterval.Std())
	}
	if cfg.Trading.PollInterval.Std() != 15*time.Second {
		t.Errorf("default poll_interval = %v", cfg.Trading.PollInterval.Std())
	}
	if cfg.Strategy.Policy != string(model.PolicyHourlyLow) {
		t.Errorf("default policy = %q", cfg.Strategy.Policy)
	}
	if cfg.Strategy.WindowSize != 500 || cfg.Strategy.HistorySize != 30 {
		t.Errorf("default sizes = %d/%d", cfg.Strategy.WindowSize, cfg.Strategy.HistorySize)
	}
	if cfg.Strategy.SMAThreshold != 0.95 {
		t.Errorf("default sma_threshold = %v", cfg.Strategy.SMAThreshold)
	}
	if cfg.Strategy.HourLowDecline != -0.1 {
		t.Errorf("default hour_low_decline = %v", cfg.Strategy.HourLowDecline)
	}
	if cfg.Alpaca.Live {
		t.Error("must default to the paper endpoint")
	}
}

func TestLoad_YAMLDurations(t *testing.T) {
	path := writeConfig(t, `
trading:
  symbol: ETH/USD
  notional: 25
  min_trade_interval: 5m
  poll_interval: 30s
strategy:
  policy: sma
  refresh_interval: 10m
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Trading.Symbol != "ETH/USD" || cfg.Trading.Notional != 25 {
		t.Errorf("trading = %+v", cfg.Trading)
	}
	if cfg.Trading.MinTradeInterval.Std() != 5*time.Minute {
		t.Errorf("min_trade_interval = %v", cfg.Trading.MinTradeInterval.Std())
	}
	if cfg.Trading.PollInterval.Std() != 30*time.Second {
		t.Errorf("poll_interval = %v", cfg.Trading.PollInterval.Std())
	}
	if cfg.Strategy.RefreshInterval.Std() != 10*time.Minute {
		t.Errorf("refresh_interval = %v", cfg.Strategy.RefreshInterval.Std())
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, "trading:\n  poll_interval: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("ALPACA_SECRET_KEY", "env-secret")
	t.Setenv("SYMBOL", "LTC/USD")
	t.Setenv("NOTIONAL", "50")

	path := writeConfig(t, "alpaca:\n  api_key: file-key\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("env must win over file, got %q", cfg.Alpaca.APIKey)
	}
	if cfg.Trading.Symbol != "LTC/USD" || cfg.Trading.Notional != 50 {
		t.Errorf("trading = %+v", cfg.Trading)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		cfg.Alpaca.APIKey = "k"
		cfg.Alpaca.SecretKey = "s"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg := base()
	cfg.Alpaca.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing api key must fail validation")
	}

	cfg = base()
	cfg.Strategy.Policy = "momentum"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown policy must fail validation")
	}

	cfg = base()
	cfg.Strategy.LocalMinWindow = 2
	if err := cfg.Validate(); err == nil {
		t.Error("tiny local-min window must fail validation")
	}
}
