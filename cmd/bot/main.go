package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"CoinSentinel/internal/broker"
	"CoinSentinel/internal/calculator"
	"CoinSentinel/internal/config"
	"CoinSentinel/internal/market"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/scheduler"
	"CoinSentinel/internal/strategy"
	"CoinSentinel/internal/trader"
)

const logRetentionDays = 7

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	logFile := setupLogFile(cfg.Log.Dir)
	if logFile != nil {
		defer logFile.Close()
	}

	log.Println("[INFO] CoinSentinel starting...")
	endpoint := "paper"
	if cfg.Alpaca.Live {
		endpoint = "live"
	}
	log.Printf("[INFO] trading %s on the %s endpoint, policy=%s, notional=$%.2f",
		cfg.Trading.Symbol, endpoint, cfg.Strategy.Policy, cfg.Trading.Notional)

	// Init Alpaca clients
	data := broker.NewDataClient(cfg.Alpaca.APIKey, cfg.Alpaca.SecretKey, cfg.Trading.Symbol)
	trading := broker.NewTradingClient(cfg.Alpaca.APIKey, cfg.Alpaca.SecretKey, !cfg.Alpaca.Live)

	// Startup account report
	acct, err := trading.AccountSnapshot()
	if err != nil {
		log.Fatalf("[FATAL] fetch account: %v", err)
	}
	log.Printf("[INFO] account: cash=$%s portfolio=$%s buying_power=$%s",
		humanize.Commaf(acct.Cash), humanize.Commaf(acct.PortfolioValue), humanize.Commaf(acct.BuyingPower))

	// Init market store and seed it from history
	store := market.NewStore(cfg.Trading.Symbol, cfg.Strategy.WindowSize, cfg.Strategy.HistorySize)
	if bars, err := data.MinuteBars(cfg.Strategy.WindowSize); err != nil {
		log.Printf("[WARN] seed minute bars: %v, starting with an empty window", err)
	} else {
		store.Seed(bars)
		closes := calculator.ExtractCloses(bars)
		if sma, err := calculator.CalculateSMA(closes, len(closes)); err == nil {
			log.Printf("[INFO] seeded %d minute bars, mean %.2f", len(bars), sma)
		} else {
			log.Printf("[INFO] seeded %d minute bars", len(bars))
		}
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			log.Printf("[WARN] create database dir: %v", err)
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Println("[INFO] Telegram not configured, notifications disabled")
	}

	// Init session
	policy := model.Policy(cfg.Strategy.Policy)
	gate := trader.NewCooldownGate(cfg.Trading.MinTradeInterval.Std())
	session := trader.NewSession(trader.Config{
		Symbol:          cfg.Trading.Symbol,
		Notional:        cfg.Trading.Notional,
		Policy:          policy,
		Params:          strategyParams(cfg),
		RefreshInterval: cfg.Strategy.RefreshInterval.Std(),
	}, store, data, trading, gate, rec, tn)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the bar stream
	stream := broker.NewStream(cfg.Alpaca.APIKey, cfg.Alpaca.SecretKey, cfg.Trading.Symbol, broker.BarHandlers{
		OnBar:       store.ApplyBar,
		OnCorrected: store.ApplyCorrection,
		OnDaily:     store.ApplyDailyBar,
	})
	go stream.Run(ctx)

	// Init scheduler
	sched := scheduler.NewScheduler(session)
	if err := sched.RegisterAll(cfg.Trading.PollInterval.Std(), cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")

		startup := notifier.FormatStartup(cfg.Trading.Symbol, policy, cfg.Trading.Notional, &acct)
		go func() {
			if err := tn.SendWithRetry(ctx, startup, 3); err != nil {
				log.Printf("[ERROR] send startup notification: %v", err)
			}
		}()
	}

	log.Println("[INFO] CoinSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CoinSentinel stopped")
}

func strategyParams(cfg *config.Config) strategy.Params {
	return strategy.Params{
		SMAThreshold:       cfg.Strategy.SMAThreshold,
		PriceDropThreshold: cfg.Strategy.PriceDropThreshold,
		LocalMinWindow:     cfg.Strategy.LocalMinWindow,
		DailyLowProximity:  cfg.Strategy.DailyLowProximity,
		HourLowProximity:   cfg.Strategy.HourLowProximity,
		HourLowDecline:     cfg.Strategy.HourLowDecline,
	}
}

// setupLogFile tees the log to a per-day file and prunes old ones. Returns
// nil when file logging is unavailable; logging then stays on stderr only.
func setupLogFile(dir string) *os.File {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[WARN] create log dir: %v", err)
		return nil
	}

	name := fmt.Sprintf("coin_sentinel_%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("[WARN] open log file: %v", err)
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))

	cleanupOldLogs(dir)
	return f
}

func cleanupOldLogs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -logRetentionDays)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "coin_sentinel_") || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			log.Printf("[WARN] remove stale log %s: %v", e.Name(), err)
		} else {
			log.Printf("[INFO] removed stale log %s", e.Name())
		}
	}
}
