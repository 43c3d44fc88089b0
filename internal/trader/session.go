package trader

import (
	"context"
	"fmt"
	"log"
	"time"

	"CoinSentinel/internal/calculator"
	"CoinSentinel/internal/market"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/strategy"
)

// MarketData is the slice of the historical data API the session needs.
type MarketData interface {
	HourBars(lookback time.Duration) ([]model.Bar, error)
}

// Broker is the slice of the trading API the session needs.
type Broker interface {
	AccountSnapshot() (model.AccountSnapshot, error)
	PlaceBuy(symbol string, notional float64) (*model.Order, error)
}

// Config holds the per-session trading parameters.
type Config struct {
	Symbol          string
	Notional        float64
	Policy          model.Policy
	Params          strategy.Params
	RefreshInterval time.Duration
}

// Session runs the decision cycle for one symbol. It is driven by the
// scheduler and is the only caller of the broker; the stream goroutine
// writes to the store independently.
type Session struct {
	cfg    Config
	store  *market.Store
	data   MarketData
	broker Broker
	gate   *CooldownGate
	rec    recorder.Recorder
	tn     *notifier.TelegramNotifier // nil when Telegram is disabled

	prevPrice   float64
	lastRefresh time.Time
	buysToday   int
	buysDay     time.Time
}

// NewSession wires a session. tn may be nil.
func NewSession(cfg Config, store *market.Store, data MarketData, broker Broker,
	gate *CooldownGate, rec recorder.Recorder, tn *notifier.TelegramNotifier) *Session {
	return &Session{
		cfg:    cfg,
		store:  store,
		data:   data,
		broker: broker,
		gate:   gate,
		rec:    rec,
		tn:     tn,
	}
}

// Cycle performs one full decision cycle: snapshot, refresh, evaluate,
// and possibly buy. Errors are logged and absorbed so the scheduler keeps
// ticking.
func (s *Session) Cycle() {
	snap := s.store.Snapshot()
	if !snap.HasPrice {
		log.Printf("[WARN] %s: no price data yet, skipping cycle", s.cfg.Symbol)
		s.recordCycle(&snap, nil, true, "no price data")
		return
	}

	if s.refreshRanges() {
		snap = s.store.Snapshot()
	}

	acct, err := s.broker.AccountSnapshot()
	hasAcct := err == nil
	if err != nil {
		log.Printf("[ERROR] fetch account: %v", err)
	}

	in := strategy.Input{
		Snapshot:   snap,
		PrevPrice:  s.prevPrice,
		Account:    acct,
		HasAccount: hasAcct,
	}
	dec := strategy.Evaluate(s.cfg.Policy, in, s.cfg.Params)
	s.prevPrice = snap.Price

	s.logAnalysis(&snap, dec)

	if !dec.Buy {
		s.recordCycle(&snap, dec, false, "")
		return
	}

	now := time.Now()
	if !s.gate.Ready(now) {
		remaining := s.gate.Remaining(now)
		log.Printf("[INFO] %s: buy signal suppressed, cooling down for another %s",
			s.cfg.Symbol, remaining.Round(time.Second))
		s.recordCycle(&snap, dec, true, fmt.Sprintf("cooldown, %s remaining", remaining.Round(time.Second)))
		return
	}
	if hasAcct && acct.BuyingPower < s.cfg.Notional {
		log.Printf("[WARN] %s: buy signal suppressed, buying power %.2f below notional %.2f",
			s.cfg.Symbol, acct.BuyingPower, s.cfg.Notional)
		s.recordCycle(&snap, dec, true, "insufficient buying power")
		return
	}

	s.recordCycle(&snap, dec, false, "")
	s.executeBuy(dec)
}

// refreshRanges periodically re-fetches hour bars to recompute the 24h range
// and backfill per-hour lows. Returns true when the store was updated.
func (s *Session) refreshRanges() bool {
	if !s.lastRefresh.IsZero() && time.Since(s.lastRefresh) < s.cfg.RefreshInterval {
		return false
	}

	bars, err := s.data.HourBars(24 * time.Hour)
	if err != nil {
		log.Printf("[WARN] refresh hour bars: %v", err)
		return false
	}
	s.lastRefresh = time.Now()
	if len(bars) == 0 {
		return false
	}

	high, low, err := calculator.CalculateRange(bars)
	if err != nil {
		return false
	}
	s.store.SetDailyRange(low, high)
	s.store.ApplyFetchedHourLows(calculator.HourBucketLows(bars))
	log.Printf("[INFO] %s: refreshed 24h range %.2f ~ %.2f from %d hour bars",
		s.cfg.Symbol, low, high, len(bars))
	return true
}

func (s *Session) logAnalysis(snap *model.Snapshot, dec *model.Decision) {
	line := fmt.Sprintf("[INFO] %s: price=%.2f", snap.Symbol, snap.Price)
	if snap.HasMean {
		line += fmt.Sprintf(" mean=%.2f", snap.MinuteMean)
	}
	if snap.HasCurHour {
		line += fmt.Sprintf(" hourLow=%.2f", snap.CurHour.Low)
	}
	if snap.HasPrevHour {
		line += fmt.Sprintf(" prevHourLow=%.2f", snap.PrevHour.Low)
	}
	line += fmt.Sprintf(" trend=%+.4f policy=%s buy=%v (%s)", dec.TrendSlope, dec.Policy, dec.Buy, dec.Reason)
	log.Print(line)
}

func (s *Session) executeBuy(dec *model.Decision) {
	order, err := s.broker.PlaceBuy(s.cfg.Symbol, s.cfg.Notional)
	if err != nil {
		// The gate stays open: an unconfirmed submission must not start
		// the cooldown.
		log.Printf("[ERROR] place order: %v", err)
		return
	}

	now := time.Now()
	s.gate.Arm(now)
	s.bumpBuyCount(now)
	log.Printf("[INFO] %s: bought $%.2f notional, order %s (%s), next trade possible in %s",
		order.Symbol, order.Notional, order.ID, order.Status, s.gate.Interval())

	if err := s.rec.RecordOrder(&recorder.OrderRecord{
		OrderID:       order.ID,
		ClientOrderID: order.ClientOrderID,
		Symbol:        order.Symbol,
		Notional:      order.Notional,
		Status:        order.Status,
		Reason:        dec.Reason,
	}); err != nil {
		log.Printf("[WARN] record order: %v", err)
	}

	if s.tn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.tn.SendWithRetry(ctx, notifier.FormatOrderNotification(order, dec), 3); err != nil {
			log.Printf("[ERROR] notify order: %v", err)
		}
	}
}

func (s *Session) recordCycle(snap *model.Snapshot, dec *model.Decision, skipped bool, skipReason string) {
	rec := &recorder.CycleRecord{
		Symbol:     snap.Symbol,
		Price:      snap.Price,
		MinuteMean: snap.MinuteMean,
		DailyLow:   snap.DailyLow,
		DailyHigh:  snap.DailyHigh,
		Skipped:    skipped,
		SkipReason: skipReason,
	}
	if snap.HasCurHour {
		rec.CurHourLow = snap.CurHour.Low
	}
	if snap.HasPrevHour {
		rec.PrevHourLow = snap.PrevHour.Low
	}
	if dec != nil {
		rec.Policy = dec.Policy
		rec.Buy = dec.Buy
		rec.Reason = dec.Reason
		rec.TrendSlope = dec.TrendSlope
	}
	if err := s.rec.RecordCycle(rec); err != nil {
		log.Printf("[WARN] record cycle: %v", err)
	}
}

func (s *Session) bumpBuyCount(now time.Time) {
	day := now.Truncate(24 * time.Hour)
	if !day.Equal(s.buysDay) {
		s.buysDay = day
		s.buysToday = 0
	}
	s.buysToday++
}

// DailySummary sends the end-of-day report and resets the daily buy counter.
func (s *Session) DailySummary() {
	if s.tn == nil {
		return
	}
	snap := s.store.Snapshot()
	var acct *model.AccountSnapshot
	if a, err := s.broker.AccountSnapshot(); err == nil {
		acct = &a
	} else {
		log.Printf("[WARN] daily summary account fetch: %v", err)
	}

	msg := notifier.FormatDailySummary(s.cfg.Symbol, &snap, acct, s.buysToday)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.tn.SendWithRetry(ctx, msg, 3); err != nil {
		log.Printf("[ERROR] send daily summary: %v", err)
	}
	s.buysToday = 0
}

// StatusMessage formats the current market snapshot for the /status command.
func (s *Session) StatusMessage() string {
	snap := s.store.Snapshot()
	return notifier.FormatStatus(&snap)
}

// AccountMessage formats the live account state for the /account command.
func (s *Session) AccountMessage() string {
	acct, err := s.broker.AccountSnapshot()
	if err != nil {
		return fmt.Sprintf("账户查询失败: %v", err)
	}
	return notifier.FormatAccount(&acct)
}

// CooldownMessage formats the gate state for the /cooldown command.
func (s *Session) CooldownMessage() string {
	now := time.Now()
	last, traded := s.gate.LastTrade()
	return notifier.FormatCooldown(s.gate.Remaining(now), s.gate.Interval(), last, traded)
}
