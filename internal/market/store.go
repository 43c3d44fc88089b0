package market

import (
	"errors"
	"sync"
	"time"

	"CoinSentinel/internal/model"
)

// ErrNoData signals that a value has not been observed yet. Callers must
// treat it as "skip this cycle", not as a failure.
var ErrNoData = errors.New("market data not yet available")

// Store owns all mutable market state shared between the streaming callbacks
// and the decision loop: the rolling minute window, the short price history
// and the hourly low tracker. Every mutation and the snapshot copy-out happen
// under one mutex; callers never hold it across network calls.
type Store struct {
	mu      sync.Mutex
	symbol  string
	window  *RollingWindow
	history *PriceHistory
	hourly  *HourlyLowTracker

	dailyLow      float64
	dailyHigh     float64
	hasDailyRange bool
}

// NewStore creates a Store for one symbol.
func NewStore(symbol string, windowCap, historyCap int) *Store {
	return &Store{
		symbol:  symbol,
		window:  NewRollingWindow(windowCap),
		history: NewPriceHistory(historyCap),
		hourly:  NewHourlyLowTracker(),
	}
}

// Seed pre-fills the store from a bounded historical fetch, oldest bar first.
func (s *Store) Seed(bars []model.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bars {
		s.window.Append(b.Close)
		s.history.Append(b.Close)
		s.hourly.Observe(b.Timestamp, b.Low)
	}
}

// ApplyBar ingests a newly completed minute bar from the stream.
func (s *Store) ApplyBar(b model.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.Append(b.Close)
	s.history.Append(b.Close)
	s.hourly.Observe(b.Timestamp, b.Low)
}

// ApplyCorrection amends the most recently ingested minute bar. Corrections
// never reach further back than the last bar.
func (s *Store) ApplyCorrection(b model.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.CorrectLast(b.Close)
	s.history.AmendLast(b.Close)
	s.hourly.Observe(b.Timestamp, b.Low)
}

// ApplyDailyBar folds a streamed daily bar into the tracked daily range.
func (s *Store) ApplyDailyBar(b model.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyLow = b.Low
	s.dailyHigh = b.High
	s.hasDailyRange = true
}

// SetDailyRange records an externally fetched 24h range.
func (s *Store) SetDailyRange(low, high float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyLow = low
	s.dailyHigh = high
	s.hasDailyRange = true
}

// ApplyFetchedHourLows merges externally fetched per-hour lows. Within a
// bucket the lower of fetched and real-time-observed wins.
func (s *Store) ApplyFetchedHourLows(lows []model.HourLow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range lows {
		s.hourly.ApplyFetched(h)
	}
}

// Snapshot copies the current state out under the lock. The caller is free
// to evaluate and perform I/O without touching the store again.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := model.Snapshot{
		Symbol:  s.symbol,
		History: s.history.Values(),
		TakenAt: time.Now(),
	}
	snap.Price, snap.HasPrice = s.window.Last()
	snap.MinuteMean, snap.HasMean = s.window.Mean()
	snap.CurHour, snap.HasCurHour = s.hourly.Current()
	snap.PrevHour, snap.HasPrevHour = s.hourly.Previous()
	snap.DailyLow = s.dailyLow
	snap.DailyHigh = s.dailyHigh
	snap.HasDailyRange = s.hasDailyRange
	return snap
}

// WindowLen reports how many minute closes the rolling window holds.
func (s *Store) WindowLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Len()
}
