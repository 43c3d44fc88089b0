package market

import (
	"time"

	"CoinSentinel/internal/model"
)

// HourlyLowTracker keeps the low-water-mark of the current hour bucket and
// the previous hour's low. Real-time observations apply immediately; external
// refetches may only lower a bucket, never raise it, so a lower low seen live
// survives a later fetch that missed it. Not safe for concurrent use.
type HourlyLowTracker struct {
	cur     model.HourLow
	prev    model.HourLow
	hasCur  bool
	hasPrev bool
}

// NewHourlyLowTracker creates an empty tracker.
func NewHourlyLowTracker() *HourlyLowTracker {
	return &HourlyLowTracker{}
}

// Observe feeds a real-time price. Rolls the buckets over when the hour
// changes and records a new low immediately when undercut.
func (t *HourlyLowTracker) Observe(ts time.Time, price float64) {
	bucket := ts.Truncate(time.Hour)
	switch {
	case !t.hasCur:
		t.cur = model.HourLow{BucketStart: bucket, Low: price}
		t.hasCur = true
	case bucket.After(t.cur.BucketStart):
		t.prev = t.cur
		t.hasPrev = true
		t.cur = model.HourLow{BucketStart: bucket, Low: price}
	case bucket.Equal(t.cur.BucketStart):
		if price < t.cur.Low {
			t.cur.Low = price
		}
	case t.hasPrev && bucket.Equal(t.prev.BucketStart):
		// late sample for the previous hour
		if price < t.prev.Low {
			t.prev.Low = price
		}
	}
}

// ApplyFetched merges an externally fetched low for a bucket. A fetched value
// never overwrites a lower tracked low for the same bucket.
func (t *HourlyLowTracker) ApplyFetched(h model.HourLow) {
	bucket := h.BucketStart.Truncate(time.Hour)
	switch {
	case t.hasCur && bucket.Equal(t.cur.BucketStart):
		if h.Low < t.cur.Low {
			t.cur.Low = h.Low
		}
	case t.hasPrev && bucket.Equal(t.prev.BucketStart):
		if h.Low < t.prev.Low {
			t.prev.Low = h.Low
		}
	case !t.hasCur:
		t.cur = model.HourLow{BucketStart: bucket, Low: h.Low}
		t.hasCur = true
	case bucket.After(t.cur.BucketStart):
		t.prev = t.cur
		t.hasPrev = true
		t.cur = model.HourLow{BucketStart: bucket, Low: h.Low}
	case bucket.Before(t.cur.BucketStart):
		// prev must be the latest bucket before cur, so a newer fetched
		// bucket replaces an older stored one.
		if !t.hasPrev || bucket.After(t.prev.BucketStart) {
			t.prev = model.HourLow{BucketStart: bucket, Low: h.Low}
			t.hasPrev = true
		}
	}
}

// Current returns the tracked low for the current hour bucket.
func (t *HourlyLowTracker) Current() (model.HourLow, bool) {
	return t.cur, t.hasCur
}

// Previous returns the tracked low for the previous hour bucket.
func (t *HourlyLowTracker) Previous() (model.HourLow, bool) {
	return t.prev, t.hasPrev
}
