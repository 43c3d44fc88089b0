package market

import (
	"testing"
	"time"

	"CoinSentinel/internal/model"
)

func TestHourlyLowTracker_RealtimeLowSurvivesRefetch(t *testing.T) {
	tr := NewHourlyLowTracker()
	hour := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

	tr.Observe(hour.Add(5*time.Minute), 10)
	tr.Observe(hour.Add(20*time.Minute), 9)

	// A later external refetch reports 10 for the same bucket; the
	// real-time-observed 9 must win.
	tr.ApplyFetched(model.HourLow{BucketStart: hour, Low: 10})

	cur, ok := tr.Current()
	if !ok {
		t.Fatal("expected current hour low")
	}
	if cur.Low != 9 {
		t.Errorf("expected tracked low 9, got %.2f", cur.Low)
	}
}

func TestHourlyLowTracker_FetchedLowerWins(t *testing.T) {
	tr := NewHourlyLowTracker()
	hour := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

	tr.Observe(hour.Add(time.Minute), 10)
	tr.ApplyFetched(model.HourLow{BucketStart: hour, Low: 8.5})

	cur, _ := tr.Current()
	if cur.Low != 8.5 {
		t.Errorf("expected fetched lower low 8.5, got %.2f", cur.Low)
	}
}

func TestHourlyLowTracker_RollsOverOnNewHour(t *testing.T) {
	tr := NewHourlyLowTracker()
	h1 := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	h2 := h1.Add(time.Hour)

	tr.Observe(h1.Add(10*time.Minute), 100)
	tr.Observe(h1.Add(30*time.Minute), 95)
	tr.Observe(h2.Add(1*time.Minute), 97)

	cur, _ := tr.Current()
	if !cur.BucketStart.Equal(h2) || cur.Low != 97 {
		t.Errorf("expected current bucket %v low 97, got %v low %.2f", h2, cur.BucketStart, cur.Low)
	}
	prev, ok := tr.Previous()
	if !ok || !prev.BucketStart.Equal(h1) || prev.Low != 95 {
		t.Errorf("expected previous bucket %v low 95, got %v low %.2f (ok=%v)", h1, prev.BucketStart, prev.Low, ok)
	}
}

func TestHourlyLowTracker_BackfillKeepsLatestPreviousBucket(t *testing.T) {
	// Startup with a failed historical seed: the stream populates the
	// current hour first, then the first refresh merges a full day of
	// fetched buckets oldest-first. prev must end on the hour right
	// before cur, not stay pinned to the oldest fetched bucket.
	tr := NewHourlyLowTracker()
	cur := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	tr.Observe(cur.Add(3*time.Minute), 95)

	for i := 24; i >= 1; i-- {
		bucket := cur.Add(-time.Duration(i) * time.Hour)
		tr.ApplyFetched(model.HourLow{BucketStart: bucket, Low: 90 + float64(i)})
	}

	prev, ok := tr.Previous()
	if !ok {
		t.Fatal("expected a previous bucket after the backfill")
	}
	want := cur.Add(-time.Hour)
	if !prev.BucketStart.Equal(want) || prev.Low != 91 {
		t.Errorf("expected previous bucket %v low 91, got %v low %.2f", want, prev.BucketStart, prev.Low)
	}

	got, _ := tr.Current()
	if !got.BucketStart.Equal(cur) || got.Low != 95 {
		t.Errorf("backfill must not disturb the current bucket, got %v low %.2f", got.BucketStart, got.Low)
	}
}

func TestHourlyLowTracker_FetchSeedsPreviousBucket(t *testing.T) {
	tr := NewHourlyLowTracker()
	h1 := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	h2 := h1.Add(time.Hour)

	tr.Observe(h2.Add(time.Minute), 50)
	if _, ok := tr.Previous(); ok {
		t.Fatal("expected no previous bucket yet")
	}

	tr.ApplyFetched(model.HourLow{BucketStart: h1, Low: 48})
	prev, ok := tr.Previous()
	if !ok || prev.Low != 48 {
		t.Errorf("expected fetched previous low 48, got %.2f (ok=%v)", prev.Low, ok)
	}
}
