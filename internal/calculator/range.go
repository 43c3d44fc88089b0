package calculator

import (
	"errors"
	"math"
	"time"

	"CoinSentinel/internal/model"
)

// CalculateRange scans the given bars and returns the overall high and low.
func CalculateRange(bars []model.Bar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// HourBucketLows groups bars by the hour they fall into and returns the
// lowest low per bucket, ordered oldest first.
func HourBucketLows(bars []model.Bar) []model.HourLow {
	var lows []model.HourLow
	for _, b := range bars {
		bucket := b.Timestamp.Truncate(time.Hour)
		if n := len(lows); n > 0 && lows[n-1].BucketStart.Equal(bucket) {
			if b.Low < lows[n-1].Low {
				lows[n-1].Low = b.Low
			}
			continue
		}
		lows = append(lows, model.HourLow{BucketStart: bucket, Low: b.Low})
	}
	return lows
}
