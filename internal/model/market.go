package model

import "time"

// Bar represents a single OHLCV price sample.
type Bar struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// HourLow is the low-water-mark for one hour bucket.
type HourLow struct {
	BucketStart time.Time
	Low         float64
}

// Snapshot is the point-in-time market state handed to the signal evaluator.
// It is copied out of the shared store under lock and never aliases live state.
type Snapshot struct {
	Symbol        string
	Price         float64
	HasPrice      bool
	MinuteMean    float64
	HasMean       bool
	History       []float64 // recent minute closes, oldest first
	CurHour       HourLow
	HasCurHour    bool
	PrevHour      HourLow
	HasPrevHour   bool
	DailyLow      float64
	DailyHigh     float64
	HasDailyRange bool
	TakenAt       time.Time
}
