package recorder

import "CoinSentinel/internal/model"

// CycleRecord captures one decision cycle, including skipped ones.
type CycleRecord struct {
	Symbol      string
	Price       float64
	MinuteMean  float64
	CurHourLow  float64
	PrevHourLow float64
	DailyLow    float64
	DailyHigh   float64
	TrendSlope  float64
	Policy      model.Policy
	Buy         bool
	Reason      string
	Skipped     bool
	SkipReason  string
}

// OrderRecord captures a confirmed order submission.
type OrderRecord struct {
	OrderID       string
	ClientOrderID string
	Symbol        string
	Notional      float64
	Status        string
	Reason        string
}

// Recorder persists the decision history for later analysis.
type Recorder interface {
	RecordCycle(rec *CycleRecord) error
	RecordOrder(rec *OrderRecord) error
	Close() error
}
