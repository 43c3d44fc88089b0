package model

import "time"

// AccountSnapshot holds the account figures the evaluator and reports need.
type AccountSnapshot struct {
	Cash           float64
	PortfolioValue float64
	BuyingPower    float64
	DailyPL        float64
}

// Order is the confirmed result of a submitted notional market order.
type Order struct {
	ID             string
	ClientOrderID  string
	Symbol         string
	Notional       float64
	Status         string
	CreatedAt      time.Time
	FilledAvgPrice float64 // 0 until filled
}
