package strategy

import (
	"fmt"

	"CoinSentinel/internal/calculator"
	"CoinSentinel/internal/model"
)

// Params holds the tunable thresholds for all policies.
type Params struct {
	SMAThreshold       float64 // buy below mean * threshold (sma policy)
	PriceDropThreshold float64 // percent drop from previous price (sma policy)
	LocalMinWindow     int     // symmetric window for local-minimum detection
	DailyLowProximity  float64 // fractional band above the daily low (local_min policy)
	HourLowProximity   float64 // fractional band above the current-hour low (hourly_low policy)
	HourLowDecline     float64 // hour-over-hour low change threshold, percent (hourly_low policy)
}

// DefaultParams mirrors the shipped configuration defaults.
func DefaultParams() Params {
	return Params{
		SMAThreshold:       0.95,
		PriceDropThreshold: 1.0,
		LocalMinWindow:     5,
		DailyLowProximity:  0.005,
		HourLowProximity:   0.005,
		HourLowDecline:     -0.1,
	}
}

// Input is everything a policy may look at for one cycle. All of it is
// copied data; evaluation performs no I/O and mutates nothing.
type Input struct {
	Snapshot   model.Snapshot
	PrevPrice  float64 // last cycle's price, 0 when none
	Account    model.AccountSnapshot
	HasAccount bool
}

// Evaluate runs the selected policy over the input. When any required input
// is missing the decision declines to buy rather than erroring.
func Evaluate(policy model.Policy, in Input, p Params) *model.Decision {
	d := &model.Decision{Policy: policy}

	if !in.Snapshot.HasPrice {
		d.Reason = "no price observed yet"
		return d
	}
	if !in.HasAccount {
		d.Reason = "account snapshot unavailable"
		return d
	}

	// Shared diagnostics.
	d.TrendSlope = calculator.TrendSlope(in.Snapshot.History)
	d.LocalMinHit = calculator.JustConfirmedMinimum(in.Snapshot.History, p.LocalMinWindow)
	if in.Snapshot.HasMean && in.Snapshot.MinuteMean > 0 {
		d.DistFromSMA = in.Snapshot.Price/in.Snapshot.MinuteMean - 1
	}
	if in.Snapshot.HasCurHour && in.Snapshot.CurHour.Low > 0 {
		d.DistFromHourLow = (in.Snapshot.Price - in.Snapshot.CurHour.Low) / in.Snapshot.CurHour.Low
	}

	switch policy {
	case model.PolicySMA:
		evaluateSMA(d, in, p)
	case model.PolicyLocalMin:
		evaluateLocalMin(d, in, p)
	case model.PolicyHourlyLow:
		evaluateHourlyLow(d, in, p)
	default:
		d.Reason = fmt.Sprintf("unknown policy %q", policy)
	}
	return d
}
