package strategy

import (
	"fmt"

	"CoinSentinel/internal/calculator"
	"CoinSentinel/internal/model"
)

// evaluateSMA buys when price sits below the minute-window mean by the
// configured factor, or when the drop from the previous observation meets
// the percentage threshold. An absent mean or previous price suppresses the
// corresponding sub-condition.
func evaluateSMA(d *model.Decision, in Input, p Params) {
	price := in.Snapshot.Price

	below := model.Condition{Name: "below_sma"}
	if in.Snapshot.HasMean {
		below.Met = price < in.Snapshot.MinuteMean*p.SMAThreshold
		below.Detail = fmt.Sprintf("price %.2f vs mean %.2f x %.2f", price, in.Snapshot.MinuteMean, p.SMAThreshold)
	} else {
		below.Detail = "mean unavailable"
	}

	drop := model.Condition{Name: "price_drop"}
	if in.PrevPrice > 0 {
		dropPct := (in.PrevPrice - price) / in.PrevPrice * 100
		drop.Met = dropPct >= p.PriceDropThreshold
		drop.Detail = fmt.Sprintf("dropped %.2f%% from %.2f", dropPct, in.PrevPrice)
	} else {
		drop.Detail = "no previous price"
	}

	d.Conditions = append(d.Conditions, below, drop)
	d.Buy = below.Met || drop.Met
	d.Reason = summarize(d.Conditions, d.Buy)
}

// evaluateLocalMin buys when price is within a band of the recent daily low,
// or when a local minimum was just confirmed and the sequence of confirmed
// minima rises from oldest to newest.
func evaluateLocalMin(d *model.Decision, in Input, p Params) {
	price := in.Snapshot.Price

	nearLow := model.Condition{Name: "near_daily_low"}
	if in.Snapshot.HasDailyRange && in.Snapshot.DailyLow > 0 {
		dist := (price - in.Snapshot.DailyLow) / in.Snapshot.DailyLow
		nearLow.Met = dist >= 0 && dist <= p.DailyLowProximity
		nearLow.Detail = fmt.Sprintf("%.3f%% above daily low %.2f", dist*100, in.Snapshot.DailyLow)
	} else {
		nearLow.Detail = "daily range unavailable"
	}

	rebound := model.Condition{Name: "rising_local_minima"}
	if d.LocalMinHit {
		minima := calculator.LocalMinima(in.Snapshot.History, p.LocalMinWindow)
		rebound.Met = calculator.StrictlyIncreasing(minima)
		rebound.Detail = fmt.Sprintf("local minimum confirmed, %d retained", len(minima))
	} else {
		rebound.Detail = "no local minimum confirmed"
	}

	d.Conditions = append(d.Conditions, nearLow, rebound)
	d.Buy = nearLow.Met || rebound.Met
	d.Reason = summarize(d.Conditions, d.Buy)
}

// evaluateHourlyLow is the canonical policy: buy when price hugs the tracked
// current-hour low and either the hour-over-hour low is declining past the
// threshold or a local minimum was just confirmed.
func evaluateHourlyLow(d *model.Decision, in Input, p Params) {
	price := in.Snapshot.Price

	nearLow := model.Condition{Name: "near_hour_low"}
	if in.Snapshot.HasCurHour && in.Snapshot.CurHour.Low > 0 {
		dist := (price - in.Snapshot.CurHour.Low) / in.Snapshot.CurHour.Low
		nearLow.Met = dist >= 0 && dist <= p.HourLowProximity
		nearLow.Detail = fmt.Sprintf("%.3f%% above hour low %.2f", dist*100, in.Snapshot.CurHour.Low)
	} else {
		nearLow.Detail = "hour low unavailable"
	}

	declining := model.Condition{Name: "hour_low_declining"}
	if in.Snapshot.HasCurHour && in.Snapshot.HasPrevHour && in.Snapshot.PrevHour.Low > 0 {
		changePct := (in.Snapshot.CurHour.Low - in.Snapshot.PrevHour.Low) / in.Snapshot.PrevHour.Low * 100
		declining.Met = changePct <= p.HourLowDecline
		declining.Detail = fmt.Sprintf("hour-over-hour %.3f%%", changePct)
	} else {
		declining.Detail = "previous hour low unavailable"
	}

	localMin := model.Condition{
		Name: "local_minimum",
		Met:  d.LocalMinHit,
	}
	if d.LocalMinHit {
		localMin.Detail = "local minimum just confirmed"
	} else {
		localMin.Detail = "no local minimum confirmed"
	}

	d.Conditions = append(d.Conditions, nearLow, declining, localMin)
	d.Buy = nearLow.Met && (declining.Met || localMin.Met)
	d.Reason = summarize(d.Conditions, d.Buy)
}

func summarize(conds []model.Condition, buy bool) string {
	if !buy {
		return "no buy signal"
	}
	met := ""
	for _, c := range conds {
		if !c.Met {
			continue
		}
		if met != "" {
			met += "+"
		}
		met += c.Name
	}
	return "buy: " + met
}
