package strategy

import (
	"testing"
	"time"

	"CoinSentinel/internal/model"
)

func baseInput(price float64) Input {
	return Input{
		Snapshot: model.Snapshot{
			Symbol:   "BTC/USD",
			Price:    price,
			HasPrice: true,
			History:  []float64{price, price, price, price, price},
			TakenAt:  time.Now(),
		},
		Account:    model.AccountSnapshot{BuyingPower: 1000},
		HasAccount: true,
	}
}

func TestEvaluate_DeclinesWithoutPrice(t *testing.T) {
	in := baseInput(100)
	in.Snapshot.HasPrice = false
	for _, pol := range []model.Policy{model.PolicySMA, model.PolicyLocalMin, model.PolicyHourlyLow} {
		d := Evaluate(pol, in, DefaultParams())
		if d.Buy {
			t.Errorf("%s: must decline without a price", pol)
		}
	}
}

func TestEvaluate_DeclinesWithoutAccount(t *testing.T) {
	in := baseInput(100)
	in.HasAccount = false
	d := Evaluate(model.PolicyHourlyLow, in, DefaultParams())
	if d.Buy {
		t.Error("must decline without an account snapshot")
	}
}

func TestSMA_BuyBelowThreshold(t *testing.T) {
	in := baseInput(94)
	in.Snapshot.MinuteMean = 100
	in.Snapshot.HasMean = true

	d := Evaluate(model.PolicySMA, in, DefaultParams())
	if !d.Buy {
		t.Errorf("price 94 vs sma 100 at threshold 0.95 should buy, reason=%s", d.Reason)
	}
}

func TestSMA_NoBuyInsideThreshold(t *testing.T) {
	in := baseInput(96)
	in.Snapshot.MinuteMean = 100
	in.Snapshot.HasMean = true

	d := Evaluate(model.PolicySMA, in, DefaultParams())
	if d.Buy {
		t.Errorf("price 96 vs sma 100 without a qualifying drop must not buy, reason=%s", d.Reason)
	}
}

func TestSMA_BuyOnPriceDrop(t *testing.T) {
	in := baseInput(99)
	in.Snapshot.MinuteMean = 100
	in.Snapshot.HasMean = true
	in.PrevPrice = 100.5 // ~1.49% drop

	d := Evaluate(model.PolicySMA, in, DefaultParams())
	if !d.Buy {
		t.Errorf("1.49%% drop should trigger the drop condition, reason=%s", d.Reason)
	}
}

func TestSMA_ZeroPrevPriceSuppressesDrop(t *testing.T) {
	in := baseInput(99)
	in.Snapshot.MinuteMean = 100
	in.Snapshot.HasMean = true
	in.PrevPrice = 0

	d := Evaluate(model.PolicySMA, in, DefaultParams())
	if d.Buy {
		t.Error("absent previous price must suppress the drop condition, not divide by zero")
	}
}

func TestHourlyLow_BuyNearDecliningLow(t *testing.T) {
	hour := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	in := baseInput(100.2)
	in.Snapshot.CurHour = model.HourLow{BucketStart: hour, Low: 100}
	in.Snapshot.HasCurHour = true
	in.Snapshot.PrevHour = model.HourLow{BucketStart: hour.Add(-time.Hour), Low: 101}
	in.Snapshot.HasPrevHour = true

	d := Evaluate(model.PolicyHourlyLow, in, DefaultParams())
	// 0.2% above the hour low, hour-over-hour change ~ -0.99%
	if !d.Buy {
		t.Errorf("expected buy near a declining hour low, reason=%s", d.Reason)
	}
}

func TestHourlyLow_NoBuyFarFromLow(t *testing.T) {
	hour := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	in := baseInput(102)
	in.Snapshot.CurHour = model.HourLow{BucketStart: hour, Low: 100}
	in.Snapshot.HasCurHour = true
	in.Snapshot.PrevHour = model.HourLow{BucketStart: hour.Add(-time.Hour), Low: 101}
	in.Snapshot.HasPrevHour = true

	d := Evaluate(model.PolicyHourlyLow, in, DefaultParams())
	if d.Buy {
		t.Errorf("2%% above the hour low must not buy, reason=%s", d.Reason)
	}
}

func TestHourlyLow_ProximityAloneIsNotEnough(t *testing.T) {
	hour := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	in := baseInput(100.2)
	in.Snapshot.History = []float64{101, 100.8, 100.6, 100.4, 100.2} // still falling, nothing confirmed
	in.Snapshot.CurHour = model.HourLow{BucketStart: hour, Low: 100}
	in.Snapshot.HasCurHour = true
	in.Snapshot.PrevHour = model.HourLow{BucketStart: hour.Add(-time.Hour), Low: 100}
	in.Snapshot.HasPrevHour = true // flat hour-over-hour

	d := Evaluate(model.PolicyHourlyLow, in, DefaultParams())
	if d.Buy {
		t.Errorf("flat lows with no local minimum must not buy, reason=%s", d.Reason)
	}
}

func TestHourlyLow_LocalMinimumSatisfiesSecondLeg(t *testing.T) {
	hour := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	in := baseInput(100.2)
	in.Snapshot.History = []float64{101, 100.5, 100, 100.1, 100.2}
	in.Snapshot.CurHour = model.HourLow{BucketStart: hour, Low: 100}
	in.Snapshot.HasCurHour = true
	// previous hour unavailable: decline leg suppressed, local minimum carries

	d := Evaluate(model.PolicyHourlyLow, in, DefaultParams())
	if !d.LocalMinHit {
		t.Fatal("expected a just-confirmed local minimum in the history")
	}
	if !d.Buy {
		t.Errorf("proximity plus confirmed local minimum should buy, reason=%s", d.Reason)
	}
}

func TestLocalMin_BuyNearDailyLow(t *testing.T) {
	in := baseInput(100.3)
	in.Snapshot.DailyLow = 100
	in.Snapshot.DailyHigh = 110
	in.Snapshot.HasDailyRange = true

	d := Evaluate(model.PolicyLocalMin, in, DefaultParams())
	if !d.Buy {
		t.Errorf("0.3%% above the daily low should buy, reason=%s", d.Reason)
	}
}

func TestLocalMin_RisingMinimaBuy(t *testing.T) {
	in := baseInput(100.4)
	// two confirmed minima, 99.8 then 100.2, rising
	in.Snapshot.History = []float64{101, 100.2, 99.8, 100.4, 100.9, 100.5, 100.2, 100.3, 100.4}
	in.Snapshot.DailyLow = 95
	in.Snapshot.DailyHigh = 110
	in.Snapshot.HasDailyRange = true

	d := Evaluate(model.PolicyLocalMin, in, DefaultParams())
	if !d.Buy {
		t.Errorf("rising confirmed minima should buy, reason=%s", d.Reason)
	}
}

func TestDecision_ConditionBreakdownPresent(t *testing.T) {
	in := baseInput(100)
	in.Snapshot.MinuteMean = 100
	in.Snapshot.HasMean = true

	d := Evaluate(model.PolicySMA, in, DefaultParams())
	if len(d.Conditions) != 2 {
		t.Fatalf("expected 2 conditions in the breakdown, got %d", len(d.Conditions))
	}
	for _, c := range d.Conditions {
		if c.Detail == "" {
			t.Errorf("condition %s is missing its detail", c.Name)
		}
	}
}
