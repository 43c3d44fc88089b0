package model

// Policy selects which buy-signal evaluation the engine runs.
type Policy string

const (
	PolicyHourlyLow Policy = "hourly_low"
	PolicySMA       Policy = "sma"
	PolicyLocalMin  Policy = "local_min"
)

// Condition is one evaluated sub-condition of a buy decision.
type Condition struct {
	Name   string
	Met    bool
	Detail string
}

// Decision is the output of a single evaluation cycle.
type Decision struct {
	Buy        bool
	Policy     Policy
	Conditions []Condition
	Reason     string // short summary of why the decision came out this way

	// Diagnostics, valid only when the corresponding input was available.
	DistFromHourLow float64 // fractional distance of price above current-hour low
	DistFromSMA     float64 // fractional distance of price from the minute mean
	TrendSlope      float64 // least-squares slope over the price history
	LocalMinHit     bool    // a local minimum was just confirmed
}
