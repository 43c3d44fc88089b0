package calculator

import "gonum.org/v1/gonum/stat"

// TrendSlope returns the least-squares slope of the prices against their
// index. Positive means rising, negative means falling. Returns 0 when there
// are fewer than two points.
func TrendSlope(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	xs := make([]float64, len(prices))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, prices, nil, false)
	return slope
}
