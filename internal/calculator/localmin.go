package calculator

// IsLocalMinimum reports whether prices[i] is no higher than every point
// within a symmetric neighborhood of radius window/2 on both sides.
// Indexes without a full half-window on either side are never minima.
func IsLocalMinimum(prices []float64, i, window int) bool {
	if window <= 0 {
		return false
	}
	radius := window / 2
	if i-radius < 0 || i+radius >= len(prices) {
		return false
	}
	for j := i - radius; j <= i+radius; j++ {
		if prices[j] < prices[i] {
			return false
		}
	}
	return true
}

// LocalMinima returns the values of all confirmed local minima in order.
func LocalMinima(prices []float64, window int) []float64 {
	var minima []float64
	for i := range prices {
		if IsLocalMinimum(prices, i, window) {
			minima = append(minima, prices[i])
		}
	}
	return minima
}

// JustConfirmedMinimum reports whether the newest confirmable index (the last
// one with a full half-window after it) is a local minimum.
func JustConfirmedMinimum(prices []float64, window int) bool {
	i := len(prices) - 1 - window/2
	return i >= 0 && IsLocalMinimum(prices, i, window)
}

// StrictlyIncreasing reports whether the values rise from oldest to newest.
// Fewer than two values is false: a single minimum is not a trend.
func StrictlyIncreasing(values []float64) bool {
	if len(values) < 2 {
		return false
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return false
		}
	}
	return true
}
