package market

// PriceHistory is a short bounded FIFO of recent minute closes, kept only for
// local-minimum detection. Not safe for concurrent use.
type PriceHistory struct {
	values   []float64
	capacity int
}

// NewPriceHistory creates an empty history. Capacity must be positive.
func NewPriceHistory(capacity int) *PriceHistory {
	if capacity <= 0 {
		capacity = 1
	}
	return &PriceHistory{
		values:   make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Append records an observation, evicting the oldest at capacity.
func (h *PriceHistory) Append(price float64) {
	if len(h.values) == h.capacity {
		h.values = append(h.values[:0], h.values[1:]...)
	}
	h.values = append(h.values, price)
}

// AmendLast replaces the most recent observation. No-op when empty.
func (h *PriceHistory) AmendLast(price float64) {
	if n := len(h.values); n > 0 {
		h.values[n-1] = price
	}
}

// Values returns a copy of the observations, oldest first.
func (h *PriceHistory) Values() []float64 {
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

// Len returns the number of observations currently held.
func (h *PriceHistory) Len() int { return len(h.values) }
