package market

// RollingWindow is a fixed-capacity FIFO of minute closes with a cached sum,
// so the mean is available without rescanning on every read. Not safe for
// concurrent use; the Store serializes access.
type RollingWindow struct {
	values   []float64
	capacity int
	sum      float64
}

// NewRollingWindow creates an empty window. Capacity must be positive.
func NewRollingWindow(capacity int) *RollingWindow {
	if capacity <= 0 {
		capacity = 1
	}
	return &RollingWindow{
		values:   make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Append pushes a close, evicting the oldest value once over capacity.
func (w *RollingWindow) Append(close float64) {
	if len(w.values) == w.capacity {
		w.sum -= w.values[0]
		w.values = append(w.values[:0], w.values[1:]...)
	}
	w.values = append(w.values, close)
	w.sum += close
}

// CorrectLast replaces the most recent value. No-op on an empty window:
// a correction can only amend a bar that was appended.
func (w *RollingWindow) CorrectLast(close float64) {
	n := len(w.values)
	if n == 0 {
		return
	}
	w.sum += close - w.values[n-1]
	w.values[n-1] = close
}

// Mean returns the average of the current contents, or false when empty.
func (w *RollingWindow) Mean() (float64, bool) {
	if len(w.values) == 0 {
		return 0, false
	}
	return w.sum / float64(len(w.values)), true
}

// Last returns the most recently written value, or false when empty.
func (w *RollingWindow) Last() (float64, bool) {
	if len(w.values) == 0 {
		return 0, false
	}
	return w.values[len(w.values)-1], true
}

// Len returns the number of values currently held.
func (w *RollingWindow) Len() int { return len(w.values) }

// Values returns a copy of the current contents, oldest first.
func (w *RollingWindow) Values() []float64 {
	out := make([]float64, len(w.values))
	copy(out, w.values)
	return out
}
