package market

import (
	"math"
	"testing"
)

func TestRollingWindow_EvictsOldestAtCapacity(t *testing.T) {
	w := NewRollingWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5, 6, 7} {
		w.Append(v)
	}
	got := w.Values()
	want := []float64{5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d]: expected %.0f, got %.0f", i, want[i], got[i])
		}
	}
}

func TestRollingWindow_MeanScenario(t *testing.T) {
	w := NewRollingWindow(3)
	w.Append(10)
	w.Append(20)
	w.Append(30)
	if m, ok := w.Mean(); !ok || m != 20 {
		t.Fatalf("expected mean 20, got %.2f (ok=%v)", m, ok)
	}

	w.Append(40)
	if m, _ := w.Mean(); m != 30 {
		t.Fatalf("after eviction expected mean 30, got %.2f", m)
	}

	w.CorrectLast(35)
	got := w.Values()
	want := []float64{20, 30, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d]: expected %.0f, got %.0f", i, want[i], got[i])
		}
	}
	m, _ := w.Mean()
	if math.Abs(m-28.333333) > 1e-4 {
		t.Errorf("expected mean 28.33, got %.4f", m)
	}
}

func TestRollingWindow_CorrectLastOnEmptyIsNoop(t *testing.T) {
	w := NewRollingWindow(5)
	w.CorrectLast(42)
	if w.Len() != 0 {
		t.Fatalf("expected empty window, got len %d", w.Len())
	}
	if _, ok := w.Mean(); ok {
		t.Error("expected no mean on empty window")
	}
}

func TestRollingWindow_CorrectLastReplacesOnlyNewest(t *testing.T) {
	w := NewRollingWindow(5)
	w.Append(100)
	w.Append(200)
	w.CorrectLast(150)
	got := w.Values()
	if got[0] != 100 || got[1] != 150 {
		t.Fatalf("expected [100 150], got %v", got)
	}
	if m, _ := w.Mean(); m != 125 {
		t.Errorf("expected mean 125, got %.2f", m)
	}
}

func TestRollingWindow_MeanMatchesSum(t *testing.T) {
	w := NewRollingWindow(50)
	vals := []float64{3.14, 2.71, 1.41, 9.99, 0.01, 123.456, 77.7}
	for _, v := range vals {
		w.Append(v)
	}
	// a few corrections on top
	w.CorrectLast(8.88)
	w.Append(4.2)

	contents := w.Values()
	sum := 0.0
	for _, v := range contents {
		sum += v
	}
	want := sum / float64(len(contents))
	if m, _ := w.Mean(); math.Abs(m-want) > 1e-9 {
		t.Errorf("cached mean %.12f drifted from %.12f", m, want)
	}
}
