package metrics

import (
	"testing"
	"time"
)

func TestRecorderWindowEviction(t *testing.T) {
	r := NewRecorder(3)

	for i := 1; i <= 5; i++ {
		r.Observe("latency", float64(i))
	}

	if got := r.Count("latency"); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
	values := r.Values("latency")
	want := []float64{3, 4, 5}
	for i, v := range want {
		if values[i] != v {
			t.Errorf("Values[%d] = %v, want %v", i, values[i], v)
		}
	}
}

func TestRecorderMean(t *testing.T) {
	r := NewRecorder(0)

	if got := r.Mean("empty"); got != 0 {
		t.Errorf("Mean of empty window = %v, want 0", got)
	}

	r.Observe("cost", 1)
	r.Observe("cost", 2)
	r.Observe("cost", 6)
	if got := r.Mean("cost"); got != 3 {
		t.Errorf("Mean = %v, want 3", got)
	}
}

func TestRecorderPercentileNearestRank(t *testing.T) {
	r := NewRecorder(0)
	for _, v := range []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} {
		r.Observe("latency", v)
	}

	cases := []struct {
		p    float64
		want float64
	}{
		{50, 50},
		{95, 100},
		{90, 90},
		{100, 100},
		{1, 10},
	}
	for _, tc := range cases {
		if got := r.Percentile("latency", tc.p); got != tc.want {
			t.Errorf("Percentile(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}

	if got := r.Percentile("missing", 95); got != 0 {
		t.Errorf("Percentile of empty window = %v, want 0", got)
	}
}

func TestRecorderObserveLatency(t *testing.T) {
	r := NewRecorder(0)
	r.ObserveLatency("rag", 1500*time.Millisecond)

	values := r.Values("rag")
	if len(values) != 1 || values[0] != 1.5 {
		t.Errorf("Values = %v, want [1.5]", values)
	}
}

func TestRecorderIncRegistersOnce(t *testing.T) {
	r := NewRecorder(0)

	// A second Inc on the same name must reuse the registered counter
	// instead of panicking on duplicate registration.
	r.Inc("answers")
	r.Inc("answers")

	if r.Registry() == nil {
		t.Fatal("Registry returned nil")
	}
}
