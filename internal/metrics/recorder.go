package metrics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects named counters and rolling sample windows. Samples
// are exported to prometheus histograms and kept in bounded in-process
// windows the degrade evaluator reads back.
type Recorder struct {
	mu         sync.Mutex
	windowSize int

	windows    map[string][]float64
	counters   map[string]prometheus.Counter
	histograms map[string]prometheus.Histogram
	registry   *prometheus.Registry
}

// NewRecorder builds a recorder; windowSize <= 0 defaults to 256.
func NewRecorder(windowSize int) *Recorder {
	if windowSize <= 0 {
		windowSize = 256
	}
	return &Recorder{
		windowSize: windowSize,
		windows:    make(map[string][]float64),
		counters:   make(map[string]prometheus.Counter),
		histograms: make(map[string]prometheus.Histogram),
		registry:   prometheus.NewRegistry(),
	}
}

// Registry exposes the prometheus registry for an external exporter.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Inc bumps a named counter.
func (r *Recorder) Inc(name string) {
	r.mu.Lock()
	c, ok := r.counters[name]
	if !ok {
		c = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asterion",
			Name:      name + "_total",
		})
		r.registry.MustRegister(c)
		r.counters[name] = c
	}
	r.mu.Unlock()
	c.Inc()
}

// Observe appends a sample to the named rolling window and the matching
// histogram. Old samples fall off once the window is full.
func (r *Recorder) Observe(name string, value float64) {
	r.mu.Lock()
	h, ok := r.histograms[name]
	if !ok {
		h = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "asterion",
			Name:      name,
			Buckets:   prometheus.DefBuckets,
		})
		r.registry.MustRegister(h)
		r.histograms[name] = h
	}

	w := append(r.windows[name], value)
	if len(w) > r.windowSize {
		w = w[len(w)-r.windowSize:]
	}
	r.windows[name] = w
	r.mu.Unlock()

	h.Observe(value)
}

// ObserveLatency records a duration in seconds.
func (r *Recorder) ObserveLatency(name string, d time.Duration) {
	r.Observe(name, d.Seconds())
}

// Count reports how many samples the named window currently holds.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows[name])
}

// Values returns a copy of the named window's samples.
func (r *Recorder) Values(name string) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.windows[name]))
	copy(out, r.windows[name])
	return out
}

// Mean returns the window's arithmetic mean, zero when empty.
func (r *Recorder) Mean(name string) float64 {
	values := r.Values(name)
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile returns the nearest-rank percentile of the window,
// zero when empty. p is in (0, 100].
func (r *Recorder) Percentile(name string, p float64) float64 {
	values := r.Values(name)
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	rank := int(math.Ceil(p / 100 * float64(len(values))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(values) {
		rank = len(values)
	}
	return values[rank-1]
}
