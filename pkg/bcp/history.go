package bcp

import "time"

// HistorySample is one (timestamp, primalBound, dualBound) entry (spec.md
// §3, History).
type HistorySample struct {
	Time   time.Time
	Primal float64
	Dual   float64
}

// History is an append-only log of bound samples, updated whenever
// either bound improves (spec.md §3). It is monotone in time and in each
// bound (spec.md §8 invariant 8).
type History struct {
	samples []HistorySample
}

// NewHistory returns an empty History.
func NewHistory() *History { return &History{} }

// Record appends a sample. Callers (Master.primalBound/dualBound) are
// responsible for only calling this on an actual improvement, which is
// what keeps the log monotone in each bound.
func (h *History) Record(t time.Time, primal, dual float64) {
	h.samples = append(h.samples, HistorySample{Time: t, Primal: primal, Dual: dual})
}

// Len returns the number of recorded samples.
func (h *History) Len() int { return len(h.samples) }

// At returns the sample at position i, in insertion (and therefore time)
// order.
func (h *History) At(i int) HistorySample { return h.samples[i] }

// Last returns the most recent sample, or the zero value and false if
// the history is empty.
func (h *History) Last() (HistorySample, bool) {
	if len(h.samples) == 0 {
		return HistorySample{}, false
	}
	return h.samples[len(h.samples)-1], true
}
