package sim

import (
	"math"

	"github.com/san-kum/driftfield/internal/field"
)

type Metric interface {
	Name() string
	Observe(st field.Stats)
	Value() float64
	Reset()
}

func DefaultMetrics() []Metric {
	return []Metric{
		NewMeanOffset(),
		NewPeakOffset(),
		NewDisturbed(),
	}
}

// MeanOffset averages the per-frame mean displacement from baseline.
type MeanOffset struct {
	sum     float64
	samples int
}

func NewMeanOffset() *MeanOffset { return &MeanOffset{} }

func (m *MeanOffset) Name() string { return "mean_offset" }

func (m *MeanOffset) Observe(st field.Stats) {
	m.sum += st.MeanOffset
	m.samples++
}

func (m *MeanOffset) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanOffset) Reset() { m.sum, m.samples = 0, 0 }

type PeakOffset struct {
	peak float64
}

func NewPeakOffset() *PeakOffset { return &PeakOffset{} }

func (m *PeakOffset) Name() string { return "peak_offset" }

func (m *PeakOffset) Observe(st field.Stats) { m.peak = math.Max(m.peak, st.MaxOffset) }

func (m *PeakOffset) Value() float64 { return m.peak }

func (m *PeakOffset) Reset() { m.peak = 0 }

// Disturbed is the average number of particles inside the pointer's
// influence radius per frame.
type Disturbed struct {
	total   int
	samples int
}

func NewDisturbed() *Disturbed { return &Disturbed{} }

func (m *Disturbed) Name() string { return "disturbed" }

func (m *Disturbed) Observe(st field.Stats) {
	m.total += st.Disturbed
	m.samples++
}

func (m *Disturbed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *Disturbed) Reset() { m.total, m.samples = 0, 0 }

// Recorder keeps every Nth frame's stats.
type Recorder struct {
	every   uint64
	samples []field.Stats
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: uint64(every)}
}

func (r *Recorder) OnFrame(st field.Stats) {
	if st.Tick%r.every == 0 {
		r.samples = append(r.samples, st)
	}
}

func (r *Recorder) Samples() []field.Stats { return r.samples }

func (r *Recorder) Reset() { r.samples = nil }
