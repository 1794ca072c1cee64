package signal

import (
	"fmt"
	"math"
)

// Series is the read-only view a plotting or export collaborator needs:
// an x axis in seconds, a y axis in sample units and a display title.
type Series interface {
	TimeLine() []float64
	Samples() []float64
	Label() string
}

// Signal is a finite, evenly sampled real-valued waveform together with its
// derived time line.
//
// The zero value is an empty signal without a sample rate; use [New] to
// build usable signals.
type Signal struct {
	samples    []float64
	timeLine   []float64
	sampleRate float64
	label      string
}

var _ Series = Signal{}

// New creates a signal from samples recorded at sampleRate (Hz).
//
// samples is copied and may be empty. The time line is derived as
// timeLine[i] = i * (1/sampleRate).
func New(samples []float64, sampleRate float64) (Signal, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return Signal{}, err
	}

	s := Signal{
		samples:    append([]float64(nil), samples...),
		sampleRate: sampleRate,
	}
	s.timeLine = timeLine(len(samples), sampleRate)

	return s, nil
}

// wrap takes ownership of samples without copying.
func wrap(samples []float64, sampleRate float64, label string) Signal {
	return Signal{
		samples:    samples,
		timeLine:   timeLine(len(samples), sampleRate),
		sampleRate: sampleRate,
		label:      label,
	}
}

func timeLine(n int, sampleRate float64) []float64 {
	interval := 1.0 / sampleRate
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * interval
	}
	return out
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0 and finite, got %v: %w", sampleRate, ErrInvalidParameter)
	}
	return nil
}

// WithLabel returns a copy of s carrying the given display label.
func (s Signal) WithLabel(label string) Signal {
	s.label = label
	return s
}

// Label returns the display label, empty if none was set.
func (s Signal) Label() string { return s.label }

// SampleRate returns the sample rate in Hz.
func (s Signal) SampleRate() float64 { return s.sampleRate }

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.samples) }

// At returns sample i. It panics if i is out of range.
func (s Signal) At(i int) float64 { return s.samples[i] }

// Samples returns a copy of the sample values.
func (s Signal) Samples() []float64 {
	return append([]float64(nil), s.samples...)
}

// TimeLine returns a copy of the sample timestamps in seconds.
func (s Signal) TimeLine() []float64 {
	return append([]float64(nil), s.timeLine...)
}

// Time returns the timestamp of sample i in seconds.
func (s Signal) Time(i int) float64 { return s.timeLine[i] }

// MaxTime returns the timestamp of the last sample.
func (s Signal) MaxTime() (float64, error) {
	if len(s.samples) == 0 {
		return 0, fmt.Errorf("max time: %w", ErrEmptySignal)
	}
	return s.timeLine[len(s.timeLine)-1], nil
}

// Duration returns Len()/SampleRate, the time span covered including the
// last sample period. It is 0 for the zero Signal.
func (s Signal) Duration() float64 {
	if s.sampleRate == 0 {
		return 0
	}
	return float64(len(s.samples)) / s.sampleRate
}

// String implements fmt.Stringer.
func (s Signal) String() string {
	label := s.label
	if label == "" {
		label = "signal"
	}
	return fmt.Sprintf("%s[%d samples @ %g Hz]", label, len(s.samples), s.sampleRate)
}
