package stats

import (
	"fmt"
	"math"

	"github.com/cwbudde/fsksim/dsp/core"
	"github.com/cwbudde/fsksim/dsp/signal"
)

// Levels holds time-domain statistics of one signal.
type Levels struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	CrestFactor   float64 // peak / RMS, 0 for silence
	Energy        float64 // sum of squares
	Variance      float64
	ZeroCrossings int
}

// Measure computes the statistics of s in a single pass. Mean and variance
// use Welford's update.
func Measure(s signal.Signal) (Levels, error) {
	x := s.Samples()
	if len(x) == 0 {
		return Levels{}, fmt.Errorf("stats: %w", signal.ErrEmptySignal)
	}

	l := Levels{Length: len(x), Max: x[0], Min: x[0]}
	var mean, m2, sumSq float64

	for i, v := range x {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)

		sumSq += v * v

		if v > l.Max {
			l.Max = v
			l.MaxPos = i
		}
		if v < l.Min {
			l.Min = v
			l.MinPos = i
		}
		if i > 0 && x[i-1]*v < 0 {
			l.ZeroCrossings++
		}
	}

	n := float64(len(x))
	l.DC = mean
	l.Variance = m2 / n
	l.Energy = sumSq
	l.RMS = math.Sqrt(sumSq / n)
	l.Peak = math.Max(math.Abs(l.Max), math.Abs(l.Min))
	if l.RMS > 0 {
		l.CrestFactor = l.Peak / l.RMS
	}
	return l, nil
}

// RMSdB returns the RMS level in dBFS, -Inf for silence.
func (l Levels) RMSdB() float64 {
	return core.AmplitudeToDB(l.RMS)
}

// PeakdB returns the peak level in dBFS, -Inf for silence.
func (l Levels) PeakdB() float64 {
	return core.AmplitudeToDB(l.Peak)
}

// CrestFactordB returns the crest factor in dB, 0 for silence.
func (l Levels) CrestFactordB() float64 {
	if l.CrestFactor == 0 {
		return 0
	}
	return core.AmplitudeToDB(l.CrestFactor)
}
