package fsk

import (
	"github.com/cwbudde/fsksim/dsp/conv"
	"github.com/cwbudde/fsksim/dsp/signal"
)

// Pass holds the correlations of one received signal against every
// reference tone, in reference order.
type Pass struct {
	Results       []signal.Signal
	Mode          conv.Mode
	SampleRate    float64
	ReceivedLen   int
	ReferenceLens []int
}

// Peak is the strongest correlation (by magnitude) against one reference.
type Peak struct {
	Reference int
	Label     string
	Index     int
	Lag       int
	LagTime   float64
	Value     float64
}

// Lag converts an index into the correlation against reference ref to a
// lag in samples. Lag L means the reference's first sample lines up with
// received sample L.
func (p *Pass) Lag(ref, index int) int {
	return conv.LagFromIndex(index, p.ReceivedLen, p.ReferenceLens[ref], p.Mode)
}

// LagTime is Lag expressed in seconds.
func (p *Pass) LagTime(ref, index int) float64 {
	return float64(p.Lag(ref, index)) / p.SampleRate
}

// Peaks returns the largest-magnitude correlation value for every
// reference, in reference order.
func (p *Pass) Peaks() []Peak {
	peaks := make([]Peak, len(p.Results))
	for i, res := range p.Results {
		idx, v := conv.FindPeakAbs(res.Samples())
		peaks[i] = Peak{
			Reference: i,
			Label:     res.Label(),
			Index:     idx,
			Lag:       p.Lag(i, idx),
			LagTime:   p.LagTime(i, idx),
			Value:     v,
		}
	}
	return peaks
}
