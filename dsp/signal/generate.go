package signal

import (
	"fmt"
	"math"
)

// Sine generates n samples of amplitude*sin(2*pi*freqHz*t + phase) at
// sampleRate.
func Sine(freqHz, amplitude, phase, sampleRate float64, n int) (Signal, error) {
	if n < 0 {
		return Signal{}, fmt.Errorf("sine samples must be >= 0, got %d: %w", n, ErrInvalidParameter)
	}
	if err := validateSampleRate(sampleRate); err != nil {
		return Signal{}, err
	}

	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return wrap(out, sampleRate, fmt.Sprintf("sine %g Hz", freqHz)), nil
}

// Normalize scales s to the target peak amplitude and returns a new signal
// with the same rate and label. An all-zero signal stays all zero.
func Normalize(s Signal, targetPeak float64) (Signal, error) {
	if targetPeak < 0 || math.IsNaN(targetPeak) || math.IsInf(targetPeak, 0) {
		return Signal{}, fmt.Errorf("normalize target peak must be >= 0 and finite, got %v: %w", targetPeak, ErrInvalidParameter)
	}
	if s.Len() == 0 {
		return Signal{}, fmt.Errorf("normalize: %w", ErrEmptySignal)
	}

	maxAbs := 0.0
	for _, v := range s.samples {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(s.samples))
	if maxAbs != 0 && targetPeak != 0 {
		scale := targetPeak / maxAbs
		for i, v := range s.samples {
			out[i] = v * scale
		}
	}
	return wrap(out, s.sampleRate, s.label), nil
}
