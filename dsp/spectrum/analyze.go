package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/fsksim/dsp/core"
	"github.com/cwbudde/fsksim/dsp/signal"
)

// Spectrum is the one-sided magnitude spectrum of a real signal.
//
// Magnitudes are single-sided amplitude estimates 2*|X[k]|/N, with N the
// unpadded signal length; the DC and Nyquist bins are not doubled.
type Spectrum struct {
	Frequencies []float64 // bin centres in Hz, 0..SampleRate/2
	Magnitudes  []float64
	SampleRate  float64
	FFTSize     int
}

// Analyze computes the magnitude spectrum of s, zero-padded to the next
// power of two.
func Analyze(s signal.Signal) (Spectrum, error) {
	n := s.Len()
	if n == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: %w", signal.ErrEmptySignal)
	}

	fftSize := 1
	for fftSize < n {
		fftSize *= 2
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		in[i] = complex(s.At(i), 0)
	}

	bins := make([]complex128, fftSize)
	if err := plan.Forward(bins, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	half := fftSize/2 + 1
	mags := Magnitude(bins[:half])
	freqs := make([]float64, half)
	binWidth := s.SampleRate() / float64(fftSize)
	for k := range mags {
		freqs[k] = float64(k) * binWidth
		scale := 2 / float64(n)
		if k == 0 || (k == fftSize/2 && fftSize > 1) {
			scale = 1 / float64(n)
		}
		mags[k] *= scale
	}

	return Spectrum{
		Frequencies: freqs,
		Magnitudes:  mags,
		SampleRate:  s.SampleRate(),
		FFTSize:     fftSize,
	}, nil
}

// BinWidth returns the spacing between bins in Hz.
func (sp Spectrum) BinWidth() float64 {
	if sp.FFTSize == 0 {
		return 0
	}
	return sp.SampleRate / float64(sp.FFTSize)
}

// Peak returns the frequency and magnitude of the strongest bin.
func (sp Spectrum) Peak() (freq, magnitude float64) {
	best := -1
	for k, m := range sp.Magnitudes {
		if best < 0 || m > sp.Magnitudes[best] {
			best = k
		}
	}
	if best < 0 {
		return 0, 0
	}
	return sp.Frequencies[best], sp.Magnitudes[best]
}

// MagnitudeAt returns the magnitude of the bin nearest to freq.
func (sp Spectrum) MagnitudeAt(freq float64) float64 {
	w := sp.BinWidth()
	if w == 0 || len(sp.Magnitudes) == 0 {
		return 0
	}
	k := int(freq/w + 0.5)
	if k < 0 || k >= len(sp.Magnitudes) {
		return 0
	}
	return sp.Magnitudes[k]
}

// MagnitudeDB returns 20*log10 of the magnitude of the bin nearest to freq.
func (sp Spectrum) MagnitudeDB(freq float64) float64 {
	return core.AmplitudeToDB(sp.MagnitudeAt(freq))
}
