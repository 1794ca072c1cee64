package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/fsksim/dsp/signal"
)

// Goertzel evaluates a single DFT bin at an arbitrary frequency.
//
// The detector is stateful: Power and Magnitude cover every sample fed
// since the last Reset. For a tone detector on FSK symbols, feed one symbol
// slot and reset between slots. Two tones are separable within a block of
// N samples when they lie more than sampleRate/N apart.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates a detector for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0, got %v: %w", sampleRate, signal.ErrInvalidParameter)
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("goertzel: frequency %v outside [0, %v]: %w", frequency, sampleRate/2, signal.ErrInvalidParameter)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
}

// Power returns |X[k]|^2 for the samples fed so far, equal to the DFT bin
// power for the same block length.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns sqrt(Power()).
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// Frequency returns the target frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the sample rate in Hz.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// AnalyzeBlock computes the Goertzel power of input at one frequency.
func AnalyzeBlock(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(input)
	return g.Power(), nil
}

// MultiGoertzel runs one detector per frequency over the same input.
type MultiGoertzel struct {
	analyzers []*Goertzel
}

// NewMultiGoertzel creates detectors for every frequency.
func NewMultiGoertzel(frequencies []float64, sampleRate float64) (*MultiGoertzel, error) {
	analyzers := make([]*Goertzel, len(frequencies))
	for i, f := range frequencies {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}
		analyzers[i] = g
	}
	return &MultiGoertzel{analyzers: analyzers}, nil
}

// ProcessBlock feeds input to every detector.
func (m *MultiGoertzel) ProcessBlock(input []float64) {
	for _, g := range m.analyzers {
		g.ProcessBlock(input)
	}
}

// Powers returns the power of every detector, in frequency order.
func (m *MultiGoertzel) Powers() []float64 {
	p := make([]float64, len(m.analyzers))
	for i, g := range m.analyzers {
		p[i] = g.Power()
	}
	return p
}

// Reset clears every detector.
func (m *MultiGoertzel) Reset() {
	for _, g := range m.analyzers {
		g.Reset()
	}
}

// ToneEnergies splits s into consecutive blocks of block samples and returns
// the Goertzel power of every frequency in each block: out[b][f]. A trailing
// partial block is measured over the samples it has.
//
// With block set to the samples-per-symbol count, each row holds the tone
// energies of one symbol slot.
func ToneEnergies(s signal.Signal, freqs []float64, block int) ([][]float64, error) {
	if block < 1 {
		return nil, fmt.Errorf("spectrum: block size must be >= 1, got %d: %w", block, signal.ErrInvalidParameter)
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("spectrum: no tone frequencies: %w", signal.ErrInvalidParameter)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("spectrum: %w", signal.ErrEmptySignal)
	}

	mg, err := NewMultiGoertzel(freqs, s.SampleRate())
	if err != nil {
		return nil, err
	}

	samples := s.Samples()
	out := make([][]float64, 0, (len(samples)+block-1)/block)
	for start := 0; start < len(samples); start += block {
		end := min(start+block, len(samples))
		mg.Reset()
		mg.ProcessBlock(samples[start:end])
		out = append(out, mg.Powers())
	}
	return out, nil
}
