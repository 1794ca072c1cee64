package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// SymbolBlocks holds each level for samplesPerSymbol samples, the expected
// shape of a baseband signal.
func SymbolBlocks(levels []float64, samplesPerSymbol int) []float64 {
	out := make([]float64, 0, len(levels)*samplesPerSymbol)
	for _, v := range levels {
		out = append(out, DC(v, samplesPerSymbol)...)
	}
	return out
}
