// Package fsk simulates continuous-phase frequency shift keying over
// time-discrete signals together with the cross-correlation stage of a
// demodulator.
//
// A [Modulator] turns a symbol sequence into a baseband signal (each symbol
// level held for one symbol duration) and then into an FSK waveform
//
//	s(t) = sin(pi * t * (2*fc + h/T * a(t)) + phase)
//
// where fc is the carrier frequency, h the modulation index, T the symbol
// duration and a(t) the baseband amplitude. Level a therefore produces a tone
// at fc + h*a/(2T).
//
// A [Demodulator] holds a bank of reference tones (one per symbol level,
// usually built with [Modulator.GenerateReferenceTones]) and correlates a
// received waveform against every tone:
//
//	mod, _ := fsk.NewModulator(20e3, 200e3, 100e-6)
//	rx, _ := mod.GenerateFSK([]float64{1, 0, -1, 0, 1}, 2)
//	refs, _ := mod.GenerateReferenceTones([]float64{1, 0, -1}, 2)
//	demod, _ := fsk.NewDemodulator(refs)
//	pass, _ := demod.Correlate(rx)
//	for _, p := range pass.Peaks() {
//		fmt.Println(p.Reference, p.LagTime, p.Value)
//	}
//
// Modulators and demodulators are not safe for concurrent use.
package fsk
