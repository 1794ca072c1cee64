// Package signal models finite, evenly sampled real-valued waveforms.
//
// A [Signal] pairs a sample sequence with its sample rate and a time line
// derived once at construction (timeLine[i] = i / sampleRate). Signals are
// immutable values: accessors hand out copies, and every transformation
// returns a new Signal.
//
// Plotting and export collaborators consume signals through the read-only
// [Series] interface:
//
//	for _, s := range []signal.Series{fsk, baseband} {
//		plot(s.Label(), s.TimeLine(), s.Samples())
//	}
package signal
