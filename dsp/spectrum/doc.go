// Package spectrum measures where the energy of a sampled signal sits in
// frequency.
//
// [Analyze] computes a zero-padded FFT magnitude spectrum of a whole signal,
// which shows the mark, carrier and space tones of an FSK waveform.
// [ToneEnergies] runs a bank of Goertzel detectors block by block, giving
// the energy of each candidate tone inside each symbol slot. Neither makes
// symbol decisions.
package spectrum
