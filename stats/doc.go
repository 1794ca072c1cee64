// Package stats computes level statistics of signals: DC offset, RMS,
// peak, crest factor and zero crossings.
package stats
