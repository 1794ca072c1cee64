package fsk

import (
	"errors"
	"fmt"

	"github.com/cwbudde/fsksim/dsp/signal"
)

// Errors returned by the modulator and demodulator. Parameter and empty
// signal failures wrap the signal package sentinels so errors.Is works with
// either name.
var (
	ErrInvalidParameter = signal.ErrInvalidParameter
	ErrEmptySignal      = signal.ErrEmptySignal

	// ErrNoSignalGenerated reports a query for the last baseband before any
	// signal was generated.
	ErrNoSignalGenerated = errors.New("fsk: no signal generated")

	// ErrAliasing reports tone frequencies at or above the Nyquist limit.
	ErrAliasing = fmt.Errorf("fsk: tone exceeds nyquist frequency: %w", ErrInvalidParameter)
)
