package conv

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by correlation functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode specifies the output mode for correlation.
type Mode int

const (
	// ModeFull returns the full result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	case ModeValid:
		return "valid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "full", "same" or "valid" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return ModeFull, nil
	case "same":
		return ModeSame, nil
	case "valid":
		return ModeValid, nil
	default:
		return 0, fmt.Errorf("conv: unknown mode %q", s)
	}
}

// OutputLen returns the result length of a correlation of inputs with
// lengths lenA and lenB in the given mode. Both lengths must be positive.
func OutputLen(lenA, lenB int, mode Mode) int {
	switch mode {
	case ModeSame:
		return lenA
	case ModeValid:
		if lenA >= lenB {
			return lenA - lenB + 1
		}
		return lenB - lenA + 1
	default:
		return lenA + lenB - 1
	}
}

// modeOffset is the position of mode output index 0 inside the full result.
func modeOffset(lenA, lenB int, mode Mode) int {
	switch mode {
	case ModeSame:
		return (lenB - 1) / 2
	case ModeValid:
		if lenA >= lenB {
			return lenB - 1
		}
		return lenA - 1
	default:
		return 0
	}
}

// Trim extracts the mode portion of a full correlation of inputs with
// lengths lenA and lenB. The returned slice aliases full.
func Trim(full []float64, lenA, lenB int, mode Mode) []float64 {
	start := modeOffset(lenA, lenB, mode)
	return full[start : start+OutputLen(lenA, lenB, mode)]
}

// LagFromIndex converts an output index of a correlation of inputs with
// lengths lenA and lenB in the given mode to a lag. Lag L aligns b[0] with
// a[L]; negative lags place b's start before a's.
func LagFromIndex(index, lenA, lenB int, mode Mode) int {
	return index + modeOffset(lenA, lenB, mode) - (lenB - 1)
}

// IndexFromLag is the inverse of [LagFromIndex]. The returned index may fall
// outside the mode's output range.
func IndexFromLag(lag, lenA, lenB int, mode Mode) int {
	return lag + (lenB - 1) - modeOffset(lenA, lenB, mode)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
