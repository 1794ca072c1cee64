// Package core holds small numeric helpers shared by the dsp packages.
package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, either as an
// absolute difference or relative to the larger magnitude. eps <= 0 selects
// 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff/largest <= eps
}

// NearestInteger rounds x half away from zero and reports whether x was
// already that integer within eps (see NearlyEqual). Products of decimal
// fractions such as 1e-4*2e5 land within a few ulps of an integer and
// are reported exact.
func NearestInteger(x, eps float64) (n float64, exact bool) {
	n = math.Round(x)
	return n, NearlyEqual(x, n, eps)
}

// LinearPowerToDB converts linear power to dB (10*log10).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}

// AmplitudeToDB converts an amplitude to dB (20*log10|a|), -Inf for zero.
func AmplitudeToDB(a float64) float64 {
	a = math.Abs(a)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}
