package spectrum

import (
	"github.com/cwbudde/algo-vecmath"
)

// split returns the real and imaginary parts of bins as one backing array.
func split(bins []complex128) (re, im []float64) {
	buf := make([]float64, 2*len(bins))
	re, im = buf[:len(bins)], buf[len(bins):]
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// Magnitude returns |X[k]| for each bin, nil for no bins.
func Magnitude(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}
	out := make([]float64, len(bins))
	re, im := split(bins)
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each bin, nil for no bins.
func Power(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}
	out := make([]float64, len(bins))
	re, im := split(bins)
	vecmath.Power(out, re, im)
	return out
}
