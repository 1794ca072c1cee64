package conv

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// directThreshold is the shorter-input length below which direct
// correlation beats the FFT path.
const directThreshold = 64

// Correlate computes the full cross-correlation of a and b.
// The result has length len(a) + len(b) - 1.
// Output index k corresponds to lag k - (len(b) - 1):
//
//	out[k] = sum_n a[n + k - (len(b)-1)] * b[n]
//
// The direct algorithm is used when the shorter input has fewer than 64
// samples, the FFT algorithm otherwise.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if min(len(a), len(b)) < directThreshold {
		return CorrelateDirect(a, b)
	}
	return CorrelateFFT(a, b)
}

// CorrelateMode computes cross-correlation with specified output mode.
func CorrelateMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	return Trim(full, len(a), len(b), mode), nil
}

// CorrelateDirect computes the full cross-correlation as sliding dot
// products over the overlapping region of a and b.
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := len(a)
	m := len(b)
	result := make([]float64, n+m-1)
	scratch := make([]float64, min(n, m))

	for k := range result {
		lag := k - (m - 1)
		// overlap of b[j] with a[j+lag]
		jStart := max(0, -lag)
		jEnd := min(m, n-lag)
		width := jEnd - jStart

		prod := scratch[:width]
		vecmath.MulBlock(prod, a[jStart+lag:jEnd+lag], b[jStart:jEnd])

		var sum float64
		for _, v := range prod {
			sum += v
		}
		result[k] = sum
	}

	return result, nil
}

// CorrelateFFT computes cross-correlation using FFT.
// This is more efficient for longer signals.
func CorrelateFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// For FFT-based correlation: IFFT(FFT(a) * conj(FFT(b)))
	n := len(a)
	m := len(b)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		aPadded[i] = complex(a[i], 0)
	}
	for i := 0; i < m; i++ {
		bPadded[i] = complex(b[i], 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// A * conj(B); aPadded is reused as the product buffer
	for i := range aPadded {
		aPadded[i] = aFreq[i] * complex(real(bFreq[i]), -imag(bFreq[i]))
	}

	resultTime := bPadded
	if err := plan.Inverse(resultTime, aPadded); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// The circular result holds lags 0..n-1 at the front and the negative
	// lags -(m-1)..-1 at the back.
	result := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		result[m-1+i] = real(resultTime[i])
	}
	for i := 0; i < m-1; i++ {
		result[i] = real(resultTime[fftSize-m+1+i])
	}

	return result, nil
}

// CorrelateNormalized computes normalized cross-correlation.
// The result is normalized by the product of the L2 norms of a and b,
// producing values in the range [-1, 1]. If either input has zero energy the
// raw correlation (all zeros) is returned.
func CorrelateNormalized(a, b []float64) ([]float64, error) {
	result, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	normProduct := l2Norm(a) * l2Norm(b)
	if normProduct == 0 {
		return result, nil
	}

	for i := range result {
		result[i] /= normProduct
	}

	return result, nil
}

// l2Norm computes the L2 (Euclidean) norm of a signal.
func l2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// FindPeak finds the index and value of the maximum in a correlation result.
// Returns -1 for an empty input.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = 0
	value = corr[0]

	for i, v := range corr {
		if v > value {
			index = i
			value = v
		}
	}

	return index, value
}

// FindPeakAbs finds the index of the largest magnitude and returns the
// signed value stored there. Ties resolve to the lowest index.
// Returns -1 for an empty input.
func FindPeakAbs(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = 0
	best := math.Abs(corr[0])

	for i, v := range corr {
		if av := math.Abs(v); av > best {
			index = i
			best = av
		}
	}

	return index, corr[index]
}
