package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/fsksim/dsp/fsk"
	"github.com/cwbudde/fsksim/dsp/signal"
	"github.com/cwbudde/fsksim/internal/testutil"
)

func TestMagnitudeAndPower(t *testing.T) {
	in := []complex128{
		complex(3, 4),
		complex(-1, 0),
		complex(0, -2),
		cmplx.Rect(2, math.Pi/3),
	}

	testutil.RequireSliceNearlyEqual(t, Magnitude(in), []float64{5, 1, 2, 2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(in), []float64{25, 1, 4, 4}, 1e-12)

	assert.Nil(t, Magnitude(nil))
	assert.Nil(t, Power(nil))
}

func TestAnalyzeSine(t *testing.T) {
	s, err := signal.Sine(64, 1, 0, 1024, 1024)
	require.NoError(t, err)

	sp, err := Analyze(s)
	require.NoError(t, err)

	assert.Equal(t, 1024, sp.FFTSize)
	assert.Len(t, sp.Frequencies, 513)
	assert.InDelta(t, 1.0, sp.BinWidth(), 1e-12)

	freq, mag := sp.Peak()
	assert.InDelta(t, 64.0, freq, 1e-9)
	assert.InDelta(t, 1.0, mag, 1e-9)
	assert.InDelta(t, 1.0, sp.MagnitudeAt(64.2), 1e-9)
	assert.InDelta(t, 0.0, sp.MagnitudeDB(64), 1e-6)
	assert.Less(t, sp.MagnitudeAt(200), 1e-9)
}

func TestAnalyzeDC(t *testing.T) {
	s, err := signal.New(testutil.DC(0.5, 8), 8)
	require.NoError(t, err)

	sp, err := Analyze(s)
	require.NoError(t, err)

	freq, mag := sp.Peak()
	assert.Equal(t, 0.0, freq)
	assert.InDelta(t, 0.5, mag, 1e-12)
}

func TestAnalyzeZeroPads(t *testing.T) {
	s, err := signal.New(make([]float64, 100), 200e3)
	require.NoError(t, err)

	sp, err := Analyze(s)
	require.NoError(t, err)
	assert.Equal(t, 128, sp.FFTSize)
	assert.Len(t, sp.Magnitudes, 65)
	assert.InDelta(t, 100e3, sp.Frequencies[64], 1e-9)
}

func TestAnalyzeEmpty(t *testing.T) {
	_, err := Analyze(signal.Signal{})
	assert.True(t, errors.Is(err, signal.ErrEmptySignal))

	var sp Spectrum
	freq, mag := sp.Peak()
	assert.Zero(t, freq)
	assert.Zero(t, mag)
	assert.Zero(t, sp.MagnitudeAt(10))
}

func TestAnalyzeFSKTones(t *testing.T) {
	m, err := fsk.NewModulator(20e3, 200e3, 100e-6)
	require.NoError(t, err)

	for _, tc := range []struct {
		level float64
		tone  float64
	}{
		{1, 30e3},
		{0, 20e3},
		{-1, 10e3},
	} {
		s, err := m.GenerateFSK([]float64{tc.level, tc.level, tc.level, tc.level, tc.level}, 2)
		require.NoError(t, err)

		sp, err := Analyze(s)
		require.NoError(t, err)

		freq, _ := sp.Peak()
		assert.InDelta(t, tc.tone, freq, sp.BinWidth(), "level %g", tc.level)
	}
}
