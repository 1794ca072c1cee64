package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/fsksim/dsp/signal"
	"github.com/cwbudde/fsksim/internal/testutil"
)

func TestMeasureSine(t *testing.T) {
	s, err := signal.Sine(1000, 2, 0.1, 48000, 4800)
	require.NoError(t, err)

	l, err := Measure(s)
	require.NoError(t, err)

	assert.Equal(t, 4800, l.Length)
	assert.InDelta(t, 0, l.DC, 1e-12)
	assert.InDelta(t, math.Sqrt2, l.RMS, 1e-9)
	assert.InDelta(t, 2, l.Peak, 1e-2)
	assert.InDelta(t, math.Sqrt2, l.CrestFactor, 1e-2)
	assert.InDelta(t, 2, l.Variance, 1e-9)
	assert.InDelta(t, 2*4800, l.Energy, 1e-6)
	assert.InDelta(t, 3.0103, l.CrestFactordB(), 5e-2)
	assert.Equal(t, 199, l.ZeroCrossings)
}

func TestMeasureBlocks(t *testing.T) {
	s, err := signal.New(testutil.SymbolBlocks([]float64{1, 0, -1}, 4), 10)
	require.NoError(t, err)

	l, err := Measure(s)
	require.NoError(t, err)

	assert.Equal(t, 1.0, l.Max)
	assert.Equal(t, 0, l.MaxPos)
	assert.Equal(t, -1.0, l.Min)
	assert.Equal(t, 8, l.MinPos)
	assert.InDelta(t, 0, l.DC, 1e-15)
	assert.InDelta(t, 8.0/12, l.Variance, 1e-12)
	assert.Equal(t, 0, l.ZeroCrossings)
	assert.InDelta(t, 0, l.PeakdB(), 1e-12)
}

func TestMeasureSilence(t *testing.T) {
	s, err := signal.New(make([]float64, 16), 8)
	require.NoError(t, err)

	l, err := Measure(s)
	require.NoError(t, err)
	assert.Zero(t, l.CrestFactor)
	assert.Zero(t, l.CrestFactordB())
	assert.True(t, math.IsInf(l.RMSdB(), -1))
}

func TestMeasureEmpty(t *testing.T) {
	_, err := Measure(signal.Signal{})
	assert.True(t, errors.Is(err, signal.ErrEmptySignal))
}
