package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/fsksim/dsp/signal"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireSeriesNearlyEqual compares two series sample by sample and time
// stamp by time stamp. Labels are ignored.
func RequireSeriesNearlyEqual(t testing.TB, got, want signal.Series, eps float64) {
	t.Helper()
	gt, wt := got.TimeLine(), want.TimeLine()
	if len(gt) != len(wt) {
		t.Fatalf("%s vs %s: time line length %d, want %d", got.Label(), want.Label(), len(gt), len(wt))
	}
	for i := range gt {
		if diff := math.Abs(gt[i] - wt[i]); diff > eps {
			t.Fatalf("%s: time %d: got %v, want %v", got.Label(), i, gt[i], wt[i])
		}
	}
	RequireSliceNearlyEqual(t, got.Samples(), want.Samples(), eps)
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference, or an error
// when the lengths differ.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
