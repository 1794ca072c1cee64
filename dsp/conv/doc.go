// Package conv provides the linear cross-correlation primitive used for
// matched-template detection.
//
// Two strategies are available:
//
//   - Direct correlation: O(R*M) sliding dot products, best for short templates
//   - FFT correlation: IFFT(FFT(a) * conj(FFT(b))) on a zero-padded power-of-two plan
//
// [Correlate] picks between them based on the shorter input.
//
// # Modes and lags
//
// Full-mode output index k corresponds to lag k - (len(b) - 1), where lag L
// means b[0] is aligned with a[L]. [ModeValid] keeps only the lags where one
// input fully overlaps the other and [ModeSame] keeps len(a) samples centred
// on the full result. [LagFromIndex] and [IndexFromLag] convert between
// output positions and lags for every mode:
//
//	corr, err := conv.CorrelateMode(signal, template, conv.ModeValid)
//	idx, _ := conv.FindPeakAbs(corr)
//	lag := conv.LagFromIndex(idx, len(signal), len(template), conv.ModeValid)
package conv
