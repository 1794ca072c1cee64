package fsk

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/fsksim/dsp/core"
	"github.com/cwbudde/fsksim/dsp/signal"
)

// RoundingPolicy names how symbolDuration*sampleRate becomes an integer
// samples-per-symbol count.
type RoundingPolicy int

const (
	// RoundNearest rounds to the nearest integer, ties away from zero.
	RoundNearest RoundingPolicy = iota

	// RoundFloor truncates toward zero. Products within a relative 1e-9 of
	// an integer snap to it first, so 1e-4*2e5 yields 20 rather than 19.
	RoundFloor

	// RoundStrict rejects products that are not within a relative 1e-9 of
	// an integer.
	RoundStrict
)

// integerTolerance is the relative tolerance used to treat a
// samples-per-symbol product as an exact integer.
const integerTolerance = 1e-9

// maxSamplesPerSymbol bounds the per-symbol repeat count.
const maxSamplesPerSymbol = 1 << 30

// String returns the lower-case policy name.
func (p RoundingPolicy) String() string {
	switch p {
	case RoundNearest:
		return "nearest"
	case RoundFloor:
		return "floor"
	case RoundStrict:
		return "strict"
	default:
		return fmt.Sprintf("RoundingPolicy(%d)", int(p))
	}
}

// ParseRoundingPolicy converts "nearest", "floor" or "strict" to a policy.
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return RoundNearest, nil
	case "floor":
		return RoundFloor, nil
	case "strict":
		return RoundStrict, nil
	default:
		return 0, fmt.Errorf("fsk: unknown rounding policy %q: %w", s, ErrInvalidParameter)
	}
}

// ModulatorOption configures a Modulator.
type ModulatorOption func(*modulatorConfig)

type modulatorConfig struct {
	rounding RoundingPolicy
}

// WithRounding selects the samples-per-symbol rounding policy.
// The default is RoundNearest.
func WithRounding(p RoundingPolicy) ModulatorOption {
	return func(c *modulatorConfig) {
		c.rounding = p
	}
}

// Modulator generates baseband and FSK signals for a fixed carrier
// frequency, sample rate and symbol duration.
//
// The most recently generated baseband is cached and can be read back with
// LastBaseband.
type Modulator struct {
	carrierFreq    float64
	sampleRate     float64
	symbolDuration float64
	rounding       RoundingPolicy

	baseband    signal.Signal
	hasBaseband bool
}

// NewModulator creates a modulator. carrierFreq and sampleRate are in Hz,
// symbolDuration in seconds; all three must be positive and finite.
func NewModulator(carrierFreq, sampleRate, symbolDuration float64, opts ...ModulatorOption) (*Modulator, error) {
	cfg := modulatorConfig{rounding: RoundNearest}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch cfg.rounding {
	case RoundNearest, RoundFloor, RoundStrict:
	default:
		return nil, fmt.Errorf("fsk: unknown rounding policy %v: %w", cfg.rounding, ErrInvalidParameter)
	}

	m := &Modulator{rounding: cfg.rounding}
	if err := m.SetParameters(carrierFreq, sampleRate, symbolDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// SetParameters replaces the modulation parameters. On error the previous
// parameters are kept. The cached baseband is left untouched.
func (m *Modulator) SetParameters(carrierFreq, sampleRate, symbolDuration float64) error {
	if err := requirePositive("carrier frequency", carrierFreq); err != nil {
		return err
	}
	if err := requirePositive("sample rate", sampleRate); err != nil {
		return err
	}
	if err := requirePositive("symbol duration", symbolDuration); err != nil {
		return err
	}

	m.carrierFreq = carrierFreq
	m.sampleRate = sampleRate
	m.symbolDuration = symbolDuration
	return nil
}

func requirePositive(name string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("fsk: %s must be > 0 and finite, got %v: %w", name, v, ErrInvalidParameter)
	}
	return nil
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("fsk: %s must be finite, got %v: %w", name, v, ErrInvalidParameter)
	}
	return nil
}

// CarrierFrequency returns the carrier frequency in Hz.
func (m *Modulator) CarrierFrequency() float64 { return m.carrierFreq }

// SampleRate returns the sample rate in Hz.
func (m *Modulator) SampleRate() float64 { return m.sampleRate }

// SymbolDuration returns the symbol duration in seconds.
func (m *Modulator) SymbolDuration() float64 { return m.symbolDuration }

// Rounding returns the samples-per-symbol rounding policy.
func (m *Modulator) Rounding() RoundingPolicy { return m.rounding }

// SamplesPerSymbol converts symbolDuration*sampleRate to a sample count
// using the configured rounding policy. A count below one is an error.
func (m *Modulator) SamplesPerSymbol() (int, error) {
	product := m.symbolDuration * m.sampleRate
	nearest, exact := core.NearestInteger(product, integerTolerance)

	var n float64
	switch m.rounding {
	case RoundFloor:
		if exact {
			n = nearest
		} else {
			n = math.Floor(product)
		}
	case RoundStrict:
		if !exact {
			return 0, fmt.Errorf("fsk: symbol duration * sample rate = %v is not an integer: %w", product, ErrInvalidParameter)
		}
		n = nearest
	default:
		n = nearest
	}

	if n < 1 {
		return 0, fmt.Errorf("fsk: symbol duration * sample rate = %v gives no samples per symbol: %w", product, ErrInvalidParameter)
	}
	if n > maxSamplesPerSymbol {
		return 0, fmt.Errorf("fsk: %v samples per symbol exceeds limit %d: %w", n, maxSamplesPerSymbol, ErrInvalidParameter)
	}
	return int(n), nil
}

// GenerateBaseband holds every symbol level for one symbol duration and
// returns the resulting baseband signal. The result also becomes the cached
// last baseband.
func (m *Modulator) GenerateBaseband(symbols []float64) (signal.Signal, error) {
	bb, err := m.basebandFor(symbols)
	if err != nil {
		return signal.Signal{}, err
	}

	m.baseband = bb
	m.hasBaseband = true
	return bb, nil
}

func (m *Modulator) basebandFor(symbols []float64) (signal.Signal, error) {
	for i, s := range symbols {
		if err := requireFinite(fmt.Sprintf("symbol %d", i), s); err != nil {
			return signal.Signal{}, err
		}
	}

	spb, err := m.SamplesPerSymbol()
	if err != nil {
		return signal.Signal{}, err
	}

	samples := make([]float64, 0, len(symbols)*spb)
	for _, s := range symbols {
		for range spb {
			samples = append(samples, s)
		}
	}

	bb, err := signal.New(samples, m.sampleRate)
	if err != nil {
		return signal.Signal{}, err
	}
	return bb.WithLabel("baseband"), nil
}

// GenerateFSK modulates symbols with the given modulation index at zero
// initial phase. See GenerateFSKWithPhase.
func (m *Modulator) GenerateFSK(symbols []float64, modulationIndex float64) (signal.Signal, error) {
	return m.GenerateFSKWithPhase(symbols, modulationIndex, 0)
}

// GenerateFSKWithPhase generates the baseband for symbols (updating the
// cached last baseband) and modulates it:
//
//	sample(t) = sin(pi * t * (2*fc + modulationIndex/T * a(t)) + phase)
//
// phase is in radians. The result has one sample per baseband sample.
func (m *Modulator) GenerateFSKWithPhase(symbols []float64, modulationIndex, phase float64) (signal.Signal, error) {
	if err := m.checkModulation(modulationIndex, phase); err != nil {
		return signal.Signal{}, err
	}

	bb, err := m.GenerateBaseband(symbols)
	if err != nil {
		return signal.Signal{}, err
	}
	return m.modulate(bb, modulationIndex, phase, "fsk")
}

func (m *Modulator) checkModulation(modulationIndex, phase float64) error {
	if err := requireFinite("modulation index", modulationIndex); err != nil {
		return err
	}
	return requireFinite("phase", phase)
}

func (m *Modulator) modulate(bb signal.Signal, modulationIndex, phase float64, label string) (signal.Signal, error) {
	deviation := modulationIndex / m.symbolDuration
	twoFc := 2 * m.carrierFreq

	samples := make([]float64, bb.Len())
	for i := range samples {
		theta := math.Pi*bb.Time(i)*(twoFc+deviation*bb.At(i)) + phase
		samples[i] = math.Sin(theta)
	}

	out, err := signal.New(samples, bb.SampleRate())
	if err != nil {
		return signal.Signal{}, err
	}
	return out.WithLabel(label), nil
}

// GenerateReferenceTones returns one single-symbol FSK signal per amplitude
// level, in the order of levels. These are the templates a Demodulator
// correlates against. Each tone's baseband replaces the cached last
// baseband, so afterwards LastBaseband holds the last level's symbol.
func (m *Modulator) GenerateReferenceTones(levels []float64, modulationIndex float64) ([]signal.Signal, error) {
	if err := m.checkModulation(modulationIndex, 0); err != nil {
		return nil, err
	}

	tones := make([]signal.Signal, 0, len(levels))
	for _, level := range levels {
		bb, err := m.basebandFor([]float64{level})
		if err != nil {
			return nil, fmt.Errorf("fsk: reference tone for level %g: %w", level, err)
		}

		tone, err := m.modulate(bb, modulationIndex, 0, ReferenceLabel(level))
		if err != nil {
			return nil, err
		}
		m.baseband = bb
		m.hasBaseband = true
		tones = append(tones, tone)
	}
	return tones, nil
}

// ReferenceLabel is the display label given to the reference tone of level.
func ReferenceLabel(level float64) string {
	return fmt.Sprintf("reference a=%+g", level)
}

// LastBaseband returns the most recently generated baseband signal.
func (m *Modulator) LastBaseband() (signal.Signal, error) {
	if !m.hasBaseband {
		return signal.Signal{}, ErrNoSignalGenerated
	}
	return m.baseband, nil
}

// ToneFrequency returns the instantaneous frequency in Hz produced by
// baseband amplitude level: fc + modulationIndex*level/(2T).
func (m *Modulator) ToneFrequency(level, modulationIndex float64) float64 {
	return m.carrierFreq + modulationIndex*level/(2*m.symbolDuration)
}

// CheckAliasing reports ErrAliasing when the tone of any level reaches the
// Nyquist frequency sampleRate/2.
func (m *Modulator) CheckAliasing(levels []float64, modulationIndex float64) error {
	nyquist := m.sampleRate / 2
	for _, level := range levels {
		f := math.Abs(m.ToneFrequency(level, modulationIndex))
		if f >= nyquist {
			return fmt.Errorf("level %g: tone %g Hz >= %g Hz: %w", level, f, nyquist, ErrAliasing)
		}
	}
	return nil
}
