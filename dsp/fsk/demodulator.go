package fsk

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/fsksim/dsp/conv"
	"github.com/cwbudde/fsksim/dsp/core"
	"github.com/cwbudde/fsksim/dsp/signal"
	"github.com/cwbudde/fsksim/dsp/window"
)

// DemodulatorOption configures a Demodulator.
type DemodulatorOption func(*demodulatorConfig)

type demodulatorConfig struct {
	mode       conv.Mode
	workers    int
	window     window.Type
	normalized bool
}

// WithMode selects the correlation output mode. The default is
// conv.ModeValid, which keeps only lags where the reference tone lies
// entirely inside the received signal.
func WithMode(mode conv.Mode) DemodulatorOption {
	return func(c *demodulatorConfig) {
		c.mode = mode
	}
}

// WithParallelism correlates up to n reference tones concurrently.
// Values below 2 keep the computation on the calling goroutine.
func WithParallelism(n int) DemodulatorOption {
	return func(c *demodulatorConfig) {
		c.workers = n
	}
}

// WithReferenceWindow tapers every reference tone with the given window
// before correlating. The default window.TypeRectangular leaves tones as is.
func WithReferenceWindow(t window.Type) DemodulatorOption {
	return func(c *demodulatorConfig) {
		c.window = t
	}
}

// WithNormalization divides every correlation by the product of the L2
// norms of the received signal and the reference tone.
func WithNormalization() DemodulatorOption {
	return func(c *demodulatorConfig) {
		c.normalized = true
	}
}

// Demodulator correlates received FSK signals against a fixed bank of
// reference tones, one per symbol level.
//
// CrossCorrelate accumulates results across calls until Reset; Correlate
// returns pass-scoped results only.
type Demodulator struct {
	refs      []signal.Signal
	templates [][]float64
	cfg       demodulatorConfig

	results []signal.Signal
}

// NewDemodulator creates a demodulator for the given reference bank. The
// bank must be non-empty, every tone must hold at least one sample and all
// tones must share one sample rate.
func NewDemodulator(refs []signal.Signal, opts ...DemodulatorOption) (*Demodulator, error) {
	cfg := demodulatorConfig{
		mode:   conv.ModeValid,
		window: window.TypeRectangular,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch cfg.mode {
	case conv.ModeFull, conv.ModeSame, conv.ModeValid:
	default:
		return nil, fmt.Errorf("fsk: unknown correlation mode %v: %w", cfg.mode, ErrInvalidParameter)
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("fsk: reference bank is empty: %w", ErrInvalidParameter)
	}

	d := &Demodulator{
		refs:      append([]signal.Signal(nil), refs...),
		templates: make([][]float64, len(refs)),
		cfg:       cfg,
	}

	for i, ref := range refs {
		if ref.Len() == 0 {
			return nil, fmt.Errorf("fsk: reference %d (%s) is empty: %w", i, ref.Label(), ErrInvalidParameter)
		}
		if !core.NearlyEqual(ref.SampleRate(), refs[0].SampleRate(), 1e-12) {
			return nil, fmt.Errorf("fsk: reference %d sample rate %g differs from %g: %w",
				i, ref.SampleRate(), refs[0].SampleRate(), ErrInvalidParameter)
		}

		if cfg.window != window.TypeRectangular && ref.Len() < 2 {
			return nil, fmt.Errorf("fsk: reference %d (%s) has %d sample, %s window needs at least 2: %w",
				i, ref.Label(), ref.Len(), cfg.window, ErrInvalidParameter)
		}

		tmpl := ref.Samples()
		window.Apply(cfg.window, tmpl)
		d.templates[i] = tmpl
	}

	return d, nil
}

// References returns the reference bank in correlation order.
func (d *Demodulator) References() []signal.Signal {
	return append([]signal.Signal(nil), d.refs...)
}

// Mode returns the correlation output mode.
func (d *Demodulator) Mode() conv.Mode { return d.cfg.mode }

// Correlate correlates received against every reference tone and returns the
// results in reference order without touching the accumulated results.
func (d *Demodulator) Correlate(received signal.Signal) (*Pass, error) {
	if received.Len() == 0 {
		return nil, fmt.Errorf("fsk: received signal is empty: %w", ErrInvalidParameter)
	}
	if !core.NearlyEqual(received.SampleRate(), d.refs[0].SampleRate(), 1e-12) {
		return nil, fmt.Errorf("fsk: received sample rate %g differs from reference rate %g: %w",
			received.SampleRate(), d.refs[0].SampleRate(), ErrInvalidParameter)
	}

	rx := received.Samples()
	rxLabel := received.Label()
	if rxLabel == "" {
		rxLabel = "received"
	}

	pass := &Pass{
		Results:       make([]signal.Signal, len(d.templates)),
		Mode:          d.cfg.mode,
		SampleRate:    received.SampleRate(),
		ReceivedLen:   len(rx),
		ReferenceLens: make([]int, len(d.templates)),
	}

	correlateOne := func(i int) error {
		tmpl := d.templates[i]

		var (
			full []float64
			err  error
		)
		if d.cfg.normalized {
			full, err = conv.CorrelateNormalized(rx, tmpl)
		} else {
			full, err = conv.Correlate(rx, tmpl)
		}
		if err != nil {
			return fmt.Errorf("fsk: correlate with %s: %w", d.refs[i].Label(), err)
		}

		res, err := signal.New(conv.Trim(full, len(rx), len(tmpl), d.cfg.mode), received.SampleRate())
		if err != nil {
			return err
		}

		pass.Results[i] = res.WithLabel(fmt.Sprintf("xcorr %s / %s", rxLabel, d.refs[i].Label()))
		pass.ReferenceLens[i] = len(tmpl)
		return nil
	}

	if d.cfg.workers < 2 {
		for i := range d.templates {
			if err := correlateOne(i); err != nil {
				return nil, err
			}
		}
		return pass, nil
	}

	var g errgroup.Group
	g.SetLimit(d.cfg.workers)
	for i := range d.templates {
		g.Go(func() error { return correlateOne(i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pass, nil
}

// CrossCorrelate runs Correlate and appends its results, in reference order,
// to the accumulated results returned by Results.
func (d *Demodulator) CrossCorrelate(received signal.Signal) (*Pass, error) {
	pass, err := d.Correlate(received)
	if err != nil {
		return nil, err
	}

	d.results = append(d.results, pass.Results...)
	return pass, nil
}

// Results returns every correlation accumulated by CrossCorrelate since
// construction or the last Reset.
func (d *Demodulator) Results() []signal.Signal {
	return append([]signal.Signal(nil), d.results...)
}

// Reset discards the accumulated correlation results.
func (d *Demodulator) Reset() {
	d.results = nil
}
