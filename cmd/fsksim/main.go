// Command fsksim simulates an FSK link: it modulates a symbol sequence,
// builds one reference tone per level and cross-correlates the transmitted
// signal against every reference.
//
// Usage:
//
//	fsksim [flags]
//
// The default output is a long-format CSV (series,time,value) on stdout
// holding the FSK signal, its baseband, the reference tones and every
// correlation, ready for an external plotter. --format summary prints the
// correlation peaks, signal levels and the energy of every reference tone
// in every symbol slot.
//
// Examples:
//
//	fsksim > run.csv
//	fsksim --symbols 1,-1,1 --modulation-index 1 --format summary
//	fsksim -c run.yaml --mode full
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cwbudde/fsksim/dsp/conv"
	"github.com/cwbudde/fsksim/dsp/fsk"
	"github.com/cwbudde/fsksim/dsp/signal"
	"github.com/cwbudde/fsksim/dsp/spectrum"
	"github.com/cwbudde/fsksim/dsp/window"
	"github.com/cwbudde/fsksim/stats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one simulation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "fsksim"})

	cfg, err := parseConfig(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error("invalid log level", "level", cfg.LogLevel, "err", err)
		return 1
	}
	logger.SetLevel(level)

	res, err := simulate(cfg, logger)
	if err != nil {
		logger.Error("simulation failed", "err", err)
		return 1
	}

	switch cfg.Format {
	case "summary":
		err = writeSummary(stdout, res)
	default:
		err = writeCSV(stdout, res.series()...)
	}
	if err != nil {
		logger.Error("write output", "err", err)
		return 1
	}
	return 0
}

// result is everything one simulation produces.
type result struct {
	cfg      config
	fsk      signal.Signal
	baseband signal.Signal
	refs     []signal.Signal
	tones    []float64
	pass     *fsk.Pass
	spectrum spectrum.Spectrum
	levels   stats.Levels
	energies [][]float64
}

func (r *result) series() []signal.Series {
	out := []signal.Series{r.fsk, r.baseband}
	for _, ref := range r.refs {
		out = append(out, ref)
	}
	for _, c := range r.pass.Results {
		out = append(out, c)
	}
	return out
}

func simulate(cfg config, logger *log.Logger) (*result, error) {
	mode, err := conv.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	rounding, err := fsk.ParseRoundingPolicy(cfg.Rounding)
	if err != nil {
		return nil, err
	}
	winType, err := window.ParseType(cfg.Window)
	if err != nil {
		return nil, err
	}

	mod, err := fsk.NewModulator(cfg.CarrierFreq, cfg.SampleRate, cfg.SymbolDuration, fsk.WithRounding(rounding))
	if err != nil {
		return nil, err
	}

	spb, err := mod.SamplesPerSymbol()
	if err != nil {
		return nil, err
	}
	logger.Debug("modulator ready",
		"carrier", cfg.CarrierFreq,
		"sample_rate", cfg.SampleRate,
		"samples_per_symbol", spb,
		"rounding", rounding)

	aliasErr := mod.CheckAliasing(cfg.Levels, cfg.ModulationIndex)
	if aliasErr != nil {
		logger.Warn("tone aliases", "err", aliasErr)
	}

	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("symbol sequence is empty: %w", fsk.ErrInvalidParameter)
	}

	res := &result{cfg: cfg}

	res.fsk, err = mod.GenerateFSKWithPhase(cfg.Symbols, cfg.ModulationIndex, cfg.Phase)
	if err != nil {
		return nil, err
	}
	res.baseband, err = mod.LastBaseband()
	if err != nil {
		return nil, err
	}
	res.refs, err = mod.GenerateReferenceTones(cfg.Levels, cfg.ModulationIndex)
	if err != nil {
		return nil, err
	}

	res.tones = make([]float64, len(cfg.Levels))
	for i, l := range cfg.Levels {
		res.tones[i] = mod.ToneFrequency(l, cfg.ModulationIndex)
		logger.Debug("reference tone", "level", l, "freq", res.tones[i])
	}

	demod, err := fsk.NewDemodulator(res.refs,
		fsk.WithMode(mode),
		fsk.WithReferenceWindow(winType),
		fsk.WithParallelism(cfg.Workers))
	if err != nil {
		return nil, err
	}
	res.pass, err = demod.Correlate(res.fsk)
	if err != nil {
		return nil, err
	}
	logger.Info("correlated",
		"symbols", len(cfg.Symbols),
		"references", len(res.refs),
		"mode", mode,
		"samples", res.fsk.Len())

	res.spectrum, err = spectrum.Analyze(res.fsk)
	if err != nil {
		return nil, err
	}
	res.levels, err = stats.Measure(res.fsk)
	if err != nil {
		return nil, err
	}

	// Goertzel detectors only accept tones in [0, fs/2].
	if aliasErr == nil {
		res.energies, err = spectrum.ToneEnergies(res.fsk, absAll(res.tones), spb)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func absAll(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		if f < 0 {
			f = -f
		}
		out[i] = f
	}
	return out
}
