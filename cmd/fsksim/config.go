package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// config holds one simulation run. File values are overridden by flags that
// were set explicitly on the command line.
type config struct {
	SampleRate      float64   `yaml:"sample_rate"`
	CarrierFreq     float64   `yaml:"carrier"`
	SymbolDuration  float64   `yaml:"symbol_duration"`
	ModulationIndex float64   `yaml:"modulation_index"`
	Phase           float64   `yaml:"phase"`
	Symbols         []float64 `yaml:"symbols"`
	Levels          []float64 `yaml:"levels"`
	Mode            string    `yaml:"mode"`
	Rounding        string    `yaml:"rounding"`
	Window          string    `yaml:"window"`
	Workers         int       `yaml:"workers"`
	Format          string    `yaml:"format"`
	LogLevel        string    `yaml:"log_level"`
}

// defaultConfig is the mark/carrier/space demo: fc = 20 kHz, fs = 200 kHz,
// 100 us symbols and h = 2, giving tones at 30, 20 and 10 kHz.
func defaultConfig() config {
	return config{
		SampleRate:      200e3,
		CarrierFreq:     20e3,
		SymbolDuration:  100e-6,
		ModulationIndex: 2,
		Symbols:         []float64{1, 0, 1, 0, -1, 0, 1, 0, -1, 0, -1, 0, -1, 0, 1, 0},
		Levels:          []float64{1, 0, -1},
		Mode:            "valid",
		Rounding:        "nearest",
		Window:          "rectangular",
		Workers:         1,
		Format:          "csv",
		LogLevel:        "info",
	}
}

// loadConfigFile decodes path over cfg. Keys absent from the file keep
// their current value.
func loadConfigFile(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// parseConfig builds the run configuration from defaults, an optional
// YAML file and command-line flags, in that order of precedence.
func parseConfig(args []string, usage io.Writer) (config, error) {
	cfg := defaultConfig()

	fs := pflag.NewFlagSet("fsksim", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(usage)

	configPath := fs.StringP("config", "c", "", "YAML configuration file.")
	sampleRate := fs.Float64P("sample-rate", "r", cfg.SampleRate, "Sample rate in Hz.")
	carrier := fs.Float64P("carrier", "f", cfg.CarrierFreq, "Carrier frequency in Hz.")
	symbolDuration := fs.Float64P("symbol-duration", "T", cfg.SymbolDuration, "Symbol duration in seconds.")
	modIndex := fs.Float64("modulation-index", cfg.ModulationIndex, "Modulation index.")
	phase := fs.Float64P("phase", "p", cfg.Phase, "Initial phase in radians.")
	symbols := fs.Float64SliceP("symbols", "s", cfg.Symbols, "Symbol sequence as comma-separated baseband levels.")
	levels := fs.Float64SliceP("levels", "l", cfg.Levels, "Reference levels, one tone each.")
	mode := fs.StringP("mode", "m", cfg.Mode, "Correlation mode: full, same or valid.")
	rounding := fs.String("rounding", cfg.Rounding, "Samples-per-symbol rounding: nearest, floor or strict.")
	win := fs.StringP("window", "w", cfg.Window, "Reference window: rectangular, hann, hamming or blackman.")
	workers := fs.IntP("workers", "j", cfg.Workers, "Reference tones correlated concurrently.")
	format := fs.StringP("format", "o", cfg.Format, "Output format: csv or summary.")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *configPath != "" {
		if err := loadConfigFile(*configPath, &cfg); err != nil {
			return config{}, err
		}
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("sample-rate", func() { cfg.SampleRate = *sampleRate })
	set("carrier", func() { cfg.CarrierFreq = *carrier })
	set("symbol-duration", func() { cfg.SymbolDuration = *symbolDuration })
	set("modulation-index", func() { cfg.ModulationIndex = *modIndex })
	set("phase", func() { cfg.Phase = *phase })
	set("symbols", func() { cfg.Symbols = *symbols })
	set("levels", func() { cfg.Levels = *levels })
	set("mode", func() { cfg.Mode = *mode })
	set("rounding", func() { cfg.Rounding = *rounding })
	set("window", func() { cfg.Window = *win })
	set("workers", func() { cfg.Workers = *workers })
	set("format", func() { cfg.Format = *format })
	set("log-level", func() { cfg.LogLevel = *logLevel })

	switch cfg.Format {
	case "csv", "summary":
	default:
		return config{}, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	return cfg, nil
}
