package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/fsksim/dsp/signal"
)

func runArgs(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func countSeries(records [][]string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records[1:] {
		counts[r[0]]++
	}
	return counts
}

func TestRunDefaultCSV(t *testing.T) {
	code, stdout, stderr := runArgs(t)
	require.Equal(t, 0, code, stderr)

	records := readCSV(t, stdout)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"series", "time", "value"}, records[0])

	counts := countSeries(records)
	assert.Equal(t, 320, counts["fsk"])
	assert.Equal(t, 320, counts["baseband"])
	assert.Equal(t, 20, counts["reference a=+1"])
	assert.Equal(t, 20, counts["reference a=+0"])
	assert.Equal(t, 20, counts["reference a=-1"])
	assert.Equal(t, 301, counts["xcorr fsk / reference a=+1"])
	assert.Len(t, records, 1+320+320+60+3*301)

	assert.Equal(t, []string{"fsk", "0", "0"}, records[1])
	assert.Contains(t, stderr, "correlated")
}

func TestRunSummaryToneEnergies(t *testing.T) {
	code, stdout, stderr := runArgs(t, "--format", "summary", "--workers", "3")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "REFERENCE")
	assert.Contains(t, stdout, "reference a=-1")
	assert.Contains(t, stdout, "valid")
	assert.Contains(t, stdout, "dBFS")
	assert.Contains(t, stdout, "30000 Hz")

	levels := []string{"1", "0", "-1"}
	slots := 0
	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 8 || fields[3] != "dB" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		slots++

		// a 20-sample slot of a unit tone on its own bin carries 100 = 20 dB
		matched := -1
		for j := range levels {
			if fields[2+2*j] == "20.0" {
				matched = j
			}
		}
		require.NotEqual(t, -1, matched, line)
		assert.Equal(t, levels[matched], fields[1], line)
	}
	assert.Equal(t, 16, slots)
}

func TestRunConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfgYAML := "symbols: [1, -1]\nformat: summary\nmode: full\n"
	require.NoError(t, os.WriteFile(path, []byte(cfgYAML), 0o600))

	code, stdout, stderr := runArgs(t, "-c", path, "--format", "csv")
	require.Equal(t, 0, code, stderr)

	counts := countSeries(readCSV(t, stdout))
	assert.Equal(t, 40, counts["fsk"])
	assert.Equal(t, 59, counts["xcorr fsk / reference a=+1"])
}

func TestParseConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("carrier: 1000\nsample_rate: 8000\nlevels: [1, -1]\n"), 0o600))

	var usage bytes.Buffer
	cfg, err := parseConfig([]string{"--config", path, "--sample-rate", "16000"}, &usage)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, cfg.CarrierFreq)
	assert.Equal(t, 16000.0, cfg.SampleRate)
	assert.Equal(t, []float64{1, -1}, cfg.Levels)
	assert.Equal(t, defaultConfig().Symbols, cfg.Symbols)
	assert.Equal(t, "valid", cfg.Mode)
}

func TestRunAliasingWarning(t *testing.T) {
	code, _, stderr := runArgs(t, "--modulation-index", "20", "--format", "summary")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "tone aliases")
}

func TestRunErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols: [1, \n"), 0o600))

	for _, tc := range []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"--mode", "circular"}},
		{"unknown rounding", []string{"--rounding", "up"}},
		{"unknown window", []string{"--window", "kaiser"}},
		{"unknown format", []string{"--format", "json"}},
		{"bad log level", []string{"--log-level", "loud"}},
		{"strict rounding", []string{"--rounding", "strict", "--symbol-duration", "1.025e-4"}},
		{"zero sample rate", []string{"--sample-rate", "0"}},
		{"empty levels", []string{"--levels", ""}},
		{"missing config", []string{"-c", filepath.Join(t.TempDir(), "none.yaml")}},
		{"malformed config", []string{"-c", path}},
		{"stray argument", []string{"extra"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, _ := runArgs(t, tc.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
		})
	}
}

func TestRunHelp(t *testing.T) {
	code, stdout, stderr := runArgs(t, "--help")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "--modulation-index")
}

func TestWriteCSV(t *testing.T) {
	s, err := signal.New([]float64{0.5, -1}, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, s.WithLabel("a,b")))
	assert.Equal(t, "series,time,value\n\"a,b\",0,0.5\n\"a,b\",0.25,-1\n", buf.String())
}
