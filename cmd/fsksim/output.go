package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/fsksim/dsp/core"
	"github.com/cwbudde/fsksim/dsp/signal"
)

var csvHeader = []string{"series", "time", "value"}

// writeCSV writes every series in long format: one row per sample,
// labelled with the series title.
func writeCSV(w io.Writer, series ...signal.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, 3)
	for _, s := range series {
		times := s.TimeLine()
		values := s.Samples()
		row[0] = s.Label()
		for i, v := range values {
			row[1] = strconv.FormatFloat(times[i], 'g', -1, 64)
			row[2] = strconv.FormatFloat(v, 'g', -1, 64)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeSummary prints the correlation peaks, the spectral peak, signal
// levels and per-slot tone energies as aligned tables.
func writeSummary(w io.Writer, r *result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "signal\t%s\n", r.fsk)
	fmt.Fprintf(tw, "mode\t%s\n", r.pass.Mode)
	freq, mag := r.spectrum.Peak()
	fmt.Fprintf(tw, "spectral peak\t%.1f Hz\t%.4f\n", freq, mag)
	fmt.Fprintf(tw, "level\trms %.2f dBFS\tpeak %.2f dBFS\tcrest %.2f dB\n",
		r.levels.RMSdB(), r.levels.PeakdB(), r.levels.CrestFactordB())
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "REFERENCE\tTONE (Hz)\tPEAK LAG\tLAG (s)\tVALUE")
	for i, p := range r.pass.Peaks() {
		fmt.Fprintf(tw, "%s\t%.1f\t%d\t%.3e\t%.4f\n",
			r.refs[i].Label(), r.tones[i], p.Lag, p.LagTime, p.Value)
	}

	if r.energies != nil {
		fmt.Fprintln(tw)
		fmt.Fprint(tw, "SLOT\tSYMBOL")
		for _, f := range r.tones {
			fmt.Fprintf(tw, "\t%.0f Hz", f)
		}
		fmt.Fprintln(tw)
		for slot, row := range r.energies {
			fmt.Fprintf(tw, "%d\t%g", slot, r.cfg.Symbols[slot])
			for _, p := range row {
				fmt.Fprintf(tw, "\t%.1f dB", core.LinearPowerToDB(math.Max(p, 0)))
			}
			fmt.Fprintln(tw)
		}
	}

	return tw.Flush()
}
