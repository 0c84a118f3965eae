/*
 * fit.go, part of goeos.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rmera/goeos/chemplot"
	"github.com/rmera/goeos/eos"
	"github.com/rmera/goeos/traj/stf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newFitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit [file]",
		Short: "Fit equations of state to volume-energy samples",
		Long: `Fit equations of state to the samples in file, which is either a text file
with volume (A^3) and energy (eV) columns or an STF trajectory with energies
(extensions stf, stz, str and stl). Without a file, the reference aluminum
samples are fitted.

Examples:
  goeos fit samples.dat --model sjeos --plot Al.png
  goeos fit eos.stf -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			plot, _ := cmd.Flags().GetString("plot")
			return a.runFit(cmd.OutOrStdout(), file, plot)
		},
	}
	cmd.Flags().StringSlice("model", nil, "equations of state to fit (default: all supported)")
	cmd.Flags().String("plot", "", "plot the fits to this file (png, svg, pdf)")
	cmd.Flags().StringP("output", "o", "table", "output format: table or yaml")
	bind(cmd, "model", "models")
	bind(cmd, "output", "output")
	return cmd
}

// fitRow is one fitted model, as printed.
type fitRow struct {
	Model   string  `yaml:"model"`
	V0      float64 `yaml:"v0"`
	E0      float64 `yaml:"e0"`
	B       float64 `yaml:"b"`
	BGPa    float64 `yaml:"b_gpa"`
	Warning string  `yaml:"warning,omitempty"`
	Error   string  `yaml:"error,omitempty"`
}

func isTrajectory(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".stf", ".stz", ".str", ".stl":
		return true
	}
	return false
}

func readSamples(file string, def []eos.Sample) ([]eos.Sample, error) {
	if file == "" {
		return def, nil
	}
	if isTrajectory(file) {
		frames, _, err := stf.ReadAll(file)
		if err != nil {
			return nil, err
		}
		samples := make([]eos.Sample, 0, len(frames))
		for i, F := range frames {
			if !F.HasEnergy || F.Cell == nil {
				return nil, fmt.Errorf("%s: frame %d has no cell or energy", file, i)
			}
			samples = append(samples, eos.Sample{Volume: F.Volume(), Energy: F.Energy})
		}
		return samples, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return eos.ReadSamples(f)
}

func (a *app) runFit(out io.Writer, file, plot string) error {
	r := a.cfg.Regress()
	v, e := r.SampleVolumes(), r.SampleEnergies()
	def := make([]eos.Sample, len(v))
	for i := range v {
		def[i] = eos.Sample{Volume: v[i], Energy: e[i]}
	}
	samples, err := readSamples(file, def)
	if err != nil {
		return err
	}
	a.log.Info("fitting", "samples", len(samples), "file", file)
	models := a.cfg.Models
	if len(models) == 0 {
		models = eos.CurrentModels()
	}
	var rows []fitRow
	var fitted []*eos.EOS
	for _, m := range models {
		E, err := eos.FromSamples(samples, m)
		if err != nil {
			return err
		}
		if a.cfg.MaxEvaluations > 0 {
			E.Fitter.MaxEvaluations = a.cfg.MaxEvaluations
		}
		E.Fitter.SetLogger(a.log.WithName("eos"))
		P, err := E.Fit()
		if err != nil {
			rows = append(rows, fitRow{Model: E.Model().Name, Error: err.Error()})
			continue
		}
		fitted = append(fitted, E)
		rows = append(rows, fitRow{E.Model().Name, P.V0, P.E0, P.B, P.BulkModulusGPa(), E.Warning(), ""})
	}
	if plot != "" {
		if len(fitted) == 0 {
			return fmt.Errorf("nothing to plot, no model could be fitted")
		}
		if err := chemplot.PlotEOS(plot, "", fitted...); err != nil {
			return err
		}
		a.log.Info("plot written", "file", plot)
	}
	if a.cfg.Output == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "model\tV0 [A^3]\tE0 [eV]\tB [GPa]\t")
	for _, r := range rows {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tfailed: %s\t\n", r.Model, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.6f\t%.7f\t%.3f\t%s\n", r.Model, r.V0, r.E0, r.BGPa, r.Warning)
	}
	return tw.Flush()
}
