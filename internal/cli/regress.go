/*
 * regress.go, part of goeos.
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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rmera/goeos/internal/logging"
	"github.com/rmera/goeos/regress"
	"github.com/spf13/cobra"
)

func newRegressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Run the equation of state regression check",
		Long: `Build the crystal, sample its energy at the configured volume scalings,
fit every equation of state the current backend supports and compare the
fitted equilibrium volumes and bulk moduli against the reference values.

The command fails on the first comparison beyond its tolerance.

Examples:
  goeos regress                          # EMT aluminum reference run
  goeos regress --trajectory eos.stf     # also record the sampled cells
  goeos regress --output yaml
  goeos regress --metrics-file /var/lib/node_exporter/goeos.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRegress(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("trajectory", "", "write the sampled configurations to this STF file")
	cmd.Flags().StringP("output", "o", "table", "output format: table or yaml")
	cmd.Flags().StringSlice("models", nil, "equations of state to fit (default: all supported)")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics of the run to this file")
	bind(cmd, "trajectory", "trajectory")
	bind(cmd, "metrics-file", "metrics_file")
	bind(cmd, "output", "output")
	bind(cmd, "models", "models")
	return cmd
}

func (a *app) runRegress(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := regress.Options{
		Calculator:      a.cfg.NewCalculator(a.log),
		Trajectory:      a.cfg.Trajectory,
		MaxEvaluations:  a.cfg.MaxEvaluations,
		SkipSampleCheck: !a.cfg.IsReference(),
		Log:             a.log,
	}
	if len(a.cfg.Models) > 0 {
		opts.Models = a.cfg.Models
	}
	R, err := regress.Run(ctx, a.cfg.Regress(), opts)
	if R == nil {
		return err
	}
	if werr := writeReport(out, R, a.cfg.Output); werr != nil {
		return werr
	}
	if a.cfg.MetricsFile != "" {
		M := regress.NewMetrics()
		M.Observe(R)
		if merr := M.WriteTextfile(a.cfg.MetricsFile); merr != nil {
			return merr
		}
		a.log.V(logging.DEBUG).Info("metrics written", "file", a.cfg.MetricsFile)
	}
	var V *regress.Violation
	if errors.As(err, &V) {
		return fmt.Errorf("regression check failed: %w", err)
	}
	return err
}

func writeReport(out io.Writer, R *regress.Report, format string) error {
	if format == "yaml" {
		return R.WriteYAML(out)
	}
	return R.WriteTable(out)
}
