/*
 * report.go, part of goeos.
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

package regress

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the report to w as YAML.
func (R *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(R); err != nil {
		return fmt.Errorf("regress: encoding report: %w", err)
	}
	return enc.Close()
}

// WriteTable writes the report to w as human-readable text.
func (R *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", R.RunID)
	fmt.Fprintf(tw, "structure\t%s (%s)\n", R.Structure, R.Calculator)
	if R.Trajectory != "" {
		fmt.Fprintf(tw, "trajectory\t%s\n", R.Trajectory)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "volume [A^3]\tenergy [eV]\t")
	for _, s := range R.Samples {
		fmt.Fprintf(tw, "%.6f\t%.7f\t\n", s.Volume, s.Energy)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "model\tV0 [A^3]\tE0 [eV]\tB [GPa]\tR^2\t")
	for _, f := range R.Fits {
		fmt.Fprintf(tw, "%s\t%.6f\t%.7f\t%.3f\t%.6f\t\n", f.Model, f.V0, f.E0, f.BGPa, f.RSquared)
	}
	for _, e := range R.Excluded {
		fmt.Fprintf(tw, "%s\texcluded: %s\t\n", e.Model, e.Reason)
	}
	fmt.Fprintln(tw)
	if R.Passed {
		fmt.Fprintf(tw, "PASSED\t%d checks\n", R.Checks)
	} else {
		fmt.Fprintf(tw, "FAILED\t%s\n", R.Violation)
	}
	return tw.Flush()
}
