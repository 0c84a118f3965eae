/*
 * traj.go, part of goeos.
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
	"sort"

	"github.com/rmera/goeos/traj/stf"
	"github.com/spf13/cobra"
)

func newTrajCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "traj <file>",
		Short: "Print the header and frames of an STF trajectory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTraj(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runTraj(out io.Writer, file string) error {
	frames, header, err := stf.ReadAll(file)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(out, "%d frames\n", len(frames))
	for i, F := range frames {
		fmt.Fprintf(out, "%4d  atoms %d", i, F.Coords.NVecs())
		if F.Cell != nil {
			fmt.Fprintf(out, "  volume %.6f", F.Volume())
		}
		if F.HasEnergy {
			fmt.Fprintf(out, "  energy %.7f", F.Energy)
		}
		fmt.Fprintln(out)
	}
	return nil
}
