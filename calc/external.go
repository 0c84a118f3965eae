/*
 * external.go, part of goeos.
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

package calc

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	chem "github.com/rmera/goeos"
)

// External runs an external program to obtain the potential energy. The program gets the
// structure, in the extended XYZ format, through its standard input, and must print the
// energy, in eV, as the last field of the last non-empty line of its standard output.
type External struct {
	command string
	timeout time.Duration
	log     logr.Logger
}

// NewExternal returns a calculator that runs command through "sh -c".
func NewExternal(command string) *External {
	X := new(External)
	X.SetDefaults()
	X.command = command
	return X
}

// SetDefaults sets no timeout and a logger that discards everything.
func (X *External) SetDefaults() {
	X.timeout = 0
	X.log = logr.Discard()
}

// SetTimeout sets the maximum time a single energy evaluation can take. Zero
// means no limit.
func (X *External) SetTimeout(t time.Duration) {
	X.timeout = t
}

// SetLogger sets the logger used by the calculator.
func (X *External) SetLogger(l logr.Logger) {
	X.log = l
}

// Command returns the command run by the calculator.
func (X *External) Command() string {
	return X.command
}

// Name returns the name of the calculator.
func (X *External) Name() string {
	return ExternalName
}

// PotentialEnergy runs the external program on atoms and returns the energy it prints.
func (X *External) PotentialEnergy(ctx context.Context, atoms *chem.Atoms) (float64, error) {
	if atoms == nil {
		return 0, &Error{ErrNilAtoms, ExternalName, "", []string{"PotentialEnergy"}, true}
	}
	if X.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, X.timeout)
		defer cancel()
	}
	var in, out, stderr bytes.Buffer
	if err := chem.XYZWrite(&in, atoms, nil); err != nil {
		return 0, &Error{ErrNotRunning, ExternalName, err.Error(), []string{"XYZWrite", "PotentialEnergy"}, true}
	}
	command := exec.CommandContext(ctx, "sh", "-c", X.command)
	command.Stdin = &in
	command.Stdout = &out
	command.Stderr = &stderr
	//children of the shell can keep the output pipes open after a timeout kills it.
	command.WaitDelay = time.Second
	X.log.V(1).Info("running external calculator", "command", X.command, "atoms", atoms.Len())
	if err := command.Run(); err != nil {
		detail := err.Error()
		if s := strings.TrimSpace(stderr.String()); s != "" {
			detail += ": " + s
		}
		return 0, &Error{ErrNotRunning, ExternalName, detail, []string{"exec.Run", "PotentialEnergy"}, true}
	}
	energy, err := lastFloat(out.String())
	if err != nil {
		return 0, &Error{ErrNoEnergy, ExternalName, err.Error(), []string{"lastFloat", "PotentialEnergy"}, true}
	}
	return energy, nil
}

// lastFloat parses the last field of the last non-empty line of output.
func lastFloat(output string) (float64, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(fields[len(fields)-1], 64)
}
