/*
 * calc.go, part of goeos.
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
	"context"
	"fmt"

	chem "github.com/rmera/goeos"
)

// Calculator computes the potential energy of a set of atoms.
type Calculator interface {
	//Name returns a short name for the energy model, used in logs
	//and trajectory headers.
	Name() string

	//PotentialEnergy returns the potential energy of atoms, in eV.
	PotentialEnergy(ctx context.Context, atoms *chem.Atoms) (float64, error)
}

// Names of the calculators in this package.
const (
	EMTName      = "emt"
	ExternalName = "external"
)

// Error messages.
const (
	ErrNoParameters = "No parameters for element"
	ErrNotRunning   = "Calculation process could not be started or failed"
	ErrNoEnergy     = "Energy could not be read from the output"
	ErrNilAtoms     = "Given nil atoms"
	ErrCancelled    = "Calculation cancelled"
)

// Error is the error type for the calc package. It fulfills chem.Error.
type Error struct {
	message  string
	calc     string //the calculator that produced the error
	detail   string //more information, or empty string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.detail == "" {
		return fmt.Sprintf("%s calculator: %s", err.calc, err.message)
	}
	return fmt.Sprintf("%s calculator: %s: %s", err.calc, err.message, err.detail)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical.
func (err *Error) Critical() bool { return err.critical }

// Calculator returns the name of the calculator that produced the error.
func (err *Error) Calculator() string { return err.calc }
