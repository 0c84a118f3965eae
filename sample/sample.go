/*
 * sample.go, part of goeos.
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

// Package sample evaluates the energy of a crystal over a set of volume scalings.
package sample

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	chem "github.com/rmera/goeos"
	"github.com/rmera/goeos/calc"
	"github.com/rmera/goeos/eos"
	v3 "github.com/rmera/goeos/v3"
)

// Recorder receives every sampled configuration with its energy.
// *stf.StfW is a Recorder.
type Recorder interface {
	Record(atoms *chem.Atoms, energy float64) error
}

// Run returns, for each scale factor x in scalings, the volume and energy of atoms with
// its cell (and the atomic positions) scaled by x. atoms is not modified. Samples
// are evaluated in order, and the first error stops the run. If rec is not nil,
// each sampled configuration is passed to it. Run logs to the logr.Logger in ctx, if any.
func Run(ctx context.Context, atoms *chem.Atoms, c calc.Calculator, scalings []float64, rec Recorder) ([]eos.Sample, error) {
	if atoms == nil || c == nil {
		return nil, &Error{message: "Given nil atoms or calculator", index: -1, deco: []string{"Run"}}
	}
	if !atoms.Periodic() {
		return nil, &Error{message: "Atoms must be periodic", index: -1, deco: []string{"Run"}}
	}
	log := logr.FromContextOrDiscard(ctx)
	cell0 := atoms.Cell()
	samples := make([]eos.Sample, 0, len(scalings))
	for i, x := range scalings {
		if err := ctx.Err(); err != nil {
			return samples, &Error{message: err.Error(), index: i, err: err, deco: []string{"Run"}}
		}
		if x <= 0 {
			return samples, &Error{message: fmt.Sprintf("Invalid scaling factor %g", x), index: i, deco: []string{"Run"}}
		}
		a := atoms.Copy()
		cell := v3.Zeros(3)
		cell.Scale(x, cell0)
		if err := a.SetCell(cell, true); err != nil {
			return samples, errDecorate(err, i, "Run")
		}
		e, err := c.PotentialEnergy(ctx, a)
		if err != nil {
			return samples, errDecorate(err, i, "Run")
		}
		s := eos.Sample{Volume: a.Volume(), Energy: e}
		log.V(1).Info("sample", "index", i, "scaling", x, "volume", s.Volume, "energy", s.Energy)
		if rec != nil {
			if err := rec.Record(a, e); err != nil {
				return samples, errDecorate(err, i, "Run")
			}
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// Error is the error type for the sample package. It fulfills chem.Error.
type Error struct {
	message string
	index   int   //index of the failing sample, -1 if none
	err     error //underlying error, if any
	deco    []string
}

func (err *Error) Error() string {
	if err.index < 0 {
		return "sample: " + err.message
	}
	return fmt.Sprintf("sample %d: %s", err.index, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns the error that caused err, if any.
func (err *Error) Unwrap() error { return err.err }

// Index returns the index of the sample that failed, or -1.
func (err *Error) Index() int { return err.index }

// errDecorate decorates errors that fulfill chem.Error, and wraps
// the others in an *Error.
func errDecorate(err error, index int, caller string) error {
	if err2, ok := err.(chem.Error); ok {
		err2.Decorate(fmt.Sprintf("%s: sample %d", caller, index))
		return err2
	}
	return &Error{message: err.Error(), index: index, err: err, deco: []string{caller}}
}
