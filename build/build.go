/*
 * build.go, part of goeos.
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

// Package build generates crystal structures: bulk cells of elemental solids
// and the sets of volume scalings used to sample their equations of state.
package build

import (
	"fmt"
	"math"
	"strings"

	chem "github.com/rmera/goeos"
	v3 "github.com/rmera/goeos/v3"
	"gonum.org/v1/gonum/floats"
)

// Supported crystal structures.
const (
	SC  = "sc"
	FCC = "fcc"
	BCC = "bcc"
)

// Options modify the cell returned by Bulk. At most one of them can be true.
// When both are false the primitive cell is built.
type Options struct {
	//Orthorhombic gives the smallest orthorhombic cell (2 atoms for fcc and bcc).
	Orthorhombic bool
	//Cubic gives the conventional cubic cell (4 atoms for fcc, 2 for bcc).
	Cubic bool
}

// Bulk builds a bulk crystal of the element symbol, with the crystal structure crystal
// and lattice constant a (in A). If crystal is empty or a is not positive, they are taken from
// the tabulated reference state of the element.
func Bulk(symbol, crystal string, a float64, opts Options) (*chem.Atoms, error) {
	if opts.Cubic && opts.Orthorhombic {
		return nil, Error{"Can't ask for a cell both cubic and orthorhombic", []string{"Bulk"}}
	}
	refcrystal, refa, ok := chem.ReferenceState(symbol)
	if crystal == "" {
		if !ok {
			return nil, Error{fmt.Sprintf("No crystal structure given and no reference state for %s", symbol), []string{"Bulk"}}
		}
		crystal = refcrystal
	}
	crystal = strings.ToLower(crystal)
	if a <= 0 {
		if !ok || refcrystal != crystal {
			return nil, Error{fmt.Sprintf("No lattice constant given and no reference %s lattice constant for %s", crystal, symbol), []string{"Bulk"}}
		}
		a = refa
	}
	var cell []float64
	var scaled []float64 //fractional coordinates
	switch crystal {
	case SC:
		cell = []float64{a, 0, 0, 0, a, 0, 0, 0, a}
		scaled = []float64{0, 0, 0}
	case FCC:
		switch {
		case opts.Cubic:
			cell = []float64{a, 0, 0, 0, a, 0, 0, 0, a}
			scaled = []float64{0, 0, 0, 0, 0.5, 0.5, 0.5, 0, 0.5, 0.5, 0.5, 0}
		case opts.Orthorhombic:
			b := a / math.Sqrt(2)
			cell = []float64{b, 0, 0, 0, b, 0, 0, 0, a}
			scaled = []float64{0, 0, 0, 0.5, 0.5, 0.5}
		default:
			h := a / 2
			cell = []float64{0, h, h, h, 0, h, h, h, 0}
			scaled = []float64{0, 0, 0}
		}
	case BCC:
		if opts.Cubic || opts.Orthorhombic {
			cell = []float64{a, 0, 0, 0, a, 0, 0, 0, a}
			scaled = []float64{0, 0, 0, 0.5, 0.5, 0.5}
		} else {
			h := a / 2
			cell = []float64{-h, h, h, h, -h, h, h, h, -h}
			scaled = []float64{0, 0, 0}
		}
	default:
		return nil, Error{fmt.Sprintf("Unknown crystal structure %q", crystal), []string{"Bulk"}}
	}
	C, _ := v3.NewMatrix(cell) //the slices are hardcoded, no error
	S, _ := v3.NewMatrix(scaled)
	coords := v3.Zeros(S.NVecs())
	coords.Mul(S, C)
	symbols := make([]string, S.NVecs())
	for i := range symbols {
		symbols[i] = symbol
	}
	atoms, err := chem.NewAtoms(symbols, coords, C)
	if err != nil {
		if e, ok := err.(chem.Error); ok {
			e.Decorate("Bulk")
		}
		return nil, err
	}
	return atoms, nil
}

// Scalings returns n linear scale factors evenly spaced between lo and hi, both included.
func Scalings(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, Error{fmt.Sprintf("Need at least 2 scalings, %d requested", n), []string{"Scalings"}}
	}
	if lo <= 0 || hi <= 0 {
		return nil, Error{"Scale factors must be positive", []string{"Scalings"}}
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

// Error is the error type for the build package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "goeos/build: " + err.message }

// Decorate returns the call trail of the error, adding dec to it if it is not empty.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
