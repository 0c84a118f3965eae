/*
 * chem.go, part of goeos.
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

package chem

import (
	"fmt"
	"math"
	"sort"
	"strings"

	v3 "github.com/rmera/goeos/v3"
)

/**Note: Some functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

// Atom contains the information about one atom except for the coordinates,
// which will be in a matrix.
type Atom struct {
	Symbol string
	Z      int
	Mass   float64
	Tag    int //Just in case someone wants to keep something that is not a float.
}

// NewAtom returns an Atom for the element symbol, with atomic number and mass
// taken from the element tables.
func NewAtom(symbol string) (*Atom, error) {
	z, ok := symbolZ[symbol]
	if !ok {
		return nil, &CError{fmt.Sprintf("%s: %s", ErrUnknownElement, symbol), []string{"NewAtom"}, true}
	}
	return &Atom{Symbol: symbol, Z: z, Mass: symbolMass[symbol]}, nil
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	r := *A
	return &r
}

/*****Atoms type***/

// Atoms is a set of atoms with their cartesian coordinates (one row per atom) and,
// for crystals, the cell, whose rows are the lattice vectors.
type Atoms struct {
	atoms  []*Atom
	Coords *v3.Matrix
	cell   *v3.Matrix
	PBC    [3]bool
}

// NewAtoms returns a periodic Atoms with the elements in symbols, coordinates coords
// and the given cell. A nil cell gives a non-periodic Atoms with a zero cell.
// The coordinates and cell are copied.
func NewAtoms(symbols []string, coords, cell *v3.Matrix) (*Atoms, error) {
	if coords == nil {
		return nil, &CError{ErrNilCoords, []string{"NewAtoms"}, true}
	}
	if coords.NVecs() != len(symbols) {
		return nil, &CError{fmt.Sprintf("%s: %d atoms, %d coordinates", ErrWrongLen, len(symbols), coords.NVecs()), []string{"NewAtoms"}, true}
	}
	A := &Atoms{atoms: make([]*Atom, 0, len(symbols))}
	for _, s := range symbols {
		at, err := NewAtom(s)
		if err != nil {
			return nil, errDecorate(err, "NewAtoms")
		}
		A.atoms = append(A.atoms, at)
	}
	A.Coords = v3.Zeros(len(symbols))
	A.Coords.Copy(coords)
	A.cell = v3.Zeros(3)
	if cell != nil {
		if cell.NVecs() != 3 || math.Abs(cell.Det()) < 1e-10 {
			return nil, &CError{ErrBadCell, []string{"NewAtoms"}, true}
		}
		A.cell.Copy(cell)
		A.PBC = [3]bool{true, true, true}
	}
	return A, nil
}

// Len returns the number of atoms.
func (A *Atoms) Len() int {
	return len(A.atoms)
}

// Atom returns the Atom corresponding to the index i. Panics if
// out of range.
func (A *Atoms) Atom(i int) *Atom {
	if i >= A.Len() || i < 0 {
		panic("Atoms: Requested Atom out of bounds")
	}
	return A.atoms[i]
}

// Symbols returns the chemical symbols of all atoms, in order.
func (A *Atoms) Symbols() []string {
	ret := make([]string, len(A.atoms))
	for i, v := range A.atoms {
		ret[i] = v.Symbol
	}
	return ret
}

// Numbers returns the atomic numbers of all atoms, in order.
func (A *Atoms) Numbers() []int {
	ret := make([]int, len(A.atoms))
	for i, v := range A.atoms {
		ret[i] = v.Z
	}
	return ret
}

// Masses returns a slice with the mass of each atom.
func (A *Atoms) Masses() ([]float64, error) {
	ret := make([]float64, len(A.atoms))
	for i, v := range A.atoms {
		if v.Mass == 0 {
			return nil, &CError{fmt.Sprintf("goeos: No mass for atom %d (%s)", i, v.Symbol), []string{"Masses"}, false}
		}
		ret[i] = v.Mass
	}
	return ret, nil
}

// Cell returns a copy of the cell. Rows are the lattice vectors.
func (A *Atoms) Cell() *v3.Matrix {
	c := v3.Zeros(3)
	c.Copy(A.cell)
	return c
}

// Periodic returns true if the Atoms is periodic in all 3 directions.
func (A *Atoms) Periodic() bool {
	return A.PBC[0] && A.PBC[1] && A.PBC[2]
}

// SetCell sets the cell of A to a copy of cell. If scaleAtoms is true, the
// atomic positions are scaled with the cell, so the fractional coordinates
// are preserved.
func (A *Atoms) SetCell(cell *v3.Matrix, scaleAtoms bool) error {
	if cell == nil || cell.NVecs() != 3 || math.Abs(cell.Det()) < 1e-10 {
		return &CError{ErrBadCell, []string{"SetCell"}, true}
	}
	if scaleAtoms {
		inv := v3.Zeros(3)
		if err := inv.Inverse(A.cell); err != nil {
			return errDecorate(err, "SetCell")
		}
		M := v3.Zeros(3)
		M.Mul(inv, cell)
		scaled := v3.Zeros(A.Len())
		scaled.Mul(A.Coords, M)
		A.Coords = scaled
	}
	A.cell.Copy(cell)
	return nil
}

// Volume returns the volume of the cell, in A^3.
func (A *Atoms) Volume() float64 {
	return math.Abs(A.cell.Det())
}

// Copy returns a deep copy of the Atoms.
func (A *Atoms) Copy() *Atoms {
	r := &Atoms{atoms: make([]*Atom, len(A.atoms)), PBC: A.PBC}
	for i, v := range A.atoms {
		r.atoms[i] = v.Copy()
	}
	r.Coords = v3.Zeros(A.Len())
	r.Coords.Copy(A.Coords)
	r.cell = A.Cell()
	return r
}

// Formula returns the chemical formula of the Atoms in Hill-like order
// (alphabetical), i.e. "Al2" or "CuAu3".
func (A *Atoms) Formula() string {
	count := make(map[string]int)
	for _, v := range A.atoms {
		count[v.Symbol]++
	}
	symbols := make([]string, 0, len(count))
	for k := range count {
		symbols = append(symbols, k)
	}
	sort.Strings(symbols)
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if count[s] > 1 {
			fmt.Fprintf(&b, "%d", count[s])
		}
	}
	return b.String()
}

var (
	_ Atomer = (*Atoms)(nil)
	_ Masser = (*Atoms)(nil)
)
