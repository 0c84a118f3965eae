/*
 * atomicdata.go, part of goeos.
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

// A map for assigning atomic numbers to elements.
// Only the elements that goeos can build or compute are present.
var symbolZ = map[string]int{
	"H":  1,
	"Li": 3,
	"C":  6,
	"N":  7,
	"O":  8,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"K":  19,
	"Cr": 24,
	"Fe": 26,
	"Ni": 28,
	"Cu": 29,
	"Mo": 42,
	"Pd": 46,
	"Ag": 47,
	"W":  74,
	"Pt": 78,
	"Au": 79,
	"Po": 84,
}

// A map for assigning mass to elements.
var symbolMass = map[string]float64{
	"H":  1.008,
	"Li": 6.94,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"K":  39.098,
	"Cr": 51.996,
	"Fe": 55.845,
	"Ni": 58.693,
	"Cu": 63.546,
	"Mo": 95.95,
	"Pd": 106.42,
	"Ag": 107.868,
	"W":  183.84,
	"Pt": 195.084,
	"Au": 196.967,
	"Po": 209.0,
}

// Experimental reference states: crystal structure and lattice constant (A)
// for the elemental solids.
var symbolRefState = map[string]struct {
	crystal string
	a       float64
}{
	"Li": {"bcc", 3.49},
	"Na": {"bcc", 4.23},
	"Al": {"fcc", 4.05},
	"K":  {"bcc", 5.23},
	"Cr": {"bcc", 2.88},
	"Fe": {"bcc", 2.87},
	"Ni": {"fcc", 3.52},
	"Cu": {"fcc", 3.61},
	"Mo": {"bcc", 3.15},
	"Pd": {"fcc", 3.89},
	"Ag": {"fcc", 4.09},
	"W":  {"bcc", 3.16},
	"Pt": {"fcc", 3.92},
	"Au": {"fcc", 4.08},
	"Po": {"sc", 3.35},
}

// ReferenceState returns the crystal structure and lattice constant of the
// elemental solid of symbol. ok is false if the element has no tabulated
// reference state.
func ReferenceState(symbol string) (crystal string, a float64, ok bool) {
	r, ok := symbolRefState[symbol]
	return r.crystal, r.a, ok
}

// AtomicNumber returns the atomic number of the element symbol, or 0
// if the element is unknown.
func AtomicNumber(symbol string) int {
	return symbolZ[symbol]
}
