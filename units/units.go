/*
 * units.go, part of goeos.
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

// Package units provides physical constants and conversion factors in the
// internal unit system of goeos: Angstrom, eV, atomic mass units.
//
// The fundamental constants are the CODATA 1986 set, which is the one the
// historical EMT reference data were generated with. Derived units are
// computed from them, so for instance Bohr is not the current CODATA value.
package units

import "math"

// Fundamental constants, CODATA 1986.
const (
	C       = 299792458.0      // speed of light, m/s
	Mu0     = 4.0e-7 * math.Pi // vacuum permeability
	Hplanck = 6.6260755e-34    // J s
	E       = 1.60217733e-19   // elementary charge, C
	Me      = 9.1093897e-31    // electron mass, kg
	Mp      = 1.6726231e-27    // proton mass, kg
	Nav     = 6.0221367e23     // Avogadro
	Kb      = 1.380658e-23     // Boltzmann, J/K
)

// Derived constants.
const (
	Eps0 = 1 / Mu0 / (C * C)
	Hbar = Hplanck / (2 * math.Pi)
)

// Units, expressed in the internal system (Angstrom, eV).
const (
	Angstrom = 1.0
	Nm       = 10.0
	EV       = 1.0
	Bohr     = 4e10 * math.Pi * Eps0 * Hbar * Hbar / Me / (E * E)
	Hartree  = Me * E * E * E / 16 / (math.Pi * math.Pi) / (Eps0 * Eps0) / (Hbar * Hbar)
	Ry       = Hartree / 2
	KJ       = 1000 / E
	Kcal     = 4.184 * KJ
	Mol      = Nav
	Pascal   = (1 / E) / 1e30 // J/m^3 in eV/A^3
	GPa      = 1e9 * Pascal
)

// Conversions kept from goChem.
const (
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
	H2Kcal  = 627.509 //Hartree 2 Kcal/mol
	Kcal2H  = 1 / 627.509
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
)

// EVA3ToGPa converts a pressure (or bulk modulus) in eV/A^3 to GPa.
func EVA3ToGPa(p float64) float64 {
	return p / GPa
}

// GPaToEVA3 converts a pressure in GPa to eV/A^3.
func GPaToEVA3(p float64) float64 {
	return p * GPa
}
