/*
 * doc.go, part of goeos.
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

//Package calc implements the energy models (calculators) used by goeos to
//compute the potential energy of a set of atoms. Calculators are as separated
//as possible from the workflow that uses them: anything that fulfills the
//Calculator interface can be used to sample an equation of state.
//
//Two calculators are provided: EMT, an effective-medium theory potential for
//fcc metals, implemented in pure Go, and External, which runs any
//program that reads a structure in the extended XYZ format from its standard input
//and prints an energy, in eV, as the last line of its output.

package calc
