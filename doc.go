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

/*
Package chem is the main package of the goeos library. It provides the atom and periodic
cell structures used through the library, element data, and facilities for writing
some files used in computational chemistry.

		**goeos Capabilities**


	    Builds bulk crystals (sc, fcc, bcc) in primitive, cubic and orthorhombic cells (package build).

	    Computes potential energies with an effective-medium theory potential, or with any
		external program that reads a structure and prints an energy (package calc).

	    Samples the energy of a cell at controlled volume scalings (package sample), recording
		every configuration to a compressed, append-only trajectory (package traj/stf).

	    Fits closed-form equations of state to volume-energy data: SJEOS, Taylor, Murnaghan,
		Birch, Birch-Murnaghan, Poirier-Tarantola, Vinet, Anton-Schmidt and a cubic polynomial
		(package eos), and plots them (package chemplot).

	    Cross-validates the fitted equilibrium volumes and bulk moduli against historical
		reference tables with tiered tolerances (package regress).

	    Uploads result folders to the NOMAD repository (package nomad).

goeos uses its own matrix type for coordinates and cells, v3.Matrix, based on gonum's Dense.
Each row of a v3.Matrix represents one point (or one lattice vector) in space.
*/
package chem
