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

// Package eos fits equation-of-state models to volume-energy samples.
//
// The fitted quantities are the equilibrium volume V0 (A^3), the energy at
// that volume E0 (eV) and the bulk modulus B (eV/A^3). Models are named
// case-insensitively ("SJEOS", "sjeos" and "SjEoS" are the same model).
//
// Most models are fitted iteratively with Levenberg-Marquardt, starting from
// a parabolic fit to the samples. sjeos is fitted in closed form.
package eos
