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

//Package stf implements the simple trajectory format, an append-only trajectory format for goeos.
//stf aims to produce reasonably small files and to be very easy to read and write, so readers/writers
//can be easily implemented in other programing languages / for other libraries or programs.
//Equation of state workflows use it to record every sampled configuration together with its
//cell and potential energy, so the samples can be re-analyzed or plotted later.

/******************** Format Specification   ***************************************************


An STF file has the extension stf, and it is compressed with z-standard (zstd). Files ending
in 'z' (i.e. stz) are gzip-compressed instead, files ending in 'r' use raw deflate and
files ending in 'l' use lzw. Any other extension means zstd.

A STF file may only contain ASCII symbols.

A STF file has a "header" starting in the first line, and ending with a line that starts with the
characters "**" followed by one or more spaces, and the number of atoms per frame.

Each line of the header must be a pair key=value. The precision (an integer greater than 0,
see below) must be included in the header, with the corresponding key "prec". For example,
a 'precision' line could be:

prec=4

goeos writers also include the keys "symbols" (the chemical symbols of the atoms, comma-separated),
"run" (an unique identifier for the run that produced the file) and "model" (the energy model used),
but readers must not require them.

After the header, the file has one line per atom, per frame. Each line contains  3 numbers,
corresponding to the x y and z cartesian coordinates, respectively, and nothing more. Each
of these 3 number contains the respective coordinate in Angstrom, multiplied by 10 to the
power of (precision), and rounded (half to even) to make it an integer.

Each frame ends with a line starting with the character "*" (no whitespaces before) , optionally
followed by: one or more whitespace and 9 floating-point numbers separated by spaces. If present,
these number correspond to the vectors defining the cell, in Angstrom, one vector after the other.
A tenth number, if present, is the potential energy of the frame, in eV.

The "**" sequence may only be used as a header termination, as described above and can not appear
anywhere else in the file.

***************************************************************************************************/

package stf
