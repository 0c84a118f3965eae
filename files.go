/*
 * files.go, part of goeos.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// XYZWrite writes the atoms A to out in the extended XYZ format. The cell, if A is periodic,
// goes in the Lattice key of the comment line, together with the key-value pairs
// in info, written in alphabetical order.
func XYZWrite(out io.Writer, A *Atoms, info map[string]string) error {
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n", A.Len())
	fields := make([]string, 0, len(info)+3)
	if A.Periodic() {
		c := A.cell.RawMatrix().Data
		lat := make([]string, 9)
		for i, v := range c {
			lat[i] = fmt.Sprintf("%.8f", v)
		}
		fields = append(fields, fmt.Sprintf("Lattice=\"%s\"", strings.Join(lat, " ")))
	}
	fields = append(fields, "Properties=species:S:1:pos:R:3")
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%s", k, info[k]))
	}
	pbc := "F F F"
	if A.Periodic() {
		pbc = "T T T"
	}
	fields = append(fields, fmt.Sprintf("pbc=\"%s\"", pbc))
	fmt.Fprintln(w, strings.Join(fields, " "))
	for i := 0; i < A.Len(); i++ {
		c := A.Coords.Vec(i)
		if _, err := fmt.Fprintf(w, "%-2s %15.8f %15.8f %15.8f\n", A.atoms[i].Symbol, c[0], c[1], c[2]); err != nil {
			return errDecorate(err, "XYZWrite")
		}
	}
	return errDecorate(w.Flush(), "XYZWrite")
}

// XYZFileWrite writes the atoms A to the file xyzname, which will
// be created for that. If the file exist it will be overwritten.
func XYZFileWrite(xyzname string, A *Atoms, info map[string]string) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return errDecorate(err, "XYZFileWrite")
	}
	defer out.Close()
	if err := XYZWrite(out, A, info); err != nil {
		return errDecorate(err, "XYZFileWrite")
	}
	return nil
}
