/*
 * stf_test.go, part of goeos.
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

package stf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/goeos"
	"github.com/rmera/goeos/build"
	v3 "github.com/rmera/goeos/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScan(Te *testing.T, name string, energies []float64) *chem.Atoms {
	al, err := build.Bulk("Al", build.FCC, 4.0, build.Options{Orthorhombic: true})
	require.NoError(Te, err)
	w, err := NewWriter(name, al.Len(), map[string]string{"symbols": "Al,Al", "model": "emt"})
	require.NoError(Te, err)
	cell0 := al.Cell()
	for i, e := range energies {
		a := al.Copy()
		c := v3.Zeros(3)
		c.Scale(1+0.01*float64(i), cell0)
		require.NoError(Te, a.SetCell(c, true))
		require.NoError(Te, w.Record(a, e))
	}
	assert.Equal(Te, len(energies), w.Frames())
	require.NoError(Te, w.Close())
	return al
}

func TestSTFRoundTrip(Te *testing.T) {
	energies := []float64{0.0190898, -0.0031172, -0.0096925}
	for _, ext := range []string{"stf", "stz", "str", "stl"} {
		Te.Run(ext, func(Te *testing.T) {
			name := filepath.Join(Te.TempDir(), "scan."+ext)
			al := writeScan(Te, name, energies)
			frames, header, err := ReadAll(name)
			require.NoError(Te, err)
			assert.Equal(Te, "4", header["prec"])
			assert.Equal(Te, "Al,Al", header["symbols"])
			assert.Equal(Te, "emt", header["model"])
			require.Len(Te, frames, len(energies))
			for i, F := range frames {
				require.True(Te, F.HasEnergy)
				assert.Equal(Te, energies[i], F.Energy)
				s := 1 + 0.01*float64(i)
				assert.InDelta(Te, al.Volume()*s*s*s, F.Volume(), 1e-9)
				for j := 0; j < al.Len(); j++ {
					want := al.Coords.Vec(j)
					got := F.Coords.Vec(j)
					for k := range want {
						assert.InDelta(Te, want[k]*s, got[k], 1e-4)
					}
				}
			}
		})
	}
}

func TestSTFNext(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "next.stf")
	writeScan(Te, name, []float64{-1.5, 2.25})
	rtraj, _, err := New(name)
	require.NoError(Te, err)
	defer rtraj.Close()
	require.True(Te, rtraj.Readable())
	require.Equal(Te, 2, rtraj.Len())
	coords := v3.Zeros(rtraj.Len())
	box := make([]float64, 10)
	require.NoError(Te, rtraj.Next(coords, box))
	assert.Equal(Te, -1.5, box[9])
	//discarded frame
	require.NoError(Te, rtraj.Next(nil))
	err = rtraj.Next(coords)
	require.Error(Te, err)
	_, ok := err.(chem.LastFrameError)
	assert.True(Te, ok, "expected a LastFrameError, got %T", err)
	assert.True(Te, errors.Is(err, io.EOF))
	assert.False(Te, rtraj.Readable())
}

func TestSTFWriteErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := NewWriter(filepath.Join(dir, "bad.stf"), 2, map[string]string{"prec": "x"})
	assert.Error(Te, err)
	_, err = NewWriter(filepath.Join(dir, "empty.stf"), 0, nil)
	assert.Error(Te, err)

	w, err := NewWriter(filepath.Join(dir, "ok.stf"), 2, nil)
	require.NoError(Te, err)
	err = w.WNext(v3.Zeros(3))
	var serr *Error
	require.ErrorAs(Te, err, &serr)
	assert.Equal(Te, "stf", serr.Format())
	assert.True(Te, serr.Critical())
	require.NoError(Te, w.Close())
	assert.Error(Te, w.WNext(v3.Zeros(2)))
	assert.NoError(Te, w.Close())
}

func TestCoordsEncoding(Te *testing.T) {
	var itemp [3]int
	s := coordsEncode([3]float64{1.23456, -0.00004, 2.00016}, itemp, 4)
	assert.Equal(Te, "12346 0 20002\n", s)
	var ftemp [3]float64
	require.NoError(Te, coordsDecode("12346 0 20002", &ftemp, 4))
	assert.InDelta(Te, 1.2346, ftemp[0], 1e-12)
	assert.InDelta(Te, 2.0002, ftemp[2], 1e-12)
	assert.Error(Te, coordsDecode("1 2", &ftemp, 4))
}

func ExampleReadAll() {
	dir, _ := os.MkdirTemp("", "stf")
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "example.stf")
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 1.5, 1.5, 0})
	w, _ := NewWriter(name, 2, nil)
	w.WFrame(&Frame{Coords: coords, Cell: []float64{3, 0, 0, 0, 3, 0, 0, 0, 3}, Energy: -0.25, HasEnergy: true})
	w.Close()
	frames, _, _ := ReadAll(name)
	fmt.Printf("%d frame(s), V=%.1f E=%.2f\n", len(frames), frames[0].Volume(), frames[0].Energy)
	// Output: 1 frame(s), V=27.0 E=-0.25
}
