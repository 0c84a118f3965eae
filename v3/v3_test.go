/*
 * v3_test.go, part of goeos.
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

package v3

import (
	"fmt"
	"math"
	"testing"
)

func TestGeo(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 10}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("change in view not reflected in the matrix: %v", A)
	}
	fmt.Println("View\n", A, "\n", View)
	D := Matrix2Dense(A)
	D.Set(2, 2, -1)
	if B := Dense2Matrix(D); B.Vec(2)[2] != -1 || A.At(2, 2) != -1 {
		Te.Errorf("Dense2Matrix/Matrix2Dense should share storage: %v", A)
	}
	defer func() {
		if r := recover(); r != ErrIndexOutOfRange {
			Te.Errorf("expected an out of range panic, got %v", r)
		}
	}()
	A.Vec(3)
}

func TestInverse(Te *testing.T) {
	cell, _ := NewMatrix([]float64{2, 0, 0, 0, 3, 0, 0, 0, 4})
	if d := cell.Det(); math.Abs(d-24) > 1e-12 {
		Te.Errorf("determinant %f, expected 24", d)
	}
	inv := Zeros(3)
	if err := inv.Inverse(cell); err != nil {
		Te.Fatal(err)
	}
	id := Zeros(3)
	id.Mul(cell, inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(id.At(i, j)-KronekerDelta(float64(i), float64(j), -1)) > 1e-12 {
				Te.Errorf("A*inv(A) is not the identity: %v", id)
			}
		}
	}
	singular, _ := NewMatrix([]float64{1, 2, 3, 2, 4, 6, 0, 0, 1})
	if err := inv.Inverse(singular); err == nil {
		Te.Error("expected an error inverting a singular matrix")
	}
}

func TestVecOps(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	row, _ := NewMatrix([]float64{10, 20, 30})
	B := Zeros(2)
	B.AddVec(A, row)
	if B.At(1, 2) != 36 {
		Te.Errorf("AddVec gave %v", B)
	}
	B.SubVec(B, row)
	if B.At(1, 2) != 6 || B.At(0, 0) != 1 {
		Te.Errorf("SubVec gave %v", B)
	}
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.Vec(0) != [3]float64{0, 0, 1} {
		Te.Errorf("x cross y = %v", z)
	}
	if n := Norm([3]float64{3, 4, 0}); n != 5 {
		Te.Errorf("norm %f, expected 5", n)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("expected error for a slice not divisible by 3")
	}
}
