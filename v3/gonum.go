/*
 * gonum.go, part of goeos.
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

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space. It wraps a gonum Dense with
// exactly 3 columns.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix wraps a gonum Dense with 3 columns in a Matrix. It panics if A
// does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// Matrix2Dense returns the underlying gonum Dense.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data. The data
// slice is used as backing storage, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d or empty", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// VecView returns a view of the ith vector of F. Changes in the
// view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of r vectors of F, starting from the ith.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

// unwrap returns the Dense under A if A is a Matrix, so gonum can
// see it (and detect aliasing) directly.
func unwrap(A mat.Matrix) mat.Matrix {
	if a, ok := A.(*Matrix); ok {
		return a.Dense
	}
	return A
}

// Mul wraps mat.Dense.Mul to take care of the case when one of the
// arguments is a Matrix, which could also be the receiver.
func (F *Matrix) Mul(A, B mat.Matrix) {
	F.Dense.Mul(unwrap(A), unwrap(B))
}

// Scale puts in F the matrix A scaled by f.
func (F *Matrix) Scale(f float64, A mat.Matrix) {
	F.Dense.Scale(f, unwrap(A))
}

// Add puts in F the element-wise sum of A and B.
func (F *Matrix) Add(A, B mat.Matrix) {
	F.Dense.Add(unwrap(A), unwrap(B))
}

// Sub puts in F the element-wise difference A-B.
func (F *Matrix) Sub(A, B mat.Matrix) {
	F.Dense.Sub(unwrap(A), unwrap(B))
}

// Copy puts a copy of A in F. Both must have the same number of vectors.
func (F *Matrix) Copy(A mat.Matrix) {
	F.Dense.Copy(unwrap(A))
}

// Vec returns a copy of the ith vector of F as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

// Det returns the determinant of F, which must be 3x3.
func (F *Matrix) Det() float64 {
	if F.NVecs() != 3 {
		panic(ErrDeterminant)
	}
	return det(F)
}

// Inverse puts in F the inverse of the 3x3 matrix A. It returns an error
// if A is singular.
func (F *Matrix) Inverse(A *Matrix) error {
	if A.NVecs() != 3 || F.NVecs() != 3 {
		panic(ErrShape)
	}
	d := det(A)
	if math.Abs(d) <= appzero {
		return Error{string(ErrSingular), []string{"Inverse"}, true}
	}
	if err := F.Dense.Inverse(A.Dense); err != nil {
		return Error{fmt.Sprintf("%s: %s", ErrGonum, err.Error()), []string{"Inverse"}, true}
	}
	return nil
}

// det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

//Errors

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

var _ errorInt = Error{}

// Error is the error type of the package. It fulfills the chem.Error interface,
// which can't be imported here to avoid a circular import.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goeos/v3: A v3.Matrix should have 3 columns")
	ErrNoCrossProduct  = PanicMsg("goeos/v3: Invalid matrix for cross product")
	ErrGonum           = PanicMsg("goeos/v3: Error in gonum function")
	ErrDeterminant     = PanicMsg("goeos/v3: Determinants are only available for 3x3 matrices")
	ErrSingular        = PanicMsg("goeos/v3: Singular matrix")
	ErrShape           = PanicMsg("goeos/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("goeos/v3: index out of range")
)
