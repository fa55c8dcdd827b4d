/*
 * gonum.go, part of chemtraj.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// gonum.go holds the Matrix container itself and the operations that need
// direct access to the underlying mat.Dense.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space: a row-major Nx3 matrix. Within the
// package a "vector" means one row: the cartesian coordinates, or velocity,
// of a single atom, or one row of a UnitCell's 3x3 matrix.
//
// Matrix embeds *mat.Dense, so all of Dense's methods (At, Set, Dims, T,
// Copy, Add, Sub, Scale, MulElem, RawRowView, ...) are available directly.
type Matrix struct {
	*mat.Dense
}

// Matrix2Dense returns the gonum Dense backing A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dense2Matrix wraps a gonum Dense as a Matrix. Panics if A does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// NewMatrix builds a Matrix with 3 columns from data, which must have a
// length divisible by 3. Rows are filled in order, so data is the
// concatenation of each vector's x, y, z.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice of length %d is not divisible by %d", l, cols), []string{"v3.NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs == 0 {
		return &Matrix{mat.NewDense(1, cols, make([]float64, cols)).Slice(0, 0, 0, cols).(*mat.Dense)}
	}
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

// NVecs returns the number of vectors (rows) in F. Panics if F does not have 3 columns.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// VecView returns a view of the ith vector of F. Changes to the view affect F.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// RowView is an alias for VecView, kept for readability at call sites that
// index rows of a matrix that is not necessarily made of atomic vectors
// (e.g. a UnitCell matrix).
func (F *Matrix) RowView(i int) *Matrix {
	return F.VecView(i)
}

// View returns a view of F starting at (i,j) and spanning r rows and c columns.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)}
}

// SetMatrix copies A into the receiver starting at row i, column j.
func (F *Matrix) SetMatrix(i, j int, A *Matrix) {
	ar, ac := A.Dims()
	F.View(i, j, ar, ac).Copy(A)
}

// Stack writes A followed by B into the receiver, which must have at least
// as many rows as A and B combined.
func (F *Matrix) Stack(A, B *Matrix) error {
	ar, _ := A.Dims()
	br, _ := B.Dims()
	if F.NVecs() < ar+br {
		return Error{"receiver too small to hold both matrices", []string{"v3.Stack"}, true}
	}
	F.View(0, 0, ar, 3).Copy(A)
	F.View(ar, 0, br, 3).Copy(B)
	return nil
}

// String returns a simple textual representation of the matrix, one vector
// per line, matching the teacher's debug-print convention.
func (F *Matrix) String() string {
	r, c := F.Dims()
	s := ""
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			s += fmt.Sprintf("%8.3f ", F.At(i, j))
		}
		s += "\n"
	}
	return s
}

// Error is v3's own lightweight error type, matching the decoration-stack
// idiom used by the root package's Error without importing it (importing it
// would create a cycle, since the root package needs v3.Matrix for
// positions and cell vectors).
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

// Decorate appends caller to the decoration trail and returns it.
func (err Error) Decorate(caller string) []string {
	if caller != "" {
		err.deco = append(err.deco, caller)
	}
	return err.deco
}

// Critical reports whether the error should stop processing.
func (err Error) Critical() bool { return err.critical }

// errDecorate type-asserts err to the local Error type and decorates it with
// caller, matching the pattern used across the teacher's subpackages.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}

// PanicMsg marks programming-error panics (bad shapes passed by the caller),
// as opposed to Error, which is for recoverable, reportable conditions.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("v3: a Matrix must have exactly 3 columns")
	ErrShape        = PanicMsg("v3: dimension mismatch")
)
