/*
 * gocoords.go, part of chemtraj.
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

// gocoords.go holds the vector-level operations built on top of the Matrix
// container: row gather/scatter, translation, scaling and two small vector
// helpers (Cross, Unit).

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// appzero is the tolerance below which a floating point value is treated
// as zero, e.g. by Unit when checking for a zero-length vector.
const appzero float64 = 1e-12

// SwapVecs exchanges vectors i and j of F in place.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrShape)
	}
	rowi := append([]float64(nil), F.RawRowView(i)...)
	rowj := F.RawRowView(j)
	for k := 0; k < 3; k++ {
		F.Set(i, k, rowj[k])
		F.Set(j, k, rowi[k])
	}
}

// AddVec adds vec (a single-row Matrix) to every vector of A, putting the
// result in the receiver, translating a whole set of atomic positions by a
// constant offset.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	vr, vc := vec.Dims()
	fr, fc := F.Dims()
	if ac != vc || vr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		F.VecView(i).Add(A.VecView(i), vec)
	}
}

// SubVec subtracts vec from every vector of A, putting the result in the
// receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	neg := Zeros(1)
	neg.Scale(-1, vec)
	F.AddVec(A, neg)
}

// DelVec copies A into the receiver, omitting vector i. The receiver must
// have exactly one fewer row than A.
func (F *Matrix) DelVec(A *Matrix, i int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if i >= ar || fc != ac || fr != ar-1 {
		panic(ErrShape)
	}
	if i > 0 {
		F.View(0, 0, i, ac).Copy(A.View(0, 0, i, ac))
	}
	if i < ar-1 {
		F.View(i, 0, ar-i-1, ac).Copy(A.View(i+1, 0, ar-i-1, ac))
	}
}

// ScaleByVec scales each vector of A component-wise by vec, putting the
// result in the receiver.
func (F *Matrix) ScaleByVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	vr, vc := vec.Dims()
	fr, fc := F.Dims()
	if ac != vc || vr != 1 || ar != fr || ac != fc {
		panic(ErrShape)
	}
	if F.Dense != A.Dense {
		F.Copy(A)
	}
	for i := 0; i < ar; i++ {
		F.VecView(i).MulElem(F.VecView(i), vec)
	}
}

// AddFloat adds the scalar b to every element of A, putting the result in
// the receiver.
func (F *Matrix) AddFloat(A *Matrix, b float64) {
	ar, ac := A.Dims()
	if F.Dense != A.Dense {
		F.Copy(A)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			F.Set(i, j, A.At(i, j)+b)
		}
	}
}

// SetVecs scatters the rows of A into the receiver at the indices given by
// clist: F.VecView(clist[k]) becomes A.VecView(k).
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	_, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr < len(clist) {
		panic(ErrShape)
	}
	for k, idx := range clist {
		for j := 0; j < ac; j++ {
			F.Set(idx, j, A.At(k, j))
		}
	}
}

// SomeVecs gathers into the receiver the vectors of A whose indices are
// given by clist, in the order given. The receiver must have len(clist) rows.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) {
		panic(ErrShape)
	}
	for k, idx := range clist {
		if idx >= ar {
			panic(ErrShape)
		}
		for j := 0; j < ac; j++ {
			F.Set(k, j, A.At(idx, j))
		}
	}
}

// SomeVecsSafe is SomeVecs without the panic: it recovers and returns an
// error instead, for call sites evaluating an untrusted selection result.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	F.SomeVecs(A, clist)
	return nil
}

// Cross puts the cross product of the first vector of a and the first
// vector of b into the first vector of the receiver.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrShape)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

// Unit normalizes the first vector of A, putting the result in the receiver.
func (F *Matrix) Unit(A *Matrix) {
	if F.Dense != A.Dense {
		F.Copy(A)
	}
	norm := mat.Norm(F, 2)
	if norm <= appzero {
		panic(ErrShape)
	}
	F.Scale(1.0/norm, F.Dense)
}

// KronekerDelta is a naive implementation of the Kronecker delta, with a
// configurable tolerance; a negative epsilon falls back to appzero.
func KronekerDelta(a, b, epsilon float64) float64 {
	if epsilon < 0 {
		epsilon = appzero
	}
	if math.Abs(a-b) <= epsilon {
		return 1
	}
	return 0
}
