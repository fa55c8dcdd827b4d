/*
 * unitcell.go, part of chemtraj.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	v3 "github.com/rmera/chemtraj/v3"
)

// CellShape is one of the three periodic-cell flavors a UnitCell can take.
type CellShape int

const (
	Infinite CellShape = iota
	Orthorhombic
	Triclinic
)

func (s CellShape) String() string {
	switch s {
	case Infinite:
		return "INFINITE"
	case Orthorhombic:
		return "ORTHORHOMBIC"
	case Triclinic:
		return "TRICLINIC"
	default:
		return "UNKNOWN"
	}
}

// UnitCell is a periodic cell, represented as a 3x3 matrix of row vectors
// a, b, c. An INFINITE cell carries a zero matrix and never wraps.
type UnitCell struct {
	shape  CellShape
	matrix *v3.Matrix
}

// NewInfiniteCell returns a non-periodic cell.
func NewInfiniteCell() *UnitCell {
	return &UnitCell{shape: Infinite, matrix: v3.Zeros(3)}
}

// NewOrthorhombicCell builds a rectangular cell with edge lengths a, b, c
// (in whatever length unit the caller uses consistently, typically
// Angstrom). Returns a ConfigurationError if any length is not positive.
func NewOrthorhombicCell(a, b, c float64) (*UnitCell, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, NewError(ConfigurationErr, "orthorhombic cell lengths must be positive")
	}
	m, _ := v3.NewMatrix([]float64{a, 0, 0, 0, b, 0, 0, 0, c})
	return &UnitCell{shape: Orthorhombic, matrix: m}, nil
}

// NewTriclinicCell builds a general cell from lengths a, b, c and angles
// alpha (b^c), beta (a^c), gamma (a^b), given in degrees. Returns a
// ConfigurationError if lengths aren't positive or angles aren't in
// (0, 180).
func NewTriclinicCell(a, b, c, alpha, beta, gamma float64) (*UnitCell, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, NewError(ConfigurationErr, "triclinic cell lengths must be positive")
	}
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= 180 {
			return nil, NewError(ConfigurationErr, "triclinic cell angles must be in (0, 180) degrees")
		}
	}
	ar := alpha * math.Pi / 180
	br := beta * math.Pi / 180
	gr := gamma * math.Pi / 180

	cosA, cosB, cosG := math.Cos(ar), math.Cos(br), math.Cos(gr)
	sinG := math.Sin(gr)
	if math.Abs(sinG) < appzeroUC {
		return nil, NewError(ConfigurationErr, "degenerate triclinic cell: gamma too close to 0 or 180")
	}

	avec := []float64{a, 0, 0}
	bvec := []float64{b * cosG, b * sinG, 0}
	cx := c * cosB
	cy := c * (cosA - cosB*cosG) / sinG
	cz2 := c*c - cx*cx - cy*cy
	if cz2 <= 0 {
		return nil, NewError(ConfigurationErr, "triclinic cell angles are not geometrically consistent")
	}
	cvec := []float64{cx, cy, math.Sqrt(cz2)}

	data := append(append(append([]float64{}, avec...), bvec...), cvec...)
	m, _ := v3.NewMatrix(data)
	return &UnitCell{shape: Triclinic, matrix: m}, nil
}

// NewCellFromVectors builds a cell directly from three row vectors a, b,
// c, for codecs (POSCAR) whose on-disk format already gives explicit
// cell vectors rather than lengths and angles. Returns a
// ConfigurationError if the resulting cell is degenerate.
func NewCellFromVectors(rows [3][3]float64) (*UnitCell, error) {
	data := make([]float64, 0, 9)
	for _, r := range rows {
		data = append(data, r[0], r[1], r[2])
	}
	m, err := v3.NewMatrix(data)
	if err != nil {
		return nil, NewError(ConfigurationErr, "invalid cell vectors: "+err.Error())
	}
	u := &UnitCell{shape: Triclinic, matrix: m}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// appzeroUC is the tolerance below which sin(gamma) counts as zero. It is
// a separate, looser constant than v3's unexported appzero (1e-12).
const appzeroUC = 1e-9

// Shape reports which of the three kinds this cell is.
func (u *UnitCell) Shape() CellShape { return u.shape }

// Matrix returns the cell's 3x3 matrix of row vectors a, b, c. Mutating it
// directly does not re-validate the invariants; prefer the constructors.
func (u *UnitCell) Matrix() *v3.Matrix { return u.matrix }

// Lengths returns the three edge lengths |a|, |b|, |c|.
func (u *UnitCell) Lengths() (a, b, c float64) {
	return mat.Norm(u.matrix.RowView(0), 2), mat.Norm(u.matrix.RowView(1), 2), mat.Norm(u.matrix.RowView(2), 2)
}

// Angles returns alpha (between b and c), beta (between a and c), and
// gamma (between a and b), in degrees.
func (u *UnitCell) Angles() (alpha, beta, gamma float64) {
	a, b, c := u.matrix.RowView(0), u.matrix.RowView(1), u.matrix.RowView(2)
	angle := func(x, y *v3.Matrix) float64 {
		dot := x.At(0, 0)*y.At(0, 0) + x.At(0, 1)*y.At(0, 1) + x.At(0, 2)*y.At(0, 2)
		cos := dot / (mat.Norm(x, 2) * mat.Norm(y, 2))
		cos = math.Max(-1, math.Min(1, cos))
		return math.Acos(cos) * 180 / math.Pi
	}
	return angle(b, c), angle(a, c), angle(a, b)
}

// Volume returns the cell volume, which is zero for an INFINITE cell.
func (u *UnitCell) Volume() float64 {
	if u.shape == Infinite {
		return 0
	}
	return math.Abs(mat.Det(u.matrix.Dense))
}

// Validate checks the invariants a non-infinite cell must hold: strictly
// positive volume, and angles within (0, 180).
func (u *UnitCell) Validate() error {
	if u.shape == Infinite {
		return nil
	}
	if u.Volume() <= 0 {
		return NewError(ConfigurationErr, "unit cell has non-positive volume")
	}
	alpha, beta, gamma := u.Angles()
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= 180 {
			return NewError(ConfigurationErr, fmt.Sprintf("unit cell angle %g degrees out of (0, 180)", ang))
		}
	}
	return nil
}

// Wrap returns disp (a single 3-vector) wrapped into [-0.5, 0.5) fractional
// coordinates of the cell, i.e. the minimum-image displacement. For an
// INFINITE cell, disp is returned unchanged.
func (u *UnitCell) Wrap(disp *v3.Matrix) *v3.Matrix {
	if u.shape == Infinite {
		out := v3.Zeros(1)
		out.Copy(disp)
		return out
	}
	var inv mat.Dense
	if err := inv.Inverse(u.matrix.Dense); err != nil {
		out := v3.Zeros(1)
		out.Copy(disp)
		return out
	}
	frac := v3.Zeros(1)
	frac.Mul(disp, &inv)
	for k := 0; k < 3; k++ {
		f := frac.At(0, k)
		f -= math.Floor(f+0.5) + 0 // shift into [-0.5, 0.5)
		frac.Set(0, k, f)
	}
	out := v3.Zeros(1)
	out.Mul(frac, u.matrix.Dense)
	return out
}
