/*
 * unitcell_test.go, part of chemtraj.
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
	"math"
	"testing"

	v3 "github.com/rmera/chemtraj/v3"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestOrthorhombicCell(t *testing.T) {
	u, err := NewOrthorhombicCell(10, 20, 30)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := u.Lengths()
	if a != 10 || b != 20 || c != 30 {
		t.Fatalf("got lengths (%g, %g, %g)", a, b, c)
	}
	alpha, beta, gamma := u.Angles()
	for _, ang := range []float64{alpha, beta, gamma} {
		if !almostEqual(ang, 90, 1e-9) {
			t.Fatalf("expected 90 degree angles, got (%g, %g, %g)", alpha, beta, gamma)
		}
	}
	if want := 10.0 * 20 * 30; !almostEqual(u.Volume(), want, 1e-6) {
		t.Fatalf("got volume %g, want %g", u.Volume(), want)
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("expected a valid cell, got %v", err)
	}
}

func TestOrthorhombicCellRejectsNonPositive(t *testing.T) {
	if _, err := NewOrthorhombicCell(0, 1, 1); err == nil {
		t.Fatal("expected an error for a zero edge length")
	}
	if _, err := NewOrthorhombicCell(-1, 1, 1); err == nil {
		t.Fatal("expected an error for a negative edge length")
	}
}

func TestTriclinicCellRoundTripsAnglesAndLengths(t *testing.T) {
	u, err := NewTriclinicCell(10, 12, 14, 80, 95, 100)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := u.Lengths()
	if !almostEqual(a, 10, 1e-6) || !almostEqual(b, 12, 1e-6) || !almostEqual(c, 14, 1e-6) {
		t.Fatalf("got lengths (%g, %g, %g)", a, b, c)
	}
	alpha, beta, gamma := u.Angles()
	if !almostEqual(alpha, 80, 1e-6) || !almostEqual(beta, 95, 1e-6) || !almostEqual(gamma, 100, 1e-6) {
		t.Fatalf("got angles (%g, %g, %g)", alpha, beta, gamma)
	}
	if u.Volume() <= 0 {
		t.Fatalf("expected a positive volume, got %g", u.Volume())
	}
}

func TestTriclinicCellRejectsBadAngles(t *testing.T) {
	if _, err := NewTriclinicCell(10, 10, 10, 0, 90, 90); err == nil {
		t.Fatal("expected an error for a zero angle")
	}
	if _, err := NewTriclinicCell(10, 10, 10, 90, 90, 180); err == nil {
		t.Fatal("expected an error for a 180 degree angle")
	}
}

func TestNewCellFromVectors(t *testing.T) {
	rows := [3][3]float64{
		{5, 0, 0},
		{0, 5, 0},
		{0, 0, 5},
	}
	u, err := NewCellFromVectors(rows)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := u.Lengths()
	if a != 5 || b != 5 || c != 5 {
		t.Fatalf("got lengths (%g, %g, %g)", a, b, c)
	}
}

func TestNewCellFromVectorsRejectsDegenerate(t *testing.T) {
	rows := [3][3]float64{
		{1, 0, 0},
		{2, 0, 0}, // parallel to a, zero volume
		{0, 0, 1},
	}
	if _, err := NewCellFromVectors(rows); err == nil {
		t.Fatal("expected an error for a degenerate cell")
	}
}

func TestInfiniteCellVolumeAndWrap(t *testing.T) {
	u := NewInfiniteCell()
	if u.Volume() != 0 {
		t.Fatalf("expected zero volume for an infinite cell, got %g", u.Volume())
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("an infinite cell should always validate, got %v", err)
	}
	disp, _ := v3.NewMatrix([]float64{7, -3, 100})
	wrapped := u.Wrap(disp)
	if wrapped.At(0, 0) != 7 || wrapped.At(0, 1) != -3 || wrapped.At(0, 2) != 100 {
		t.Fatal("expected an infinite cell to leave displacements unchanged")
	}
}

func TestOrthorhombicWrapMinimumImage(t *testing.T) {
	u, err := NewOrthorhombicCell(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	disp, _ := v3.NewMatrix([]float64{7, 0, 0})
	wrapped := u.Wrap(disp)
	if !almostEqual(wrapped.At(0, 0), -3, 1e-9) {
		t.Fatalf("expected 7 to wrap to -3 in a 10-wide cell, got %g", wrapped.At(0, 0))
	}
}
