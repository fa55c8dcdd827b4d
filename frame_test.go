/*
 * frame_test.go, part of chemtraj.
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

import "testing"

func TestNewFrameIsEmpty(t *testing.T) {
	fr := NewFrame()
	if fr.Size() != 0 {
		t.Fatalf("expected an empty frame, got size %d", fr.Size())
	}
	if fr.Cell().Shape() != Infinite {
		t.Fatalf("expected an infinite cell, got %v", fr.Cell().Shape())
	}
}

func TestAddAtomKeepsPositionsCoherent(t *testing.T) {
	fr := NewFrame()
	i0 := fr.AddAtom(NewAtom("C"), [3]float64{1, 2, 3})
	i1 := fr.AddAtom(NewAtom("N"), [3]float64{4, 5, 6})

	if i0 != 0 || i1 != 1 {
		t.Fatalf("unexpected indices %d, %d", i0, i1)
	}
	if fr.Size() != fr.Topology().Len() {
		t.Fatalf("positions/topology out of sync: %d atoms, %d positions", fr.Topology().Len(), fr.Size())
	}
	if got := fr.Positions().At(1, 0); got != 4 {
		t.Fatalf("got x=%g, want 4", got)
	}
}

func TestAddAtomWithVelocityBackfillsZeros(t *testing.T) {
	fr := NewFrame()
	fr.AddAtom(NewAtom("C"), [3]float64{0, 0, 0})
	fr.AddAtom(NewAtom("N"), [3]float64{0, 0, 0}, [3]float64{1, 1, 1})

	vel, ok := fr.Velocities()
	if !ok {
		t.Fatal("expected velocities to be present after adding one with a velocity")
	}
	if vel.NVecs() != fr.Size() {
		t.Fatalf("velocity rows %d != atom count %d", vel.NVecs(), fr.Size())
	}
	if v := vel.At(0, 0); v != 0 {
		t.Fatalf("expected the backfilled first row to be zero, got %g", v)
	}
	if v := vel.At(1, 0); v != 1 {
		t.Fatalf("expected the second row's velocity to be 1, got %g", v)
	}
}

func TestResizeGrowAndShrink(t *testing.T) {
	fr := NewFrame()
	fr.AddAtom(NewAtom("C"), [3]float64{1, 1, 1})
	fr.AddAtom(NewAtom("N"), [3]float64{2, 2, 2})

	fr.Resize(3)
	if fr.Positions().NVecs() != 3 {
		t.Fatalf("expected 3 rows after growing, got %d", fr.Positions().NVecs())
	}

	fr.Resize(1)
	if fr.Positions().NVecs() != 1 {
		t.Fatalf("expected 1 row after shrinking, got %d", fr.Positions().NVecs())
	}
	if got := fr.Positions().At(0, 0); got != 1 {
		t.Fatalf("expected the surviving row to be the first, got x=%g", got)
	}
}

func TestRemoveAtomShiftsRows(t *testing.T) {
	fr := NewFrame()
	fr.AddAtom(NewAtom("C"), [3]float64{1, 0, 0})
	fr.AddAtom(NewAtom("N"), [3]float64{2, 0, 0})
	fr.AddAtom(NewAtom("O"), [3]float64{3, 0, 0})
	fr.Topology().AddBond(0, 1, SingleOrder)
	fr.Topology().AddBond(1, 2, SingleOrder)

	fr.RemoveAtom(1)

	if fr.Size() != 2 {
		t.Fatalf("expected 2 atoms remaining, got %d", fr.Size())
	}
	if fr.Size() != fr.Topology().Len() {
		t.Fatalf("positions/topology out of sync after removal: %d vs %d", fr.Size(), fr.Topology().Len())
	}
	if got := fr.Positions().At(1, 0); got != 3 {
		t.Fatalf("expected row 1 to now hold the old atom O (x=3), got %g", got)
	}
	if len(fr.Topology().Bonds()) != 0 {
		t.Fatalf("expected both bonds to vanish with the shared atom, got %d", len(fr.Topology().Bonds()))
	}
}

func TestFrameProperties(t *testing.T) {
	fr := NewFrame()
	fr.SetProperty("comment", NewStringProperty("hello"))
	p, ok := fr.Property("comment")
	if !ok {
		t.Fatal("expected the comment property to be present")
	}
	s, ok := p.Str()
	if !ok || s != "hello" {
		t.Fatalf("got %q, %v; want \"hello\", true", s, ok)
	}
}
