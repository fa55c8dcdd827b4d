/*
 * topology_test.go, part of chemtraj.
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

// TestWaterTopology walks through the canonical H-O-H example: add three
// atoms, bond them into a chain, check the derived bonds and angle, then
// remove the middle atom and check both derivations empty out.
func TestWaterTopology(t *testing.T) {
	top := NewTopology()
	h1 := top.AddAtom(NewAtom("H"))
	o := top.AddAtom(NewAtom("O"))
	h2 := top.AddAtom(NewAtom("H"))

	if err := top.AddBond(h1, o, SingleOrder); err != nil {
		t.Fatal(err)
	}
	if err := top.AddBond(o, h2, SingleOrder); err != nil {
		t.Fatal(err)
	}

	bonds := top.Bonds()
	if len(bonds) != 2 {
		t.Fatalf("expected 2 bonds, got %d", len(bonds))
	}
	if bonds[0] != (Bond{I: 0, J: 1, Order: SingleOrder}) {
		t.Fatalf("unexpected first bond: %+v", bonds[0])
	}
	if bonds[1] != (Bond{I: 1, J: 2, Order: SingleOrder}) {
		t.Fatalf("unexpected second bond: %+v", bonds[1])
	}

	angles := top.Angles()
	if len(angles) != 1 {
		t.Fatalf("expected 1 angle, got %d", len(angles))
	}
	if angles[0] != (Angle{I: 0, J: 1, K: 2}) {
		t.Fatalf("unexpected angle: %+v", angles[0])
	}

	top.RemoveAtom(o)
	if top.Len() != 2 {
		t.Fatalf("expected 2 atoms after removal, got %d", top.Len())
	}
	if len(top.Bonds()) != 0 {
		t.Fatalf("expected 0 bonds after removing the shared atom, got %d", len(top.Bonds()))
	}
	if len(top.Angles()) != 0 {
		t.Fatalf("expected 0 angles after removing the shared atom, got %d", len(top.Angles()))
	}
}

// TestBondAngleClosure checks the universal invariant that every pair of
// bonds sharing atom j produces exactly one angle triple.
func TestBondAngleClosure(t *testing.T) {
	top := NewTopology()
	for i := 0; i < 4; i++ {
		top.AddAtom(NewAtom("C"))
	}
	// star graph centered on atom 0
	top.AddBond(0, 1, SingleOrder)
	top.AddBond(0, 2, SingleOrder)
	top.AddBond(0, 3, SingleOrder)

	angles := top.Angles()
	want := map[Angle]bool{
		{I: 1, J: 0, K: 2}: true,
		{I: 1, J: 0, K: 3}: true,
		{I: 2, J: 0, K: 3}: true,
	}
	if len(angles) != len(want) {
		t.Fatalf("expected %d angles, got %d: %+v", len(want), len(angles), angles)
	}
	for _, a := range angles {
		if !want[a] {
			t.Fatalf("unexpected angle %+v", a)
		}
	}
}

// TestDihedralDerivation checks a simple four-atom chain produces exactly
// one canonical dihedral.
func TestDihedralDerivation(t *testing.T) {
	top := NewTopology()
	for i := 0; i < 4; i++ {
		top.AddAtom(NewAtom("C"))
	}
	top.AddBond(0, 1, SingleOrder)
	top.AddBond(1, 2, SingleOrder)
	top.AddBond(2, 3, SingleOrder)

	dihedrals := top.Dihedrals()
	if len(dihedrals) != 1 {
		t.Fatalf("expected 1 dihedral, got %d: %+v", len(dihedrals), dihedrals)
	}
	d := dihedrals[0]
	fwd := [4]int{d.I, d.J, d.K, d.L}
	rev := [4]int{d.L, d.K, d.J, d.I}
	if fwd != [4]int{0, 1, 2, 3} && rev != [4]int{0, 1, 2, 3} {
		t.Fatalf("dihedral %+v does not correspond to chain 0-1-2-3", d)
	}
}

// TestImproperDerivation checks a central atom with three neighbours
// produces one improper.
func TestImproperDerivation(t *testing.T) {
	top := NewTopology()
	for i := 0; i < 4; i++ {
		top.AddAtom(NewAtom("N"))
	}
	top.AddBond(0, 1, SingleOrder)
	top.AddBond(0, 2, SingleOrder)
	top.AddBond(0, 3, SingleOrder)

	impropers := top.Impropers()
	if len(impropers) != 1 {
		t.Fatalf("expected 1 improper, got %d", len(impropers))
	}
	imp := impropers[0]
	if imp.C != 0 || imp.I >= imp.J || imp.J >= imp.K {
		t.Fatalf("unexpected improper %+v", imp)
	}
}

func TestAddBondRejectsSelfLoop(t *testing.T) {
	top := NewTopology()
	top.AddAtom(NewAtom("C"))
	if err := top.AddBond(0, 0, SingleOrder); err == nil {
		t.Fatal("expected an error for a self-bond")
	}
}

func TestAddBondRejectsOutOfRange(t *testing.T) {
	top := NewTopology()
	top.AddAtom(NewAtom("C"))
	if err := top.AddBond(0, 5, SingleOrder); err == nil {
		t.Fatal("expected an error for an out-of-range endpoint")
	}
}

func TestMemoInvalidatedOnMutation(t *testing.T) {
	top := NewTopology()
	for i := 0; i < 3; i++ {
		top.AddAtom(NewAtom("C"))
	}
	top.AddBond(0, 1, SingleOrder)
	top.AddBond(1, 2, SingleOrder)
	if len(top.Angles()) != 1 {
		t.Fatal("expected the initial angle to be derived")
	}
	top.RemoveBond(0, 1)
	if len(top.Angles()) != 0 {
		t.Fatal("expected the angle memo to be invalidated after RemoveBond")
	}
}
