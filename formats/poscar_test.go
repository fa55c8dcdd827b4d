/*
 * poscar_test.go, part of chemtraj.
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

package formats

import (
	"testing"

	chem "github.com/rmera/chemtraj"
	"github.com/rmera/chemtraj/trajectory"
)

const simplePoscar = `Simple cubic cell
1.0
   5.0000000000000000   0.0000000000000000   0.0000000000000000
   0.0000000000000000   5.0000000000000000   0.0000000000000000
   0.0000000000000000   0.0000000000000000   5.0000000000000000
Si O
1 2
Direct
   0.0000000000000000   0.0000000000000000   0.0000000000000000
   0.5000000000000000   0.5000000000000000   0.5000000000000000
   0.2500000000000000   0.2500000000000000   0.2500000000000000
`

func TestPOSCARReadDirectCoordinates(t *testing.T) {
	f := trajectory.OpenMemoryWithData("r", []byte(simplePoscar))
	p, err := newPoscar(f, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	fr := chem.NewFrame()
	if err := p.ReadNext(fr); err != nil {
		t.Fatal(err)
	}
	if fr.Size() != 3 {
		t.Fatalf("expected 3 atoms, got %d", fr.Size())
	}
	if got := fr.Topology().Atom(0).EffectiveType(); got != "Si" {
		t.Fatalf("got species %q, want Si", got)
	}
	if got := fr.Topology().Atom(1).EffectiveType(); got != "O" {
		t.Fatalf("got species %q, want O", got)
	}
	// atom 1 is at fractional (0.5, 0.5, 0.5) in a 5 Angstrom cubic cell
	x, y, z := fr.Positions().At(1, 0), fr.Positions().At(1, 1), fr.Positions().At(1, 2)
	if x != 2.5 || y != 2.5 || z != 2.5 {
		t.Fatalf("got cartesian (%g, %g, %g), want (2.5, 2.5, 2.5)", x, y, z)
	}
	a, b, c := fr.Cell().Lengths()
	if a != 5 || b != 5 || c != 5 {
		t.Fatalf("got cell lengths (%g, %g, %g), want (5, 5, 5)", a, b, c)
	}

	if err := p.ReadNext(fr); err == nil {
		t.Fatal("expected a last-frame error on the second ReadNext, POSCAR holds one structure")
	}
}

func TestPOSCARWriteReadRoundTrip(t *testing.T) {
	cell, err := chem.NewOrthorhombicCell(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	fr := chem.NewFrame()
	fr.SetCell(cell)
	fr.AddAtom(chem.NewAtom("Fe"), [3]float64{1, 2, 3})
	fr.AddAtom(chem.NewAtom("Fe"), [3]float64{4, 5, 6})
	fr.AddAtom(chem.NewAtom("O"), [3]float64{7, 8, 9})

	wf := trajectory.OpenMemory("w")
	w, err := newPoscar(wf, "w", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteNext(fr); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteNext(fr); err == nil {
		t.Fatal("expected a second WriteNext on the same POSCAR structure to fail")
	}

	wf.Seek(0, 0)
	data := make([]byte, wf.Size())
	n, _ := wf.Read(data)
	data = data[:n]

	rf := trajectory.OpenMemoryWithData("r", data)
	r, err := newPoscar(rf, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	out := chem.NewFrame()
	if err := r.ReadNext(out); err != nil {
		t.Fatal(err)
	}
	if out.Size() != 3 {
		t.Fatalf("expected 3 atoms after round trip, got %d", out.Size())
	}
	if got := out.Topology().Atom(0).EffectiveType(); got != "Fe" {
		t.Fatalf("got species %q, want Fe", got)
	}
	if got := out.Positions().At(2, 0); got != 7 {
		t.Fatalf("got x=%g for the oxygen atom, want 7", got)
	}
}

// TestPOSCARForwardDoesNotConsumeSlot exercises Forward the way
// Trajectory.buildIndex does: Forward advances the file past the single
// structure and reports its start offset, but resets the "done" flag so
// that seeking back to that offset and calling ReadNext still succeeds.
func TestPOSCARForwardDoesNotConsumeSlot(t *testing.T) {
	f := trajectory.OpenMemoryWithData("r", []byte(simplePoscar))
	p, err := newPoscar(f, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	start, err := p.Forward()
	if err != nil {
		t.Fatal(err)
	}
	if start != 0 {
		t.Fatalf("expected the single structure to start at offset 0, got %d", start)
	}
	if _, err := f.Seek(start, 0); err != nil {
		t.Fatal(err)
	}
	fr := chem.NewFrame()
	if err := p.ReadNext(fr); err != nil {
		t.Fatal(err)
	}
	if fr.Size() != 3 {
		t.Fatalf("expected the real ReadNext after seeking back to the reported offset to decode 3 atoms, got %d", fr.Size())
	}
}

func TestPOSCARWithoutSpeciesLineUsesPlaceholders(t *testing.T) {
	noSpecies := `No species line
1.0
   4.0 0.0 0.0
   0.0 4.0 0.0
   0.0 0.0 4.0
2
Direct
   0.0 0.0 0.0
   0.5 0.5 0.5
`
	f := trajectory.OpenMemoryWithData("r", []byte(noSpecies))
	p, err := newPoscar(f, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	fr := chem.NewFrame()
	if err := p.ReadNext(fr); err != nil {
		t.Fatal(err)
	}
	if got := fr.Topology().Atom(0).EffectiveType(); got != "El1" {
		t.Fatalf("got placeholder species %q, want El1", got)
	}
}
