/*
 * xyz_test.go, part of chemtraj.
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
	"strings"
	"testing"

	chem "github.com/rmera/chemtraj"
	"github.com/rmera/chemtraj/trajectory"
)

const heliumXYZ = `10
10 helium atoms
He 0.49 8.51 11.12
He 1.10 2.20 3.30
He 4.40 5.50 6.60
He 7.70 8.80 9.90
He 1.00 1.00 1.00
He 2.00 2.00 2.00
He 3.00 3.00 3.00
He 4.00 4.00 4.00
He 5.00 5.00 5.00
He 6.00 6.00 6.00
`

func TestXYZReadHelium(t *testing.T) {
	f := trajectory.OpenMemoryWithData("r", []byte(heliumXYZ))
	fmtr, err := newXYZ(f, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	fr := chem.NewFrame()
	if err := fmtr.ReadNext(fr); err != nil {
		t.Fatal(err)
	}
	if fr.Size() != 10 {
		t.Fatalf("expected 10 atoms, got %d", fr.Size())
	}
	x, y, z := fr.Positions().At(0, 0), fr.Positions().At(0, 1), fr.Positions().At(0, 2)
	if x != 0.49 || y != 8.51 || z != 11.12 {
		t.Fatalf("got first atom position (%g, %g, %g), want (0.49, 8.51, 11.12)", x, y, z)
	}
	for i := 0; i < fr.Size(); i++ {
		if got := fr.Topology().Atom(i).EffectiveType(); got != "He" {
			t.Fatalf("atom %d has type %q, want He", i, got)
		}
	}
	if fr.Cell().Shape() != chem.Infinite {
		t.Fatalf("expected an infinite cell, got %v", fr.Cell().Shape())
	}

	if err := fmtr.ReadNext(fr); err == nil {
		t.Fatal("expected a last-frame error reading past the only frame")
	}
}

func TestXYZWriteReadRoundTrip(t *testing.T) {
	fr := chem.NewFrame()
	fr.SetProperty("comment", chem.NewStringProperty("round trip"))
	fr.AddAtom(chem.NewAtom("C"), [3]float64{1, 2, 3})
	fr.AddAtom(chem.NewAtom("O"), [3]float64{4, 5, 6})

	wf := trajectory.OpenMemory("w")
	w, err := newXYZ(wf, "w", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteNext(fr); err != nil {
		t.Fatal(err)
	}

	// Extract the written bytes by seeking back to the start and reading
	// through the same File as a fresh reader would.
	wf.Seek(0, 0)
	data := make([]byte, wf.Size())
	n, _ := wf.Read(data)
	data = data[:n]
	if !strings.Contains(string(data), "round trip") {
		t.Fatalf("expected the comment to survive in the written output, got:\n%s", data)
	}

	rf := trajectory.OpenMemoryWithData("r", data)
	r, err := newXYZ(rf, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	out := chem.NewFrame()
	if err := r.ReadNext(out); err != nil {
		t.Fatal(err)
	}
	if out.Size() != 2 {
		t.Fatalf("expected 2 atoms after round trip, got %d", out.Size())
	}
	if got := out.Positions().At(1, 2); got != 6 {
		t.Fatalf("got z=%g for second atom, want 6", got)
	}
}

func TestXYZForwardSkipsFrame(t *testing.T) {
	twoFrames := heliumXYZ + heliumXYZ
	f := trajectory.OpenMemoryWithData("r", []byte(twoFrames))
	fmtr, err := newXYZ(f, "r", nil)
	if err != nil {
		t.Fatal(err)
	}
	xf := fmtr.(*xyzFormat)
	if _, err := xf.Forward(); err != nil {
		t.Fatal(err)
	}
	fr := chem.NewFrame()
	if err := xf.ReadNext(fr); err != nil {
		t.Fatal(err)
	}
	if fr.Size() != 10 {
		t.Fatalf("expected the second frame to also hold 10 atoms, got %d", fr.Size())
	}
}
