/*
 * registry_test.go, part of chemtraj.
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

import "testing"

func TestRegisteredFormats(t *testing.T) {
	names := Registered()
	want := map[string]bool{"PDB": true, "XYZ": true, "POSCAR": true}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	for n := range want {
		if !found[n] {
			t.Fatalf("expected %q to be registered, got %v", n, names)
		}
	}
}
