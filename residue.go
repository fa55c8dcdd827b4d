/*
 * residue.go, part of chemtraj.
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

// Residue is a named group of atom indices, typically one amino acid or
// nucleotide, with an optional numeric id. Ids need not be unique across a
// Topology, but by convention are unique within a chain.
type Residue struct {
	Name string
	id   Optional[int]

	// Atoms holds indices into the owning Frame/Topology's atom slice.
	// Index order is insertion order, not necessarily sorted.
	Atoms []int

	Properties PropertyMap
}

// NewResidue builds an empty residue with the given name.
func NewResidue(name string) *Residue {
	return &Residue{Name: name}
}

// Id returns the residue's numeric id and whether one was set.
func (r *Residue) Id() (int, bool) {
	return r.id.Get()
}

// SetId sets the residue's numeric id.
func (r *Residue) SetId(id int) {
	r.id = Some(id)
}

// AddAtom appends atom index i to the residue.
func (r *Residue) AddAtom(i int) {
	r.Atoms = append(r.Atoms, i)
}

// Contains reports whether atom index i belongs to this residue.
func (r *Residue) Contains(i int) bool {
	for _, a := range r.Atoms {
		if a == i {
			return true
		}
	}
	return false
}

// Len returns the number of atoms in the residue.
func (r *Residue) Len() int { return len(r.Atoms) }

// Property returns the named property and whether it is present.
func (r *Residue) Property(name string) (Property, bool) {
	return r.Properties.Get(name)
}

// SetProperty attaches prop under name.
func (r *Residue) SetProperty(name string, prop Property) {
	r.Properties = r.Properties.Set(name, prop)
}

// shiftAbove decrements every atom index in r that is greater than
// removed, and drops removed itself if present. Used by Topology.RemoveAtom
// to keep every residue's index list coherent after a deletion.
func (r *Residue) shiftAbove(removed int) {
	out := r.Atoms[:0:0]
	for _, a := range r.Atoms {
		switch {
		case a == removed:
			continue
		case a > removed:
			out = append(out, a-1)
		default:
			out = append(out, a)
		}
	}
	r.Atoms = out
}
