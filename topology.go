/*
 * topology.go, part of chemtraj.
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
	"sort"
)

// Angle is a derived triple (i, j, k) where j is bonded to both i and k,
// with i < k.
type Angle struct{ I, J, K int }

// Dihedral is a derived quadruple (i, j, k, l) along the bond chain
// i–j–k–l.
type Dihedral struct{ I, J, K, L int }

// Improper is a derived quadruple (c, i, j, k) where c is bonded to all of
// i, j, k, with i < j < k.
type Improper struct{ C, I, J, K int }

type bondKey struct{ i, j int }

// Topology holds the atoms and bonds of a molecular system, and derives
// angles, dihedrals and impropers from the bond graph on demand. The
// derivation is memoised; any bond mutation drops all three memos at once.
type Topology struct {
	atoms     []*Atom
	residues  []*Residue
	bonds     map[bondKey]BondOrder

	haveDerived bool
	angles      []Angle
	dihedrals   []Dihedral
	impropers   []Improper
}

// NewTopology returns an empty topology.
func NewTopology() *Topology {
	return &Topology{bonds: make(map[bondKey]BondOrder)}
}

// Len returns the number of atoms.
func (t *Topology) Len() int { return len(t.atoms) }

// Atom returns the ith atom. Panics if i is out of range, matching the
// library's convention of panicking on programmer error rather than
// returning an error for index access.
func (t *Topology) Atom(i int) *Atom {
	if i < 0 || i >= len(t.atoms) {
		panic(fmt.Sprintf("chem: Topology.Atom index %d out of range (len %d)", i, len(t.atoms)))
	}
	return t.atoms[i]
}

// Atoms returns the underlying atom slice. Callers must not change its
// length directly; use AddAtom/RemoveAtom.
func (t *Topology) Atoms() []*Atom { return t.atoms }

// AddAtom appends at and returns its new index.
func (t *Topology) AddAtom(at *Atom) int {
	t.atoms = append(t.atoms, at)
	return len(t.atoms) - 1
}

// Residues returns the topology's residues.
func (t *Topology) Residues() []*Residue { return t.residues }

// AddResidue appends r to the topology.
func (t *Topology) AddResidue(r *Residue) {
	t.residues = append(t.residues, r)
}

// AddBond adds a bond between i and j with the given order, or updates the
// order if the bond already exists. Returns a FormatError if i == j or
// either index is out of range. Drops the angle/dihedral/improper memo.
func (t *Topology) AddBond(i, j int, order BondOrder) error {
	if i == j {
		return NewError(FormatErr, "bond endpoints must be distinct")
	}
	if i < 0 || j < 0 || i >= len(t.atoms) || j >= len(t.atoms) {
		return NewError(FormatErr, fmt.Sprintf("bond endpoint out of range: (%d,%d), %d atoms", i, j, len(t.atoms)))
	}
	if i > j {
		i, j = j, i
	}
	t.bonds[bondKey{i, j}] = order
	t.haveDerived = false
	return nil
}

// RemoveBond removes the bond between i and j, if any. Drops the memo
// regardless of whether a bond existed.
func (t *Topology) RemoveBond(i, j int) {
	if i > j {
		i, j = j, i
	}
	delete(t.bonds, bondKey{i, j})
	t.haveDerived = false
}

// HasBond reports whether i and j are bonded, and the bond's order.
func (t *Topology) HasBond(i, j int) (BondOrder, bool) {
	if i > j {
		i, j = j, i
	}
	o, ok := t.bonds[bondKey{i, j}]
	return o, ok
}

// Bonds returns the bond set as a sorted slice, smaller index first within
// each bond and bonds ordered by (I, J).
func (t *Topology) Bonds() []Bond {
	out := make([]Bond, 0, len(t.bonds))
	for k, order := range t.bonds {
		out = append(out, Bond{I: k.i, J: k.j, Order: order})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// neighbors returns the adjacency list built fresh from the current bond
// set, sorted for deterministic iteration.
func (t *Topology) neighbors() map[int][]int {
	adj := make(map[int][]int, len(t.atoms))
	for k := range t.bonds {
		adj[k.i] = append(adj[k.i], k.j)
		adj[k.j] = append(adj[k.j], k.i)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}
	return adj
}

// derive (re)computes angles, dihedrals and impropers from the bond graph
// if the memo is stale.
func (t *Topology) derive() {
	if t.haveDerived {
		return
	}
	adj := t.neighbors()

	var angles []Angle
	for j, nbrs := range adj {
		for a := 0; a < len(nbrs); a++ {
			for b := a + 1; b < len(nbrs); b++ {
				i, k := nbrs[a], nbrs[b]
				if i > k {
					i, k = k, i
				}
				angles = append(angles, Angle{I: i, J: j, K: k})
			}
		}
	}
	sort.Slice(angles, func(a, b int) bool {
		if angles[a].J != angles[b].J {
			return angles[a].J < angles[b].J
		}
		if angles[a].I != angles[b].I {
			return angles[a].I < angles[b].I
		}
		return angles[a].K < angles[b].K
	})

	seen := make(map[[4]int]bool)
	var dihedrals []Dihedral
	for bk := range t.bonds {
		for _, dir := range [2][2]int{{bk.i, bk.j}, {bk.j, bk.i}} {
			j, k := dir[0], dir[1]
			for _, i := range adj[j] {
				if i == k {
					continue
				}
				for _, l := range adj[k] {
					if l == j || l == i {
						continue
					}
					cand := [4]int{i, j, k, l}
					rev := [4]int{l, k, j, i}
					canon := cand
					if lexLess(rev, cand) {
						canon = rev
					}
					if seen[canon] {
						continue
					}
					seen[canon] = true
					dihedrals = append(dihedrals, Dihedral{I: canon[0], J: canon[1], K: canon[2], L: canon[3]})
				}
			}
		}
	}
	sort.Slice(dihedrals, func(a, b int) bool {
		da, db := dihedrals[a], dihedrals[b]
		av := [4]int{da.I, da.J, da.K, da.L}
		bv := [4]int{db.I, db.J, db.K, db.L}
		return lexLess(av, bv)
	})

	var impropers []Improper
	for c, nbrs := range adj {
		if len(nbrs) < 3 {
			continue
		}
		for a := 0; a < len(nbrs); a++ {
			for b := a + 1; b < len(nbrs); b++ {
				for d := b + 1; d < len(nbrs); d++ {
					i, j, k := nbrs[a], nbrs[b], nbrs[d]
					impropers = append(impropers, Improper{C: c, I: i, J: j, K: k})
				}
			}
		}
	}
	sort.Slice(impropers, func(a, b int) bool {
		if impropers[a].C != impropers[b].C {
			return impropers[a].C < impropers[b].C
		}
		if impropers[a].I != impropers[b].I {
			return impropers[a].I < impropers[b].I
		}
		if impropers[a].J != impropers[b].J {
			return impropers[a].J < impropers[b].J
		}
		return impropers[a].K < impropers[b].K
	})

	t.angles, t.dihedrals, t.impropers = angles, dihedrals, impropers
	t.haveDerived = true
}

func lexLess(a, b [4]int) bool {
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Angles returns the derived angle list, recomputing it if the bond graph
// changed since the last call.
func (t *Topology) Angles() []Angle {
	t.derive()
	return t.angles
}

// Dihedrals returns the derived dihedral list, recomputing it if the bond
// graph changed since the last call.
func (t *Topology) Dihedrals() []Dihedral {
	t.derive()
	return t.dihedrals
}

// Impropers returns the derived improper-dihedral list, recomputing it if
// the bond graph changed since the last call.
func (t *Topology) Impropers() []Improper {
	t.derive()
	return t.impropers
}

// RemoveAtom deletes atom i, shifting every later atom index down by one
// everywhere it appears: remaining atoms, every bond, every residue's atom
// list. Any bond touching i is dropped.
func (t *Topology) RemoveAtom(i int) {
	if i < 0 || i >= len(t.atoms) {
		panic(fmt.Sprintf("chem: Topology.RemoveAtom index %d out of range (len %d)", i, len(t.atoms)))
	}
	t.atoms = append(t.atoms[:i:i], t.atoms[i+1:]...)

	newBonds := make(map[bondKey]BondOrder, len(t.bonds))
	for k, order := range t.bonds {
		if k.i == i || k.j == i {
			continue
		}
		ni, nj := k.i, k.j
		if ni > i {
			ni--
		}
		if nj > i {
			nj--
		}
		newBonds[bondKey{ni, nj}] = order
	}
	t.bonds = newBonds
	t.haveDerived = false

	for _, r := range t.residues {
		r.shiftAbove(i)
	}
}
