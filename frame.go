/*
 * frame.go, part of chemtraj.
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

	v3 "github.com/rmera/chemtraj/v3"
)

// Frame is one snapshot of a molecular system: a step index, a unit cell, a
// topology, per-atom positions, optional per-atom velocities, and a
// property map. A Frame exclusively owns its Topology and matrices: no two
// Frames share one.
type Frame struct {
	Step int

	cell       *UnitCell
	topology   *Topology
	positions  *v3.Matrix
	velocities Optional[*v3.Matrix]

	Properties PropertyMap
}

// NewFrame returns an empty frame: zero atoms, an infinite cell, step 0.
func NewFrame() *Frame {
	return &Frame{
		cell:      NewInfiniteCell(),
		topology:  NewTopology(),
		positions: v3.Zeros(0),
	}
}

// Size returns the number of atoms, i.e. len(positions).
func (f *Frame) Size() int {
	if f.positions == nil {
		return 0
	}
	return f.positions.NVecs()
}

// Topology returns the frame's topology.
func (f *Frame) Topology() *Topology { return f.topology }

// SetTopology installs t as the frame's topology, as used by
// Trajectory.SetTopology overrides. Does not check positions length
// against t; callers that need the invariant should Resize first.
func (f *Frame) SetTopology(t *Topology) { f.topology = t }

// Cell returns the frame's unit cell.
func (f *Frame) Cell() *UnitCell { return f.cell }

// SetCell installs c as the frame's unit cell.
func (f *Frame) SetCell(c *UnitCell) { f.cell = c }

// Positions returns the frame's Nx3 position matrix, one row per atom.
func (f *Frame) Positions() *v3.Matrix { return f.positions }

// Velocities returns the frame's velocity matrix and whether one is
// present.
func (f *Frame) Velocities() (*v3.Matrix, bool) {
	return f.velocities.Get()
}

// SetVelocities installs vel as the frame's velocity matrix. vel must have
// the same number of rows as Positions.
func (f *Frame) SetVelocities(vel *v3.Matrix) error {
	if vel.NVecs() != f.Size() {
		return NewError(FormatErr, fmt.Sprintf("velocities have %d rows, frame has %d atoms", vel.NVecs(), f.Size()))
	}
	f.velocities = Some(vel)
	return nil
}

// ClearVelocities drops the frame's velocities, if any.
func (f *Frame) ClearVelocities() {
	f.velocities = None[*v3.Matrix]()
}

// Property returns the named frame-level property and whether it is present.
func (f *Frame) Property(name string) (Property, bool) {
	return f.Properties.Get(name)
}

// SetProperty attaches prop under name.
func (f *Frame) SetProperty(name string, prop Property) {
	f.Properties = f.Properties.Set(name, prop)
}

// AddAtom appends an atom with the given position (and, if vel is given,
// velocity) growing the topology and position/velocity matrices coherently.
// Returns the new atom's index. If the frame already has velocities and no
// vel is given, the new row is zero-filled; if the frame has no velocities
// and vel is given, a velocity matrix is created lazily, zero-filled for
// every earlier atom.
func (f *Frame) AddAtom(at *Atom, pos [3]float64, vel ...[3]float64) int {
	idx := f.topology.AddAtom(at)
	newPos := v3.Zeros(idx + 1)
	newPos.View(0, 0, idx, 3).Copy(f.positions)
	newPos.Set(idx, 0, pos[0])
	newPos.Set(idx, 1, pos[1])
	newPos.Set(idx, 2, pos[2])
	f.positions = newPos

	haveVel, _ := f.velocities.Get()
	if haveVel != nil || len(vel) > 0 {
		newVel := v3.Zeros(idx + 1)
		if haveVel != nil {
			newVel.View(0, 0, idx, 3).Copy(haveVel)
		}
		if len(vel) > 0 {
			newVel.Set(idx, 0, vel[0][0])
			newVel.Set(idx, 1, vel[0][1])
			newVel.Set(idx, 2, vel[0][2])
		}
		f.velocities = Some(newVel)
	}
	return idx
}

// Resize truncates positions (and velocities, if present) to n rows, or
// zero-extends them if n is larger than the current size. It does not
// touch the topology's atom list: callers that grow the frame this way are
// expected to add matching atoms separately, or to use AddAtom instead.
func (f *Frame) Resize(n int) {
	old := f.Size()
	if n == old {
		return
	}
	newPos := v3.Zeros(n)
	copyRows := n
	if old < copyRows {
		copyRows = old
	}
	if copyRows > 0 {
		newPos.View(0, 0, copyRows, 3).Copy(f.positions.View(0, 0, copyRows, 3))
	}
	f.positions = newPos

	if vel, ok := f.velocities.Get(); ok {
		newVel := v3.Zeros(n)
		if copyRows > 0 {
			newVel.View(0, 0, copyRows, 3).Copy(vel.View(0, 0, copyRows, 3))
		}
		f.velocities = Some(newVel)
	}
}

// RemoveAtom deletes atom i: the topology rewrites its bonds, angles and
// residue indices, and the position/velocity matrices lose row i with
// every later row shifted up.
func (f *Frame) RemoveAtom(i int) {
	n := f.Size()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("chem: Frame.RemoveAtom index %d out of range (len %d)", i, n))
	}
	f.topology.RemoveAtom(i)

	newPos := v3.Zeros(n - 1)
	newPos.DelVec(f.positions, i)
	f.positions = newPos

	if vel, ok := f.velocities.Get(); ok {
		newVel := v3.Zeros(n - 1)
		newVel.DelVec(vel, i)
		f.velocities = Some(newVel)
	}
}
