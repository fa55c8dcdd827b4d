/*
 * atom.go, part of chemtraj.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Atom holds everything about an atom that is not its position or
// velocity: those live in the owning Frame's matrices, one row per atom.
type Atom struct {
	Name string
	Type string // element symbol, or free text; defaults to Name if empty

	mass   Optional[float64]
	charge Optional[float64]

	Properties PropertyMap
}

// NewAtom builds an Atom with name as both Name and Type. Use the Type
// field directly to set a different element symbol.
func NewAtom(name string) *Atom {
	return &Atom{Name: name, Type: name}
}

// EffectiveType returns Type, falling back to Name when Type is empty.
func (a *Atom) EffectiveType() string {
	if a.Type != "" {
		return a.Type
	}
	return a.Name
}

// Mass returns the atom's mass in daltons. If none was set explicitly, it
// is looked up by EffectiveType in the internal periodic table; ok is
// false only when neither an explicit mass nor a table entry exists.
func (a *Atom) Mass() (mass float64, ok bool) {
	if m, has := a.mass.Get(); has {
		return m, true
	}
	return massForType(a.EffectiveType())
}

// SetMass fixes the atom's mass explicitly, overriding the periodic-table
// default.
func (a *Atom) SetMass(mass float64) {
	a.mass = Some(mass)
}

// Charge returns the atom's formal charge in elementary units and whether
// one was set.
func (a *Atom) Charge() (float64, bool) {
	return a.charge.Get()
}

// SetCharge sets the atom's formal charge.
func (a *Atom) SetCharge(charge float64) {
	a.charge = Some(charge)
}

// Property returns the named property and whether it is present.
func (a *Atom) Property(name string) (Property, bool) {
	return a.Properties.Get(name)
}

// SetProperty attaches prop under name.
func (a *Atom) SetProperty(name string, prop Property) {
	a.Properties = a.Properties.Set(name, prop)
}

// Copy returns a deep-enough copy of the atom: the PropertyMap is a new
// map with the same entries (Property values are themselves immutable).
func (a *Atom) Copy() *Atom {
	na := &Atom{Name: a.Name, Type: a.Type, mass: a.mass, charge: a.charge}
	if a.Properties != nil {
		na.Properties = make(PropertyMap, len(a.Properties))
		for k, v := range a.Properties {
			na.Properties[k] = v
		}
	}
	return na
}
