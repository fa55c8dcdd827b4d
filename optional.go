/*
 * optional.go, part of chemtraj.
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

// Optional carries a value that may or may not be present: Atom's mass and
// charge, Residue's id, Frame's velocities. Used instead of a sentinel
// value (e.g. mass == -1) so "absent" is never confused with a valid zero.
type Optional[T any] struct {
	value T
	valid bool
}

// Some wraps v as present.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, valid: true} }

// None returns the absent Optional for T.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the wrapped value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.valid }

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool { return o.valid }

// OrElse returns the wrapped value if present, else def.
func (o Optional[T]) OrElse(def T) T {
	if o.valid {
		return o.value
	}
	return def
}
