/*
 * registry.go, part of chemtraj.
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

// Package formats holds the concrete codecs (PDB, XYZ, POSCAR). Each
// codec's file registers itself with the trajectory package's registry
// from an init function, so importing chemtraj/formats for side effects
// is enough to make trajectory.OpenTrajectory recognise every codec's
// name and extensions:
//
//	import _ "github.com/rmera/chemtraj/formats"
//
// There is no base class here: text.go holds the scaffolding every text
// codec shares (line buffering, fixed-column extraction, tokenizing),
// and each codec composes it directly rather than inheriting from it.
package formats

import "github.com/rmera/chemtraj/trajectory"

// Registered returns the names of every codec this package makes
// available, once imported.
func Registered() []string {
	return trajectory.RegisteredFormats()
}
