/*
 * interfaces.go, part of chemtraj.
 *
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
 *
 */

package chem

// Format is the capability set every file codec (PDB, XYZ, POSCAR, ...)
// implements. A Trajectory drives one Format over one File; nothing here
// assumes a particular on-disk layout.
type Format interface {
	// ReadNext advances by one frame, decoding it into fr. Returns a
	// LastFrameError when called past the last frame.
	ReadNext(fr *Frame) error

	// WriteNext appends fr as the next frame.
	WriteNext(fr *Frame) error

	// Forward skips exactly one frame, returning the byte offset of its
	// first byte. Returns a LastFrameError at EOF.
	// Used only to build a Trajectory's frame index; must agree with
	// ReadNext about where frames start and end.
	Forward() (int64, error)

	// Name is the format's registry name, e.g. "PDB".
	Name() string
}

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows adding and retrieving info from the
// error without changing its type or wrapping it in something else.
type Error interface {
	Error() string
	// Decorate appends caller to the decoration slice and returns the
	// resulting slice. A caller list should read like a mini stack trace:
	// function names, optionally with ": extra info". Passing "" just
	// returns the current value.
	Decorate(caller string) []string
}

// TrajError is the interface for errors produced while reading or writing
// a trajectory file.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError marks the harmless, expected error returned when a read
// runs past the last frame, so callers can filter it out with a type
// switch instead of string-matching.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() // no-op, exists only to tag the interface
}
