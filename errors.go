/*
 * errors.go, part of chemtraj.
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
	"log"
)

// Kind classifies what went wrong, following the error taxonomy shared by
// every codec and the trajectory engine.
type Kind int

const (
	FileErr Kind = iota
	FormatErr
	SelectionErr
	PropertyErr
	ConfigurationErr
)

func (k Kind) String() string {
	switch k {
	case FileErr:
		return "FileError"
	case FormatErr:
		return "FormatError"
	case SelectionErr:
		return "SelectionError"
	case PropertyErr:
		return "PropertyError"
	case ConfigurationErr:
		return "ConfigurationError"
	default:
		return "Error"
	}
}

// Err is the concrete error type used across the library. It satisfies
// Error, TrajError and LastFrameError; IsLastFrame reports true only for
// an Err built by NewLastFrameError.
type Err struct {
	kind      Kind
	msg       string
	deco      []string
	fileName  string
	format    string
	critical  bool
	lastFrame bool
}

// NewError builds a non-critical Err of the given kind.
func NewError(kind Kind, msg string) *Err {
	return &Err{kind: kind, msg: msg}
}

// NewCriticalError builds an Err that TrajError.Critical() reports as true.
func NewCriticalError(kind Kind, msg string) *Err {
	return &Err{kind: kind, msg: msg, critical: true}
}

// NewLastFrameError builds the sentinel error returned by ReadNext/Forward
// once a trajectory is exhausted.
func NewLastFrameError(fileName, format string) *Err {
	return &Err{kind: FileErr, msg: "no more frames", fileName: fileName, format: format, lastFrame: true}
}

func (e *Err) Error() string {
	if len(e.deco) == 0 {
		return fmt.Sprintf("%s: %s", e.kind, e.msg)
	}
	return fmt.Sprintf("%s: %s (%v)", e.kind, e.msg, e.deco)
}

// Decorate appends caller to the decoration trail and returns it.
func (e *Err) Decorate(caller string) []string {
	if caller != "" {
		e.deco = append(e.deco, caller)
	}
	return e.deco
}

func (e *Err) Critical() bool    { return e.critical }
func (e *Err) FileName() string  { return e.fileName }
func (e *Err) Format() string    { return e.format }
func (e *Err) Kind() Kind        { return e.kind }
func (e *Err) NormalLastFrameTermination() {}

// errDecorate type-asserts err to *Err and decorates it with caller,
// passing through anything else unchanged. Matches the decoration idiom
// used throughout the codebase (see v3.errDecorate).
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Err); ok {
		e.Decorate(caller)
		return e
	}
	return err
}

// IsLastFrame reports whether err signals the expected end-of-trajectory
// condition, so callers can stop a read loop without treating it as failure.
func IsLastFrame(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Err); ok {
		return e.lastFrame
	}
	_, ok := err.(LastFrameError)
	return ok
}

// WarnFunc receives non-fatal diagnostics from a codec or the trajectory
// engine: unknown records, overlong fields, missing standard-residue
// atoms. source names the component emitting the warning (e.g. "PDB").
type WarnFunc func(source, format string, args ...interface{})

// DefaultWarn routes warnings through the standard logger, matching the
// teacher's plain log.Printf calls for non-fatal conditions.
func DefaultWarn(source, format string, args ...interface{}) {
	log.Printf("chemtraj: %s: %s", source, fmt.Sprintf(format, args...))
}

// warnOrDefault returns w if non-nil, else DefaultWarn, so every
// constructor can accept an optional WarnFunc without a process-wide sink.
func warnOrDefault(w WarnFunc) WarnFunc {
	if w != nil {
		return w
	}
	return DefaultWarn
}
