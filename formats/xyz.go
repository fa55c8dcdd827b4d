/*
 * xyz.go, part of chemtraj.
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

// xyz.go implements the plain XYZ format: an atom count, a free-text
// comment, then that many "symbol x y z" lines. It carries no topology,
// no cell, no velocities; every frame is INFINITE-celled with a fresh,
// bondless topology.

package formats

import (
	"fmt"

	chem "github.com/rmera/chemtraj"
	"github.com/rmera/chemtraj/trajectory"
	v3 "github.com/rmera/chemtraj/v3"
)

func init() {
	trajectory.RegisterFormat("XYZ", []string{".xyz"}, newXYZ)
}

// xyzFormat is the Format implementation for plain XYZ trajectories.
type xyzFormat struct {
	file *trajectory.File
	mode string
	warn chem.WarnFunc
	wrote bool
}

func newXYZ(f *trajectory.File, mode string, warn chem.WarnFunc) (chem.Format, error) {
	return &xyzFormat{file: f, mode: mode, warn: warn}, nil
}

func (x *xyzFormat) Name() string { return "XYZ" }

// ReadNext decodes one frame: count line, comment line (stored as the
// frame property "comment"), then count atom lines.
func (x *xyzFormat) ReadNext(fr *chem.Frame) error {
	if x.file.AtEOF() {
		return chem.NewLastFrameError("", "XYZ")
	}
	countLine, err := readNonBlank(x.file)
	if blankOrEOF(countLine, err) {
		return chem.NewLastFrameError("", "XYZ")
	}
	if err != nil {
		return err
	}
	n, err := parseInt(countLine, "XYZ atom count")
	if err != nil {
		return err
	}
	comment, err := x.file.ReadLine()
	if err != nil {
		return chem.NewError(chem.FormatErr, "XYZ: missing comment line")
	}

	top := chem.NewTopology()
	pos := v3.Zeros(n)
	for i := 0; i < n; i++ {
		line, err := x.file.ReadLine()
		if err != nil {
			return chem.NewError(chem.FormatErr, fmt.Sprintf("XYZ: unexpected end of file at atom %d/%d", i, n))
		}
		f := fields(line)
		if len(f) < 4 {
			return chem.NewError(chem.FormatErr, "XYZ: malformed atom line: "+line)
		}
		at := chem.NewAtom(f[0])
		at.Type = f[0]
		xv, err := parseFloat(f[1], "XYZ x")
		if err != nil {
			return err
		}
		yv, err := parseFloat(f[2], "XYZ y")
		if err != nil {
			return err
		}
		zv, err := parseFloat(f[3], "XYZ z")
		if err != nil {
			return err
		}
		top.AddAtom(at)
		pos.Set(i, 0, xv)
		pos.Set(i, 1, yv)
		pos.Set(i, 2, zv)
	}

	*fr = *chem.NewFrame()
	fr.SetCell(chem.NewInfiniteCell())
	for i := 0; i < top.Len(); i++ {
		fr.AddAtom(top.Atom(i), [3]float64{pos.At(i, 0), pos.At(i, 1), pos.At(i, 2)})
	}
	fr.SetProperty("comment", chem.NewStringProperty(comment))
	return nil
}

// WriteNext appends one frame in XYZ format.
func (x *xyzFormat) WriteNext(fr *chem.Frame) error {
	n := fr.Size()
	if err := x.file.WriteLine(fmt.Sprintf("%d", n)); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}
	comment := ""
	if p, ok := fr.Property("comment"); ok {
		comment, _ = p.Str()
	}
	if err := x.file.WriteLine(comment); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}
	top := fr.Topology()
	pos := fr.Positions()
	for i := 0; i < n; i++ {
		at := top.Atom(i)
		line := fmt.Sprintf("%-4s %14.6f %14.6f %14.6f", at.EffectiveType(), pos.At(i, 0), pos.At(i, 1), pos.At(i, 2))
		if err := x.file.WriteLine(line); err != nil {
			return chem.NewError(chem.FileErr, err.Error())
		}
	}
	x.wrote = true
	return nil
}

// Forward skips exactly one frame, returning its start offset, without
// building the intervening Topology/positions.
func (x *xyzFormat) Forward() (int64, error) {
	if x.file.AtEOF() {
		return 0, chem.NewLastFrameError("", "XYZ")
	}
	start := x.file.Pos()
	countLine, err := readNonBlank(x.file)
	if blankOrEOF(countLine, err) {
		return 0, chem.NewLastFrameError("", "XYZ")
	}
	if err != nil {
		return 0, err
	}
	n, err := parseInt(countLine, "XYZ atom count")
	if err != nil {
		return 0, err
	}
	if _, err := x.file.ReadLine(); err != nil {
		return 0, chem.NewError(chem.FormatErr, "XYZ: missing comment line")
	}
	for i := 0; i < n; i++ {
		if _, err := x.file.ReadLine(); err != nil {
			return 0, chem.NewError(chem.FormatErr, "XYZ: unexpected end of file while skipping frame")
		}
	}
	return start, nil
}
