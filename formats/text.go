/*
 * text.go, part of chemtraj.
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

// text.go is scaffolding shared by the text-based codecs (XYZ, PDB,
// POSCAR): line buffering built on trajectory.File.ReadLine, plus
// helpers for the fixed-width and whitespace-separated fields those
// formats use. There is no comment-stripping helper. There's no base class here, only functions and small
// helpers each codec calls into, per the "shared helper, not a base
// class" convention.

package formats

import (
	"io"
	"strconv"
	"strings"

	chem "github.com/rmera/chemtraj"
	"github.com/rmera/chemtraj/trajectory"
)

// blankOrEOF reports whether err is io.EOF, the sentinel
// trajectory.File.ReadLine uses to signal end of input.
func blankOrEOF(line string, err error) bool {
	return err == io.EOF && line == ""
}

// readNonBlank reads lines from f until a non-blank one is found (after
// trimming surrounding whitespace) or EOF. Several formats treat blank
// lines between records as insignificant.
func readNonBlank(f *trajectory.File) (string, error) {
	for {
		line, err := f.ReadLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

// fields splits a line on runs of whitespace, discarding empties; the
// common tokenizer for XYZ and POSCAR's free-form numeric lines.
func fields(line string) []string {
	return strings.Fields(line)
}

// parseFloat parses s as a float64, wrapping any failure as a
// chem.FormatErr identifying what field failed, for use in ReadNext
// implementations that must fail the whole frame on a malformed number.
func parseFloat(s, context string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, chem.NewError(chem.FormatErr, "malformed number in "+context+": "+s)
	}
	return v, nil
}

func parseInt(s, context string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, chem.NewError(chem.FormatErr, "malformed integer in "+context+": "+s)
	}
	return v, nil
}

// fixedField extracts the 1-indexed, inclusive column range [start,end]
// from line (PDB's column convention), returning "" if the line is too
// short to reach start.
func fixedField(line string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if start > len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start-1 : end]
}

// padField right-justifies s within width w, or truncates it (warning
// is the caller's job) if longer.
func padField(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	return strings.Repeat(" ", w-len(s)) + s
}

// padFieldLeft left-justifies s within width w.
func padFieldLeft(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}
