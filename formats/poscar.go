/*
 * poscar.go, part of chemtraj.
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

// poscar.go implements VASP's POSCAR/CONTCAR structure format: a
// comment line, a uniform scale factor, three cell-vector lines,
// optional species-symbol and mandatory per-species atom-count lines,
// an optional "Selective dynamics" line, a Direct/Cartesian line, then
// one coordinate line per atom (with optional T/F selective-dynamics
// flags). A POSCAR file holds exactly one structure; ReadNext returns a
// LastFrameError on the second call.
package formats

import (
	"fmt"
	"strings"

	chem "github.com/rmera/chemtraj"
	"github.com/rmera/chemtraj/trajectory"
	v3 "github.com/rmera/chemtraj/v3"
)

func init() {
	trajectory.RegisterFormat("POSCAR", []string{".poscar", ".vasp"}, newPoscar)
}

type poscarFormat struct {
	file *trajectory.File
	mode string
	warn chem.WarnFunc
	done bool
}

func newPoscar(f *trajectory.File, mode string, warn chem.WarnFunc) (chem.Format, error) {
	return &poscarFormat{file: f, mode: mode, warn: warnOr(warn)}, nil
}

func (x *poscarFormat) Name() string { return "POSCAR" }

func (x *poscarFormat) ReadNext(fr *chem.Frame) error {
	if x.done || x.file.AtEOF() {
		return chem.NewLastFrameError("", "POSCAR")
	}
	comment, err := x.file.ReadLine()
	if err != nil {
		return chem.NewLastFrameError("", "POSCAR")
	}

	scaleLine, err := readNonBlank(x.file)
	if err != nil {
		return chem.NewError(chem.FormatErr, "POSCAR: missing scale factor line")
	}
	scale, err := parseFloat(strings.Fields(scaleLine)[0], "POSCAR scale factor")
	if err != nil {
		return err
	}

	var cellRows [3][3]float64
	for i := 0; i < 3; i++ {
		line, err := x.file.ReadLine()
		if err != nil {
			return chem.NewError(chem.FormatErr, "POSCAR: missing cell vector line")
		}
		f := fields(line)
		if len(f) < 3 {
			return chem.NewError(chem.FormatErr, "POSCAR: malformed cell vector: "+line)
		}
		for k := 0; k < 3; k++ {
			v, err := parseFloat(f[k], "POSCAR cell vector")
			if err != nil {
				return err
			}
			cellRows[i][k] = v * absOrScale(scale)
		}
	}

	line, err := x.file.ReadLine()
	if err != nil {
		return chem.NewError(chem.FormatErr, "POSCAR: missing species/count line")
	}
	tokens := fields(line)
	var species []string
	if len(tokens) > 0 && !isAllDigits(tokens[0]) {
		species = tokens
		line, err = x.file.ReadLine()
		if err != nil {
			return chem.NewError(chem.FormatErr, "POSCAR: missing atom count line")
		}
		tokens = fields(line)
	}
	counts := make([]int, len(tokens))
	total := 0
	for i, tok := range tokens {
		n, err := parseInt(tok, "POSCAR atom count")
		if err != nil {
			return err
		}
		counts[i] = n
		total += n
	}
	if species == nil {
		species = make([]string, len(counts))
		for i := range species {
			species[i] = fmt.Sprintf("El%d", i+1)
		}
		x.warn("POSCAR", "no species symbol line present, using placeholder names")
	}

	modeLine, err := readNonBlank(x.file)
	if err != nil {
		return chem.NewError(chem.FormatErr, "POSCAR: missing coordinate mode line")
	}
	selective := false
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(modeLine)), "s") {
		selective = true
		modeLine, err = readNonBlank(x.file)
		if err != nil {
			return chem.NewError(chem.FormatErr, "POSCAR: missing coordinate mode line after Selective dynamics")
		}
	}
	direct := strings.HasPrefix(strings.ToLower(strings.TrimSpace(modeLine)), "d")

	top := chem.NewTopology()
	pos := v3.Zeros(total)
	idx := 0
	for si, n := range counts {
		for j := 0; j < n; j++ {
			line, err := x.file.ReadLine()
			if err != nil {
				return chem.NewError(chem.FormatErr, "POSCAR: unexpected end of file reading coordinates")
			}
			f := fields(line)
			if len(f) < 3 {
				return chem.NewError(chem.FormatErr, "POSCAR: malformed coordinate line: "+line)
			}
			var coord [3]float64
			for k := 0; k < 3; k++ {
				coord[k], err = parseFloat(f[k], "POSCAR coordinate")
				if err != nil {
					return err
				}
			}
			cart := coord
			if direct {
				cart = fracToCart(coord, cellRows)
			} else {
				for k := range cart {
					cart[k] *= absOrScale(scale)
				}
			}
			at := chem.NewAtom(species[si])
			at.Type = species[si]
			if selective && len(f) >= 6 {
				at.SetProperty("selective_dynamics", chem.NewStringProperty(strings.Join(f[3:6], " ")))
			}
			top.AddAtom(at)
			pos.Set(idx, 0, cart[0])
			pos.Set(idx, 1, cart[1])
			pos.Set(idx, 2, cart[2])
			idx++
		}
	}

	cell, err := chem.NewCellFromVectors(cellRows)
	if err != nil {
		cell = chem.NewInfiniteCell()
	}

	*fr = *chem.NewFrame()
	fr.SetCell(cell)
	for i := 0; i < top.Len(); i++ {
		fr.AddAtom(top.Atom(i), [3]float64{pos.At(i, 0), pos.At(i, 1), pos.At(i, 2)})
	}
	fr.SetProperty("comment", chem.NewStringProperty(comment))
	x.done = true
	return nil
}

func absOrScale(s float64) float64 {
	if s < 0 {
		return 1 // negative scale means "this is the target cell volume", not handled here
	}
	return s
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func fracToCart(frac [3]float64, cell [3][3]float64) [3]float64 {
	var out [3]float64
	for k := 0; k < 3; k++ {
		out[k] = frac[0]*cell[0][k] + frac[1]*cell[1][k] + frac[2]*cell[2][k]
	}
	return out
}

// WriteNext writes fr as a POSCAR/CONTCAR structure, in Cartesian mode
// with an implicit scale factor of 1. POSCAR holds a single structure,
// so a second WriteNext call is an error.
func (x *poscarFormat) WriteNext(fr *chem.Frame) error {
	if x.done {
		return chem.NewError(chem.FormatErr, "POSCAR: a file holds exactly one structure")
	}
	comment := "chemtraj"
	if p, ok := fr.Property("comment"); ok {
		comment, _ = p.Str()
	}
	if err := x.file.WriteLine(comment); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}
	if err := x.file.WriteLine("1.0"); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}
	m := fr.Cell().Matrix()
	for i := 0; i < 3; i++ {
		if err := x.file.WriteLine(fmt.Sprintf("%22.16f%22.16f%22.16f", m.At(i, 0), m.At(i, 1), m.At(i, 2))); err != nil {
			return chem.NewError(chem.FileErr, err.Error())
		}
	}

	top := fr.Topology()
	order, counts := groupBySpecies(top)
	names := make([]string, len(order))
	countStrs := make([]string, len(order))
	for i, sp := range order {
		names[i] = sp
		countStrs[i] = fmt.Sprintf("%d", counts[sp])
	}
	if err := x.file.WriteLine(strings.Join(names, " ")); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}
	if err := x.file.WriteLine(strings.Join(countStrs, " ")); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}
	if err := x.file.WriteLine("Cartesian"); err != nil {
		return chem.NewError(chem.FileErr, err.Error())
	}

	pos := fr.Positions()
	for _, sp := range order {
		for i := 0; i < top.Len(); i++ {
			if top.Atom(i).EffectiveType() != sp {
				continue
			}
			if err := x.file.WriteLine(fmt.Sprintf("%20.16f%20.16f%20.16f", pos.At(i, 0), pos.At(i, 1), pos.At(i, 2))); err != nil {
				return chem.NewError(chem.FileErr, err.Error())
			}
		}
	}
	x.done = true
	return nil
}

func groupBySpecies(top *chem.Topology) ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < top.Len(); i++ {
		sp := top.Atom(i).EffectiveType()
		if _, ok := counts[sp]; !ok {
			order = append(order, sp)
		}
		counts[sp]++
	}
	return order, counts
}

// Forward skips the file's single structure.
func (x *poscarFormat) Forward() (int64, error) {
	if x.done || x.file.AtEOF() {
		return 0, chem.NewLastFrameError("", "POSCAR")
	}
	start := x.file.Pos()
	var discard chem.Frame
	if err := x.ReadNext(&discard); err != nil {
		return 0, err
	}
	x.done = false // Forward must not consume the single-structure slot
	return start, nil
}
