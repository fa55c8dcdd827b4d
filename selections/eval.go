/*
 * eval.go, part of chemtraj.
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

// eval.go is the naive evaluator the spec calls for: enumerate every
// ordered k-tuple of distinct atom indices, and keep the ones for which
// the AST evaluates true. No attempt is made to push single-atom
// predicates ahead of the Cartesian product; a faster evaluator would
// still have to agree with this one on every input.

package selections

import (
	"math"

	chem "github.com/rmera/chemtraj"
)

// Selection is a compiled selection: a Boolean AST plus the fixed tuple
// arity it evaluates over.
type Selection struct {
	root  boolNode
	arity int
	src   string
}

// Compile parses s into a Selection.
func Compile(s string) (*Selection, error) {
	root, arity, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &Selection{root: root, arity: arity, src: s}, nil
}

// Arity returns the tuple size this selection evaluates over.
func (s *Selection) Arity() int { return s.arity }

// String returns the canonical pretty-printed form of the compiled
// selection, which is guaranteed to re-parse to an equal AST.
func (s *Selection) String() string {
	return printSelection(s.root, s.arity)
}

// Evaluate returns every ordered arity-tuple of distinct atom indices
// from fr for which the selection holds, in generation order (tuples
// enumerated with the first slot varying slowest).
func (s *Selection) Evaluate(fr *chem.Frame) ([][]int, error) {
	n := fr.Size()
	k := s.arity
	var out [][]int
	tuple := make([]int, k)
	used := make([]bool, n)

	var rec func(depth int) error
	rec = func(depth int) error {
		if depth == k {
			ok, err := evalBool(s.root, fr, tuple)
			if err != nil {
				return err
			}
			if ok {
				cp := make([]int, k)
				copy(cp, tuple)
				out = append(out, cp)
			}
			return nil
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			tuple[depth] = i
			if err := rec(depth + 1); err != nil {
				used[i] = false
				return err
			}
			used[i] = false
		}
		return nil
	}
	if err := rec(0); err != nil {
		return nil, err
	}
	return out, nil
}

func evalBool(n boolNode, fr *chem.Frame, tuple []int) (bool, error) {
	switch v := n.(type) {
	case allNode:
		return true, nil
	case noneNode:
		return false, nil
	case subselNode:
		return evalBool(v.X, fr, tuple)
	case notNode:
		x, err := evalBool(v.X, fr, tuple)
		return !x, err
	case andNode:
		l, err := evalBool(v.L, fr, tuple)
		if err != nil || !l {
			return false, err
		}
		return evalBool(v.R, fr, tuple)
	case orNode:
		l, err := evalBool(v.L, fr, tuple)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return evalBool(v.R, fr, tuple)
	case stringSelNode:
		return evalStringSel(v, fr, tuple)
	case mathSelNode:
		return evalMathSel(v, fr, tuple)
	default:
		return false, chem.NewError(chem.SelectionErr, "unhandled boolean node in evaluator")
	}
}

func slotIndex(tuple []int, slot int) (int, error) {
	if slot < 1 || slot > len(tuple) {
		return 0, chem.NewError(chem.SelectionErr, "slot argument out of range for this selection's arity")
	}
	return tuple[slot-1], nil
}

func evalStringSel(n stringSelNode, fr *chem.Frame, tuple []int) (bool, error) {
	idx, err := slotIndex(tuple, n.Slot)
	if err != nil {
		return false, err
	}
	at := fr.Topology().Atom(idx)
	var actual string
	switch n.Kind {
	case selType:
		actual = at.EffectiveType()
	case selName:
		actual = at.Name
	case selResname:
		actual = residueName(fr, idx)
	}
	eq := actual == n.Value
	if n.Op == "!=" {
		return !eq, nil
	}
	return eq, nil
}

func residueName(fr *chem.Frame, atomIdx int) string {
	for _, r := range fr.Topology().Residues() {
		if r.Contains(atomIdx) {
			return r.Name
		}
	}
	return ""
}

func evalMathSel(n mathSelNode, fr *chem.Frame, tuple []int) (bool, error) {
	l, err := evalMath(n.L, fr, tuple)
	if err != nil {
		return false, err
	}
	r, err := evalMath(n.R, fr, tuple)
	if err != nil {
		return false, err
	}
	switch n.Op {
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "<":
		return l < r, nil
	case "<=":
		return l <= r, nil
	case ">":
		return l > r, nil
	case ">=":
		return l >= r, nil
	default:
		return false, chem.NewError(chem.SelectionErr, "unknown comparison operator: "+n.Op)
	}
}

func evalMath(n mathNode, fr *chem.Frame, tuple []int) (float64, error) {
	switch v := n.(type) {
	case numberNode:
		return v.Value, nil
	case propertyNode:
		return evalProperty(v, fr, tuple)
	case addNode:
		l, err := evalMath(v.L, fr, tuple)
		if err != nil {
			return 0, err
		}
		r, err := evalMath(v.R, fr, tuple)
		return l + r, err
	case subNode:
		l, err := evalMath(v.L, fr, tuple)
		if err != nil {
			return 0, err
		}
		r, err := evalMath(v.R, fr, tuple)
		return l - r, err
	case mulNode:
		l, err := evalMath(v.L, fr, tuple)
		if err != nil {
			return 0, err
		}
		r, err := evalMath(v.R, fr, tuple)
		return l * r, err
	case divNode:
		l, err := evalMath(v.L, fr, tuple)
		if err != nil {
			return 0, err
		}
		r, err := evalMath(v.R, fr, tuple)
		return l / r, err
	case powNode:
		l, err := evalMath(v.L, fr, tuple)
		if err != nil {
			return 0, err
		}
		r, err := evalMath(v.R, fr, tuple)
		return math.Pow(l, r), err
	case negNode:
		x, err := evalMath(v.X, fr, tuple)
		return -x, err
	case functionNode:
		x, err := evalMath(v.X, fr, tuple)
		if err != nil {
			return 0, err
		}
		return applyFunction(v.Name, x)
	default:
		return 0, chem.NewError(chem.SelectionErr, "unhandled arithmetic node in evaluator")
	}
}

func applyFunction(name string, x float64) (float64, error) {
	switch name {
	case "sqrt":
		return math.Sqrt(x), nil
	case "sin":
		return math.Sin(x), nil
	case "cos":
		return math.Cos(x), nil
	case "tan":
		return math.Tan(x), nil
	case "exp":
		return math.Exp(x), nil
	case "log":
		return math.Log(x), nil
	case "abs":
		return math.Abs(x), nil
	default:
		return 0, chem.NewError(chem.SelectionErr, "unknown function: "+name)
	}
}

func evalProperty(p propertyNode, fr *chem.Frame, tuple []int) (float64, error) {
	idx, err := slotIndex(tuple, p.Slot)
	if err != nil {
		return 0, err
	}
	switch p.Name {
	case "index":
		return float64(idx), nil
	case "resid":
		for _, r := range fr.Topology().Residues() {
			if r.Contains(idx) {
				if id, ok := r.Id(); ok {
					return float64(id), nil
				}
			}
		}
		return 0, nil
	case "mass":
		m, _ := fr.Topology().Atom(idx).Mass()
		return m, nil
	case "x":
		return fr.Positions().At(idx, 0), nil
	case "y":
		return fr.Positions().At(idx, 1), nil
	case "z":
		return fr.Positions().At(idx, 2), nil
	case "vx", "vy", "vz":
		vel, ok := fr.Velocities()
		if !ok {
			return 0, nil
		}
		col := map[string]int{"vx": 0, "vy": 1, "vz": 2}[p.Name]
		return vel.At(idx, col), nil
	default:
		return 0, chem.NewError(chem.SelectionErr, "unknown numeric property: "+p.Name)
	}
}
