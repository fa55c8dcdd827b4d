/*
 * bond.go, part of chemtraj.
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

// BondOrder classifies a Bond; UnknownOrder is the zero value.
type BondOrder int

const (
	UnknownOrder BondOrder = iota
	SingleOrder
	DoubleOrder
	TripleOrder
	QuadrupleOrder
	QuintupleOrder
	AmideOrder
	AromaticOrder
)

func (o BondOrder) String() string {
	switch o {
	case SingleOrder:
		return "SINGLE"
	case DoubleOrder:
		return "DOUBLE"
	case TripleOrder:
		return "TRIPLE"
	case QuadrupleOrder:
		return "QUADRUPLE"
	case QuintupleOrder:
		return "QUINTUPLE"
	case AmideOrder:
		return "AMIDE"
	case AromaticOrder:
		return "AROMATIC"
	default:
		return "UNKNOWN"
	}
}

// Bond is an (i, j) pair of atom indices with I always the smaller of the
// two, so the set of bonds is order-independent: {i,j} and {j,i} are the
// same Bond value. Indices, not atom pointers, since Topology owns the
// atom slice and indices survive atom removal via a rewrite, not a dangling
// pointer.
type Bond struct {
	I, J  int
	Order BondOrder
}

// NewBond returns the Bond between i and j with the given order, with I
// always ≤ J regardless of argument order.
func NewBond(i, j int, order BondOrder) Bond {
	if i > j {
		i, j = j, i
	}
	return Bond{I: i, J: j, Order: order}
}

// Other returns the endpoint of b that isn't from.
func (b Bond) Other(from int) (int, bool) {
	switch from {
	case b.I:
		return b.J, true
	case b.J:
		return b.I, true
	default:
		return -1, false
	}
}
