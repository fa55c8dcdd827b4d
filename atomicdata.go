/*
 * atomicdata.go, part of chemtraj.
 *
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
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

// symbolMass maps element symbols to their standard atomic mass in
// daltons, used as Atom's mass default when a codec or caller does not
// supply one explicitly. Only common "bio-elements" are present, same
// coverage as the rest of the periodic-table tables this was split from.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"O":  15.999,
	"N":  14.007,
	"P":  30.974,
	"S":  32.06,
	"Se": 78.971,
	"K":  39.098,
	"Ca": 40.078,
	"Mg": 24.305,
	"Cl": 35.45,
	"Na": 22.990,
	"Cu": 63.546,
	"Zn": 65.38,
	"Co": 58.933,
	"Fe": 55.845,
	"Mn": 54.938,
	"Cr": 51.996,
	"Si": 28.085,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.904,
	"He": 4.002,
	"Ne": 20.180,
	"Ar": 39.948,
	"Li": 6.94,
	"B":  10.81,
	"Al": 26.982,
}

// massForType looks up the default mass for an element symbol. The lookup
// is case-sensitive on the conventional symbol casing (e.g. "Na", not "NA").
func massForType(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}
