/*
 * doc.go, part of chemtraj.
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
 */

/*Package chem provides the molecular data model shared by chemtraj's file
codecs: atoms, residues, bonded topology with derived angles, dihedrals and
impropers, unit cells, and the frame that ties them together with positions
and optional velocities.

Concrete file formats live in the formats subpackage and implement the
Format interface declared here. The trajectory subpackage drives a Format
over a File, handling compression and frame indexing. The selections
subpackage compiles and evaluates the atom-selection language over a Frame.
*/
package chem
