/*
 * hybrid36.go, part of chemtraj.
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

// hybrid36.go implements the hybrid-36 numeric encoding PDB uses to extend
// fixed-width serial/resSeq columns past their decimal range: once a
// 4- or 5-character decimal field would overflow, a leading letter (A-Z,
// then a-z) takes over as a base-36 digit.

package chem

import (
	"fmt"
	"strings"
)

const hybrid36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// pow36 returns 36^n for small non-negative n, computed by repeated
// multiplication since math.Pow works in float64 and these values must be
// exact integers.
func pow36(n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r *= 36
	}
	return r
}

func pow10(n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r *= 10
	}
	return r
}

// EncodeHybrid36 encodes v at field width w. Values in [0, 10^w) are
// right-justified decimal. Values up to 10^w + 26*36^(w-1) - 1 use an
// upper-case leading letter; beyond that, up to 10^w + 2*26*36^(w-1) - 1,
// a lower-case leading letter. Returns a FormatError if v is negative or
// exceeds the lower-case range (overflow).
func EncodeHybrid36(w int, v int64) (string, error) {
	if v < 0 {
		return "", NewError(FormatErr, fmt.Sprintf("hybrid36: negative value %d", v))
	}
	decMax := pow10(w)
	if v < decMax {
		return fmt.Sprintf("%*d", w, v), nil
	}
	tierSize := 26 * pow36(w-1)
	if v < decMax+tierSize {
		off := v - decMax
		letter := byte('A' + off/pow36(w-1))
		digits := base36Encode(off%pow36(w-1), w-1, false)
		return string(letter) + digits, nil
	}
	if v < decMax+2*tierSize {
		off := v - decMax - tierSize
		letter := byte('a' + off/pow36(w-1))
		digits := base36Encode(off%pow36(w-1), w-1, true)
		return string(letter) + digits, nil
	}
	return "", NewError(FormatErr, fmt.Sprintf("hybrid36: value %d overflows width %d", v, w))
}

// DecodeHybrid36 decodes s, a field of exactly width w, as a hybrid36
// value. Returns a FormatError if s is malformed or encodes a value that
// cannot fit in the declared width's valid range.
func DecodeHybrid36(w int, s string) (int64, error) {
	if len(s) != w {
		return 0, NewError(FormatErr, fmt.Sprintf("hybrid36: field %q is not width %d", s, w))
	}
	// EncodeHybrid36 right-justifies decimal-tier values with spaces, not
	// zeros, so a blank-padded field (including an entirely blank one) is
	// the plain-decimal tier, not an invalid leading character.
	trimmed := strings.TrimLeft(s, " ")
	if trimmed == "" {
		return 0, nil
	}
	first := trimmed[0]
	switch {
	case first >= '0' && first <= '9':
		var v int64
		for i := 0; i < len(trimmed); i++ {
			c := trimmed[i]
			if c < '0' || c > '9' {
				return 0, NewError(FormatErr, fmt.Sprintf("hybrid36: %q is not plain decimal", s))
			}
			v = v*10 + int64(c-'0')
		}
		return v, nil
	case first >= 'A' && first <= 'Z':
		rest, err := base36Decode(trimmed[1:])
		if err != nil {
			return 0, err
		}
		return pow10(w) + int64(first-'A')*pow36(w-1) + rest, nil
	case first >= 'a' && first <= 'z':
		rest, err := base36Decode(trimmed[1:])
		if err != nil {
			return 0, err
		}
		return pow10(w) + 26*pow36(w-1) + int64(first-'a')*pow36(w-1) + rest, nil
	default:
		return 0, NewError(FormatErr, fmt.Sprintf("hybrid36: %q has an invalid leading character", s))
	}
}

// base36Encode renders v as n base-36 digits (zero-padded), using
// lower-case letters when lower is true, else upper-case, matching
// whichever tier the caller is in.
func base36Encode(v int64, n int, lower bool) string {
	alphabet := hybrid36Alphabet
	if lower {
		alphabet = strings.ToLower(alphabet)
	}
	digits := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		digits[i] = alphabet[v%36]
		v /= 36
	}
	return string(digits)
}

// base36Decode parses s (case-insensitive 0-9A-Za-z) as a base-36 integer.
func base36Decode(s string) (int64, error) {
	var v int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case c >= 'A' && c <= 'Z':
			d = int64(c-'A') + 10
		case c >= 'a' && c <= 'z':
			d = int64(c-'a') + 10
		default:
			return 0, NewError(FormatErr, fmt.Sprintf("hybrid36: %q has a non base-36 character", s))
		}
		v = v*36 + d
	}
	return v, nil
}
