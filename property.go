/*
 * property.go, part of chemtraj.
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

import "fmt"

// PropertyKind identifies which field of a Property holds the value.
type PropertyKind int

const (
	BoolProperty PropertyKind = iota
	FloatProperty
	StringProperty
	Vector3Property
)

func (k PropertyKind) String() string {
	switch k {
	case BoolProperty:
		return "bool"
	case FloatProperty:
		return "float"
	case StringProperty:
		return "string"
	case Vector3Property:
		return "vector3"
	default:
		return "unknown"
	}
}

// Property is a tagged, named-attachable value: a bool, a float64, a
// string, or a 3-vector. The zero Property is a false bool, matching the
// zero PropertyKind.
type Property struct {
	kind PropertyKind
	b    bool
	f    float64
	s    string
	v    [3]float64
}

func NewBoolProperty(b bool) Property { return Property{kind: BoolProperty, b: b} }
func NewFloatProperty(f float64) Property { return Property{kind: FloatProperty, f: f} }
func NewStringProperty(s string) Property { return Property{kind: StringProperty, s: s} }
func NewVector3Property(x, y, z float64) Property {
	return Property{kind: Vector3Property, v: [3]float64{x, y, z}}
}

// Kind reports which accessor is valid for this Property.
func (p Property) Kind() PropertyKind { return p.kind }

// Bool returns the property's bool value and whether p is actually a bool.
func (p Property) Bool() (bool, bool) { return p.b, p.kind == BoolProperty }

// Float returns the property's float value and whether p is actually a float.
func (p Property) Float() (float64, bool) { return p.f, p.kind == FloatProperty }

// Str returns the property's string value and whether p is actually a string.
func (p Property) Str() (string, bool) { return p.s, p.kind == StringProperty }

// Vector3 returns the property's 3-vector value and whether p is actually one.
func (p Property) Vector3() (x, y, z float64, ok bool) {
	return p.v[0], p.v[1], p.v[2], p.kind == Vector3Property
}

// Equal reports structural equality: same kind, same value.
func (p Property) Equal(other Property) bool {
	if p.kind != other.kind {
		return false
	}
	switch p.kind {
	case BoolProperty:
		return p.b == other.b
	case FloatProperty:
		return p.f == other.f
	case StringProperty:
		return p.s == other.s
	case Vector3Property:
		return p.v == other.v
	default:
		return false
	}
}

func (p Property) String() string {
	switch p.kind {
	case BoolProperty:
		return fmt.Sprintf("%t", p.b)
	case FloatProperty:
		return fmt.Sprintf("%g", p.f)
	case StringProperty:
		return p.s
	case Vector3Property:
		return fmt.Sprintf("(%g, %g, %g)", p.v[0], p.v[1], p.v[2])
	default:
		return "<invalid property>"
	}
}

// PropertyMap is a name-to-Property attachment, used by Atom, Residue and
// Frame. A nil PropertyMap behaves like an empty one for Get.
type PropertyMap map[string]Property

// Get returns the named property and whether it is present.
func (m PropertyMap) Get(name string) (Property, bool) {
	p, ok := m[name]
	return p, ok
}

// Set stores prop under name, allocating the map if needed. Returns the
// (possibly newly allocated) map, since a nil map can't be written through.
func (m PropertyMap) Set(name string, prop Property) PropertyMap {
	if m == nil {
		m = make(PropertyMap)
	}
	m[name] = prop
	return m
}

// GetFloat requests a FloatProperty named name, returning a PropertyError
// if it is missing or of the wrong kind.
func (m PropertyMap) GetFloat(name string) (float64, error) {
	p, ok := m.Get(name)
	if !ok {
		return 0, NewError(PropertyErr, fmt.Sprintf("no such property: %q", name))
	}
	f, ok := p.Float()
	if !ok {
		return 0, NewError(PropertyErr, fmt.Sprintf("property %q is a %s, not a float", name, p.Kind()))
	}
	return f, nil
}

// GetString requests a StringProperty named name, returning a PropertyError
// if it is missing or of the wrong kind.
func (m PropertyMap) GetString(name string) (string, error) {
	p, ok := m.Get(name)
	if !ok {
		return "", NewError(PropertyErr, fmt.Sprintf("no such property: %q", name))
	}
	s, ok := p.Str()
	if !ok {
		return "", NewError(PropertyErr, fmt.Sprintf("property %q is a %s, not a string", name, p.Kind()))
	}
	return s, nil
}
