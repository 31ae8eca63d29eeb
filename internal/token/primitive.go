/*
Copyright © 2022 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify it
under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful, but
WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public
License along with this program. If not, see
<http://www.gnu.org/licenses/>.
*/

package token

import "fmt"

// Primitive is one of the fixed numeric width tags plus the sentinels used
// during type resolution (§3 of the spec: UNRESOLVED_INT, MISMATCH, VOID,
// UNKNOWN).
type Primitive struct{ p int }

var (
	Int8           = Primitive{0}
	Int16          = Primitive{1}
	Int32          = Primitive{2}
	Int64          = Primitive{3}
	UnresolvedInt  = Primitive{4}
	Void           = Primitive{5}
	Mismatch       = Primitive{6}
	PrimitiveUnknown = Primitive{7}
)

var primitiveNames = map[Primitive]string{
	Int8:             "int8",
	Int16:            "int16",
	Int32:            "int32",
	Int64:            "int64",
	UnresolvedInt:    "unresolved_int",
	Void:             "void",
	Mismatch:         "mismatch",
	PrimitiveUnknown: "unknown",
}

func (p Primitive) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Primitive(%d)", p.p)
}

// sizes holds the byte width of each concrete integer primitive.
var sizes = map[Primitive]int{
	Int8:  1,
	Int16: 2,
	Int32: 4,
	Int64: 8,
}

// Size returns the byte width of a concrete integer primitive. It panics
// for non-integer primitives: callers must only ask for the size of a
// primitive that has passed IsConcreteInt.
func (p Primitive) Size() int {
	sz, ok := sizes[p]
	if !ok {
		panic(fmt.Sprintf("token: Size() of non-integer primitive %s", p))
	}
	return sz
}

// IsConcreteInt reports whether p is one of INT8..INT64 (a width that has
// been pinned, as opposed to UNRESOLVED_INT which has not).
func (p Primitive) IsConcreteInt() bool {
	_, ok := sizes[p]
	return ok
}

// IsInt reports whether p is a concrete integer width or UNRESOLVED_INT —
// "INT* ∪ {UNRESOLVED_INT}" in the type-resolution table.
func (p Primitive) IsInt() bool {
	return p.IsConcreteInt() || p == UnresolvedInt
}

// FromTypeKind maps a TYPE_INT* token kind to its primitive, per the
// 'type' production in the grammar.
func FromTypeKind(k Kind) (Primitive, bool) {
	switch k {
	case TypeInt8:
		return Int8, true
	case TypeInt16:
		return Int16, true
	case TypeInt32:
		return Int32, true
	case TypeInt64:
		return Int64, true
	default:
		return PrimitiveUnknown, false
	}
}
