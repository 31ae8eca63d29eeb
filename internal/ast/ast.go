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

// Package ast holds the AST node shape, the parse-time identifier
// registry, and the emit-time symbol table (spec §3).
package ast

import "github.com/gmofishsauce/ilc/internal/token"

// Kind is the AST node's tag. It mirrors token.Kind's enumeration idiom.
type Kind struct{ k int }

var (
	ValueInt   = Kind{0}
	Identifier = Kind{1}
	Declare    = Kind{2}
	Store      = Kind{3}
	Add        = Kind{4}
	Sub        = Kind{5}
	Mul        = Kind{6}
	Div        = Kind{7}
	Print      = Kind{8}
	Halt       = Kind{9}
	NodeUnknown = Kind{10}
)

var kindNames = map[Kind]string{
	ValueInt:    "VALUE_INT",
	Identifier:  "IDENTIFIER",
	Declare:     "DECLARE",
	Store:       "STORE",
	Add:         "ADD",
	Sub:         "SUB",
	Mul:         "MUL",
	Div:         "DIV",
	Print:       "PRINT",
	Halt:        "HALT",
	NodeUnknown: "UNKNOWN",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "NODE_?"
}

// IsOperator reports whether k is one of ADD/SUB/MUL/DIV.
func (k Kind) IsOperator() bool {
	return k == Add || k == Sub || k == Mul || k == Div
}

// Node is the AST's only shape: a kind tag, optional textual value,
// primitive type, and up to two owned children. Shape per kind is
// documented in spec.md §3's table; this type does not enforce it —
// the parser is the sole producer of nodes and is responsible for it
// (invariant I1).
type Node struct {
	Kind      Kind
	Left      *Node
	Right     *Node
	Value     string
	Primitive token.Primitive
}

// IdentifierDeclaration is one entry in the parse-time identifier
// registry: an append-only, head-inserted, singly-linked list consulted
// most-recent-first so later declarations shadow earlier ones (spec §3's
// IdentifierDeclaration, invariant P3).
type IdentifierDeclaration struct {
	Name      string
	Primitive token.Primitive
	Prev      *IdentifierDeclaration
}

// Registry is the parser's identifier-declaration list.
type Registry struct {
	head *IdentifierDeclaration
}

// Declare prepends a new declaration, shadowing any earlier one of the
// same name.
func (r *Registry) Declare(name string, p token.Primitive) {
	r.head = &IdentifierDeclaration{Name: name, Primitive: p, Prev: r.head}
}

// Lookup walks the registry most-recent-first and returns the first
// matching declaration's primitive, or (UNKNOWN, false) if name was never
// declared (invariant I2).
func (r *Registry) Lookup(name string) (token.Primitive, bool) {
	for d := r.head; d != nil; d = d.Prev {
		if d.Name == name {
			return d.Primitive, true
		}
	}
	return token.PrimitiveUnknown, false
}

// SymbolEntry is one entry in the emit-time symbol table: a declared
// local's byte size and stack offset (spec §3's SymbolTableEntry).
type SymbolEntry struct {
	Name   string
	Size   int
	Offset int
	Next   *SymbolEntry
}

// SymbolTable is the emitter's symbol table: head-inserted, one entry per
// DECLARE encountered, offsets computed from the previous head (invariant
// I3/I4 — emission never introduces symbols except via DECLARE).
type SymbolTable struct {
	head *SymbolEntry
}

// Add declares a new symbol of the given byte size, at the offset
// immediately following the current frame, and returns it.
func (st *SymbolTable) Add(name string, size int) *SymbolEntry {
	offset := 0
	if st.head != nil {
		offset = st.head.Offset + st.head.Size
	}
	entry := &SymbolEntry{Name: name, Size: size, Offset: offset, Next: st.head}
	st.head = entry
	return entry
}

// Lookup returns the offset of name, most-recently-declared entry first,
// and whether it was found.
func (st *SymbolTable) Lookup(name string) (int, bool) {
	for e := st.head; e != nil; e = e.Next {
		if e.Name == name {
			return e.Offset, true
		}
	}
	return 0, false
}

// FrameSize returns the total stack reservation required: the current
// head's offset plus its size, or 0 if the table is empty.
func (st *SymbolTable) FrameSize() int {
	if st.head == nil {
		return 0
	}
	return st.head.Offset + st.head.Size
}

// Empty reports whether any symbol has been declared.
func (st *SymbolTable) Empty() bool {
	return st.head == nil
}
