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

// Package token defines the closed tagged sets the lexer and parser share:
// token kinds, primitive numeric types, and the Token value itself.
package token

import "fmt"

// N.B. Go has no type-checked enumeration built in: a bare int const group
// lets any int be assigned to a Kind variable. Wrapping the int in a
// single-field struct, as below, makes the compiler reject that.

// Kind is a token kind.
type Kind struct{ k int }

var (
	Unknown    = Kind{0}
	ValueInt   = Kind{1}
	Identifier = Kind{2}
	TypeInt8   = Kind{3}
	TypeInt16  = Kind{4}
	TypeInt32  = Kind{5}
	TypeInt64  = Kind{6}
	Declare    = Kind{7}
	Store      = Kind{8}
	Add        = Kind{9}
	Sub        = Kind{10}
	Mul        = Kind{11}
	Div        = Kind{12}
	Print      = Kind{13}
	Halt       = Kind{14}
	Comma      = Kind{15}
	EOF        = Kind{16}
)

var kindNames = map[Kind]string{
	Unknown:    "UNKNOWN",
	ValueInt:   "VALUE_INT",
	Identifier: "IDENTIFIER",
	TypeInt8:   "TYPE_INT8",
	TypeInt16:  "TYPE_INT16",
	TypeInt32:  "TYPE_INT32",
	TypeInt64:  "TYPE_INT64",
	Declare:    "DECLARE",
	Store:      "STORE",
	Add:        "ADD",
	Sub:        "SUB",
	Mul:        "MUL",
	Div:        "DIV",
	Print:      "PRINT",
	Halt:       "HALT",
	Comma:      "COMMA",
	EOF:        "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k.k)
}

// Keywords maps reserved lexemes to their token kind.
var Keywords = map[string]Kind{
	"declare": Declare,
	"store":   Store,
	"add":     Add,
	"sub":     Sub,
	"mul":     Mul,
	"div":     Div,
	"print":   Print,
	"halt":    Halt,
	"int8":    TypeInt8,
	"int16":   TypeInt16,
	"int32":   TypeInt32,
	"int64":   TypeInt64,
}

// Token is a tagged value: the Kind plus, for VALUE_INT and IDENTIFIER
// tokens, the source text that produced it. UNKNOWN tokens from the lexer
// also carry Text: the unrecognized byte, or a short description of an
// overlong lexeme.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// HasText reports whether tokens of this kind carry lexeme text.
func (k Kind) HasText() bool {
	return k == ValueInt || k == Identifier
}
