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

// Package codegen lowers a typed AST to NASM x86-64 text targeting the
// Windows x64 ABI (spec §4.3-§4.4): one emit function per node kind, a
// primitive-keyed register table in place of a per-primitive cascade of
// switches, and a two-pass prologue injector that buffers the body in
// memory and prepends the fixed header once the symbol table is final.
package codegen

import (
	"bytes"
	"fmt"

	"github.com/gmofishsauce/ilc/internal/ast"
	"github.com/gmofishsauce/ilc/internal/diag"
	"github.com/gmofishsauce/ilc/internal/token"
)

// regs is one row of the primitive register table (spec §4.3's table).
type regs struct {
	acc1, acc2, acc3, acc4 string
	directive              string
	wideningLoad           string
}

var registerTable = map[token.Primitive]regs{
	token.Int8:  {"al", "bl", "cl", "dl", "byte", "movsx"},
	token.Int16: {"ax", "bx", "cx", "dx", "word", "movzx"},
	token.Int32: {"eax", "ebx", "ecx", "edx", "dword", "mov"},
	token.Int64: {"rax", "rbx", "rcx", "rdx", "qword", "mov"},
}

func regsFor(p token.Primitive) regs {
	r, ok := registerTable[p]
	if !ok {
		diag.Fatal("internal error: no register row for primitive %s", p)
	}
	return r
}

var formatLabel = map[token.Primitive]string{
	token.Int8:  "format_int8",
	token.Int16: "format_int16",
	token.Int32: "format_int32",
	token.Int64: "format_int64",
}

// Emitter lowers one parsed program to NASM text. A fresh Emitter must be
// used per compile: it owns the symbol table and the in-memory body
// buffer that the prologue injector reads back (spec §4.4, §5's "scoped
// acquire, single owner" rule).
type Emitter struct {
	sym  ast.SymbolTable
	body bytes.Buffer
	sink *diag.Sink
}

// New creates an emitter reporting diagnostics to sink.
func New(sink *diag.Sink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit lowers every node to the body buffer in encounter order, then
// injects the prologue exactly once (P6) and returns the complete
// assembly text (P7: deterministic given the same program).
func (e *Emitter) Emit(program []*ast.Node) string {
	for _, n := range program {
		e.emitNode(n)
	}
	if len(program) == 0 {
		// Scenario 6: an empty program has no HALT to supply the trailing
		// ret; without it the assembler would fall off the end of main.
		fmt.Fprintln(&e.body, "ret")
	}
	return e.injectPrologue()
}

func (e *Emitter) emitNode(n *ast.Node) {
	switch n.Kind {
	case ast.Declare:
		e.emitDeclare(n)
	case ast.Store:
		e.emitStore(n)
	case ast.Print:
		e.emitPrint(n)
	case ast.Halt:
		fmt.Fprintln(&e.body, "ret")
	default:
		// Bare ADD/SUB/MUL/DIV statements (accepted by the grammar outside
		// a STORE) have no destination to write to, so there is nothing
		// useful to emit for them.
	}
}

func (e *Emitter) emitDeclare(n *ast.Node) {
	e.sym.Add(n.Value, n.Primitive.Size())
}

func (e *Emitter) emitStore(n *ast.Node) {
	if n.Right == nil {
		// The parser never hands down a STORE with no Right child (I1);
		// this guard only stops a future parser regression from turning
		// into a nil-pointer panic here instead of a diagnostic.
		e.sink.Report("emission: store for '%s' has no value to store", n.Left.Value)
		return
	}
	offset, ok := e.sym.Lookup(n.Left.Value)
	if !ok {
		e.sink.Report("emission: undeclared variable '%s'", n.Left.Value)
		return
	}
	r := regsFor(n.Left.Primitive)
	if n.Right.Kind.IsOperator() {
		if _, ok := registerTable[n.Right.Primitive]; !ok {
			e.sink.Report("emission: cannot compute a value of type %s for '%s'", n.Right.Primitive, n.Left.Value)
			return
		}
		e.emitOperator(n.Right)
		fmt.Fprintf(&e.body, "mov %s [rsp + %d], %s\n", r.directive, offset, r.acc1)
		return
	}
	ref, ok := e.operandRef(n.Right)
	if !ok {
		return
	}
	fmt.Fprintf(&e.body, "mov %s [rsp + %d], %s\n", r.directive, offset, ref)
}

func (e *Emitter) emitOperator(n *ast.Node) {
	switch n.Kind {
	case ast.Add:
		e.emitAdd(n)
	case ast.Sub:
		e.emitSub(n)
	case ast.Mul:
		e.emitMul(n)
	case ast.Div:
		e.emitDiv(n)
	}
}

func (e *Emitter) emitAdd(n *ast.Node) {
	r := regsFor(n.Primitive)
	left, ok := e.operandRef(n.Left)
	if !ok {
		return
	}
	right, ok := e.operandRef(n.Right)
	if !ok {
		return
	}
	fmt.Fprintf(&e.body, "mov %s, %s\n", r.acc1, left)
	fmt.Fprintf(&e.body, "add %s, %s\n", r.acc1, right)
}

func (e *Emitter) emitSub(n *ast.Node) {
	r := regsFor(n.Primitive)
	left, ok := e.operandRef(n.Left)
	if !ok {
		return
	}
	right, ok := e.operandRef(n.Right)
	if !ok {
		return
	}
	fmt.Fprintf(&e.body, "mov %s, %s\n", r.acc1, left)
	fmt.Fprintf(&e.body, "sub %s, %s\n", r.acc1, right)
}

// emitMul special-cases INT8: there is no two-operand imul r8, r/m8 form,
// so both operands are widened into 32-bit registers (a literal widens
// with a plain mov, a memory operand with movzx) and multiplied with the
// unsigned single-operand mul, exactly the INT8 path in spec §4.3 — kept
// inconsistent with the signed imul used for every other width, per the
// resolved Q3 design note.
func (e *Emitter) emitMul(n *ast.Node) {
	if n.Primitive == token.Int8 {
		r32 := regsFor(token.Int32)
		e.emitWidened(n.Left, r32.acc1)
		e.emitWidened(n.Right, r32.acc2)
		fmt.Fprintf(&e.body, "mul %s\n", r32.acc2)
		return
	}
	r := regsFor(n.Primitive)
	left, ok := e.operandRef(n.Left)
	if !ok {
		return
	}
	right, ok := e.operandRef(n.Right)
	if !ok {
		return
	}
	fmt.Fprintf(&e.body, "mov %s, %s\n", r.acc1, left)
	fmt.Fprintf(&e.body, "imul %s, %s\n", r.acc1, right)
}

func (e *Emitter) emitWidened(operand *ast.Node, reg32 string) {
	if operand.Kind == ast.ValueInt {
		fmt.Fprintf(&e.body, "mov %s, %s\n", reg32, operand.Value)
		return
	}
	ref, ok := e.operandRef(operand)
	if !ok {
		return
	}
	fmt.Fprintf(&e.body, "movzx %s, %s\n", reg32, ref)
}

// emitDiv always uses the unsigned div — never signed idiv, even though
// MUL uses signed imul for every width but INT8. This asymmetry exists in
// the reference toolchain and is preserved deliberately rather than
// "fixed" (see the Q3 design note).
func (e *Emitter) emitDiv(n *ast.Node) {
	r := regsFor(n.Primitive)
	if n.Primitive == token.Int8 {
		fmt.Fprintln(&e.body, "xor ax, ax")
	} else {
		fmt.Fprintf(&e.body, "xor %s, %s\n", r.acc4, r.acc4)
	}
	left, ok := e.operandRef(n.Left)
	if !ok {
		return
	}
	right, ok := e.operandRef(n.Right)
	if !ok {
		return
	}
	fmt.Fprintf(&e.body, "mov %s, %s\n", r.acc1, left)
	fmt.Fprintf(&e.body, "div %s\n", right)
}

func (e *Emitter) emitPrint(n *ast.Node) {
	ident := n.Left
	offset, ok := e.sym.Lookup(ident.Value)
	if !ok {
		e.sink.Report("emission: undeclared variable '%s'", ident.Value)
		return
	}
	label, ok := formatLabel[ident.Primitive]
	if !ok {
		e.sink.Report("emission: cannot print value of type %s", ident.Primitive)
		return
	}
	r := regsFor(ident.Primitive)
	fmt.Fprintf(&e.body, "lea rcx, [%s]\n", label)
	fmt.Fprintf(&e.body, "%s edx, %s [rsp + %d]\n", r.wideningLoad, r.directive, offset)
	fmt.Fprintln(&e.body, "mov rax, 0")
	fmt.Fprintln(&e.body, "call printf")
}

// operandRef renders a non-computed operand: a literal's decimal text, or
// an identifier's stack-relative memory reference sized by its own
// primitive (spec §4.3's "operand rendering"). It reports and signals
// failure on a lookup miss rather than emitting a reference to a
// register-less operand.
func (e *Emitter) operandRef(n *ast.Node) (string, bool) {
	if n.Kind == ast.ValueInt {
		return n.Value, true
	}
	offset, ok := e.sym.Lookup(n.Value)
	if !ok {
		e.sink.Report("emission: undeclared variable '%s'", n.Value)
		return "", false
	}
	r := regsFor(n.Primitive)
	return fmt.Sprintf("%s [rsp + %d]", r.directive, offset), true
}

// injectPrologue prepends the fixed .data/.text header — including the
// conditional sub rsp — to the buffered body (spec §4.4). It is called
// exactly once per Emit, which is what makes P6 hold: there is no code
// path that re-reads and re-prepends an already-prefixed file.
func (e *Emitter) injectPrologue() string {
	var out bytes.Buffer
	fmt.Fprintln(&out, "section .data")
	fmt.Fprintln(&out, `format_int8 db "%hhd", 10, 0`)
	fmt.Fprintln(&out, `format_int16 db "%hd", 10, 0`)
	fmt.Fprintln(&out, `format_int32 db "%d", 10, 0`)
	fmt.Fprintln(&out, `format_int64 db "%ld", 10, 0`)
	fmt.Fprintln(&out)
	fmt.Fprintln(&out, "section .text")
	fmt.Fprintln(&out, "global main")
	fmt.Fprintln(&out, "extern printf")
	fmt.Fprintln(&out)
	fmt.Fprintln(&out, "main:")
	fmt.Fprintln(&out)
	if !e.sym.Empty() {
		fmt.Fprintf(&out, "sub rsp, %d\n\n", e.sym.FrameSize())
	}
	out.Write(e.body.Bytes())
	return out.String()
}
