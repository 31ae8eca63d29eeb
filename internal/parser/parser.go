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

// Package parser implements the IL's LL(1) recursive-descent parser (spec
// §4.2): one "current token" slot reshaped into an explicit context (the
// Parser struct itself, per the reference toolchain's design note about
// avoiding a package-global current-token variable), a parse function per
// grammar production, and inline identifier-scoped type resolution.
package parser

import (
	"github.com/gmofishsauce/ilc/internal/ast"
	"github.com/gmofishsauce/ilc/internal/diag"
	"github.com/gmofishsauce/ilc/internal/lexer"
	"github.com/gmofishsauce/ilc/internal/token"
)

// Parser holds the one piece of lookahead state the grammar needs (the
// current token) plus the identifier registry it builds up as it goes.
type Parser struct {
	lx   *lexer.Lexer
	cur  token.Token
	reg  ast.Registry
	sink *diag.Sink
}

// New primes the parser with the first token (spec's "prime" operation).
func New(lx *lexer.Lexer, sink *diag.Sink) *Parser {
	p := &Parser{lx: lx, sink: sink}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lx.Next()
}

// ParseProgram consumes the whole token stream, producing one AST node per
// successfully parsed top-level instruction. A statement that fails to
// parse is reported on the diagnostic sink and omitted from the result;
// parsing always resumes with whatever token is current, never
// backtracking and never aborting the remaining statements (spec §4.2,
// §7.3 — "the driver continues until EOF").
func (p *Parser) ParseProgram() []*ast.Node {
	var program []*ast.Node
	for p.cur.Kind != token.EOF {
		node, matched := p.parseInstruction()
		if node != nil {
			program = append(program, node)
		}
		if !matched {
			p.sink.Report("unexpected token %s", p.cur)
			// No parse function recognized this token, so nothing was
			// consumed trying to match it. Force one token of progress —
			// otherwise a single unrecognizable byte would loop forever.
			if p.cur.Kind != token.EOF {
				p.advance()
			}
		}
	}
	return program
}

// parseInstruction tries each instruction production in turn. The second
// return value distinguishes "no production recognized the leading token"
// (false) from "a production recognized it but failed downstream" (true,
// with a nil node) — the sentinel the design notes call for in place of
// the reference compiler's bare-nil "no match" return.
func (p *Parser) parseInstruction() (*ast.Node, bool) {
	if n, ok := p.parseDeclare(); ok {
		return n, true
	}
	if n, ok := p.parseStore(); ok {
		return n, true
	}
	if n, ok := p.parseOperation(); ok {
		return n, true
	}
	if n, ok := p.parsePrint(); ok {
		return n, true
	}
	if n, ok := p.parseHalt(); ok {
		return n, true
	}
	return nil, false
}

func (p *Parser) parseDeclare() (*ast.Node, bool) {
	if p.cur.Kind != token.Declare {
		return nil, false
	}
	p.advance()
	if p.cur.Kind != token.Identifier {
		p.sink.Report("expected identifier after 'declare'")
		return nil, true
	}
	name := p.cur.Text
	p.advance() // consume comma (positionally — see spec §4.2's quirk note)
	p.advance()
	prim, ok := token.FromTypeKind(p.cur.Kind)
	if !ok {
		p.sink.Report("expected type after identifier '%s'", name)
		return nil, true
	}
	p.advance()
	p.reg.Declare(name, prim)
	return &ast.Node{Kind: ast.Declare, Value: name, Primitive: prim}, true
}

func (p *Parser) parseStore() (*ast.Node, bool) {
	if p.cur.Kind != token.Store {
		return nil, false
	}
	p.advance()
	ident, ok := p.parseIdentifierRef()
	if !ok {
		p.sink.Report("expected identifier after 'store'")
		return nil, true
	}
	p.advance() // consume comma (positionally)
	rhs, ok := p.parseIntValue()
	if !ok {
		rhs, ok = p.parseOperation()
	}
	if !ok {
		p.sink.Report("expected int value or operation after 'store'")
		return nil, true
	}
	if rhs == nil {
		// parseOperation recognized the operator keyword but failed
		// downstream (bad operand or type mismatch); its own diagnostic
		// was already reported. The whole store is dropped rather than
		// built with a missing Right child.
		return nil, true
	}
	return &ast.Node{Kind: ast.Store, Left: ident, Right: rhs, Primitive: token.Void}, true
}

func (p *Parser) parsePrint() (*ast.Node, bool) {
	if p.cur.Kind != token.Print {
		return nil, false
	}
	p.advance()
	ident, ok := p.parseIdentifierRef()
	if !ok {
		p.sink.Report("expected identifier after 'print'")
		return nil, true
	}
	return &ast.Node{Kind: ast.Print, Left: ident, Primitive: token.Void}, true
}

func (p *Parser) parseHalt() (*ast.Node, bool) {
	if p.cur.Kind != token.Halt {
		return nil, false
	}
	p.advance()
	return &ast.Node{Kind: ast.Halt, Primitive: token.Void}, true
}

// parseOperation tries each binary operator production. Standalone
// operator statements (not inside a store) are accepted by the grammar,
// matching the reference compiler, but the emitter has nothing meaningful
// to do with their result and silently discards them (see codegen).
func (p *Parser) parseOperation() (*ast.Node, bool) {
	type opDef struct {
		kind token.Kind
		ak   ast.Kind
		name string
	}
	for _, d := range []opDef{
		{token.Add, ast.Add, "add"},
		{token.Sub, ast.Sub, "sub"},
		{token.Mul, ast.Mul, "mul"},
		{token.Div, ast.Div, "div"},
	} {
		if n, ok := p.parseBinaryOp(d.kind, d.ak, d.name); ok {
			return n, true
		}
	}
	return nil, false
}

func (p *Parser) parseBinaryOp(tk token.Kind, ak ast.Kind, name string) (*ast.Node, bool) {
	if p.cur.Kind != tk {
		return nil, false
	}
	p.advance()
	left, ok := p.parseOperand()
	if !ok {
		p.sink.Report("expected operand after '%s'", name)
		return nil, true
	}
	p.advance() // consume comma (positionally)
	right, ok := p.parseOperand()
	if !ok {
		p.sink.Report("expected operand after comma in '%s'", name)
		return nil, true
	}
	prim := resolve(left, right)
	if prim == token.Mismatch || prim == token.PrimitiveUnknown {
		p.sink.Report("incompatible types in '%s': %s, %s", name, left.Kind, right.Kind)
		return nil, true
	}
	return &ast.Node{Kind: ak, Left: left, Right: right, Primitive: prim}, true
}

func (p *Parser) parseOperand() (*ast.Node, bool) {
	if n, ok := p.parseIdentifierRef(); ok {
		return n, true
	}
	return p.parseIntValue()
}

func (p *Parser) parseIdentifierRef() (*ast.Node, bool) {
	if p.cur.Kind != token.Identifier {
		return nil, false
	}
	name := p.cur.Text
	prim, declared := p.reg.Lookup(name)
	if !declared {
		p.sink.Report("identifier '%s' has not been declared", name)
	}
	p.advance()
	return &ast.Node{Kind: ast.Identifier, Value: name, Primitive: prim}, true
}

func (p *Parser) parseIntValue() (*ast.Node, bool) {
	if p.cur.Kind != token.ValueInt {
		return nil, false
	}
	v := p.cur.Text
	p.advance()
	return &ast.Node{Kind: ast.ValueInt, Value: v, Primitive: token.PrimitiveUnknown}, true
}

// resolve implements the operator type-compatibility lattice (spec §4.2).
// It is symmetric in its two arguments by construction (P4): the only
// asymmetric-looking cases (identifier vs literal) each have a mirror
// case that yields the same result.
func resolve(left, right *ast.Node) token.Primitive {
	leftIsIdent := left.Kind == ast.Identifier
	rightIsIdent := right.Kind == ast.Identifier

	switch {
	case leftIsIdent && rightIsIdent:
		if left.Primitive == right.Primitive {
			return left.Primitive
		}
		return token.Mismatch
	case leftIsIdent && !rightIsIdent:
		if left.Primitive.IsInt() {
			return left.Primitive
		}
		return token.Mismatch
	case !leftIsIdent && rightIsIdent:
		if right.Primitive.IsInt() {
			return right.Primitive
		}
		return token.Mismatch
	case left.Kind == ast.ValueInt && right.Kind == ast.ValueInt:
		return token.UnresolvedInt
	default:
		return token.PrimitiveUnknown
	}
}
