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

package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/ilc/internal/ioutil"
	"github.com/gmofishsauce/ilc/internal/token"
)

func newLexer(t *testing.T, src string) *Lexer {
	t.Helper()
	r, err := ioutil.NewStringPushbackByteReader(src)
	require.NoError(t, err)
	return New(r)
}

func TestKeywordsNeverLexAsIdentifier(t *testing.T) {
	for lexeme, kind := range token.Keywords {
		lx := newLexer(t, lexeme+" ")
		tk := lx.Next()
		assert.Equal(t, kind, tk.Kind, "lexeme %q", lexeme)
		assert.Empty(t, tk.Text)
	}
}

func TestIdentifier(t *testing.T) {
	lx := newLexer(t, "counter_1 ")
	tk := lx.Next()
	assert.Equal(t, token.Identifier, tk.Kind)
	assert.Equal(t, "counter_1", tk.Text)
}

func TestIntLiteral(t *testing.T) {
	lx := newLexer(t, "12345,")
	tk := lx.Next()
	assert.Equal(t, token.ValueInt, tk.Kind)
	assert.Equal(t, "12345", tk.Text)
	tk = lx.Next()
	assert.Equal(t, token.Comma, tk.Kind)
}

func TestWhitespaceIsInterchangeable(t *testing.T) {
	lx := newLexer(t, "\t\r\n  declare")
	tk := lx.Next()
	assert.Equal(t, token.Declare, tk.Kind)
}

func TestEOFIsReachedInFiniteSteps(t *testing.T) {
	// P1 (lexer totality): repeated Next() reaches EOF on any finite input.
	lx := newLexer(t, "declare a, int32 store a, 5 print a halt")
	for i := 0; i < 1000; i++ {
		if lx.Next().Kind == token.EOF {
			return
		}
	}
	t.Fatal("lexer did not reach EOF in 1000 tokens")
}

func TestEOFIsStable(t *testing.T) {
	lx := newLexer(t, "")
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
}

func TestUnknownByte(t *testing.T) {
	lx := newLexer(t, "@")
	tk := lx.Next()
	assert.Equal(t, token.Unknown, tk.Kind)
}

func TestOverlongIdentifierIsUnknown(t *testing.T) {
	lx := newLexer(t, strings.Repeat("a", MaxIdentifierLen+5)+" ")
	tk := lx.Next()
	assert.Equal(t, token.Unknown, tk.Kind)
}

func TestOverlongIntLiteralIsUnknown(t *testing.T) {
	lx := newLexer(t, strings.Repeat("9", MaxIntLiteralLen+3)+" ")
	tk := lx.Next()
	assert.Equal(t, token.Unknown, tk.Kind)
}

func TestFullInstructionStream(t *testing.T) {
	lx := newLexer(t, "declare a, int32\nstore a, 5\nprint a\nhalt")
	want := []token.Kind{
		token.Declare, token.Identifier, token.Comma, token.TypeInt32,
		token.Store, token.Identifier, token.Comma, token.ValueInt,
		token.Print, token.Identifier,
		token.Halt,
		token.EOF,
	}
	for i, k := range want {
		tk := lx.Next()
		assert.Equal(t, k, tk.Kind, "token %d", i)
	}
}
