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

// Package lexer implements the IL tokenizer: next_token(src) pulls one
// token at a time from a PushbackByteReader. The lexer is total — it never
// returns a Go error, only the UNKNOWN token kind (spec §7.2) — so the
// caller decides whether an unrecognized byte is fatal.
package lexer

import (
	"io"

	"github.com/gmofishsauce/ilc/internal/ioutil"
	"github.com/gmofishsauce/ilc/internal/token"
)

// MaxIdentifierLen and MaxIntLiteralLen bound lexeme length per spec §4.1.
// Exceeding either is a lexical error, returned as an UNKNOWN token whose
// Text describes the error, rather than truncated silently.
const (
	MaxIdentifierLen = 127
	MaxIntLiteralLen = 15
)

// Lexer tokenizes a byte stream. It holds no token-stream state beyond the
// underlying reader: next_token is a pull function, so Lexer is reused
// directly as that function's receiver.
type Lexer struct {
	src ioutil.PushbackByteReader
}

// New wraps src for tokenization.
func New(src ioutil.PushbackByteReader) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, advancing the stream (spec §4.1's
// next_token). Whitespace (space, tab, CR, LF) is skipped first; EOF
// yields token.EOF; an unrecognized byte yields token.Unknown carrying a
// one-character diagnostic string as its Text.
func (lx *Lexer) Next() token.Token {
	b, err := lx.skipWhitespace()
	if err == io.EOF {
		return token.Token{Kind: token.EOF}
	}

	switch {
	case isAlpha(b):
		return lx.lexIdentifierOrKeyword(b)
	case isDigit(b):
		return lx.lexInt(b)
	case b == ',':
		return token.Token{Kind: token.Comma}
	default:
		return token.Token{Kind: token.Unknown, Text: string(b)}
	}
}

func (lx *Lexer) skipWhitespace() (byte, error) {
	for {
		b, err := lx.src.ReadByte()
		if err != nil {
			return 0, err
		}
		if !isWhiteSpace(b) {
			return b, nil
		}
	}
}

func (lx *Lexer) lexIdentifierOrKeyword(first byte) token.Token {
	buf := []byte{first}
	for {
		b, err := lx.src.ReadByte()
		if err != nil {
			break
		}
		if !isAlpha(b) && !isDigit(b) && b != '_' {
			lx.src.UnreadByte(b)
			break
		}
		buf = append(buf, b)
		if len(buf) > MaxIdentifierLen {
			return token.Token{Kind: token.Unknown, Text: "identifier too long"}
		}
	}
	lexeme := string(buf)
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind}
	}
	return token.Token{Kind: token.Identifier, Text: lexeme}
}

func (lx *Lexer) lexInt(first byte) token.Token {
	buf := []byte{first}
	for {
		b, err := lx.src.ReadByte()
		if err != nil {
			break
		}
		if !isDigit(b) {
			lx.src.UnreadByte(b)
			break
		}
		buf = append(buf, b)
		if len(buf) > MaxIntLiteralLen {
			return token.Token{Kind: token.Unknown, Text: "integer literal too long"}
		}
	}
	return token.Token{Kind: token.ValueInt, Text: string(buf)}
}

func isWhiteSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
