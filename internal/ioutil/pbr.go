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

// Package ioutil provides the byte-stream source the lexer reads from:
// a reader offering one-byte lookahead via pushback, over either a file
// or an in-memory string.
package ioutil

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// PushbackByteReader is the opaque seekable byte-stream collaborator the
// lexer consumes: read one byte, or push one back for the next read.
type PushbackByteReader interface {
	io.ByteReader
	io.Closer
	UnreadByte(b byte) error
}

type pbr struct {
	br     io.ByteReader
	closer io.Closer
	have   bool
	pushed byte
}

// NewFilePushbackByteReader opens path and wraps it for byte-at-a-time
// reading with one-byte pushback.
func NewFilePushbackByteReader(path string) (PushbackByteReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &pbr{br: bufio.NewReader(f), closer: f}, nil
}

// NewStringPushbackByteReader wraps an in-memory source; the tests use it
// to feed the lexer from a string.
func NewStringPushbackByteReader(body string) (PushbackByteReader, error) {
	return &pbr{br: strings.NewReader(body)}, nil
}

func (p *pbr) ReadByte() (byte, error) {
	if p.have {
		p.have = false
		return p.pushed, nil
	}
	return p.br.ReadByte()
}

func (p *pbr) UnreadByte(b byte) error {
	if p.have {
		return io.ErrShortBuffer
	}
	p.pushed = b
	p.have = true
	return nil
}

func (p *pbr) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
