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

package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/ilc/internal/ast"
	"github.com/gmofishsauce/ilc/internal/diag"
	"github.com/gmofishsauce/ilc/internal/ioutil"
	"github.com/gmofishsauce/ilc/internal/lexer"
	"github.com/gmofishsauce/ilc/internal/parser"
)

func compile(t *testing.T, src string) (string, *diag.Sink) {
	t.Helper()
	r, err := ioutil.NewStringPushbackByteReader(src)
	require.NoError(t, err)
	sink := diag.NewSink(false)
	program := parser.New(lexer.New(r), sink).ParseProgram()
	return New(sink).Emit(program), sink
}

func TestScenario1StoreLiteralAndPrint(t *testing.T) {
	asm, sink := compile(t, "declare a, int32 store a, 5 print a halt")
	require.Equal(t, 0, sink.Count())
	assert.Contains(t, asm, "sub rsp, 4")
	assert.Contains(t, asm, "mov dword [rsp + 0], 5")
	assert.Contains(t, asm, "lea rcx, [format_int32]")
	assert.Contains(t, asm, "mov edx, dword [rsp + 0]")
	assert.Contains(t, asm, "mov rax, 0")
	assert.Contains(t, asm, "call printf")
	assert.True(t, strings.HasSuffix(strings.TrimRight(asm, "\n"), "ret"))
}

func TestScenario2TwoSymbolsAndAdd(t *testing.T) {
	asm, sink := compile(t, "declare a, int32 declare b, int32 store a, 3 store b, 4 store a, add a, b print a halt")
	require.Equal(t, 0, sink.Count())
	assert.Contains(t, asm, "sub rsp, 8")
	assert.Contains(t, asm, "mov dword [rsp + 0], 3")
	assert.Contains(t, asm, "mov dword [rsp + 4], 4")
	assert.Contains(t, asm, "mov eax, dword [rsp + 0]")
	assert.Contains(t, asm, "add eax, dword [rsp + 4]")
	assert.Contains(t, asm, "mov dword [rsp + 0], eax")
}

func TestScenario3Int8MulWidening(t *testing.T) {
	asm, sink := compile(t, "declare a, int8 store a, 6 store a, mul a, 7 print a halt")
	require.Equal(t, 0, sink.Count())
	assert.Contains(t, asm, "movzx eax, byte [rsp + 0]")
	assert.Contains(t, asm, "mov ebx, 7")
	assert.Contains(t, asm, "mul ebx")
	assert.Contains(t, asm, "mov byte [rsp + 0], al")
}

func TestScenario4UndeclaredOperandDropsStatementNotProgram(t *testing.T) {
	asm, sink := compile(t, "declare a, int32 store a, add a, b halt")
	assert.Greater(t, sink.Count(), 0)
	assert.Contains(t, asm, "sub rsp, 4")
	assert.Contains(t, asm, "ret")
}

func TestScenario5TypeMismatchKeepsPriorSymbols(t *testing.T) {
	asm, sink := compile(t, "declare a, int8 declare b, int32 store a, add a, b halt")
	assert.Equal(t, 1, sink.Count())
	assert.Contains(t, asm, "sub rsp, 5")
}

func TestScenario6EmptySourceGetsHeaderAndTrailingRet(t *testing.T) {
	asm, sink := compile(t, "   \n\t ")
	require.Equal(t, 0, sink.Count())
	assert.NotContains(t, asm, "sub rsp")
	assert.Contains(t, asm, "main:")
	assert.True(t, strings.HasSuffix(strings.TrimRight(asm, "\n"), "ret"))
}

func TestOffsetMonotonicity(t *testing.T) {
	// P5: offsets form a strictly increasing sequence and the frame size
	// equals the sum of sizes.
	var st ast.SymbolTable
	a := st.Add("a", 1)
	b := st.Add("b", 4)
	c := st.Add("c", 8)
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 1, b.Offset)
	assert.Equal(t, 5, c.Offset)
	assert.Equal(t, 13, st.FrameSize())
}

func TestEmissionIsDeterministic(t *testing.T) {
	// P7: two runs on the same source produce byte-for-byte identical output.
	src := "declare a, int64 store a, 5 store a, mul a, 3 print a halt"
	asm1, _ := compile(t, src)
	asm2, _ := compile(t, src)
	assert.Equal(t, asm1, asm2)
}

func TestPrologueInjectedExactlyOnce(t *testing.T) {
	// P6: the header appears a single time even for a larger program.
	asm, sink := compile(t, "declare a, int32 store a, 1 print a declare b, int32 store b, 2 print b halt")
	require.Equal(t, 0, sink.Count())
	assert.Equal(t, 1, strings.Count(asm, "section .data"))
	assert.Equal(t, 1, strings.Count(asm, "main:"))
}

func TestDivUsesUnsignedInstructionRegardlessOfWidth(t *testing.T) {
	asm, sink := compile(t, "declare a, int32 declare b, int32 store a, div a, b halt")
	require.Equal(t, 0, sink.Count())
	assert.Contains(t, asm, "xor edx, edx")
	assert.Contains(t, asm, "div dword [rsp + 4]")
	assert.NotContains(t, asm, "idiv")
}
