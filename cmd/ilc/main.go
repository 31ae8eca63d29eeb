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

// Command ilc drives the IL pipeline: lex, parse, emit, then hand the
// resulting NASM text to nasm and gcc (spec §6's driver surface). The
// core packages never shell out or touch flags; that is this file's job.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/gmofishsauce/ilc/internal/ast"
	"github.com/gmofishsauce/ilc/internal/codegen"
	"github.com/gmofishsauce/ilc/internal/config"
	"github.com/gmofishsauce/ilc/internal/diag"
	"github.com/gmofishsauce/ilc/internal/ioutil"
	"github.com/gmofishsauce/ilc/internal/lexer"
	"github.com/gmofishsauce/ilc/internal/parser"
	"github.com/gmofishsauce/ilc/internal/token"
)

var (
	dflag = flag.Bool("d", false, "enable debug tracing")
	cflag = flag.String("c", "ilc.toml", "path to TOML configuration file")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		usage()
	}
	mode, sourcePath := args[0], args[1]

	cfg, err := config.Load(*cflag)
	if err != nil {
		diag.Fatal("%s", err)
	}

	switch mode {
	case "tokens":
		runTokens(sourcePath)
	case "print-ast":
		runPrintAST(sourcePath)
	case "compile":
		runCompile(sourcePath, cfg, false)
	case "compile-run":
		runCompile(sourcePath, cfg, true)
	default:
		usage()
	}
}

func usage() {
	pr("Usage: ilc [options] {tokens|print-ast|compile|compile-run} source-file\nOptions:")
	flag.PrintDefaults()
	os.Exit(1)
}

func openSource(path string) ioutil.PushbackByteReader {
	src, err := ioutil.NewFilePushbackByteReader(path)
	if err != nil {
		diag.Fatal("open source file %s: %s", path, err)
	}
	return src
}

func runTokens(sourcePath string) {
	src := openSource(sourcePath)
	defer src.Close()

	lx := lexer.New(src)
	for {
		tk := lx.Next()
		fmt.Println(tk.String())
		if tk.Kind == token.EOF {
			break
		}
	}
}

func runPrintAST(sourcePath string) {
	src := openSource(sourcePath)
	defer src.Close()

	sink := diag.NewSink(*dflag)
	program := parser.New(lexer.New(src), sink).ParseProgram()
	for _, n := range program {
		printNode(n, 0)
	}
	// Diagnostics are reported as they occur but, per spec §6/§7, never by
	// themselves turn into a nonzero exit — only I/O, assembler, or linker
	// failure does. print-ast runs nothing beyond the parser, so it always
	// exits 0 once parsing has run to completion.
}

func printNode(n *ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if n.Value != "" {
		fmt.Printf("%s%s(%s) : %s\n", indent, n.Kind, n.Value, n.Primitive)
	} else {
		fmt.Printf("%s%s : %s\n", indent, n.Kind, n.Primitive)
	}
	if n.Left != nil {
		printNode(n.Left, depth+1)
	}
	if n.Right != nil {
		printNode(n.Right, depth+1)
	}
}

// runCompile runs the whole lex/parse/emit pipeline, assembles and links
// the result, and — when run is true — executes the produced binary.
// Diagnostics reported along the way never abort the pipeline (spec §7);
// only an I/O, assembler, or linker failure does (spec §6's exit code
// policy).
func runCompile(sourcePath string, cfg *config.Config, run bool) {
	src := openSource(sourcePath)
	sink := diag.NewSink(*dflag)
	program := parser.New(lexer.New(src), sink).ParseProgram()
	src.Close()

	asm := codegen.New(sink).Emit(program)

	if err := os.WriteFile(cfg.Output.AsmPath, []byte(asm), 0644); err != nil {
		diag.Fatal("write assembly file %s: %s", cfg.Output.AsmPath, err)
	}

	nasmArgs := append(append([]string{}, cfg.Tools.NasmArgs...), cfg.Output.AsmPath, "-o", cfg.Output.ObjPath)
	if err := runTool(cfg.Tools.Nasm, nasmArgs); err != nil {
		diag.Fatal("nasm failed: %s", err)
	}

	gccArgs := append(append([]string{}, cfg.Tools.GccArgs...), cfg.Output.ObjPath, "-o", cfg.Output.ExePath)
	if err := runTool(cfg.Tools.Gcc, gccArgs); err != nil {
		diag.Fatal("gcc failed: %s", err)
	}
	if !cfg.Debug.KeepObj {
		os.Remove(cfg.Output.ObjPath)
	}

	if !run {
		return
	}

	cmd := exec.Command(cfg.Output.ExePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		diag.Fatal("running %s: %s", cfg.Output.ExePath, err)
	}
}

func runTool(name string, args []string) error {
	cmd := exec.Command(name, args...)
	pr("running: " + cmd.String())
	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		pr(string(output))
	}
	return err
}

func pr(s string) {
	fmt.Fprintln(os.Stderr, "ilc: "+s)
}
