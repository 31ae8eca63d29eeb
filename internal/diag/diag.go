/*
Copyright © 2023 Jeff Berkowitz (pdxjjb@gmail.com)

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

// Package diag is the error channel shared by the parser and emitter
// (spec §7): non-fatal diagnostics are reported and counted here (they
// never change the exit code by themselves), while I/O failures go through Fatal
// and terminate the process immediately.
package diag

import (
	"fmt"
	"os"
)

// Sink accumulates non-fatal diagnostics for one compile run.
type Sink struct {
	debug bool
	count int
}

// NewSink creates a diagnostic sink. debug gates Dbg's output.
func NewSink(debug bool) *Sink {
	return &Sink{debug: debug}
}

// Report writes a diagnostic to stderr and increments the error count
// (spec §7.3-§7.5: syntactic, semantic, and emission diagnostics).
func (s *Sink) Report(format string, args ...any) {
	pr(fmt.Sprintf(format, args...))
	s.count++
}

// Count returns the number of diagnostics reported so far.
func (s *Sink) Count() int {
	return s.count
}

// Dbg prints a debug trace line when debug mode is enabled.
func (s *Sink) Dbg(format string, args ...any) {
	if s.debug {
		pr(fmt.Sprintf(format, args...))
	}
}

// Fatal reports an I/O-class error (spec §7.1) and terminates the
// process with a nonzero exit code.
func Fatal(format string, args ...any) {
	pr(fmt.Sprintf(format, args...))
	os.Exit(2)
}

func pr(s string) {
	fmt.Fprintln(os.Stderr, "ilc: "+s)
}
