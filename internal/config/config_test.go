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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Tools.Nasm != "nasm" {
		t.Errorf("Expected Tools.Nasm=nasm, got %s", cfg.Tools.Nasm)
	}
	if cfg.Tools.Gcc != "gcc" {
		t.Errorf("Expected Tools.Gcc=gcc, got %s", cfg.Tools.Gcc)
	}
	if len(cfg.Tools.NasmArgs) != 2 || cfg.Tools.NasmArgs[0] != "-f" || cfg.Tools.NasmArgs[1] != "win64" {
		t.Errorf("Expected Tools.NasmArgs=[-f win64], got %v", cfg.Tools.NasmArgs)
	}
	if cfg.Output.ExePath != "output.exe" {
		t.Errorf("Expected Output.ExePath=output.exe, got %s", cfg.Output.ExePath)
	}
	if cfg.Debug.KeepObj {
		t.Error("Expected Debug.KeepObj=false")
	}
}

func TestLoadNonExistentReturnsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	cfg, err := Load(filepath.Join(tempDir, "nonexistent.toml"))
	if err != nil {
		t.Fatalf("Load should not error on a missing file: %v", err)
	}
	if cfg.Tools.Nasm != "nasm" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "ilc.toml")
	body := `
[tools]
nasm = "/opt/nasm/bin/nasm"
gcc = "x86_64-w64-mingw32-gcc"

[output]
asm_path = "build/out.asm"

[debug]
keep_obj = true
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Tools.Nasm != "/opt/nasm/bin/nasm" {
		t.Errorf("Expected overridden Tools.Nasm, got %s", cfg.Tools.Nasm)
	}
	if cfg.Tools.Gcc != "x86_64-w64-mingw32-gcc" {
		t.Errorf("Expected overridden Tools.Gcc, got %s", cfg.Tools.Gcc)
	}
	if cfg.Output.AsmPath != "build/out.asm" {
		t.Errorf("Expected overridden Output.AsmPath, got %s", cfg.Output.AsmPath)
	}
	if !cfg.Debug.KeepObj {
		t.Error("Expected overridden Debug.KeepObj=true")
	}
	// Untouched sections keep their defaults.
	if cfg.Output.ExePath != "output.exe" {
		t.Errorf("Expected default Output.ExePath to survive partial override, got %s", cfg.Output.ExePath)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "invalid.toml")
	invalid := "[tools]\nnasm = \n"
	if err := os.WriteFile(path, []byte(invalid), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}
