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

// Package config loads the driver's TOML configuration: where the nasm
// and gcc binaries live, what output paths to use, and the debug settings
// (spec §4.5).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the driver's full configuration surface.
type Config struct {
	Tools  ToolsConfig  `toml:"tools"`
	Output OutputConfig `toml:"output"`
	Debug  DebugConfig  `toml:"debug"`
}

// ToolsConfig names the external assembler and linker and any extra
// arguments to pass them (spec §6's "compile flow invokes nasm ... gcc").
type ToolsConfig struct {
	Nasm     string   `toml:"nasm"`
	Gcc      string   `toml:"gcc"`
	NasmArgs []string `toml:"nasm_args"`
	GccArgs  []string `toml:"gcc_args"`
}

// OutputConfig names the three files the compile pipeline produces.
type OutputConfig struct {
	AsmPath string `toml:"asm_path"`
	ObjPath string `toml:"obj_path"`
	ExePath string `toml:"exe_path"`
}

// DebugConfig holds the debug settings. KeepObj controls object-file
// cleanup; DumpTokens and DumpAst are decoded but not read by the driver.
type DebugConfig struct {
	DumpTokens bool `toml:"dump_tokens"`
	DumpAst    bool `toml:"dump_ast"`
	KeepObj    bool `toml:"keep_obj"`
}

// Default returns the configuration used when no TOML file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Tools.Nasm = "nasm"
	cfg.Tools.Gcc = "gcc"
	cfg.Tools.NasmArgs = []string{"-f", "win64"}
	cfg.Tools.GccArgs = nil
	cfg.Output.AsmPath = "out.asm"
	cfg.Output.ObjPath = "out.obj"
	cfg.Output.ExePath = "output.exe"
	cfg.Debug.DumpTokens = false
	cfg.Debug.DumpAst = false
	cfg.Debug.KeepObj = false
	return cfg
}

// Load reads path and overlays it onto the default configuration. A
// missing file is not an error: the defaults are returned unchanged, the
// same "absent config is fine" policy as the teacher's config loader.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
