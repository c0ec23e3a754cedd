// Package config loads interpreter settings from Starlark or TOML files.
//
// A Starlark file sets globals:
//
//	capacity = TAPE_SIZE * 4
//	boundary = STRICT
//	dispatch = TABLE
//	step_limit = 1000000
//	output_limit = OUTPUT_UNLIMITED
//	verbose = False
//
// The names of the emulator defines (TAPE_SIZE, WRAP, SATURATE, STRICT,
// SWITCH, TABLE, STEP_UNLIMITED, OUTPUT_UNLIMITED) are predeclared. Globals
// starting with '_' are private to the file. A TOML file uses the same keys.
package config

import (
	"os"
	"path/filepath"

	"github.com/ezrec/bfvm/emulator"
	"github.com/ezrec/bfvm/machine"
)

// Config holds the settings for a program run.
type Config struct {
	Capacity    int              `toml:"capacity"`     // Tape cells.
	Boundary    machine.Policy   `toml:"boundary"`     // Cursor policy at the tape edges.
	Dispatch    machine.Dispatch `toml:"dispatch"`     // Instruction dispatch strategy.
	StepLimit   int              `toml:"step_limit"`   // Maximum instructions, 0 for unlimited.
	OutputLimit int              `toml:"output_limit"` // Maximum output bytes, 0 for unlimited.
	Verbose     bool             `toml:"verbose"`      // Trace execution to the log.
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Capacity:    machine.TAPE_SIZE,
		Boundary:    machine.POLICY_WRAP,
		Dispatch:    machine.DISPATCH_SWITCH,
		StepLimit:   emulator.STEP_UNLIMITED,
		OutputLimit: 0,
	}
}

// Load reads a configuration file, choosing the format by extension.
// Settings missing from the file keep their defaults.
func Load(path string) (cfg Config, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	switch filepath.Ext(path) {
	case ".star":
		cfg, err = ParseStarlark(path, src)
	case ".toml":
		cfg, err = ParseToml(path, src)
	default:
		err = ErrFormat(path)
	}

	return
}

// Validate checks the configuration values.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Capacity < 1:
		err = ErrValue{Key: "capacity", Value: cfg.Capacity}
	case cfg.StepLimit < 0:
		err = ErrValue{Key: "step_limit", Value: cfg.StepLimit}
	case cfg.OutputLimit < 0:
		err = ErrValue{Key: "output_limit", Value: cfg.OutputLimit}
	}

	return
}

// NewEmulator creates an emulator with the configured settings.
func (cfg Config) NewEmulator() (emu *emulator.Emulator, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	emu, err = emulator.NewEmulator(cfg.Capacity)
	if err != nil {
		return
	}

	emu.Verbose = cfg.Verbose
	emu.Boundary = cfg.Boundary
	emu.Dispatch = cfg.Dispatch
	emu.StepLimit = cfg.StepLimit
	emu.Console.Capacity = cfg.OutputLimit

	return
}
