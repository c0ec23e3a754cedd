// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/bfvm/internal"
	"github.com/ezrec/bfvm/io"
	"github.com/ezrec/bfvm/machine"
	"github.com/ezrec/bfvm/program"
)

const (
	STEP_UNLIMITED = 0    // Step limit of an unbounded run.
	CANCEL_TICKS   = 4096 // Ticks between context checks in Run.
)

var _emulator_defines = map[string]string{
	"STEP_UNLIMITED": fmt.Sprintf("%v", STEP_UNLIMITED),
}

// Emulator state. Program + Machine + Console.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the execution engine.
	Program          *program.Program // Reference to the loaded program.

	Console   io.Console // Program input and output.
	StepLimit int        // Maximum ticks per run, or STEP_UNLIMITED.

	preprocessor program.Preprocessor
}

// NewEmulator creates a new emulator with a tape of capacity cells.
func NewEmulator(capacity int) (emu *Emulator, err error) {
	m, err := machine.NewMachine(capacity)
	if err != nil {
		return
	}

	emu = &Emulator{
		Machine: m,
		Program: &program.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		machine.Defines(),
		emu.Console.Defines(),
	)
}

// Load preprocesses program text, and resets the emulator to run it.
// On a syntax error the previously loaded program is kept.
func (emu *Emulator) Load(text []byte) (err error) {
	emu.preprocessor.Verbose = emu.Verbose

	prog, err := emu.preprocessor.Compile(text)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}

// Parse reads program text from input, and loads it.
func (emu *Emulator) Parse(input goio.Reader) (err error) {
	text, err := goio.ReadAll(input)
	if err != nil {
		return
	}

	return emu.Load(text)
}

// Reset the machine and console for a fresh run of the program.
func (emu *Emulator) Reset() {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()
	emu.Console.Rewind()
}

// Op returns the instruction at the program counter.
func (emu *Emulator) Op() program.Op {
	if emu.Machine.Done(emu.Program) {
		return program.OP_NOP
	}

	return emu.Program.Op(emu.Machine.Pc)
}

// Tick performs a single instruction. done is set once the program
// has completed.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	if emu.Machine.Done(emu.Program) {
		done = true
		return
	}

	pc := emu.Machine.Pc
	op := emu.Op()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Op: op, Err: err}
		}
	}()

	if emu.StepLimit > STEP_UNLIMITED && emu.Machine.Ticks >= emu.StepLimit {
		err = ErrStepLimit
		return
	}

	err = emu.Machine.Step(emu.Program, &emu.Console)
	if err != nil {
		return
	}

	done = emu.Machine.Done(emu.Program)
	return
}

// Run ticks the emulator until the program completes, fails, or ctx is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	if emu.Verbose {
		log.Printf("emulator: run %d bytes, step limit %d", emu.Program.Len(), emu.StepLimit)
	}

	for {
		if emu.Machine.Ticks%CANCEL_TICKS == 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			break
		}
	}

	if emu.Verbose {
		log.Printf("emulator: stopped after %d ticks: %v", emu.Machine.Ticks, err)
	}

	return
}
