// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package program

import (
	"io"
	"log"
	"slices"
)

// Preprocessor validates program text and builds its jump table.
type Preprocessor struct {
	Verbose bool // If set, logs each matched loop.

	stack Stack // Pending loop-start indices.
}

// Parse reads all of the program text from input, and compiles it.
func (pp *Preprocessor) Parse(input io.Reader) (prog *Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return pp.Compile(text)
}

// Compile builds the jump table for the program text.
//
// A loop-end with no pending loop-start fails immediately with ErrLoopEnd.
// Loop-starts still pending after the scan fail with ErrLoopStart.
// On failure, no Program is returned.
func (pp *Preprocessor) Compile(text []byte) (prog *Program, err error) {
	jump := make([]int, len(text))
	for n := range jump {
		jump[n] = -1
	}

	pp.stack.Reset()
	defer pp.stack.Reset()

	for i, b := range text {
		switch decode[b] {
		case OP_LOOP_START:
			pp.stack.Push(i)
		case OP_LOOP_END:
			j, ok := pp.stack.Pop()
			if !ok {
				err = ErrLoopEnd(i)
				return
			}
			jump[i] = j
			jump[j] = i
			if pp.Verbose {
				log.Printf("program: loop %d..%d", j, i)
			}
		}
	}

	if !pp.stack.Empty() {
		err = ErrLoopStart(slices.Clone(pp.stack.Data))
		return
	}

	prog = &Program{
		Text: slices.Clone(text),
		jump: jump,
	}

	return
}

// Compile is a convenience wrapper for a default Preprocessor.
func Compile(text []byte) (*Program, error) {
	pp := &Preprocessor{}
	return pp.Compile(text)
}
