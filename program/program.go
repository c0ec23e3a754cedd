package program

import (
	"iter"
)

// Program is preprocessed program text with its loop jump table.
type Program struct {
	Text []byte // Program text, including comment bytes.
	jump []int  // Matching loop marker index, -1 elsewhere.
}

// Len returns the length of the instruction stream.
func (prog *Program) Len() int {
	return len(prog.Text)
}

// Op returns the instruction at pc.
func (prog *Program) Op(pc int) Op {
	return decode[prog.Text[pc]]
}

// Jump returns the index of the loop marker matching the one at pc.
// ok is false if pc does not hold a loop marker.
func (prog *Program) Jump(pc int) (target int, ok bool) {
	if pc < 0 || pc >= len(prog.jump) {
		return
	}

	target = prog.jump[pc]
	ok = target >= 0
	return
}

// Ops iterates over the instructions of the program, skipping comments.
func (prog *Program) Ops() iter.Seq2[int, Op] {
	return func(yield func(pc int, op Op) bool) {
		for pc, b := range prog.Text {
			op := decode[b]
			if op == OP_NOP {
				continue
			}
			if !yield(pc, op) {
				return
			}
		}
	}
}

// Position returns the 1-based line and column of the byte at pc.
func (prog *Program) Position(pc int) (line int, col int) {
	return Position(prog.Text, pc)
}

// Position returns the 1-based line and column of the byte at pc in text.
func Position(text []byte, pc int) (line int, col int) {
	line = 1
	col = 1
	for n, b := range text {
		if n == pc {
			break
		}
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return
}
