// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ezrec/bfvm/program"
)

// Port is the byte stream a Machine reads input from and writes output to.
// ReadByte returns io.EOF at the end of input.
type Port interface {
	io.ByteReader
	io.ByteWriter
}

// Machine is the execution state of a single program run.
type Machine struct {
	Verbose  bool     // Set to log each executed instruction.
	Boundary Policy   // Cursor behaviour at the tape edges.
	Dispatch Dispatch // Instruction dispatch strategy.

	Tape   []byte // Tape cells.
	Cursor int    // Current tape cell.
	Pc     int    // Index of the next instruction.
	Ticks  int    // Instructions executed since reset.
}

// NewMachine creates a machine with a zeroed tape of capacity cells.
func NewMachine(capacity int) (m *Machine, err error) {
	if capacity < 1 {
		err = ErrCapacity
		return
	}

	m = &Machine{
		Tape: make([]byte, capacity),
	}

	return
}

// Capacity returns the number of tape cells.
func (m *Machine) Capacity() int {
	return len(m.Tape)
}

// Reset zeroes the tape, and returns the cursor and program counter to 0.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}

	clear(m.Tape)
	m.Cursor = 0
	m.Pc = 0
	m.Ticks = 0
}

// Cell returns the value of the tape cell under the cursor.
func (m *Machine) Cell() byte {
	return m.Tape[m.Cursor]
}

// Done is true once the program counter has run off the end of the program.
func (m *Machine) Done(prog *program.Program) bool {
	return m.Pc >= prog.Len()
}

// String returns the machine state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "pc", m.Pc)
	text += fmt.Sprintf("% 6s: %v/%v\n", "cursor", m.Cursor, len(m.Tape))
	text += fmt.Sprintf("% 6s: %02X\n", "cell", m.Tape[m.Cursor])
	text += fmt.Sprintf("% 6s: %v\n", "ticks", m.Ticks)

	return
}

// Step executes the instruction at the program counter, and advances it.
// Stepping a finished machine does nothing.
func (m *Machine) Step(prog *program.Program, port Port) (err error) {
	if m.Done(prog) {
		return
	}

	switch m.Dispatch {
	case DISPATCH_SWITCH:
		err = m.execute(prog.Op(m.Pc), prog, port)
	case DISPATCH_TABLE:
		err = dispatchTable[prog.Text[m.Pc]](m, prog, port)
	default:
		err = ErrDispatch(m.Dispatch.String())
	}
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("pc=%d ptr=%d cell=%d", m.Pc, m.Cursor, m.Tape[m.Cursor])
	}

	m.Pc++
	m.Ticks++

	return
}

// Run steps the machine until the program completes, or an error occurs.
func (m *Machine) Run(prog *program.Program, port Port) (err error) {
	for !m.Done(prog) {
		err = m.Step(prog, port)
		if err != nil {
			return
		}
	}

	return
}

// execute performs a single decoded instruction.
func (m *Machine) execute(op program.Op, prog *program.Program, port Port) (err error) {
	switch op {
	case program.OP_RIGHT:
		err = m.move(1)
	case program.OP_LEFT:
		err = m.move(-1)
	case program.OP_INC:
		m.Tape[m.Cursor]++
	case program.OP_DEC:
		m.Tape[m.Cursor]--
	case program.OP_OUTPUT:
		err = port.WriteByte(m.Tape[m.Cursor])
	case program.OP_INPUT:
		err = m.input(port)
	case program.OP_LOOP_START:
		if m.Tape[m.Cursor] == 0 {
			err = m.jump(prog)
		}
	case program.OP_LOOP_END:
		if m.Tape[m.Cursor] != 0 {
			err = m.jump(prog)
		}
	default:
		// Comment.
	}

	return
}

// move the cursor by delta cells, subject to the boundary policy.
func (m *Machine) move(delta int) (err error) {
	capacity := len(m.Tape)
	next := m.Cursor + delta
	if next >= 0 && next < capacity {
		m.Cursor = next
		return
	}

	switch m.Boundary {
	case POLICY_WRAP:
		m.Cursor = ((next % capacity) + capacity) % capacity
	case POLICY_SATURATE:
		m.Cursor = min(max(next, 0), capacity-1)
	case POLICY_STRICT:
		err = ErrCursor{Pc: m.Pc, Cursor: next, Capacity: capacity}
	default:
		err = ErrPolicy(m.Boundary.String())
	}

	return
}

// input reads a byte into the current cell. End of input stores 0.
func (m *Machine) input(port Port) (err error) {
	value, err := port.ReadByte()
	if errors.Is(err, io.EOF) {
		value = 0
		err = nil
	}
	if err != nil {
		return
	}

	m.Tape[m.Cursor] = value
	return
}

// jump sets the program counter to the loop marker matching the one at pc.
func (m *Machine) jump(prog *program.Program) (err error) {
	target, ok := prog.Jump(m.Pc)
	if !ok {
		err = ErrJumpTable
		return
	}

	m.Pc = target
	return
}
