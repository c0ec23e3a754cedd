package machine

import (
	"github.com/ezrec/bfvm/program"
)

// handler performs one instruction. All handlers share this signature,
// whether or not they use the program or the port.
type handler func(m *Machine, prog *program.Program, port Port) error

// dispatchTable maps each program byte to its handler. It is filled once at
// init, and is read-only afterwards.
var dispatchTable [256]handler

func init() {
	for n := range dispatchTable {
		dispatchTable[n] = opNop
	}

	dispatchTable[program.OP_RIGHT.Symbol()] = opRight
	dispatchTable[program.OP_LEFT.Symbol()] = opLeft
	dispatchTable[program.OP_INC.Symbol()] = opInc
	dispatchTable[program.OP_DEC.Symbol()] = opDec
	dispatchTable[program.OP_OUTPUT.Symbol()] = opOutput
	dispatchTable[program.OP_INPUT.Symbol()] = opInput
	dispatchTable[program.OP_LOOP_START.Symbol()] = opLoopStart
	dispatchTable[program.OP_LOOP_END.Symbol()] = opLoopEnd
}

func opNop(m *Machine, prog *program.Program, port Port) error {
	return nil
}

func opRight(m *Machine, prog *program.Program, port Port) error {
	return m.move(1)
}

func opLeft(m *Machine, prog *program.Program, port Port) error {
	return m.move(-1)
}

func opInc(m *Machine, prog *program.Program, port Port) error {
	m.Tape[m.Cursor]++
	return nil
}

func opDec(m *Machine, prog *program.Program, port Port) error {
	m.Tape[m.Cursor]--
	return nil
}

func opOutput(m *Machine, prog *program.Program, port Port) error {
	return port.WriteByte(m.Tape[m.Cursor])
}

func opInput(m *Machine, prog *program.Program, port Port) error {
	return m.input(port)
}

func opLoopStart(m *Machine, prog *program.Program, port Port) error {
	if m.Tape[m.Cursor] != 0 {
		return nil
	}
	return m.jump(prog)
}

func opLoopEnd(m *Machine, prog *program.Program, port Port) error {
	if m.Tape[m.Cursor] == 0 {
		return nil
	}
	return m.jump(prog)
}
