package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bfvm/program"
)

func TestDispatchTable(t *testing.T) {
	assert := assert.New(t)

	for n := range dispatchTable {
		assert.NotNil(dispatchTable[n], "byte 0x%02x", n)
	}
}

// runLimited steps a machine at most limit times.
func runLimited(m *Machine, prog *program.Program, port Port, limit int) (err error) {
	for range limit {
		if m.Done(prog) {
			return
		}
		err = m.Step(prog, port)
		if err != nil {
			return
		}
	}
	return
}

func FuzzDispatch(f *testing.F) {
	f.Add([]byte(helloProgram), []byte{}, uint8(0), uint8(8))
	f.Add([]byte(",[.,]"), []byte("echo"), uint8(1), uint8(4))
	f.Add([]byte("<<+>>>-[<]"), []byte{}, uint8(2), uint8(3))
	f.Add([]byte("+[>+]"), []byte{}, uint8(1), uint8(5))
	f.Add([]byte("comment only"), []byte{1, 2}, uint8(0), uint8(1))

	f.Fuzz(func(t *testing.T, text []byte, input []byte, boundary uint8, capacity uint8) {
		assert := assert.New(t)

		prog, err := program.Compile(text)
		if err != nil {
			return
		}

		size := int(capacity) + 1
		policy := Policy(boundary % 3)

		var machines [2]*Machine
		var ports [2]*testPort
		var errs [2]error
		for n, dispatch := range dispatches {
			m, err := NewMachine(size)
			assert.NoError(err)
			m.Boundary = policy
			m.Dispatch = dispatch
			ports[n] = newTestPort(input)
			errs[n] = runLimited(m, prog, ports[n], 10000)
			machines[n] = m
		}

		assert.Equal(errs[0], errs[1])
		assert.Equal(ports[0].output.Bytes(), ports[1].output.Bytes())
		assert.Equal(machines[0].Tape, machines[1].Tape)
		assert.Equal(machines[0].Cursor, machines[1].Cursor)
		assert.Equal(machines[0].Pc, machines[1].Pc)
		assert.Equal(machines[0].Ticks, machines[1].Ticks)
		assert.GreaterOrEqual(machines[0].Cursor, 0)
		assert.Less(machines[0].Cursor, size)
	})
}
