package machine

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/bfvm/program"
)

const helloProgram = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++."

var dispatches = []Dispatch{DISPATCH_SWITCH, DISPATCH_TABLE}

type testPort struct {
	input  *bytes.Reader
	output bytes.Buffer
}

func newTestPort(input []byte) *testPort {
	return &testPort{input: bytes.NewReader(input)}
}

func (tp *testPort) ReadByte() (byte, error) {
	return tp.input.ReadByte()
}

func (tp *testPort) WriteByte(value byte) error {
	return tp.output.WriteByte(value)
}

type failPort struct {
	err error
}

func (fp *failPort) ReadByte() (byte, error) {
	return 0, fp.err
}

func (fp *failPort) WriteByte(value byte) error {
	return fp.err
}

func doRun(t *testing.T, m *Machine, text string, input []byte) (output []byte, err error) {
	prog, err := program.Compile([]byte(text))
	require.NoError(t, err, text)

	port := newTestPort(input)
	err = m.Run(prog, port)
	output = port.output.Bytes()
	return
}

func newTestMachine(t *testing.T, capacity int, boundary Policy, dispatch Dispatch) *Machine {
	m, err := NewMachine(capacity)
	require.NoError(t, err)
	m.Boundary = boundary
	m.Dispatch = dispatch
	return m
}

func TestNewMachine(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(TAPE_SIZE)
	assert.NoError(err)
	assert.Equal(TAPE_SIZE, m.Capacity())
	assert.Equal(POLICY_WRAP, m.Boundary)
	assert.Equal(DISPATCH_SWITCH, m.Dispatch)
	assert.Equal(make([]byte, TAPE_SIZE), m.Tape)
	assert.Equal(0, m.Cursor)
	assert.Equal(0, m.Pc)

	for _, capacity := range []int{0, -1} {
		m, err = NewMachine(capacity)
		assert.Nil(m)
		assert.ErrorIs(err, ErrCapacity)
	}
}

func TestHello(t *testing.T) {
	assert := assert.New(t)

	for _, boundary := range []Policy{POLICY_WRAP, POLICY_SATURATE, POLICY_STRICT} {
		for _, dispatch := range dispatches {
			m := newTestMachine(t, TAPE_SIZE, boundary, dispatch)
			output, err := doRun(t, m, helloProgram, nil)
			assert.NoError(err)
			if assert.GreaterOrEqual(len(output), 5) {
				assert.Equal([]byte("Hello"), output[:5], "%v %v", boundary, dispatch)
			}
		}
	}
}

func TestCellArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		cell byte
	}){
		{"inc", "+++", 3},
		{"dec_wrap", "-", 255},
		{"inc_wrap", "-+", 0},
		{"inc_255", "-" + string(bytes.Repeat([]byte{'+'}, 255)), 254},
		{"dec_to_0", "++--", 0},
	}

	for _, dispatch := range dispatches {
		for _, entry := range table {
			m := newTestMachine(t, TAPE_SIZE, POLICY_WRAP, dispatch)
			_, err := doRun(t, m, entry.text, nil)
			assert.NoError(err, entry.name)
			assert.Equal(entry.cell, m.Cell(), entry.name)
		}
	}

	m := newTestMachine(t, TAPE_SIZE, POLICY_WRAP, DISPATCH_SWITCH)
	m.Tape[0] = 255
	prog, err := program.Compile([]byte("+"))
	require.NoError(t, err)
	assert.NoError(m.Step(prog, newTestPort(nil)))
	assert.Equal(byte(0), m.Cell())
}

func TestBoundaryWrap(t *testing.T) {
	assert := assert.New(t)

	for _, capacity := range []int{1, 3, TAPE_SIZE, 1000} {
		for _, dispatch := range dispatches {
			m := newTestMachine(t, capacity, POLICY_WRAP, dispatch)
			_, err := doRun(t, m, "<", nil)
			assert.NoError(err)
			assert.Equal(capacity-1, m.Cursor, "capacity %d", capacity)


			m.Reset()
			m.Cursor = capacity - 1
			prog, err := program.Compile([]byte(">"))
			require.NoError(t, err)
			assert.NoError(m.Run(prog, newTestPort(nil)))
			assert.Equal(0, m.Cursor, "capacity %d", capacity)
		}
	}

	// Writing through the wrapped cursor reaches the last cell.
	m := newTestMachine(t, 4, POLICY_WRAP, DISPATCH_TABLE)
	_, err := doRun(t, m, "<+++<+", nil)
	assert.NoError(err)
	assert.Equal([]byte{0, 0, 1, 3}, m.Tape)
}

func TestBoundarySaturate(t *testing.T) {
	assert := assert.New(t)

	for _, dispatch := range dispatches {
		m := newTestMachine(t, 4, POLICY_SATURATE, dispatch)
		_, err := doRun(t, m, "<<+", nil)
		assert.NoError(err)
		assert.Equal(0, m.Cursor)
		assert.Equal(byte(1), m.Tape[0])

		m.Reset()
		_, err = doRun(t, m, ">>>>>>+", nil)
		assert.NoError(err)
		assert.Equal(3, m.Cursor)
		assert.Equal([]byte{0, 0, 0, 1}, m.Tape)
	}
}

func TestBoundaryStrict(t *testing.T) {
	assert := assert.New(t)

	for _, dispatch := range dispatches {
		m := newTestMachine(t, 2, POLICY_STRICT, dispatch)
		output, err := doRun(t, m, "+.<.", nil)
		assert.ErrorIs(err, ErrBounds)
		assert.Equal(ErrCursor{Pc: 2, Cursor: -1, Capacity: 2}, err)
		assert.Equal([]byte{1}, output, "output before the error is kept")
		assert.Equal(0, m.Cursor)
		assert.Equal(2, m.Pc)

		m.Reset()
		_, err = doRun(t, m, ">>", nil)
		assert.Equal(ErrCursor{Pc: 1, Cursor: 2, Capacity: 2}, err)
		assert.Equal(1, m.Cursor)

		var cursorErr ErrCursor
		assert.True(errors.As(err, &cursorErr))
		assert.NotEmpty(cursorErr.Error())
	}
}

func TestBoundaryUnknown(t *testing.T) {
	assert := assert.New(t)

	m := newTestMachine(t, 2, Policy(9), DISPATCH_SWITCH)
	_, err := doRun(t, m, "><", nil)
	assert.NoError(err, "moves within the tape ignore the policy")

	m.Reset()
	_, err = doRun(t, m, "<<", nil)
	assert.Equal(ErrPolicy("Policy(9)"), err)
}

func TestDispatchUnknown(t *testing.T) {
	assert := assert.New(t)

	m := newTestMachine(t, 2, POLICY_WRAP, Dispatch(5))
	_, err := doRun(t, m, "+", nil)
	assert.Equal(ErrDispatch("Dispatch(5)"), err)
	assert.Equal(0, m.Pc)
}

func TestInputOutput(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		input  []byte
		output []byte
	}){
		{"echo", ",.", []byte{65}, []byte{65}},
		{"echo_eof", ",.", nil, []byte{0}},
		{"eof_clears", "+++,.", nil, []byte{0}},
		{"echo_all", ",[.,]", []byte("abc"), []byte("abc")},
		{"comments", "hello world", []byte("x"), nil},
		{"no_read", ".", []byte("x"), []byte{0}},
	}

	for _, dispatch := range dispatches {
		for _, entry := range table {
			m := newTestMachine(t, TAPE_SIZE, POLICY_WRAP, dispatch)
			output, err := doRun(t, m, entry.text, entry.input)
			assert.NoError(err, entry.name)
			assert.Equal(entry.output, output, entry.name)
		}
	}
}

func TestPortError(t *testing.T) {
	assert := assert.New(t)

	portErr := errors.New("broken")

	for _, dispatch := range dispatches {
		for _, text := range []string{",", "."} {
			m := newTestMachine(t, TAPE_SIZE, POLICY_WRAP, dispatch)
			prog, err := program.Compile([]byte("+" + text))
			require.NoError(t, err)

			err = m.Run(prog, &failPort{err: portErr})
			assert.ErrorIs(err, portErr, text)
			assert.Equal(1, m.Pc, text)
			assert.Equal(byte(1), m.Cell(), text)
		}
	}
}

func TestLoops(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		tape []byte
		pc   int
	}){
		{"skip", "[+++]+", []byte{1, 0}, 6},
		{"skip_nested", "[[+]>+]>+", []byte{0, 1}, 9},
		{"count", "+++[>++<-]", []byte{0, 6}, 10},
		{"nested", "++[>++[>+<-]<-]", []byte{0, 0, 4}, 15},
	}

	for _, dispatch := range dispatches {
		for _, entry := range table {
			m := newTestMachine(t, 2, POLICY_WRAP, dispatch)
			if len(entry.tape) > 2 {
				m = newTestMachine(t, len(entry.tape), POLICY_WRAP, dispatch)
			}
			_, err := doRun(t, m, entry.text, nil)
			assert.NoError(err, entry.name)
			assert.Equal(entry.tape, m.Tape, entry.name)
			assert.Equal(entry.pc, m.Pc, entry.name)
		}
	}
}

func TestLoopSkipResumesAfterEnd(t *testing.T) {
	assert := assert.New(t)

	prog, err := program.Compile([]byte("[-]+"))
	require.NoError(t, err)

	for _, dispatch := range dispatches {
		m := newTestMachine(t, TAPE_SIZE, POLICY_WRAP, dispatch)
		port := newTestPort(nil)

		assert.NoError(m.Step(prog, port))
		assert.Equal(3, m.Pc)
		assert.Equal(1, m.Ticks)

		assert.NoError(m.Step(prog, port))
		assert.Equal(4, m.Pc)
		assert.Equal(byte(1), m.Cell())
		assert.True(m.Done(prog))

		// A finished machine ignores further steps.
		assert.NoError(m.Step(prog, port))
		assert.Equal(4, m.Pc)
		assert.Equal(2, m.Ticks)
	}
}

func TestMissingJumpTable(t *testing.T) {
	assert := assert.New(t)

	prog := &program.Program{Text: []byte("[]")}

	for _, dispatch := range dispatches {
		m := newTestMachine(t, TAPE_SIZE, POLICY_WRAP, dispatch)
		err := m.Run(prog, newTestPort(nil))
		assert.ErrorIs(err, ErrJumpTable)
	}
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	m := newTestMachine(t, 8, POLICY_WRAP, DISPATCH_SWITCH)
	m.Verbose = true
	_, err := doRun(t, m, "+>++>+++", nil)
	assert.NoError(err)
	assert.Equal(2, m.Cursor)
	assert.Equal(8, m.Ticks)
	assert.Contains(m.String(), "cursor: 2/8")

	m.Reset()
	assert.Equal(make([]byte, 8), m.Tape)
	assert.Equal(0, m.Cursor)
	assert.Equal(0, m.Pc)
	assert.Equal(0, m.Ticks)
}

func TestIndependentMachines(t *testing.T) {
	assert := assert.New(t)

	const runs = 16

	outputs := make([][]byte, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for n := range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := NewMachine(TAPE_SIZE)
			if err != nil {
				errs[n] = err
				return
			}
			m.Dispatch = dispatches[n%len(dispatches)]
			text := string(bytes.Repeat([]byte{'+'}, n)) + ".[-]" + helloProgram
			prog, err := program.Compile([]byte(text))
			if err != nil {
				errs[n] = err
				return
			}
			port := newTestPort(nil)
			errs[n] = m.Run(prog, port)
			outputs[n] = port.output.Bytes()
		}()
	}
	wg.Wait()

	for n := range runs {
		assert.NoError(errs[n])
		expected := append([]byte{byte(n)}, "Hello"...)
		assert.Equal(expected, outputs[n], fmt.Sprintf("run %d", n))
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("256", defines["TAPE_SIZE"])
	assert.Equal("wrap", defines["WRAP"])
	assert.Equal("saturate", defines["SATURATE"])
	assert.Equal("strict", defines["STRICT"])
	assert.Equal("switch", defines["SWITCH"])
	assert.Equal("table", defines["TABLE"])
}

func TestParsePolicy(t *testing.T) {
	assert := assert.New(t)

	for _, policy := range []Policy{POLICY_WRAP, POLICY_SATURATE, POLICY_STRICT} {
		parsed, err := ParsePolicy(policy.String())
		assert.NoError(err)
		assert.Equal(policy, parsed)

		text, err := policy.MarshalText()
		assert.NoError(err)
		var unmarshaled Policy
		assert.NoError(unmarshaled.UnmarshalText(text))
		assert.Equal(policy, unmarshaled)
	}

	_, err := ParsePolicy("clamp")
	assert.Equal(ErrPolicy("clamp"), err)
	assert.NotEmpty(err.Error())

	for _, dispatch := range dispatches {
		parsed, err := ParseDispatch(dispatch.String())
		assert.NoError(err)
		assert.Equal(dispatch, parsed)

		var unmarshaled Dispatch
		assert.NoError(unmarshaled.UnmarshalText([]byte(dispatch.String())))
		assert.Equal(dispatch, unmarshaled)
	}

	var dispatch Dispatch
	err = dispatch.UnmarshalText([]byte("jit"))
	assert.Equal(ErrDispatch("jit"), err)
}
