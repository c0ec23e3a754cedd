package program

// Op is a decoded instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP        = Op(0) // nop
	OP_RIGHT      = Op(1) // >
	OP_LEFT       = Op(2) // <
	OP_INC        = Op(3) // +
	OP_DEC        = Op(4) // -
	OP_OUTPUT     = Op(5) // .
	OP_INPUT      = Op(6) // ,
	OP_LOOP_START = Op(7) // [
	OP_LOOP_END   = Op(8) // ]
)

// decode maps every byte value to its instruction. Unlisted bytes are OP_NOP.
var decode = [256]Op{
	'>': OP_RIGHT,
	'<': OP_LEFT,
	'+': OP_INC,
	'-': OP_DEC,
	'.': OP_OUTPUT,
	',': OP_INPUT,
	'[': OP_LOOP_START,
	']': OP_LOOP_END,
}

// Decode returns the instruction for a program byte.
func Decode(b byte) Op {
	return decode[b]
}

// Symbol returns the program byte of the instruction, or 0 for OP_NOP.
func (op Op) Symbol() byte {
	if op <= OP_NOP || op > OP_LOOP_END {
		return 0
	}
	return op.String()[0]
}

// IsLoop is true for the two loop markers.
func (op Op) IsLoop() bool {
	return op == OP_LOOP_START || op == OP_LOOP_END
}
