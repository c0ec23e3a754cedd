package machine

import (
	"errors"

	"github.com/ezrec/bfvm/translate"
)

var f = translate.From

var (
	ErrBounds    = errors.New(f("cursor out of bounds"))
	ErrCapacity  = errors.New(f("tape capacity must be positive"))
	ErrJumpTable = errors.New(f("loop marker missing from jump table"))
)

// ErrCursor is a cursor move off the tape under POLICY_STRICT.
type ErrCursor struct {
	Pc       int // Index of the move instruction.
	Cursor   int // Cursor position that was refused.
	Capacity int // Tape capacity.
}

func (err ErrCursor) Error() string {
	return f("pc %d: cursor %d outside tape of %d cells", err.Pc, err.Cursor, err.Capacity)
}

func (err ErrCursor) Is(target error) bool {
	return target == ErrBounds
}

type ErrPolicy string

func (err ErrPolicy) Error() string {
	return f("boundary policy '%v' unknown", string(err))
}

type ErrDispatch string

func (err ErrDispatch) Error() string {
	return f("dispatch '%v' unknown", string(err))
}
