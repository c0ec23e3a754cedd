package program

import (
	"errors"
	"slices"

	"github.com/ezrec/bfvm/translate"
)

var f = translate.From

var (
	// ErrSyntax is matched by every unbalanced loop marker error.
	ErrSyntax = errors.New(f("syntax"))
)

// ErrLoopEnd is a loop-end marker with no pending loop-start, at the given index.
type ErrLoopEnd int

func (err ErrLoopEnd) Error() string {
	return f("unmatched ']' at %d", int(err))
}

func (err ErrLoopEnd) Is(target error) bool {
	return target == ErrSyntax
}

// ErrLoopStart lists the loop-start indices left open at the end of the program,
// outermost first.
type ErrLoopStart []int

func (err ErrLoopStart) Error() string {
	if len(err) == 1 {
		return f("unmatched '[' at %d", err[0])
	}
	return f("%d unmatched '[', first at %d", len(err), err[0])
}

func (err ErrLoopStart) Is(target error) bool {
	return target == ErrSyntax
}

// Index of the innermost unmatched loop-start.
func (err ErrLoopStart) Index() int {
	return err[len(err)-1]
}

// Indices returns a copy of the pending loop-start indices.
func (err ErrLoopStart) Indices() []int {
	return slices.Clone(err)
}

// ErrorIndex returns the program index an unbalanced loop marker error refers to.
func ErrorIndex(err error) (index int, ok bool) {
	var loopEnd ErrLoopEnd
	var loopStart ErrLoopStart

	switch {
	case errors.As(err, &loopEnd):
		return int(loopEnd), true
	case errors.As(err, &loopStart):
		return loopStart.Index(), true
	}

	return
}
