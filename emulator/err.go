package emulator

import (
	"errors"

	"github.com/ezrec/bfvm/program"
	"github.com/ezrec/bfvm/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  int
	Op  program.Op
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d '%v' %v", err.Pc, err.Op, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
