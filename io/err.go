package io

import (
	"errors"

	"github.com/ezrec/bfvm/translate"
)

var f = translate.From

var (
	// Console errors
	ErrConsoleFull = errors.New(f("console output full"))
)
