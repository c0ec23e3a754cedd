package config

import (
	"github.com/ezrec/bfvm/translate"
)

var f = translate.From

// ErrFormat is a configuration file with an unknown extension.
type ErrFormat string

func (err ErrFormat) Error() string {
	return f("%v: unknown configuration format", string(err))
}

// ErrKey is an unknown configuration key.
type ErrKey string

func (err ErrKey) Error() string {
	return f("'%v' is not a configuration key", string(err))
}

// ErrValue is a configuration key with an invalid value.
type ErrValue struct {
	Key   string
	Value any
}

func (err ErrValue) Error() string {
	return f("'%v' is not a valid %v", err.Value, err.Key)
}

// ErrFile locates an error within a configuration file.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
