package config

import (
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bfvm/emulator"
	"github.com/ezrec/bfvm/machine"
)

// predeclared returns the emulator defines as Starlark values. Numeric
// defines are integers, all others are strings.
func predeclared() starlark.StringDict {
	pred := starlark.StringDict{}
	emu := &emulator.Emulator{}
	for key, str := range emu.Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			pred[key] = starlark.String(str)
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	return pred
}

// ParseStarlark executes a Starlark configuration file, and collects its globals.
func ParseStarlark(name string, src []byte) (cfg Config, err error) {
	defer func() {
		if err != nil {
			err = &ErrFile{Path: name, Err: err}
		}
	}()

	thread := &starlark.Thread{Name: "config"}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, name, src, predeclared())
	if err != nil {
		return
	}

	cfg = Default()
	for _, key := range globals.Keys() {
		if strings.HasPrefix(key, "_") {
			continue
		}
		err = cfg.setStarlark(key, globals[key])
		if err != nil {
			return
		}
	}

	err = cfg.Validate()
	return
}

func (cfg *Config) setStarlark(key string, value starlark.Value) (err error) {
	switch key {
	case "capacity":
		cfg.Capacity, err = starlarkInt(key, value)
	case "step_limit":
		cfg.StepLimit, err = starlarkInt(key, value)
	case "output_limit":
		cfg.OutputLimit, err = starlarkInt(key, value)
	case "boundary":
		str, ok := starlark.AsString(value)
		if !ok {
			err = ErrValue{Key: key, Value: value.String()}
			return
		}
		cfg.Boundary, err = machine.ParsePolicy(str)
	case "dispatch":
		str, ok := starlark.AsString(value)
		if !ok {
			err = ErrValue{Key: key, Value: value.String()}
			return
		}
		cfg.Dispatch, err = machine.ParseDispatch(str)
	case "verbose":
		b, ok := value.(starlark.Bool)
		if !ok {
			err = ErrValue{Key: key, Value: value.String()}
			return
		}
		cfg.Verbose = bool(b)
	default:
		err = ErrKey(key)
	}

	return
}

func starlarkInt(key string, value starlark.Value) (n int, err error) {
	st_int, ok := value.(starlark.Int)
	if !ok {
		err = ErrValue{Key: key, Value: value.String()}
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 != int64(int(st_int64)) {
		err = ErrValue{Key: key, Value: value.String()}
		return
	}

	n = int(st_int64)
	return
}
