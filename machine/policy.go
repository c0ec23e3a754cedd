package machine

import (
	"fmt"
	"iter"
	"maps"
)

// Policy selects cursor behaviour at the tape edges.
type Policy int

//go:generate go tool stringer -linecomment -type=Policy
const (
	POLICY_WRAP     = Policy(0) // wrap
	POLICY_SATURATE = Policy(1) // saturate
	POLICY_STRICT   = Policy(2) // strict
)

// Dispatch selects the instruction dispatch strategy.
type Dispatch int

//go:generate go tool stringer -linecomment -type=Dispatch
const (
	DISPATCH_SWITCH = Dispatch(0) // switch
	DISPATCH_TABLE  = Dispatch(1) // table
)

const (
	TAPE_SIZE = 256 // Default tape capacity.
)

var _machine_defines = map[string]string{
	"TAPE_SIZE": fmt.Sprintf("%v", TAPE_SIZE),
	"WRAP":      POLICY_WRAP.String(),
	"SATURATE":  POLICY_SATURATE.String(),
	"STRICT":    POLICY_STRICT.String(),
	"SWITCH":    DISPATCH_SWITCH.String(),
	"TABLE":     DISPATCH_TABLE.String(),
}

// Defines returns an iterator over the machine's named constants.
func Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// ParsePolicy returns the Policy with the given name.
func ParsePolicy(name string) (policy Policy, err error) {
	for policy = POLICY_WRAP; policy <= POLICY_STRICT; policy++ {
		if policy.String() == name {
			return
		}
	}

	err = ErrPolicy(name)
	return
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (policy *Policy) UnmarshalText(text []byte) (err error) {
	*policy, err = ParsePolicy(string(text))
	return
}

// MarshalText implements encoding.TextMarshaler.
func (policy Policy) MarshalText() ([]byte, error) {
	return []byte(policy.String()), nil
}

// ParseDispatch returns the Dispatch with the given name.
func ParseDispatch(name string) (dispatch Dispatch, err error) {
	for dispatch = DISPATCH_SWITCH; dispatch <= DISPATCH_TABLE; dispatch++ {
		if dispatch.String() == name {
			return
		}
	}

	err = ErrDispatch(name)
	return
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dispatch *Dispatch) UnmarshalText(text []byte) (err error) {
	*dispatch, err = ParseDispatch(string(text))
	return
}

// MarshalText implements encoding.TextMarshaler.
func (dispatch Dispatch) MarshalText() ([]byte, error) {
	return []byte(dispatch.String()), nil
}
