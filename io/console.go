// Package io provides the byte console a running machine reads input from
// and writes output to.
package io

import (
	"io"
	"iter"
	"maps"
)

// Console adapts an io.Reader and an io.Writer into the byte-at-a-time
// port used by the machine. A nil Input is an empty stream, and a nil
// Output discards everything written to it.
type Console struct {
	Input    io.Reader
	Output   io.Writer
	Capacity int // Maximum output bytes, or 0 for unlimited.

	Reads  int // Bytes read since rewind.
	Writes int // Bytes written since rewind.
}

const (
	OUTPUT_UNLIMITED = 0 // Capacity of an unbounded console.
)

// Defines returns an iter of defines for the console.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"OUTPUT_UNLIMITED": "0",
	})
}

// Rewind resets the console counters. The streams can not be rewound.
func (con *Console) Rewind() {
	con.Reads = 0
	con.Writes = 0
}

// ReadByte reads the next input byte. At the end of input, it returns io.EOF.
func (con *Console) ReadByte() (value byte, err error) {
	if con.Input == nil {
		err = io.EOF
		return
	}

	var one [1]byte
	_, err = io.ReadFull(con.Input, one[:])
	if err != nil {
		return
	}

	value = one[0]
	con.Reads++
	return
}

// WriteByte writes a single output byte.
// Returns ErrConsoleFull once Capacity bytes have been written.
func (con *Console) WriteByte(value byte) (err error) {
	if con.Capacity > 0 && con.Writes >= con.Capacity {
		err = ErrConsoleFull
		return
	}

	if con.Output != nil {
		_, err = con.Output.Write([]byte{value})
		if err != nil {
			return
		}
	}

	con.Writes++
	return
}
