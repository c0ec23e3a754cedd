// Package machine implements the execution engine for preprocessed programs.
//
// A Machine owns a fixed-size tape of byte cells, the cursor into that tape,
// and the program counter into the instruction stream. Cursor movement off
// either edge of the tape follows the configured boundary Policy. Each
// instruction is dispatched either through a single switch on the decoded
// program.Op, or through a 256-entry handler table indexed by program byte.
package machine
