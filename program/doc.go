// Package program decodes and preprocesses tape machine program text.
//
// Program text is a flat stream of bytes. Eight bytes are instructions:
//
//	>  move the cursor right
//	<  move the cursor left
//	+  increment the cell under the cursor
//	-  decrement the cell under the cursor
//	.  output the cell under the cursor
//	,  input a byte into the cell under the cursor
//	[  skip past the matching ] if the cell is zero
//	]  return to the matching [ if the cell is non-zero
//
// Every other byte is a comment. The Preprocessor pairs the loop markers
// into a jump table, and rejects programs whose markers do not balance.
package program
