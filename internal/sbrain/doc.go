/*
Package sbrain implements the SBrain machine: a brainfuck descendant with a
separate program tape, a data tape, a stack, and a single auxiliary register.

# Tapes

Every storage location is a cell: an unsigned integer of a fixed bit width
(32 by default, see WithCellWidth). A machine has three tapes of cells.

The program tape holds one opcode per cell. It is loaded once and never
written to while running.

The data tape is the machine's working memory, addressed by the data
pointer. It starts out holding whatever data was loaded, followed by zeros,
up to the machine capacity (see WithCapacity). Moving the data pointer past
either end wraps around.

The output tape only grows: every output instruction appends one cell.

Input is a queue of cells handed to New; reading from an exhausted queue
yields 0.

# Instructions

The opcode table below is provisional. It is this package's own assignment,
not the upstream SBrain definition, and programs compiled by SourceToTapes
only run correctly on machines from this package.

Each executed instruction is one cycle. Arithmetic wraps at the cell width.
Binary operations combine the current cell (c) with the register (r) and
leave their result in the register.

	code  sym  effect
	   0   <   move the data pointer left
	   1   >   move the data pointer right
	   2   -   decrement c
	   3   +   increment c
	   4   [   if c is 0, jump past the matching ]
	   5   ]   if c is not 0, jump back past the matching [
	   6   .   append c to the output tape
	   7   ,   take the next input cell into c
	   8   {   push c
	   9   }   pop into c
	  10   (   push r
	  11   )   pop into r
	  12   z   r = 0
	  13   !   r = c
	  14   ?   c = r
	  15   s   swap c and r
	  16   |   r = c | r
	  17   &   r = c & r
	  18   *   r = c ^ r
	  19   ~   r = ^c
	  20   a   r = c + r
	  21   d   r = c - r
	  22   m   r = c * r
	  23   /   r = c / r, 0 when r is 0
	  24   %   r = c % r, 0 when r is 0
	  25   l   r = c << r, 0 once r reaches the width
	  26   r   r = c >> r, 0 once r reaches the width
	  27   =   r = 1 if c == r else 0
	  28   g   r = 1 if c > r else 0
	  29   j   jump to program address c
	  30   J   jump to program address c if r is not 0
	  31   @   halt

The machine halts naturally on @ or when the program counter leaves the
program tape. The stack holds at most capacity cells; pushing onto a full
stack discards the value, popping an empty stack yields 0.

# Source

SourceToTapes reads the textual form: instruction symbols, optionally followed
by a single # and the initial data tape as unsigned numerals. Whitespace is
insignificant, ; starts a comment running to the end of the line, and numerals
may be written in decimal, or with a 0x, 0o, or 0b prefix, optionally
separated by commas:

	; print the first data cell, then halt
	.@
	# 0x48, 105
*/
package sbrain
