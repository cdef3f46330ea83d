// This file is part of synacor-challenge - https://github.com/maskimko/synacor-challenge
//
// Copyright 2026 The synacor-challenge Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package asm provides utility functions to assemble and disassemble Synacor
// VM code.
//
// Supported assembler mnemonics:
//
//	d is a destination register, a, b and c are values: literals, characters,
//	registers or labels.
//
//	opcode	asm	args	description
//	------	---	----	------------------------------------------------------------
//	0	halt		stop execution
//	1	set	d a	set register d to a
//	2	push	a	push a onto the stack
//	3	pop	d	pop the top of the stack into d
//	4	eq	d a b	d = 1 if a == b, else 0
//	5	gt	d a b	d = 1 if a > b, else 0
//	6	jmp	a	jump to a
//	7	jt	a b	jump to b if a is not 0
//	8	jf	a b	jump to b if a is 0
//	9	add	d a b	d = (a + b) % 32768
//	10	mult	d a b	d = (a * b) % 32768
//	11	mod	d a b	d = a % b
//	12	and	d a b	d = a & b
//	13	or	d a b	d = a | b
//	14	not	d a	d = 15 bits complement of a
//	15	rmem	d a	d = memory[a]
//	16	wmem	a b	memory[a] = b
//	17	call	a	push the address of the next instruction and jump to a
//	18	ret		pop an address and jump to it
//	19	out	a	write character a
//	20	in	d	read a character into d
//	21	noop		no-op
//
// Syntax:
//
// Source is line oriented. Each line may contain a label definition, an
// instruction or directive, and a comment, in that order:
//
//	loop:	out 'A'	; print A forever
//		jmp loop
//
// Comments start with a ';' and run to the end of the line.
//
// Operands:
//
//	42, 0x2a	numbers. Any 16 bits value is accepted, so that invalid
//			encodings can be generated on purpose.
//	'A', '\n'	characters, Go syntax.
//	r0 .. r7	registers. These names cannot be used as labels.
//	name		label reference, resolved to the label address.
//
// Directives:
//
//	.org n		continue assembling at address n
//	.dat v...	emit values as is. v may also be a double quoted Go string,
//			which is emitted one byte per word.
//
// Errors:
//
// Assemble returns an ErrAsm holding up to 10 errors, each with its position
// in the source.
package asm
