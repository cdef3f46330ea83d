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

package vm

import "strconv"

// Opcode identifies an instruction.
type Opcode Word

// Synacor Virtual Machine Opcodes.
const (
	OpHalt Opcode = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop
)

// opcodes lists the mnemonic, operand count and whether the first operand is
// a destination register.
var opcodes = [...]struct {
	name string
	args int
	dest bool
}{
	OpHalt: {"halt", 0, false},
	OpSet:  {"set", 2, true},
	OpPush: {"push", 1, false},
	OpPop:  {"pop", 1, true},
	OpEq:   {"eq", 3, true},
	OpGt:   {"gt", 3, true},
	OpJmp:  {"jmp", 1, false},
	OpJt:   {"jt", 2, false},
	OpJf:   {"jf", 2, false},
	OpAdd:  {"add", 3, true},
	OpMult: {"mult", 3, true},
	OpMod:  {"mod", 3, true},
	OpAnd:  {"and", 3, true},
	OpOr:   {"or", 3, true},
	OpNot:  {"not", 2, true},
	OpRmem: {"rmem", 2, true},
	OpWmem: {"wmem", 2, false},
	OpCall: {"call", 1, false},
	OpRet:  {"ret", 0, false},
	OpOut:  {"out", 1, false},
	OpIn:   {"in", 1, true},
	OpNoop: {"noop", 0, false},
}

// OpcodeCount is the number of defined opcodes.
const OpcodeCount = len(opcodes)

// Valid returns true if op is a defined opcode.
func (op Opcode) Valid() bool {
	return int(op) < len(opcodes)
}

// Operands returns the number of operands of op.
func (op Opcode) Operands() int {
	if !op.Valid() {
		return 0
	}
	return opcodes[op].args
}

// HasDest returns true if the first operand of op is a destination register.
func (op Opcode) HasDest() bool {
	return op.Valid() && opcodes[op].dest
}

func (op Opcode) String() string {
	if !op.Valid() {
		return "op" + strconv.Itoa(int(op))
	}
	return opcodes[op].name
}
