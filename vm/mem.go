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

// Word is the raw type stored in a memory location.
//
// Valid values are in the range 0..MaxValue. Cells in memory may hold any
// 16 bits value loaded from an image, but only values in 32768..32775 have a
// meaning, and only when used as an instruction operand.
type Word uint16

const (
	// MemorySize is the number of addressable words.
	MemorySize = 1 << 15
	// RegisterCount is the number of registers.
	RegisterCount = 8
	// MaxValue is the largest valid value.
	MaxValue Word = MemorySize - 1

	regBase Word = MemorySize
)

// RegisterRef returns the operand encoding referring to register r.
func RegisterRef(r int) Word {
	return regBase + Word(r)
}

// Register returns the register number encoded in w and true if w is a
// register reference.
func (w Word) Register() (int, bool) {
	if w >= regBase && w < regBase+RegisterCount {
		return int(w - regBase), true
	}
	return 0, false
}

// IsLiteral returns true if w is a literal value.
func (w Word) IsLiteral() bool {
	return w <= MaxValue
}

// Memory is the address space of the VM.
type Memory [MemorySize]Word

// Read returns the value stored at address addr.
func (m *Memory) Read(addr Word) (Word, error) {
	if int(addr) >= len(m) {
		return 0, OutOfRange
	}
	return m[addr], nil
}

// Write stores v at address addr.
func (m *Memory) Write(addr, v Word) error {
	if int(addr) >= len(m) {
		return OutOfRange
	}
	m[addr] = v
	return nil
}

// Registers is the register file.
type Registers [RegisterCount]Word

// Get returns the value of register n.
func (r *Registers) Get(n int) (Word, error) {
	if n < 0 || n >= len(r) {
		return 0, InvalidRegister
	}
	return r[n], nil
}

// Set sets the value of register n.
func (r *Registers) Set(n int, v Word) error {
	if n < 0 || n >= len(r) {
		return InvalidRegister
	}
	r[n] = v
	return nil
}

// Stack is the VM stack. It grows as needed.
type Stack []Word

// Push pushes v on top of the stack.
func (s *Stack) Push(v Word) {
	*s = append(*s, v)
}

// Pop removes the value on top of the stack and returns it.
func (s *Stack) Pop() (Word, error) {
	l := len(*s) - 1
	if l < 0 {
		return 0, StackUnderflow
	}
	v := (*s)[l]
	*s = (*s)[:l]
	return v, nil
}

// Depth returns the number of values on the stack.
func (s Stack) Depth() int {
	return len(s)
}
