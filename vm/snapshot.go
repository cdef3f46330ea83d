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

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Snapshot is an independent copy of the state of an Instance: memory,
// registers, stack and program counter.
//
// Snapshots are immutable. Restoring a snapshot does not alter it, so it can
// be restored any number of times.
type Snapshot struct {
	mem   Memory
	reg   Registers
	stack Stack
	pc    Word
}

// NewSnapshot builds a snapshot from its parts. It is mainly useful to reload
// a snapshot persisted by the caller. mem may be shorter than MemorySize, in
// which case the remaining memory is zeroed.
func NewSnapshot(mem []Word, reg Registers, stack []Word, pc Word) (*Snapshot, error) {
	if len(mem) > MemorySize {
		return nil, errors.Errorf("snapshot memory too large: %d words", len(mem))
	}
	s := &Snapshot{reg: reg, stack: slices.Clone(stack), pc: pc}
	copy(s.mem[:], mem)
	return s, nil
}

// Capture returns a snapshot of the current state.
func (i *Instance) Capture() *Snapshot {
	return &Snapshot{
		mem:   i.mem,
		reg:   i.reg,
		stack: slices.Clone(i.stack),
		pc:    i.pc,
	}
}

// Restore replaces the memory, registers, stack and program counter with
// copies from s and resets the execution state to Ready, clearing any
// previous fault. Pending input, I/O channels and options are left untouched.
func (i *Instance) Restore(s *Snapshot) error {
	if s == nil {
		return errors.New("restore: nil snapshot")
	}
	i.mem = s.mem
	i.reg = s.reg
	i.stack = slices.Clone(s.stack)
	i.pc = s.pc
	i.status = Ready
	i.fault = nil
	return nil
}

// PC returns the saved program counter.
func (s *Snapshot) PC() Word {
	return s.pc
}

// Registers returns a copy of the saved registers.
func (s *Snapshot) Registers() Registers {
	return s.reg
}

// Stack returns a copy of the saved stack, bottom first.
func (s *Snapshot) Stack() []Word {
	return slices.Clone([]Word(s.stack))
}

// Memory returns a copy of the saved memory.
func (s *Snapshot) Memory() []Word {
	m := make([]Word, MemorySize)
	copy(m, s.mem[:])
	return m
}

// Read returns the saved value at address addr.
func (s *Snapshot) Read(addr Word) (Word, error) {
	return s.mem.Read(addr)
}

// Equal returns true if s and o hold the same state.
func (s *Snapshot) Equal(o *Snapshot) bool {
	return s.pc == o.pc && s.reg == o.reg && s.mem == o.mem && slices.Equal(s.stack, o.stack)
}
