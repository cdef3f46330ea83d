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
	"io"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Status is the execution state of an Instance.
type Status int

// Execution states.
const (
	Ready     Status = iota // not started yet, or just restored
	Running                 // last instruction completed normally
	Suspended               // waiting for input
	Halted                  // halt executed, terminal
	Faulted                 // fault raised, terminal
)

var statusNames = [...]string{
	Ready:     "ready",
	Running:   "running",
	Suspended: "suspended",
	Halted:    "halted",
	Faulted:   "faulted",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Instance represents a Synacor VM instance.
type Instance struct {
	mem      Memory
	reg      Registers
	stack    Stack
	pc       Word
	status   Status
	fault    error
	insCount int64
	input    []byte
	readers  *multiReader
	output   io.ByteWriter
	tracer   Tracer
	retHalts bool
}

// Option interface
type Option func(*Instance) error

// Input pushes the given io.Reader on top of the input stack. See PushInput.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output configures the output channel. Every out instruction writes exactly
// one byte to w. If w implements io.ByteWriter, WriteByte will be used.
//
// With no output configured, output bytes are discarded.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = newWriter(w)
		return nil
	}
}

// Trace sets the instruction tracer. A nil Tracer disables tracing.
func Trace(t Tracer) Option {
	return func(i *Instance) error {
		i.tracer = t
		return nil
	}
}

// ReturnHalts sets the behavior of ret with an empty stack. The default is to
// fault with StackUnderflow. If enabled, the VM halts instead.
func ReturnHalts(enable bool) Option {
	return func(i *Instance) error {
		i.retHalts = enable
		return nil
	}
}

// StackSize preallocates room for size values on the stack. This is a hint,
// the stack still grows as needed.
func StackSize(size int) Option {
	return func(i *Instance) error {
		if size < 0 {
			return errors.Errorf("invalid stack size %d", size)
		}
		if size > cap(i.stack) {
			s := make(Stack, len(i.stack), size)
			copy(s, i.stack)
			i.stack = s
		}
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Synacor Virtual Machine instance.
//
// The image is copied to memory starting at address 0. Memory past the end of
// the image is zeroed. Options will be set by calling SetOptions.
func New(image []Word, opts ...Option) (*Instance, error) {
	if len(image) > MemorySize {
		return nil, errors.Errorf("image too large: %d words", len(image))
	}
	i := new(Instance)
	copy(i.mem[:], image)
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Status returns the current execution state.
func (i *Instance) Status() Status {
	return i.status
}

// Err returns the fault that stopped the VM, if any.
func (i *Instance) Err() error {
	return i.fault
}

// PC returns the program counter.
func (i *Instance) PC() Word {
	return i.pc
}

// SetPC sets the program counter. The new address is not checked until the
// next instruction fetch.
func (i *Instance) SetPC(pc Word) {
	i.pc = pc
}

// Register returns the value of register r.
func (i *Instance) Register(r int) (Word, error) {
	return i.reg.Get(r)
}

// SetRegister sets the value of register r.
func (i *Instance) SetRegister(r int, v Word) error {
	return i.reg.Set(r, v)
}

// Registers returns a copy of the register file.
func (i *Instance) Registers() Registers {
	return i.reg
}

// Read returns the value at address addr.
func (i *Instance) Read(addr Word) (Word, error) {
	return i.mem.Read(addr)
}

// Write stores v at address addr. Writing to code is allowed and will be
// visible on the next fetch from that address.
func (i *Instance) Write(addr, v Word) error {
	return i.mem.Write(addr, v)
}

// Push pushes v on top of the stack.
func (i *Instance) Push(v Word) {
	i.stack.Push(v)
}

// Pop pops the value on top of the stack and returns it.
func (i *Instance) Pop() (Word, error) {
	return i.stack.Pop()
}

// Stack returns a copy of the stack, bottom first.
func (i *Instance) Stack() []Word {
	return slices.Clone([]Word(i.stack))
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Clone returns a new Instance with a copy of the full state of i, including
// pending input bytes. Input readers are not shared with the clone; output and
// tracer are. Use SetOptions on the clone to rewire them.
func (i *Instance) Clone() *Instance {
	c := *i
	c.stack = slices.Clone(i.stack)
	c.input = slices.Clone(i.input)
	c.readers = nil
	return &c
}
