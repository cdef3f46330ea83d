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

// FaultKind describes the nature of a fault.
type FaultKind int

// Fault kinds.
const (
	OutOfRange FaultKind = iota + 1
	InvalidOperandEncoding
	InvalidRegister
	StackUnderflow
	DivisionByZero
	UnknownOpcode
)

var faultNames = [...]string{
	OutOfRange:             "address out of range",
	InvalidOperandEncoding: "invalid operand encoding",
	InvalidRegister:        "invalid register",
	StackUnderflow:         "stack underflow",
	DivisionByZero:         "division by zero",
	UnknownOpcode:          "unknown opcode",
}

func (k FaultKind) Error() string {
	if k <= 0 || int(k) >= len(faultNames) {
		return "fault " + strconv.Itoa(int(k))
	}
	return faultNames[k]
}

// Fault describes a fault and the instruction that raised it.
type Fault struct {
	Kind FaultKind
	PC   Word // address of the faulting instruction
	Op   Word // raw opcode, 0 if it could not be fetched
	Arg  int  // offending address, operand or register, -1 if none
}

func (f *Fault) Error() string {
	msg := f.Kind.Error()
	if f.Arg >= 0 {
		switch f.Kind {
		case OutOfRange:
			msg += " " + strconv.Itoa(f.Arg)
		case InvalidOperandEncoding:
			msg += " (operand " + strconv.Itoa(f.Arg) + ")"
		case InvalidRegister:
			msg += " r" + strconv.Itoa(f.Arg)
		}
	}
	op := Opcode(f.Op)
	if op.Valid() {
		msg += " in " + op.String()
	} else {
		msg += " in opcode " + strconv.Itoa(int(f.Op))
	}
	return msg + " @pc=" + strconv.Itoa(int(f.PC))
}

// Cause returns the fault kind. This allows errors.Cause to unwrap a Fault
// down to its kind.
func (f *Fault) Cause() error {
	return f.Kind
}
