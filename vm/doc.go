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

// Package vm implements the virtual machine of the Synacor challenge.
//
// The machine has 32768 words of memory shared by code and data, eight
// registers, an unbounded stack and two byte oriented I/O channels. Values
// are 15 bits wide and all arithmetic is modulo 32768. Raw memory cells hold
// 16 bits: when a cell in the range 32768..32775 is used as an instruction
// operand, it refers to registers 0..7.
//
// An Instance is driven one instruction at a time with Step, or with Run which
// steps until the machine halts, faults or suspends. Reading input from an
// empty input queue does not block: the machine enters the Suspended state and
// the same instruction is re-attempted on the next Step once bytes have been
// supplied with Feed, or via an io.Reader pushed with the Input option.
//
// Faults are terminal. They are reported as a *Fault carrying the fault kind,
// the address of the faulting instruction and its opcode. The failing
// instruction never has any side effect.
//
// Capture and Restore take and re-apply independent copies of the full machine
// state, which allows exploring several futures from a single save point.
package vm
