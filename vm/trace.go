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
	"strconv"
	"strings"
)

// Tracer is the function prototype for instruction tracers. A tracer is
// called once after each executed instruction. The Instr must not be retained.
type Tracer func(in *Instr)

// String returns a readable form of the instruction, in the form
//
//	pc: mnemonic operands
//
// Register operands are shown with the value they resolved to, as in r1=42.
func (in *Instr) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(in.PC)))
	b.WriteString(": ")
	b.WriteString(in.Op.String())
	for k := 0; k < in.N; k++ {
		b.WriteByte(' ')
		raw := in.Raw[k]
		r, isReg := raw.Register()
		switch {
		case k == 0 && in.Op.HasDest():
			b.WriteString("r" + strconv.Itoa(int(in.Args[k])))
		case isReg:
			b.WriteString("r" + strconv.Itoa(r) + "=" + strconv.Itoa(int(in.Args[k])))
		default:
			b.WriteString(strconv.Itoa(int(raw)))
		}
	}
	return b.String()
}
