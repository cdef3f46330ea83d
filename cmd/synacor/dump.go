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

package main

import (
	"io"

	"github.com/maskimko/synacor-challenge/asm"
	"github.com/maskimko/synacor-challenge/internal/xio"
	"github.com/maskimko/synacor-challenge/vm"
)

func dumpWords(ew *xio.ErrWriter, a []vm.Word) {
	for k, v := range a {
		if k > 0 {
			ew.Write([]byte{' '})
		}
		ew.Printf("%d", v)
	}
}

// dumpState writes a human readable summary of the VM state to w.
func dumpState(w io.Writer, i *vm.Instance) error {
	ew := xio.NewErrWriter(w)
	pc := i.PC()
	ew.Printf("status:    %v\n", i.Status())
	if err := i.Err(); err != nil {
		ew.Printf("fault:     %v\n", err)
	}
	ew.Printf("pc:        %d\t", pc)
	var code []vm.Word
	for k := vm.Word(0); k < 4; k++ {
		v, err := i.Read(pc + k)
		if err != nil {
			break
		}
		code = append(code, v)
	}
	if len(code) > 0 {
		asm.Disassemble(code, 0, ew)
	} else {
		ew.WriteString("???")
	}
	ew.WriteString("\nregisters:")
	for r, v := range i.Registers() {
		ew.Printf(" r%d=%d", r, v)
	}
	stack := i.Stack()
	ew.Printf("\nstack:     (%d) ", len(stack))
	dumpWords(ew, stack)
	ew.Printf("\nexecuted:  %d instructions\n", i.InstructionCount())
	return ew.Err
}
