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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/maskimko/synacor-challenge/internal/xio"
	"github.com/maskimko/synacor-challenge/vm"
	"github.com/pkg/errors"
)

const maxErrors = 10

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op := vm.Opcode(0); op.Valid(); op++ {
		opcodeIndex[op.String()] = op
	}
}

// Error is a single assembly error.
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	msgs := make([]string, len(e))
	for i := range e {
		msgs[i] = e[i].Error()
	}
	return strings.Join(msgs, "\n")
}

type assembler struct {
	img    []vm.Word
	pc     int
	end    int
	labels map[string]int
	errs   ErrAsm
}

func (a *assembler) errorf(pos lexer.Position, format string, args ...interface{}) {
	if len(a.errs) < maxErrors {
		a.errs = append(a.errs, Error{pos, fmt.Sprintf(format, args...)})
	}
}

func (a *assembler) write(v vm.Word) {
	if a.pc >= vm.MemorySize {
		a.pc++
		return
	}
	for a.pc >= len(a.img) {
		a.img = append(a.img, make([]vm.Word, 4096)...)
	}
	a.img[a.pc] = v
	a.pc++
	if a.pc > a.end {
		a.end = a.pc
	}
}

func isRegister(s string) (int, bool) {
	if len(s) == 2 && s[0] == 'r' && s[1] >= '0' && s[1] < '0'+vm.RegisterCount {
		return int(s[1] - '0'), true
	}
	return 0, false
}

// size returns the number of words generated by the statement st.
func (a *assembler) size(st *statement) int {
	switch st.Op {
	case ".org":
		return 0
	case ".dat":
		n := 0
		for _, arg := range st.Args {
			if arg.String != nil {
				s, err := strconv.Unquote(*arg.String)
				if err != nil {
					a.errorf(arg.Pos, "invalid string %s", *arg.String)
					continue
				}
				n += len(s)
			} else {
				n++
			}
		}
		return n
	}
	op, ok := opcodeIndex[st.Op]
	if !ok {
		if st.Op[0] == '.' {
			a.errorf(st.Pos, "unknown directive %s", st.Op)
		} else {
			a.errorf(st.Pos, "unknown instruction %s", st.Op)
		}
		return 0
	}
	if len(st.Args) != op.Operands() {
		a.errorf(st.Pos, "%s expects %d operands, got %d", st.Op, op.Operands(), len(st.Args))
	}
	return 1 + op.Operands()
}

// value returns the word encoding of a single operand. Strings are not
// handled here.
func (a *assembler) value(arg *operand) vm.Word {
	switch {
	case arg.Number != nil:
		n, err := strconv.ParseUint(*arg.Number, 0, 16)
		if err != nil {
			a.errorf(arg.Pos, "invalid number %s", *arg.Number)
		}
		return vm.Word(n)
	case arg.Char != nil:
		s, err := strconv.Unquote(*arg.Char)
		if err != nil || len(s) == 0 {
			a.errorf(arg.Pos, "invalid character %s", *arg.Char)
			return 0
		}
		return vm.Word(s[0])
	case arg.Ident != nil:
		if r, ok := isRegister(*arg.Ident); ok {
			return vm.RegisterRef(r)
		}
		addr, ok := a.labels[*arg.Ident]
		if !ok {
			a.errorf(arg.Pos, "undefined label %s", *arg.Ident)
		}
		return vm.Word(addr)
	}
	a.errorf(arg.Pos, "unexpected string operand")
	return 0
}

func (a *assembler) org(st *statement) {
	if len(st.Args) != 1 || st.Args[0].Number == nil {
		a.errorf(st.Pos, ".org expects a single number")
		return
	}
	n, err := strconv.ParseUint(*st.Args[0].Number, 0, 16)
	if err != nil || n >= vm.MemorySize {
		a.errorf(st.Args[0].Pos, "invalid address %s", *st.Args[0].Number)
		return
	}
	a.pc = int(n)
}

// collect records label addresses.
func (a *assembler) collect(prog *program) {
	for _, l := range prog.Lines {
		if l.Label != "" {
			name := strings.TrimSuffix(l.Label, ":")
			if _, ok := isRegister(name); ok {
				a.errorf(l.Pos, "register name %s used as label", name)
			} else if _, ok := a.labels[name]; ok {
				a.errorf(l.Pos, "label redefinition: %s", name)
			} else {
				a.labels[name] = a.pc
			}
		}
		if l.Stmt == nil {
			continue
		}
		if l.Stmt.Op == ".org" {
			a.org(l.Stmt)
			continue
		}
		a.pc += a.size(l.Stmt)
		if a.pc > vm.MemorySize {
			a.errorf(l.Stmt.Pos, "program does not fit in memory")
			return
		}
	}
}

func (a *assembler) emit(prog *program) {
	a.pc = 0
	for _, l := range prog.Lines {
		st := l.Stmt
		if st == nil {
			continue
		}
		switch st.Op {
		case ".org":
			a.org(st)
		case ".dat":
			for _, arg := range st.Args {
				if arg.String == nil {
					a.write(a.value(arg))
					continue
				}
				// errors already reported by size
				s, _ := strconv.Unquote(*arg.String)
				for k := 0; k < len(s); k++ {
					a.write(vm.Word(s[k]))
				}
			}
		default:
			op, ok := opcodeIndex[st.Op]
			if !ok || len(st.Args) != op.Operands() {
				continue
			}
			a.write(vm.Word(op))
			for _, arg := range st.Args {
				a.write(a.value(arg))
			}
		}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, will be an ErrAsm value containing up to 10
// entries. A syntax error stops parsing and is reported as a single entry.
func Assemble(name string, r io.Reader) ([]vm.Word, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	if len(src) > 0 && src[len(src)-1] != '\n' {
		src = append(src, '\n')
	}
	prog, err := parser.ParseBytes(name, src)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			return nil, ErrAsm{{pe.Position(), pe.Message()}}
		}
		return nil, err
	}
	a := &assembler{labels: make(map[string]int)}
	a.collect(prog)
	if a.errs == nil {
		a.emit(prog)
	}
	if a.errs != nil {
		return nil, a.errs
	}
	return a.img[:a.end], nil
}

func writeOperand(w io.Writer, v vm.Word) {
	if r, ok := v.Register(); ok {
		io.WriteString(w, "r"+strconv.Itoa(r))
		return
	}
	io.WriteString(w, strconv.Itoa(int(v)))
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that are not valid opcodes are written as a .dat directive.
func Disassemble(mem []vm.Word, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*xio.ErrWriter)
	if ew == nil {
		ew = xio.NewErrWriter(w)
	}

	op := vm.Opcode(mem[pc])
	if !op.Valid() {
		ew.Printf(".dat %d", mem[pc])
		return pc + 1, ew.Err
	}
	io.WriteString(ew, op.String())
	pc++
	for k := 0; k < op.Operands(); k++ {
		ew.Write([]byte{' '})
		if pc >= len(mem) {
			io.WriteString(ew, "???")
			return pc, ew.Err
		}
		writeOperand(ew, mem[pc])
		pc++
	}
	if op == vm.OpOut {
		if c := mem[pc-1]; c >= ' ' && c < 0x7f && c != '\'' && c != '\\' {
			ew.Printf("\t; '%c'", rune(c))
		}
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Word, base int, w io.Writer) error {
	ew := xio.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		ew.Printf("%5d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
