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

package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maskimko/synacor-challenge/asm"
	"github.com/maskimko/synacor-challenge/vm"
)

type C []vm.Word

// R maps register numbers to their expected values.
type R map[int]vm.Word

func assemble(t testing.TB, name, code string) []vm.Word {
	t.Helper()
	img, err := asm.Assemble(name, strings.NewReader(code))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return img
}

func setup(t testing.TB, name, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(assemble(t, name, code), opts...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return i
}

func runAsm(t testing.TB, name, code string, opts ...vm.Option) (*vm.Instance, vm.Status, error) {
	t.Helper()
	i := setup(t, name, code, opts...)
	st, err := i.Run()
	return i, st, err
}

func check(t *testing.T, testName string, i *vm.Instance, pc int, regs R, stack C) bool {
	t.Helper()
	ok := true
	if pc >= 0 && vm.Word(pc) != i.PC() {
		t.Errorf("%s: Bad PC %d != %d", testName, i.PC(), pc)
		ok = false
	}
	for r, want := range regs {
		got, err := i.Register(r)
		if err != nil {
			t.Errorf("%s: %v", testName, err)
			ok = false
			continue
		}
		if got != want {
			t.Errorf("%s: r%d: expected %d, got %d", testName, r, want, got)
			ok = false
		}
	}
	stk := i.Stack()
	diff := len(stk) != len(stack)
	if !diff {
		for k := range stack {
			if stack[k] != stk[k] {
				diff = true
				break
			}
		}
	}
	if diff {
		t.Errorf("%s: Stack error: expected %d, got %d", testName, stack, stk)
		ok = false
	}
	return ok
}

var tests = [...]struct {
	name  string
	code  string
	regs  R
	stack C
	pc    int
	out   string
}{
	{"halt", "halt", nil, nil, 0, ""},
	{"set", "set r0 42\n set r1 r0\n halt", R{0: 42, 1: 42}, nil, 6, ""},
	{"push", "push 7\n set r0 3\n push r0\n halt", nil, C{7, 3}, -1, ""},
	{"pop", "push 7\n push 8\n pop r0\n halt", R{0: 8}, C{7}, -1, ""},
	{"eq", "eq r0 5 5\n eq r1 5 6\n halt", R{0: 1, 1: 0}, nil, -1, ""},
	{"gt", "gt r0 6 5\n gt r1 5 5\n gt r2 5 6\n halt", R{0: 1, 1: 0, 2: 0}, nil, -1, ""},
	{"jmp", "jmp over\n set r0 1\nover: set r1 2\n halt", R{0: 0, 1: 2}, nil, -1, ""},
	{"jt", "jt 1 a\n set r0 1\na: jt 0 b\n set r1 1\nb: halt", R{0: 0, 1: 1}, nil, 12, ""},
	{"jf", "jf 0 a\n set r0 1\na: jf 5 b\n set r1 1\nb: halt", R{0: 0, 1: 1}, nil, 12, ""},
	{"add", "add r0 32767 5\n add r1 2 3\n halt", R{0: 4, 1: 5}, nil, -1, ""},
	{"mult", "mult r0 300 200\n mult r1 32767 32767\n halt", R{0: 27232, 1: 1}, nil, -1, ""},
	{"mod", "mod r0 17 5\n mod r1 4 5\n halt", R{0: 2, 1: 4}, nil, -1, ""},
	{"and", "and r0 12 10\n halt", R{0: 8}, nil, -1, ""},
	{"or", "or r0 12 10\n halt", R{0: 14}, nil, -1, ""},
	{"not", "not r0 0\n not r1 32767\n not r2 0x5555\n halt", R{0: 32767, 1: 0, 2: 0x2aaa}, nil, -1, ""},
	{"rmem", "rmem r0 data\n halt\ndata: .dat 1234", R{0: 1234}, nil, -1, ""},
	{"wmem", "wmem data 99\n rmem r0 data\n halt\ndata: .dat 0", R{0: 99}, nil, -1, ""},
	{"call", "call f\n set r1 r0\n halt\nf: set r0 7\n ret", R{0: 7, 1: 7}, nil, 5, ""},
	{"out", "out 'h'\n out 'i'\n set r0 10\n out r0\n halt", nil, nil, -1, "hi\n"},
	{"noop", "noop\n noop\n halt", nil, nil, 2, ""},
	{"registers", "add r0 r1 4\n out r0\n halt", R{0: 4}, nil, -1, "\x04"},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		var out bytes.Buffer
		i, st, err := runAsm(t, test.name, test.code, vm.Output(&out))
		if err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if st != vm.Halted {
			t.Errorf("%s: expected halted, got %v", test.name, st)
		}
		ok := check(t, test.name, i, test.pc, test.regs, test.stack)
		if out.String() != test.out {
			t.Errorf("%s: output: expected %q, got %q", test.name, test.out, out.String())
			ok = false
		}
		if !ok {
			// disasm
			var b bytes.Buffer
			b.WriteString(test.name)
			b.WriteString(":\n")
			asm.DisassembleAll(assemble(t, test.name, test.code), 0, &b)
			t.Log(b.String())
		}
	}
}

func TestCore_arithmeticRange(t *testing.T) {
	values := []vm.Word{0, 1, 2, 5, 255, 16384, 32766, 32767, 32768, 40000, 65535}
	for _, op := range []string{"add", "mult", "mod", "and", "or"} {
		i := setup(t, op, op+" r0 r1 r2\n halt")
		s := i.Capture()
		for _, a := range values {
			for _, b := range values {
				if op == "mod" && b == 0 {
					continue
				}
				i.Restore(s)
				i.SetRegister(1, a)
				i.SetRegister(2, b)
				if st, err := i.Step(); st != vm.Running || err != nil {
					t.Fatalf("%s %d %d: %v %v", op, a, b, st, err)
				}
				if r, _ := i.Register(0); r > vm.MaxValue {
					t.Errorf("%s %d %d: result %d out of range", op, a, b, r)
				}
			}
		}
	}
	i := setup(t, "not", "not r0 r1\n halt")
	for _, a := range values {
		i.SetPC(0)
		i.SetRegister(1, a)
		i.Step()
		if r, _ := i.Register(0); r > vm.MaxValue {
			t.Errorf("not %d: result %d out of range", a, r)
		}
	}
}

func TestCore_compareIsBoolean(t *testing.T) {
	values := []vm.Word{0, 1, 7, 32767, 32768, 65535}
	for _, op := range []string{"eq", "gt"} {
		i := setup(t, op, op+" r0 r1 r2\n halt")
		for _, a := range values {
			for _, b := range values {
				i.SetPC(0)
				i.SetRegister(1, a)
				i.SetRegister(2, b)
				i.Step()
				r, _ := i.Register(0)
				if r != 0 && r != 1 {
					t.Errorf("%s %d %d: got %d", op, a, b, r)
				}
				want := a == b
				if op == "gt" {
					want = a > b
				}
				if (r == 1) != want {
					t.Errorf("%s %d %d: got %d", op, a, b, r)
				}
			}
		}
	}
}

func TestCore_fallThrough(t *testing.T) {
	for _, code := range []string{"jt 0 10", "jf 1 10", "jt r0 10"} {
		i := setup(t, code, code)
		i.SetPC(0)
		if _, err := i.Step(); err != nil {
			t.Fatal(err)
		}
		assertEqualI(t, code, 3, int(i.PC()))
	}
	for _, code := range []string{"jt 1 10", "jf 0 10"} {
		i := setup(t, code, code)
		if _, err := i.Step(); err != nil {
			t.Fatal(err)
		}
		assertEqualI(t, code, 10, int(i.PC()))
	}
}

func TestCore_callReturn(t *testing.T) {
	code := `
		.org 100
		call f
		halt
	f:	push 1
		pop r0
		ret
	`
	i := setup(t, "callReturn", code)
	i.SetPC(100)
	i.Step()
	assertEqualI(t, "call target", 103, int(i.PC()))
	assertEqualI(t, "return address", 102, int(i.Stack()[0]))
	st, err := i.Run()
	if err != nil {
		t.Fatal(err)
	}
	if st != vm.Halted {
		t.Fatalf("expected halted, got %v", st)
	}
	check(t, "callReturn", i, 102, R{0: 1}, nil)
}

func TestCore_selfModify(t *testing.T) {
	// the out instruction at address 3 is replaced with halt
	var out bytes.Buffer
	i, st, err := runAsm(t, "selfModify_halt", "wmem 3 0\n out 'A'\n halt", vm.Output(&out))
	if err != nil {
		t.Fatal(err)
	}
	if st != vm.Halted {
		t.Fatalf("expected halted, got %v", st)
	}
	assertEqualI(t, "selfModify_halt pc", 3, int(i.PC()))
	assertEqual(t, "selfModify_halt output", "", out.String())

	// the noop becomes an out instruction that consumes the next word as its
	// operand. Without the rewrite, 'B' would be an unknown opcode.
	out.Reset()
	i, st, err = runAsm(t, "selfModify_out", "wmem 3 19\n noop\n .dat 'B'\n halt", vm.Output(&out))
	if err != nil {
		t.Fatal(err)
	}
	if st != vm.Halted {
		t.Fatalf("expected halted, got %v", st)
	}
	assertEqual(t, "selfModify_out output", "B", out.String())
}

func TestCore_fib(t *testing.T) {
	// recursive fibonacci, r0 = fib(r0)
	code := `
		set r0 20
		call fib
		halt
	fib:
		gt r1 r0 1
		jt r1 rec
		ret
	rec:
		push r0
		add r0 r0 32767	; r0 - 1
		call fib
		pop r1
		push r0
		add r0 r1 32766	; n - 2
		call fib
		pop r1
		add r0 r0 r1
		ret
	`
	i, st, err := runAsm(t, "fib", code)
	if err != nil {
		t.Fatal(err)
	}
	if st != vm.Halted {
		t.Fatalf("expected halted, got %v", st)
	}
	check(t, "fib", i, 5, R{0: 6765}, nil)
}

func Benchmark_Fib(b *testing.B) {
	code := `
		call fib
		halt
	fib:
		gt r1 r0 1
		jt r1 rec
		ret
	rec:
		push r0
		add r0 r0 32767
		call fib
		pop r1
		push r0
		add r0 r1 32766
		call fib
		pop r1
		add r0 r0 r1
		ret
	`
	i := setup(b, "fib", code)
	s := i.Capture()
	for c := 0; c < b.N; c++ {
		i.Restore(s)
		i.SetRegister(0, 20)
		i.Run()
	}
}

func assertEqual(t *testing.T, name, expected, got string) {
	t.Helper()
	if expected != got {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

func assertEqualI(t *testing.T, name string, expected, got int) {
	t.Helper()
	if expected != got {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}
