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

// Instr is a decoded instruction.
type Instr struct {
	PC   Word
	Op   Opcode
	N    int     // number of operands
	Raw  [3]Word // operands as stored in memory
	Args [3]Word // resolved operands. Register number for a destination.
}

// Next returns the address of the instruction following in.
func (in *Instr) Next() Word {
	return in.PC + 1 + Word(in.N)
}

// decode decodes the instruction at pc. It does not modify the VM state.
func (i *Instance) decode(pc Word) (in Instr, f *Fault) {
	in.PC = pc
	w, err := i.mem.Read(pc)
	if err != nil {
		return in, &Fault{Kind: OutOfRange, PC: pc, Arg: int(pc)}
	}
	in.Op = Opcode(w)
	if !in.Op.Valid() {
		return in, &Fault{Kind: UnknownOpcode, PC: pc, Op: w, Arg: -1}
	}
	in.N = in.Op.Operands()
	dest := in.Op.HasDest()
	for k := 0; k < in.N; k++ {
		addr := pc + 1 + Word(k)
		raw, err := i.mem.Read(addr)
		if err != nil {
			return in, &Fault{Kind: OutOfRange, PC: pc, Op: w, Arg: int(addr)}
		}
		in.Raw[k] = raw
		r, isReg := raw.Register()
		switch {
		case k == 0 && dest:
			if !isReg {
				return in, &Fault{Kind: InvalidOperandEncoding, PC: pc, Op: w, Arg: int(raw)}
			}
			in.Args[k] = Word(r)
		case raw.IsLiteral():
			in.Args[k] = raw
		case isReg:
			in.Args[k] = i.reg[r]
		default:
			return in, &Fault{Kind: InvalidOperandEncoding, PC: pc, Op: w, Arg: int(raw)}
		}
	}
	return in, nil
}

func bool2Word(b bool) Word {
	if b {
		return 1
	}
	return 0
}

func (i *Instance) fail(f *Fault) (Status, error) {
	i.status = Faulted
	i.fault = f
	return Faulted, f
}

// Step executes a single instruction and returns the new execution state.
//
// Running means that the instruction completed normally. Halted and Faulted
// are terminal: further calls to Step have no effect and return the same
// state, and the fault if any. Suspended means that an in instruction found no
// input available; the PC is left on that instruction so that it will be
// re-attempted by the next call to Step.
//
// An I/O error from the output writer or an input reader is returned with the
// state unchanged and the instruction not committed.
func (i *Instance) Step() (Status, error) {
	switch i.status {
	case Halted:
		return Halted, nil
	case Faulted:
		return Faulted, i.fault
	}
	in, f := i.decode(i.pc)
	if f != nil {
		return i.fail(f)
	}
	a := &in.Args
	next := in.Next()
	status := Running
	switch in.Op {
	case OpHalt:
		next = in.PC
		status = Halted
	case OpSet:
		i.reg[a[0]] = a[1]
	case OpPush:
		i.stack.Push(a[0])
	case OpPop:
		v, err := i.stack.Pop()
		if err != nil {
			return i.fail(&Fault{Kind: StackUnderflow, PC: in.PC, Op: Word(in.Op), Arg: -1})
		}
		i.reg[a[0]] = v
	case OpEq:
		i.reg[a[0]] = bool2Word(a[1] == a[2])
	case OpGt:
		i.reg[a[0]] = bool2Word(a[1] > a[2])
	case OpJmp:
		next = a[0]
	case OpJt:
		if a[0] != 0 {
			next = a[1]
		}
	case OpJf:
		if a[0] == 0 {
			next = a[1]
		}
	case OpAdd:
		i.reg[a[0]] = Word((uint32(a[1]) + uint32(a[2])) % MemorySize)
	case OpMult:
		i.reg[a[0]] = Word((uint32(a[1]) * uint32(a[2])) % MemorySize)
	case OpMod:
		if a[2] == 0 {
			return i.fail(&Fault{Kind: DivisionByZero, PC: in.PC, Op: Word(in.Op), Arg: -1})
		}
		i.reg[a[0]] = (a[1] % a[2]) & MaxValue
	case OpAnd:
		i.reg[a[0]] = (a[1] & a[2]) & MaxValue
	case OpOr:
		i.reg[a[0]] = (a[1] | a[2]) & MaxValue
	case OpNot:
		i.reg[a[0]] = ^a[1] & MaxValue
	case OpRmem:
		v, err := i.mem.Read(a[1])
		if err != nil {
			return i.fail(&Fault{Kind: OutOfRange, PC: in.PC, Op: Word(in.Op), Arg: int(a[1])})
		}
		i.reg[a[0]] = v
	case OpWmem:
		if err := i.mem.Write(a[0], a[1]); err != nil {
			return i.fail(&Fault{Kind: OutOfRange, PC: in.PC, Op: Word(in.Op), Arg: int(a[0])})
		}
	case OpCall:
		i.stack.Push(next)
		next = a[0]
	case OpRet:
		v, err := i.stack.Pop()
		if err != nil {
			if !i.retHalts {
				return i.fail(&Fault{Kind: StackUnderflow, PC: in.PC, Op: Word(in.Op), Arg: -1})
			}
			next = in.PC
			status = Halted
			break
		}
		next = v
	case OpOut:
		if err := i.writeByte(byte(a[0])); err != nil {
			return i.status, err
		}
	case OpIn:
		c, ok, err := i.readByte()
		if err != nil {
			return i.status, err
		}
		if !ok {
			i.status = Suspended
			return Suspended, nil
		}
		i.reg[a[0]] = Word(c)
	case OpNoop:
	}
	i.pc = next
	i.status = status
	i.insCount++
	if i.tracer != nil {
		i.tracer(&in)
	}
	return status, nil
}
