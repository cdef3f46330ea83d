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
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/maskimko/synacor-challenge/vm"
	"github.com/pkg/errors"
)

// State file layout, all values little endian:
//
//	magic    "SYNS"
//	version  uint16
//	pc       uint16
//	regs     8 * uint16
//	depth    uint32, at most 1<<24
//	stack    depth * uint16, bottom first
//	memory   32768 * uint16
const (
	stateMagic   = "SYNS"
	stateVersion = 1
	maxDepth     = 1 << 24
)

type stateHeader struct {
	Magic   [4]byte
	Version uint16
	PC      vm.Word
	Regs    vm.Registers
	Depth   uint32
}

func writeState(w io.Writer, s *vm.Snapshot) error {
	bw := bufio.NewWriter(w)
	stack := s.Stack()
	if len(stack) > maxDepth {
		return errors.Errorf("stack too deep: %d", len(stack))
	}
	h := stateHeader{
		Version: stateVersion,
		PC:      s.PC(),
		Regs:    s.Registers(),
		Depth:   uint32(len(stack)),
	}
	copy(h.Magic[:], stateMagic)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "write failed")
	}
	if err := binary.Write(bw, binary.LittleEndian, stack); err != nil {
		return errors.Wrap(err, "write failed")
	}
	if err := binary.Write(bw, binary.LittleEndian, s.Memory()); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

func readState(r io.Reader) (*vm.Snapshot, error) {
	br := bufio.NewReader(r)
	var h stateHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	if string(h.Magic[:]) != stateMagic {
		return nil, errors.New("not a state file")
	}
	if h.Version != stateVersion {
		return nil, errors.Errorf("unsupported state file version %d", h.Version)
	}
	if h.Depth > maxDepth {
		return nil, errors.Errorf("stack too deep: %d", h.Depth)
	}
	stack := make([]vm.Word, h.Depth)
	if err := binary.Read(br, binary.LittleEndian, stack); err != nil {
		return nil, errors.Wrap(err, "stack read failed")
	}
	mem := make([]vm.Word, vm.MemorySize)
	if err := binary.Read(br, binary.LittleEndian, mem); err != nil {
		return nil, errors.Wrap(err, "memory read failed")
	}
	return vm.NewSnapshot(mem, h.Regs, stack, h.PC)
}

func saveStateFile(fileName string, s *vm.Snapshot) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return writeState(f, s)
}

func loadStateFile(fileName string) (*vm.Snapshot, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "load state")
	}
	defer f.Close()
	s, err := readState(f)
	return s, errors.Wrapf(err, "load state %s", fileName)
}
