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
	"bytes"
	"strings"
	"testing"

	"github.com/maskimko/synacor-challenge/vm"
)

func TestState_roundTrip(t *testing.T) {
	var reg vm.Registers
	reg[0], reg[7] = 1, 32767
	mem := []vm.Word{21, 19, 32775, 0, 65535}
	s, err := vm.NewSnapshot(mem, reg, []vm.Word{5, 6, 7}, 1)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = writeState(&b, s); err != nil {
		t.Fatal(err)
	}
	// header + stack + memory
	if sz := 4 + 2 + 2 + 16 + 4 + 3*2 + 2*vm.MemorySize; b.Len() != sz {
		t.Errorf("expected %d bytes, got %d", sz, b.Len())
	}
	if !strings.HasPrefix(b.String(), "SYNS\x01\x00\x01\x00\x01\x00") {
		t.Errorf("bad header: %q", b.String()[:10])
	}
	s2, err := readState(&b)
	if err != nil {
		t.Fatal(err)
	}
	if !s2.Equal(s) {
		t.Error("state mismatch")
	}
}

func TestState_errors(t *testing.T) {
	for _, test := range []struct {
		name string
		data string
		msg  string
	}{
		{"empty", "", "read failed"},
		{"magic", "SYNX\x01\x00" + strings.Repeat("\x00", 22), "not a state file"},
		{"version", "SYNS\x02\x00" + strings.Repeat("\x00", 22), "unsupported state file version 2"},
		{"depth", "SYNS\x01\x00" + strings.Repeat("\x00", 18) + "\xff\xff\xff\xff", "stack too deep"},
		{"stack", "SYNS\x01\x00" + strings.Repeat("\x00", 18) + "\x02\x00\x00\x00\x01", "stack read failed"},
		{"memory", "SYNS\x01\x00" + strings.Repeat("\x00", 22) + "\x01\x00", "memory read failed"},
	} {
		_, err := readState(strings.NewReader(test.data))
		if err == nil || !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%s: expected %q, got %v", test.name, test.msg, err)
		}
	}
}

func TestState_tooDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("large allocation")
	}
	var reg vm.Registers
	s, err := vm.NewSnapshot(nil, reg, make([]vm.Word, maxDepth+1), 0)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = writeState(&b, s)
	if err == nil || !strings.Contains(err.Error(), "stack too deep") {
		t.Errorf("expected stack too deep, got %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("%d bytes written", b.Len())
	}
}
