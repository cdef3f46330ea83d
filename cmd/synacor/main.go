// This file is part of synacor-challenge - https://github.com/maskimko/synacor-challenge
//
// Copyright 2026 The synacor-challenge Authors
// Portions copyright 2016 Denis Bernard <db047h@gmail.com> (ngaro)
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
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/maskimko/synacor-challenge/asm"
	"github.com/maskimko/synacor-challenge/vm"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

var debug bool

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func atExit(c *console, err error) {
	if err == nil {
		return
	}
	if !debug {
		log.Printf("%v", err)
		os.Exit(1)
	}
	log.Printf("%+v", err)
	if c != nil {
		dumpState(os.Stderr, c.vm)
	}
	os.Exit(1)
}

func main() {
	var err error
	var c *console

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		atExit(c, err)
	}()

	var replay fileList

	var imageName = flag.String("image", "challenge.bin", "load program image from file `filename`")
	flag.Var(&replay, "replay", "feed commands from `filename` before reading the terminal (can be specified multiple times)")
	var historyName = flag.String("history", "", "save typed commands to `filename` on exit")
	var trace = flag.Bool("trace", false, "log every executed instruction to stderr")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	var disasm = flag.Bool("disasm", false, "print a disassembly of the image and exit")
	var retHalts = flag.Bool("rethalt", false, "halt on ret with an empty stack instead of faulting")
	var noEcho = flag.Bool("noecho", false, "do not echo replayed commands")

	flag.Parse()

	img, err := vm.LoadFile(*imageName)
	if err != nil {
		return
	}
	if *disasm {
		err = asm.DisassembleAll(img, 0, stdout)
		return
	}

	i, err := vm.New(img, vm.ReturnHalts(*retHalts))
	if err != nil {
		return
	}
	c = newConsole(i, os.Stdin, stdout)
	c.echo = !*noEcho && isTerminal(os.Stdin.Fd())
	c.setTrace(*trace)
	for _, name := range replay {
		if err = c.loadReplay(name); err != nil {
			return
		}
	}

	err = c.run()
	if *historyName != "" {
		if e := c.saveHistory(*historyName); err == nil {
			err = e
		}
	}
	if c.record != nil {
		if e := c.stopRecording(); err == nil {
			err = e
		}
	}
}
