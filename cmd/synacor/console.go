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
	"io"
	"log"
	"os"
	"strings"

	"github.com/maskimko/synacor-challenge/vm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// console drives a VM from a line oriented terminal.
type console struct {
	vm      *vm.Instance
	in      *bufio.Reader
	out     *bufio.Writer
	log     *log.Logger
	replay  []string
	history []string
	save    *vm.Snapshot
	record  *bufio.Writer
	recFile *os.File
	echo    bool
	tracing bool
	quit    bool
}

func newConsole(i *vm.Instance, in io.Reader, out *bufio.Writer) *console {
	c := &console{
		vm:  i,
		in:  bufio.NewReader(in),
		out: out,
		log: log.Default(),
	}
	i.SetOptions(vm.Output(out))
	return c
}

type command struct {
	min, max int
	usage    string
	fn       func(c *console, args []string) error
	keep     bool // recorded in the history
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"save":    {1, 1, "save filename", (*console).saveState, false},
		"load":    {1, 1, "load filename", (*console).loadState, true},
		"snap":    {0, 0, "snap", (*console).snap, true},
		"restore": {0, 0, "restore", (*console).restore, true},
		"state":   {0, 0, "state", func(c *console, _ []string) error { return dumpState(c.out, c.vm) }, false},
		"dump":    {1, 1, "dump filename", (*console).dump, false},
		"history": {1, 1, "history filename", func(c *console, args []string) error { return c.saveHistory(args[0]) }, false},
		"record":  {0, 1, "record [filename]", (*console).recordOutput, false},
		"trace":   {0, 0, "trace", func(c *console, _ []string) error { c.setTrace(!c.tracing); return nil }, false},
		"help":    {0, 0, "help", (*console).help, false},
		"quit":    {0, 0, "quit", func(c *console, _ []string) error { c.quit = true; return nil }, false},
	}
}

// run runs the VM until it halts, faults or input is exhausted. Output is
// flushed every time the VM waits for input.
func (c *console) run() error {
	for !c.quit {
		st, err := c.vm.Run()
		if e := c.flush(); err == nil {
			err = e
		}
		if err != nil {
			return err
		}
		if st != vm.Suspended {
			return nil
		}
		line, err := c.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, "!") {
			if err = c.exec(line); err != nil {
				c.log.Println(err)
			}
			continue
		}
		c.history = append(c.history, line)
		c.vm.FeedString(line + "\n")
	}
	return nil
}

// readLine returns the next pending replay line or reads one from the input.
func (c *console) readLine() (string, error) {
	if len(c.replay) > 0 {
		line := c.replay[0]
		c.replay = c.replay[1:]
		if c.echo {
			c.out.WriteString(line + "\n")
			c.out.Flush()
		}
		return line, nil
	}
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil && err != io.EOF {
		err = errors.Wrap(err, "input read failed")
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (c *console) exec(line string) error {
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return errors.New("empty command, try !help")
	}
	cmd, ok := commands[fields[0]]
	if !ok {
		return errors.Errorf("unknown command !%s, try !help", fields[0])
	}
	args := fields[1:]
	if len(args) < cmd.min || len(args) > cmd.max {
		return errors.Errorf("usage: !%s", cmd.usage)
	}
	err := cmd.fn(c, args)
	if err == nil && cmd.keep {
		c.history = append(c.history, "!"+strings.Join(fields, " "))
	}
	if e := c.flush(); err == nil {
		err = e
	}
	return errors.Wrapf(err, "!%s", fields[0])
}

// flush flushes the terminal output and the output recording, if any.
func (c *console) flush() error {
	err := c.out.Flush()
	if c.record != nil {
		if e := c.record.Flush(); err == nil {
			err = e
		}
	}
	return errors.Wrap(err, "output flush failed")
}

// loadReplay appends the commands found in the named file to the replay
// queue.
func (c *console) loadReplay(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "replay")
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		c.replay = append(c.replay, line)
	}
	return errors.Wrapf(s.Err(), "replay %s", name)
}

func (c *console) saveHistory(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "history")
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = errors.Wrap(e, "history")
		}
	}()
	w := bufio.NewWriter(f)
	for _, l := range c.history {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	return errors.Wrapf(w.Flush(), "history %s", name)
}

func (c *console) setTrace(on bool) {
	c.tracing = on
	if !on {
		c.vm.SetOptions(vm.Trace(nil))
		return
	}
	c.vm.SetOptions(vm.Trace(func(in *vm.Instr) {
		c.log.Print(in)
	}))
}

func (c *console) saveState(args []string) error {
	return saveStateFile(args[0], c.vm.Capture())
}

func (c *console) loadState(args []string) error {
	s, err := loadStateFile(args[0])
	if err != nil {
		return err
	}
	c.log.Printf("state loaded from %s", args[0])
	return c.vm.Restore(s)
}

func (c *console) snap(_ []string) error {
	c.save = c.vm.Capture()
	c.log.Printf("save point at pc=%d", c.save.PC())
	return nil
}

func (c *console) restore(_ []string) error {
	if c.save == nil {
		return errors.New("no save point")
	}
	c.log.Printf("back to save point at pc=%d", c.save.PC())
	return c.vm.Restore(c.save)
}

func (c *console) dump(args []string) error {
	return vm.SaveFile(args[0], c.vm.Capture().Memory())
}

// recordOutput starts copying VM output to the named file. With no argument,
// it stops recording.
func (c *console) recordOutput(args []string) error {
	if c.record != nil {
		if err := c.stopRecording(); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		return nil
	}
	f, err := os.Create(args[0])
	if err != nil {
		return errors.Wrap(err, "record")
	}
	c.recFile = f
	c.record = bufio.NewWriter(f)
	return c.vm.SetOptions(vm.Output(io.MultiWriter(c.out, c.record)))
}

func (c *console) stopRecording() error {
	err := c.record.Flush()
	if e := c.recFile.Close(); err == nil {
		err = e
	}
	c.record, c.recFile = nil, nil
	c.vm.SetOptions(vm.Output(c.out))
	return errors.Wrap(err, "record")
}

func (c *console) help(_ []string) error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		c.out.WriteString("!" + commands[n].usage + "\n")
	}
	return nil
}
