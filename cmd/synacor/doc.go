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

// The synacor command line tool runs Synacor challenge images with the VM from
// the package github.com/maskimko/synacor-challenge/vm.
//
// Usage:
//
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  print a disassembly of the image and exit
//	-history filename
//		  save typed commands to filename on exit
//	-image filename
//		  load program image from file filename (default "challenge.bin")
//	-noecho
//		  do not echo replayed commands
//	-replay filename
//		  feed commands from filename before reading the terminal (can be
//		  specified multiple times)
//	-rethalt
//		  halt on ret with an empty stack instead of faulting
//	-trace
//		  log every executed instruction to stderr
//
// -debug: on error, print a full stack trace along with the VM state.
//
// -replay: commands are read one per line. Blank lines and lines starting with
// '#' are skipped. If several files are given, they are replayed in order of
// appearance on the command line. When stdin is a terminal, replayed commands
// are echoed so that the transcript reads like an interactive session.
//
// -history: all commands fed to the VM, replayed or typed, are written to the
// given file on exit, along with the !snap, !restore and !load commands that
// succeeded. The resulting file can be used with -replay to get back to the
// same VM state, as long as the state files named by !load still exist.
//
// Lines starting with '!' are not sent to the VM. They are interpreted as
// console commands:
//
//	!save filename     save the VM state to filename
//	!load filename     restore the VM state from filename
//	!snap              take an in-memory save point
//	!restore           go back to the last save point
//	!state             show registers, stack and PC
//	!dump filename     write the memory to filename, in image format
//	!history filename  write the commands entered so far to filename
//	!record [filename] copy VM output to filename, or stop recording
//	!trace             toggle instruction tracing
//	!help              list commands
//	!quit              exit
//
// State files are only meaningful for the image they were saved from. States
// with more than 16777216 values on the stack cannot be saved.
package main
