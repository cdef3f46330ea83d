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

// Run executes instructions until the VM halts, faults or suspends on input,
// and returns the final state.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error.
//
// A Suspended VM resumes from the pending in instruction on the next call to
// Run, once input has been supplied.
func (i *Instance) Run() (Status, error) {
	for {
		st, err := i.Step()
		if err != nil || st != Running {
			return st, err
		}
	}
}
