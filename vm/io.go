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

package vm

import (
	"io"

	"github.com/pkg/errors"
)

type byteWriterWrapper struct {
	io.Writer
}

func (w *byteWriterWrapper) WriteByte(c byte) error {
	_, err := w.Writer.Write([]byte{c})
	return err
}

// newWriter returns either w if it implements io.ByteWriter or wraps it up
// into a byteWriterWrapper.
func newWriter(w io.Writer) io.ByteWriter {
	switch ww := w.(type) {
	case nil:
		return nil
	case io.ByteWriter:
		return ww
	default:
		return &byteWriterWrapper{w}
	}
}

// multiReader reads from a stack of readers, top first. Exhausted readers are
// discarded, and closed if they implement io.Closer.
type multiReader struct {
	readers []io.Reader
}

func (mr *multiReader) Read(p []byte) (n int, err error) {
	for len(mr.readers) > 0 {
		n, err = mr.readers[0].Read(p)
		if n > 0 || err != io.EOF {
			if err == io.EOF {
				// Don't return EOF yet. There may be more bytes
				// in the remaining readers.
				err = nil
			}
			return
		}
		if c, ok := mr.readers[0].(io.Closer); ok {
			c.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, io.EOF
}

func (mr *multiReader) pushReader(r io.Reader) {
	mr.readers = append([]io.Reader{r}, mr.readers...)
}

// PushInput sets r as the current input reader. When this reader reaches EOF,
// the previously pushed reader will be used.
//
// Readers are only consulted once the bytes supplied with Feed have been
// consumed. A Read call on a reader may block, in which case Step will block
// too. When all readers are exhausted, the VM suspends on input.
func (i *Instance) PushInput(r io.Reader) {
	if r == nil {
		return
	}
	if i.readers == nil {
		i.readers = new(multiReader)
	}
	i.readers.pushReader(r)
}

// Feed appends p to the pending input.
func (i *Instance) Feed(p []byte) {
	i.input = append(i.input, p...)
}

// FeedString appends s to the pending input.
func (i *Instance) FeedString(s string) {
	i.input = append(i.input, s...)
}

// Pending returns the number of input bytes fed but not read yet by the VM.
// Bytes buffered by input readers are not included.
func (i *Instance) Pending() int {
	return len(i.input)
}

// readByte returns the next input byte. ok is false if no input is available.
func (i *Instance) readByte() (c byte, ok bool, err error) {
	if len(i.input) > 0 {
		c, i.input = i.input[0], i.input[1:]
		return c, true, nil
	}
	if i.readers == nil {
		return 0, false, nil
	}
	var b [1]byte
	n, err := i.readers.Read(b[:])
	if n > 0 {
		return b[0], true, nil
	}
	if err != nil && err != io.EOF {
		return 0, false, errors.Wrap(err, "input read failed")
	}
	return 0, false, nil
}

func (i *Instance) writeByte(c byte) error {
	if i.output == nil {
		return nil
	}
	return errors.Wrap(i.output.WriteByte(c), "output write failed")
}
