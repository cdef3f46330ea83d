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

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load reads a memory image from r. Images are sequences of little-endian 16
// bits words, loaded at address 0. The image may not be larger than
// MemorySize words.
func Load(r io.Reader) ([]Word, error) {
	var (
		b   [2]byte
		img []Word
	)
	br := bufio.NewReader(r)
	for {
		_, err := io.ReadFull(br, b[:])
		if err == io.EOF {
			return img, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Errorf("odd image size: truncated word at address %d", len(img))
		}
		if err != nil {
			return nil, errors.Wrap(err, "word read failed")
		}
		if len(img) == MemorySize {
			return nil, errors.Errorf("image larger than %d words", MemorySize)
		}
		img = append(img, Word(binary.LittleEndian.Uint16(b[:])))
	}
}

// LoadFile loads a memory image from file fileName.
func LoadFile(fileName string) ([]Word, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return img, nil
}

// Save writes mem to w in the image format read by Load.
func Save(w io.Writer, mem []Word) error {
	bw := bufio.NewWriter(w)
	var b [2]byte
	for _, v := range mem {
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		if _, err := bw.Write(b[:]); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

// SaveFile saves mem to an image file. The file is removed if an error occurs.
func SaveFile(fileName string, mem []Word) (err error) {
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
	return Save(f, mem)
}
