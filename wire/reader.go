// Copyright 2026 Blink Labs Software
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

// Package wire reads the primitive values that make up a ticket payload:
// raw byte runs, LEB128 varints, option flags, length-prefixed strings and
// socket addresses.
package wire

import (
	"unicode/utf8"
)

// Varints longer than this cannot hold a 32-bit value
const maxVarintLen = 5

// Reader walks a byte buffer with a single cursor. A Reader is meant to be
// used by one decode and is not safe for concurrent use. Failed reads leave
// the cursor where it was.
type Reader struct {
	data   []byte
	offset int
}

func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
	}
}

// Offset returns the current cursor position
func (r *Reader) Offset() int {
	return r.offset
}

// Len returns the total buffer length
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// EOF returns true once every byte has been consumed
func (r *Reader) EOF() bool {
	return r.offset >= len(r.data)
}

func (r *Reader) underrun(want int) error {
	return UnderrunError{
		Offset:    r.offset,
		Want:      want,
		Remaining: r.Remaining(),
	}
}

func (r *Reader) ReadU8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, r.underrun(1)
	}
	ret := r.data[r.offset]
	r.offset++
	return ret, nil
}

// ReadFixed consumes exactly n bytes. The returned slice is a copy
func (r *Reader) ReadFixed(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, r.underrun(n)
	}
	ret := make([]byte, n)
	copy(ret, r.data[r.offset:r.offset+n])
	r.offset += n
	return ret, nil
}

// ReadVarint consumes an unsigned LEB128 varint: the low 7 bits of each byte
// are accumulated, least significant group first, until a byte with the high
// bit clear is found
func (r *Reader) ReadVarint() (uint32, error) {
	var ret uint64
	pos := r.offset
	for i := 0; ; i++ {
		if i == maxVarintLen {
			return 0, VarintOverflowError{Offset: r.offset}
		}
		if pos >= len(r.data) {
			return 0, r.underrun(pos - r.offset + 1)
		}
		b := r.data[pos]
		pos++
		ret |= uint64(b&0x7f) << (7 * i)
		if ret > 0xffffffff {
			return 0, VarintOverflowError{Offset: r.offset}
		}
		if b&0x80 == 0 {
			break
		}
	}
	r.offset = pos
	return uint32(ret), nil
}

// ReadOption consumes a presence flag. Only the value 1 means present, any
// other value is read as absent rather than rejected
func (r *Reader) ReadOption() (bool, error) {
	b, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// ReadString consumes a varint length followed by that many bytes of UTF-8
func (r *Reader) ReadString() (string, error) {
	start := r.offset
	length, err := r.ReadVarint()
	if err != nil {
		return "", err
	}
	data, err := r.ReadFixed(int(length))
	if err != nil {
		r.offset = start
		return "", err
	}
	if !utf8.Valid(data) {
		r.offset = start
		return "", InvalidUtf8Error{Offset: start, Length: len(data)}
	}
	return string(data), nil
}
