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

package wire

import (
	"errors"
	"fmt"
)

var (
	ErrBufferUnderrun   = errors.New("buffer underrun")
	ErrVarintOverflow   = errors.New("varint overflow")
	ErrInvalidUtf8      = errors.New("invalid UTF-8 string")
	ErrUnknownIpVersion = errors.New("unknown IP version")
)

// UnderrunError indicates a read that asked for more bytes than remain in the buffer
type UnderrunError struct {
	Offset    int
	Want      int
	Remaining int
}

func (e UnderrunError) Error() string {
	return fmt.Sprintf(
		"buffer underrun at offset %d: wanted %d bytes, %d remaining",
		e.Offset,
		e.Want,
		e.Remaining,
	)
}

func (UnderrunError) Is(target error) bool {
	return target == ErrBufferUnderrun
}

// VarintOverflowError indicates a varint that does not fit in 32 bits
type VarintOverflowError struct {
	Offset int
}

func (e VarintOverflowError) Error() string {
	return fmt.Sprintf("varint at offset %d overflows 32 bits", e.Offset)
}

func (VarintOverflowError) Is(target error) bool {
	return target == ErrVarintOverflow
}

// InvalidUtf8Error indicates a length-prefixed string that is not valid UTF-8
type InvalidUtf8Error struct {
	Offset int
	Length int
}

func (e InvalidUtf8Error) Error() string {
	return fmt.Sprintf(
		"string of %d bytes at offset %d is not valid UTF-8",
		e.Length,
		e.Offset,
	)
}

func (InvalidUtf8Error) Is(target error) bool {
	return target == ErrInvalidUtf8
}

// UnknownIpVersionError indicates a socket address tag other than IPv4 or IPv6
type UnknownIpVersionError struct {
	Version uint32
}

func (e UnknownIpVersionError) Error() string {
	return fmt.Sprintf("unknown IP version: %d", e.Version)
}

func (UnknownIpVersionError) Is(target error) bool {
	return target == ErrUnknownIpVersion
}
