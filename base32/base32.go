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

// Package base32 implements the lowercase, unpadded RFC 4648 base32 form used
// for ticket bodies and identifier strings.
package base32

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_base32 "github.com/multiformats/go-base32"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz234567"

var encoding = _base32.NewEncoding(alphabet).WithPadding(_base32.NoPadding)

var ErrInvalidEncoding = errors.New("invalid base32 encoding")

// InvalidCharError reports a character outside the base32 alphabet
type InvalidCharError struct {
	Offset int
	Char   rune
}

func (e InvalidCharError) Error() string {
	return fmt.Sprintf(
		"invalid base32 character %q at offset %d",
		e.Char,
		e.Offset,
	)
}

func (InvalidCharError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

// InvalidLengthError reports an input whose length leaves a dangling
// character. It is only returned by strict decoding
type InvalidLengthError struct {
	Length int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid base32 input length %d", e.Length)
}

func (InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

// Encode returns the lowercase, unpadded base32 form of data. The output is
// always ceil(len(data)*8/5) characters long.
func Encode(data []byte) string {
	return encoding.EncodeToString(data)
}

// EncodedLen returns the length of Encode's output for n input bytes
func EncodedLen(n int) int {
	return encoding.EncodedLen(n)
}

// Decode decodes s, ignoring letter case. Padding characters are not accepted.
//
// In loose mode, characters at the end of s that do not carry enough bits to
// complete another byte are dropped, so any length is accepted. Otherwise the
// input length must be one that Encode can produce.
func Decode(s string, loose bool) ([]byte, error) {
	src := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '2' && c <= '7':
			src[i] = c
		case c >= 'A' && c <= 'Z':
			src[i] = c + ('a' - 'A')
		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			return nil, InvalidCharError{Offset: i, Char: r}
		}
	}
	// A trailing group of 1, 3 or 6 characters holds fewer than 8 spare bits
	switch len(src) % 8 {
	case 1, 3, 6:
		if !loose {
			return nil, InvalidLengthError{Length: len(src)}
		}
		src = src[:len(src)-1]
	}
	ret := make([]byte, encoding.DecodedLen(len(src)))
	n, err := encoding.Decode(ret, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return ret[:n], nil
}

// EncodeGrouped renders data the way earlier web ticket viewers displayed
// node identifiers: every four input bytes produce eight characters, with the
// fourth byte only contributing its leading bits. The result is lowercase and
// cannot be decoded back into data.
func EncodeGrouped(data []byte) string {
	peek := func(i int) byte {
		if i < len(data) {
			return data[i]
		}
		return 0
	}
	var sb strings.Builder
	for i := 0; i < len(data); i++ {
		cur := data[i]
		next := peek(i + 1)
		sb.WriteByte(alphabet[(cur>>3)&31])
		sb.WriteByte(alphabet[(cur<<2|next>>6)&31])
		if i+1 >= len(data) {
			continue
		}
		i++
		cur = data[i]
		sb.WriteByte(alphabet[(cur>>1)&31])
		next = peek(i + 1)
		sb.WriteByte(alphabet[(cur<<4|next>>4)&31])
		if i+1 >= len(data) {
			continue
		}
		i++
		cur = data[i]
		sb.WriteByte(alphabet[(cur<<1|next>>7)&31])
		sb.WriteByte(alphabet[(cur>>4)&31])
		next = peek(i + 1)
		sb.WriteByte(alphabet[(cur<<3|next>>5)&31])
		sb.WriteByte(alphabet[next&31])
		// The peeked byte is not revisited
		i++
	}
	return sb.String()
}
