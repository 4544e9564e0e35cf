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

package ticket

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/goticket/base32"
	"github.com/blinklabs-io/goticket/wire"
)

// Every decode failure wraps exactly one of these, so callers can branch
// with errors.Is
var (
	ErrUnknownTicketType = errors.New("unknown ticket type")
	ErrInvalidEncoding   = base32.ErrInvalidEncoding
	ErrBufferUnderrun    = wire.ErrBufferUnderrun
	ErrUnexpectedVariant = errors.New("unexpected variant")
	ErrUnknownBlobFormat = errors.New("unknown blob format")
	ErrUnknownCapability = errors.New("unknown capability")
	ErrUnknownIpVersion  = wire.ErrUnknownIpVersion
	ErrInvalidUtf8       = wire.ErrInvalidUtf8
	ErrVarintOverflow    = wire.ErrVarintOverflow

	// Only returned in strict mode
	ErrTrailingBytes    = errors.New("trailing bytes after ticket")
	ErrInvalidNamespace = errors.New("invalid namespace")
	ErrInvalidPort      = errors.New("invalid port")
)

// DecodeError records where a ticket failed to decode. It unwraps to the
// underlying cause
type DecodeError struct {
	Kind   Kind
	Field  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(
		"%s ticket: %s at offset %d: %v",
		e.Kind,
		e.Field,
		e.Offset,
		e.Err,
	)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnknownTicketTypeError indicates input that doesn't begin with a known prefix
type UnknownTicketTypeError struct {
	// Up to the first few characters of the input
	Prefix string
}

func (e UnknownTicketTypeError) Error() string {
	if e.Prefix == "" {
		return "unknown ticket type: empty input"
	}
	return fmt.Sprintf("unknown ticket type: %q", e.Prefix)
}

func (UnknownTicketTypeError) Is(target error) bool {
	return target == ErrUnknownTicketType
}

// UnexpectedVariantError indicates a leading discriminant other than 0
type UnexpectedVariantError struct {
	Variant uint8
}

func (e UnexpectedVariantError) Error() string {
	return fmt.Sprintf("expected variant 0, found %d", e.Variant)
}

func (UnexpectedVariantError) Is(target error) bool {
	return target == ErrUnexpectedVariant
}

// UnknownBlobFormatError indicates a blob format tag outside the known set
type UnknownBlobFormatError struct {
	Format uint32
}

func (e UnknownBlobFormatError) Error() string {
	return fmt.Sprintf("unknown blob format: %d", e.Format)
}

func (UnknownBlobFormatError) Is(target error) bool {
	return target == ErrUnknownBlobFormat
}

// UnknownCapabilityError indicates a document capability tag outside the known set
type UnknownCapabilityError struct {
	Capability uint32
}

func (e UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability: %d", e.Capability)
}

func (UnknownCapabilityError) Is(target error) bool {
	return target == ErrUnknownCapability
}

// TrailingBytesError indicates unread bytes after a complete ticket
type TrailingBytesError struct {
	Count int
}

func (e TrailingBytesError) Error() string {
	return fmt.Sprintf("%d trailing bytes after ticket", e.Count)
}

func (TrailingBytesError) Is(target error) bool {
	return target == ErrTrailingBytes
}
