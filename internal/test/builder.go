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

package test

import (
	"github.com/blinklabs-io/goticket/base32"
	"github.com/multiformats/go-varint"
)

// Builder assembles ticket payloads in the wire format so tests can describe
// a ticket field by field instead of as an opaque string
type Builder struct {
	buf []byte
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) U8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

func (b *Builder) Varint(v uint64) *Builder {
	b.buf = append(b.buf, varint.ToUvarint(v)...)
	return b
}

func (b *Builder) Raw(data []byte) *Builder {
	b.buf = append(b.buf, data...)
	return b
}

func (b *Builder) Option(present bool) *Builder {
	if present {
		return b.U8(1)
	}
	return b.U8(0)
}

func (b *Builder) String(s string) *Builder {
	b.Varint(uint64(len(s)))
	return b.Raw([]byte(s))
}

func (b *Builder) IPv4(ip [4]byte, port uint64) *Builder {
	b.Varint(0)
	b.Raw(ip[:])
	return b.Varint(port)
}

func (b *Builder) IPv6(ip [16]byte, port uint64) *Builder {
	b.Varint(1)
	b.Raw(ip[:])
	return b.Varint(port)
}

// NodeAddr writes a node ID followed by its address info. An empty relay
// writes an absent option
func (b *Builder) NodeAddr(
	nodeId []byte,
	relay string,
	addrs ...func(*Builder),
) *Builder {
	b.Raw(nodeId)
	b.Option(relay != "")
	if relay != "" {
		b.String(relay)
	}
	b.Varint(uint64(len(addrs)))
	for _, addr := range addrs {
		addr(b)
	}
	return b
}

func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf...)
}

// Ticket renders the payload as a ticket string with the given prefix
func (b *Builder) Ticket(prefix string) string {
	return prefix + base32.Encode(b.buf)
}

// V4 and V6 adapt the address writers for use with NodeAddr
func V4(ip [4]byte, port uint64) func(*Builder) {
	return func(b *Builder) { b.IPv4(ip, port) }
}

func V6(ip [16]byte, port uint64) func(*Builder) {
	return func(b *Builder) { b.IPv6(ip, port) }
}
