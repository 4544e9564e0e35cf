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
	"testing"

	"github.com/blinklabs-io/goticket/internal/test"
)

var knownErrors = []error{
	ErrUnknownTicketType,
	ErrInvalidEncoding,
	ErrBufferUnderrun,
	ErrUnexpectedVariant,
	ErrUnknownBlobFormat,
	ErrUnknownCapability,
	ErrUnknownIpVersion,
	ErrInvalidUtf8,
	ErrVarintOverflow,
	ErrTrailingBytes,
	ErrInvalidNamespace,
	ErrInvalidPort,
}

func FuzzParse(f *testing.F) {
	f.Add(test.DocWriteTicket)
	f.Add("")
	f.Add("node")
	f.Add("blobaaaa")
	f.Add("docaaa")
	f.Add("nodeaa======")
	// Element counts of 0xffffffff
	f.Add(test.NewBuilder().
		U8(0).
		Varint(1).
		Raw(make([]byte, NamespaceLen)).
		Varint(0xffffffff).
		Ticket("doc"))
	f.Add(test.NewBuilder().
		U8(0).
		Raw(make([]byte, NodeIdLen)).
		Option(false).
		Varint(0xffffffff).
		Ticket("node"))

	decoders := []*Decoder{
		NewDecoder(),
		NewDecoder(WithStrict(true), WithLegacyNodeIds(true)),
	}
	f.Fuzz(func(t *testing.T, input string) {
		for _, decoder := range decoders {
			tk, err := decoder.Parse(input)
			if err != nil {
				if tk != nil {
					t.Fatalf("got ticket alongside error: %v", err)
				}
				found := false
				for _, knownErr := range knownErrors {
					if errors.Is(err, knownErr) {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("error does not wrap a known cause: %v", err)
				}
				continue
			}
			if tk == nil {
				t.Fatalf("got nil ticket without error for %q", input)
			}
		}
	})
}
