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

// Package ticket decodes the shareable ticket strings that describe how to
// reach a node, fetch a blob, or join a document in a peer-to-peer content
// network.
//
// A ticket is a literal prefix ("node", "blob" or "doc") followed by the
// lowercase, unpadded base32 form of a binary payload. Parse returns one of
// *NodeTicket, *BlobTicket or *DocTicket; callers type-switch on the result:
//
//	t, err := ticket.Parse(input)
//	if err != nil {
//	    // show a generic "invalid ticket" message
//	}
//	switch v := t.(type) {
//	case *ticket.NodeTicket:
//	case *ticket.BlobTicket:
//	case *ticket.DocTicket:
//	}
package ticket

import (
	"fmt"
)

// Kind identifies the ticket variant. Its string form is the ticket prefix
type Kind uint8

const (
	KindNode Kind = 0
	KindBlob Kind = 1
	KindDoc  Kind = 2
)

// Prefixes are matched in this order
var kinds = []Kind{KindNode, KindBlob, KindDoc}

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindBlob:
		return "blob"
	case KindDoc:
		return "doc"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindNode, KindBlob, KindDoc:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown ticket kind: %d", uint8(k))
}

func (k *Kind) UnmarshalText(text []byte) error {
	for _, tmpKind := range kinds {
		if string(text) == tmpKind.String() {
			*k = tmpKind
			return nil
		}
	}
	return fmt.Errorf("unknown ticket kind: %q", text)
}

// Ticket is the result of decoding a ticket string. It is implemented by
// *NodeTicket, *BlobTicket and *DocTicket
type Ticket interface {
	Kind() Kind
	isTicket()
}

// NodeTicket describes how to reach a single node
type NodeTicket struct {
	Node *NodeAddr `json:"node"             yaml:"node"`
}

func (*NodeTicket) Kind() Kind { return KindNode }
func (*NodeTicket) isTicket()  {}

// BlobTicket describes a content-addressed blob and a node that serves it
type BlobTicket struct {
	Node   *NodeAddr  `json:"node"   yaml:"node"`
	Format BlobFormat `json:"format" yaml:"format"`
	// BLAKE3 hash of the blob (or of the hash sequence), base32 encoded
	Hash string `json:"hash" yaml:"hash"`
}

func (*BlobTicket) Kind() Kind { return KindBlob }
func (*BlobTicket) isTicket()  {}

// DocTicket grants access to a shared document and lists nodes to sync with
type DocTicket struct {
	Capability DocCapability `json:"capability" yaml:"capability"`
	Namespace  string        `json:"namespace"  yaml:"namespace"`
	Nodes      []NodeAddr    `json:"nodes"      yaml:"nodes"`
}

func (*DocTicket) Kind() Kind { return KindDoc }
func (*DocTicket) isTicket()  {}

// Writable returns true if the ticket grants write access to the document
func (t *DocTicket) Writable() bool {
	return t.Capability == DocCapabilityWrite
}

// NodeAddr identifies a node and the addresses it can be dialed on
type NodeAddr struct {
	NodeId string   `json:"node_id" yaml:"node_id"`
	Info   AddrInfo `json:"info"    yaml:"info"`
}

// HasRelay returns true if the node advertises a relay URL
func (n NodeAddr) HasRelay() bool {
	return n.Info.RelayUrl != nil
}

// AddrInfo holds the ways a node can be reached. DirectAddresses keeps the
// order from the ticket, which is the node's order of preference
type AddrInfo struct {
	RelayUrl        *string  `json:"relay_url"        yaml:"relay_url"`
	DirectAddresses []string `json:"direct_addresses" yaml:"direct_addresses"`
}

// BlobFormat describes how the blob hash is to be interpreted
type BlobFormat uint8

const (
	// The hash covers the content itself
	BlobFormatRaw BlobFormat = 0
	// The hash covers a sequence of hashes of other blobs
	BlobFormatHashSeq BlobFormat = 1
)

func (f BlobFormat) String() string {
	switch f {
	case BlobFormatRaw:
		return "Raw"
	case BlobFormatHashSeq:
		return "HashSeq"
	}
	return fmt.Sprintf("BlobFormat(%d)", uint8(f))
}

func (f BlobFormat) MarshalText() ([]byte, error) {
	switch f {
	case BlobFormatRaw, BlobFormatHashSeq:
		return []byte(f.String()), nil
	}
	return nil, fmt.Errorf("unknown blob format: %d", uint8(f))
}

func (f *BlobFormat) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Raw":
		*f = BlobFormatRaw
	case "HashSeq":
		*f = BlobFormatHashSeq
	default:
		return fmt.Errorf("unknown blob format: %q", text)
	}
	return nil
}

// DocCapability is the level of access a document ticket grants
type DocCapability uint8

const (
	DocCapabilityWrite DocCapability = 0
	DocCapabilityRead  DocCapability = 1
)

func (c DocCapability) String() string {
	switch c {
	case DocCapabilityWrite:
		return "Write"
	case DocCapabilityRead:
		return "Read"
	}
	return fmt.Sprintf("DocCapability(%d)", uint8(c))
}

func (c DocCapability) MarshalText() ([]byte, error) {
	switch c {
	case DocCapabilityWrite, DocCapabilityRead:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("unknown capability: %d", uint8(c))
}

func (c *DocCapability) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Write":
		*c = DocCapabilityWrite
	case "Read":
		*c = DocCapabilityRead
	default:
		return fmt.Errorf("unknown capability: %q", text)
	}
	return nil
}
