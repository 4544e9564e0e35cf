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
	"log/slog"
	"math"
	"strings"

	"github.com/blinklabs-io/goticket/base32"
	"github.com/blinklabs-io/goticket/wire"
)

const (
	NodeIdLen    = 32
	HashLen      = 32
	NamespaceLen = 32

	// A write capability carries the namespace key as a length-prefixed
	// byte string: one length byte (always 32) followed by the key
	namespaceSecretLen = NamespaceLen + 1

	// Every ticket is a single-variant enum on the wire
	ticketVariant = 0

	// How much of unrecognized input to echo back in errors
	maxPrefixEcho = 8
)

// Decoder turns ticket strings into tickets. It holds only settings, so one
// Decoder can be used from multiple goroutines at once
type Decoder struct {
	logger        *slog.Logger
	strict        bool
	legacyNodeIds bool
}

// NewDecoder returns a Decoder configured with the provided options
func NewDecoder(options ...DecoderOptionFunc) *Decoder {
	d := &Decoder{}
	for _, option := range options {
		option(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Parse decodes a ticket string. See Decoder for the available options
func Parse(s string, options ...DecoderOptionFunc) (Ticket, error) {
	return NewDecoder(options...).Parse(s)
}

// Parse decodes a ticket string. On failure no ticket is returned, and the
// error wraps one of the Err* values from this package
func (d *Decoder) Parse(s string) (Ticket, error) {
	kind, body, err := splitPrefix(s)
	if err != nil {
		return nil, err
	}
	data, err := base32.Decode(body, true)
	if err != nil {
		offset := len(kind.String())
		var charErr base32.InvalidCharError
		if errors.As(err, &charErr) {
			offset += charErr.Offset
		}
		return nil, &DecodeError{
			Kind:   kind,
			Field:  "body",
			Offset: offset,
			Err:    err,
		}
	}
	state := &decodeState{
		Decoder: d,
		kind:    kind,
		r:       wire.NewReader(data),
		logger:  d.logger.With("ticket_kind", kind.String()),
	}
	state.logger.Debug("decoding ticket", "payload_len", len(data))
	ret, err := state.decode()
	if err != nil {
		state.logger.Debug("failed to decode ticket", "error", err)
		return nil, err
	}
	return ret, nil
}

// splitPrefix strips the ticket prefix, which fixes the kind for the rest of the decode
func splitPrefix(s string) (Kind, string, error) {
	for _, kind := range kinds {
		if body, ok := strings.CutPrefix(s, kind.String()); ok {
			return kind, body, nil
		}
	}
	echo := s
	if len(echo) > maxPrefixEcho {
		echo = echo[:maxPrefixEcho]
	}
	return 0, "", UnknownTicketTypeError{Prefix: echo}
}

// decodeState is the per-call state of a decode. It owns the cursor
type decodeState struct {
	*Decoder
	kind   Kind
	r      *wire.Reader
	logger *slog.Logger
}

func (s *decodeState) fail(field string, offset int, err error) error {
	return &DecodeError{
		Kind:   s.kind,
		Field:  field,
		Offset: offset,
		Err:    err,
	}
}

func (s *decodeState) decode() (Ticket, error) {
	start := s.r.Offset()
	variant, err := s.r.ReadU8()
	if err != nil {
		return nil, s.fail("variant", start, err)
	}
	if variant != ticketVariant {
		return nil, s.fail("variant", start, UnexpectedVariantError{Variant: variant})
	}
	var ret Ticket
	switch s.kind {
	case KindNode:
		ret, err = s.readNodeTicket()
	case KindBlob:
		ret, err = s.readBlobTicket()
	case KindDoc:
		ret, err = s.readDocTicket()
	default:
		return nil, UnknownTicketTypeError{Prefix: s.kind.String()}
	}
	if err != nil {
		return nil, err
	}
	if remaining := s.r.Remaining(); remaining > 0 {
		if s.strict {
			return nil, s.fail(
				"trailer",
				s.r.Offset(),
				TrailingBytesError{Count: remaining},
			)
		}
		s.logger.Debug("ignoring trailing bytes", "count", remaining)
	}
	return ret, nil
}

func (s *decodeState) readNodeTicket() (*NodeTicket, error) {
	node, err := s.readNodeAddr("node")
	if err != nil {
		return nil, err
	}
	return &NodeTicket{Node: &node}, nil
}

func (s *decodeState) readBlobTicket() (*BlobTicket, error) {
	node, err := s.readNodeAddr("node")
	if err != nil {
		return nil, err
	}
	start := s.r.Offset()
	formatTag, err := s.r.ReadVarint()
	if err != nil {
		return nil, s.fail("format", start, err)
	}
	var format BlobFormat
	switch formatTag {
	case uint32(BlobFormatRaw):
		format = BlobFormatRaw
	case uint32(BlobFormatHashSeq):
		format = BlobFormatHashSeq
	default:
		return nil, s.fail(
			"format",
			start,
			UnknownBlobFormatError{Format: formatTag},
		)
	}
	start = s.r.Offset()
	hash, err := s.r.ReadFixed(HashLen)
	if err != nil {
		return nil, s.fail("hash", start, err)
	}
	ret := &BlobTicket{
		Node:   &node,
		Format: format,
		Hash:   base32.Encode(hash),
	}
	s.logger.Debug("decoded blob", "format", format.String(), "hash", ret.Hash)
	return ret, nil
}

func (s *decodeState) readDocTicket() (*DocTicket, error) {
	start := s.r.Offset()
	capTag, err := s.r.ReadVarint()
	if err != nil {
		return nil, s.fail("capability", start, err)
	}
	var capability DocCapability
	var namespace []byte
	start = s.r.Offset()
	switch capTag {
	case uint32(DocCapabilityWrite):
		capability = DocCapabilityWrite
		secret, err := s.r.ReadFixed(namespaceSecretLen)
		if err != nil {
			return nil, s.fail("namespace", start, err)
		}
		if s.strict && secret[0] != NamespaceLen {
			return nil, s.fail(
				"namespace",
				start,
				fmt.Errorf("%w: key length %d", ErrInvalidNamespace, secret[0]),
			)
		}
		namespace = secret[1:]
	case uint32(DocCapabilityRead):
		capability = DocCapabilityRead
		namespace, err = s.r.ReadFixed(NamespaceLen)
		if err != nil {
			return nil, s.fail("namespace", start, err)
		}
	default:
		return nil, s.fail(
			"capability",
			start,
			UnknownCapabilityError{Capability: capTag},
		)
	}
	start = s.r.Offset()
	count, err := s.r.ReadVarint()
	if err != nil {
		return nil, s.fail("nodes", start, err)
	}
	// The count comes from untrusted input, so don't size by it alone
	nodes := make([]NodeAddr, 0, int(min(count, uint32(s.r.Remaining()/NodeIdLen))))
	for i := range count {
		node, err := s.readNodeAddr(fmt.Sprintf("nodes[%d]", i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	ret := &DocTicket{
		Capability: capability,
		Namespace:  base32.Encode(namespace),
		Nodes:      nodes,
	}
	s.logger.Debug(
		"decoded document",
		"capability", capability.String(),
		"namespace", ret.Namespace,
		"nodes", len(nodes),
	)
	return ret, nil
}

func (s *decodeState) readNodeAddr(field string) (NodeAddr, error) {
	start := s.r.Offset()
	id, err := s.r.ReadFixed(NodeIdLen)
	if err != nil {
		return NodeAddr{}, s.fail(field+".node_id", start, err)
	}
	info, err := s.readAddrInfo(field + ".info")
	if err != nil {
		return NodeAddr{}, err
	}
	ret := NodeAddr{
		NodeId: s.renderNodeId(id),
		Info:   info,
	}
	s.logger.Debug(
		"decoded node address",
		"field", field,
		"node_id", ret.NodeId,
		"relay_url", ret.HasRelay(),
		"direct_addresses", len(info.DirectAddresses),
	)
	return ret, nil
}

func (s *decodeState) readAddrInfo(field string) (AddrInfo, error) {
	var ret AddrInfo
	start := s.r.Offset()
	hasRelay, err := s.r.ReadOption()
	if err != nil {
		return ret, s.fail(field+".relay_url", start, err)
	}
	if hasRelay {
		start = s.r.Offset()
		relayUrl, err := s.r.ReadString()
		if err != nil {
			return ret, s.fail(field+".relay_url", start, err)
		}
		ret.RelayUrl = &relayUrl
	}
	start = s.r.Offset()
	count, err := s.r.ReadVarint()
	if err != nil {
		return ret, s.fail(field+".direct_addresses", start, err)
	}
	ret.DirectAddresses = make([]string, 0, int(min(count, uint32(s.r.Remaining()))))
	for i := range count {
		addrField := fmt.Sprintf("%s.direct_addresses[%d]", field, i)
		start = s.r.Offset()
		addr, err := s.r.ReadSocketAddrParts()
		if err != nil {
			return ret, s.fail(addrField, start, err)
		}
		if s.strict && addr.Port > math.MaxUint16 {
			return ret, s.fail(
				addrField,
				start,
				fmt.Errorf("%w: %d", ErrInvalidPort, addr.Port),
			)
		}
		ret.DirectAddresses = append(ret.DirectAddresses, addr.String())
	}
	return ret, nil
}

func (s *decodeState) renderNodeId(id []byte) string {
	if s.legacyNodeIds {
		return base32.EncodeGrouped(id)
	}
	return base32.Encode(id)
}
