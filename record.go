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

	"github.com/blinklabs-io/goticket/cbor"
)

// record is the CBOR envelope for an exported ticket: the ticket kind
// followed by the ticket encoded as a map
type record struct {
	cbor.StructAsArray
	Kind Kind
	Body cbor.RawMessage
}

func marshalRecord(kind Kind, t any) ([]byte, error) {
	body, err := cbor.EncodeGeneric(t)
	if err != nil {
		return nil, err
	}
	return cbor.Encode(&record{Kind: kind, Body: body})
}

func unmarshalRecord(kind Kind, data []byte, t any) error {
	var tmp record
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if tmp.Kind != kind {
		return fmt.Errorf(
			"%w: expected %s record, found %s",
			ErrUnknownTicketType,
			kind,
			tmp.Kind,
		)
	}
	return cbor.DecodeGeneric(tmp.Body, t)
}

func (t *NodeTicket) MarshalCBOR() ([]byte, error) {
	return marshalRecord(KindNode, t)
}

func (t *NodeTicket) UnmarshalCBOR(data []byte) error {
	return unmarshalRecord(KindNode, data, t)
}

func (t *BlobTicket) MarshalCBOR() ([]byte, error) {
	return marshalRecord(KindBlob, t)
}

func (t *BlobTicket) UnmarshalCBOR(data []byte) error {
	return unmarshalRecord(KindBlob, data, t)
}

func (t *DocTicket) MarshalCBOR() ([]byte, error) {
	return marshalRecord(KindDoc, t)
}

func (t *DocTicket) UnmarshalCBOR(data []byte) error {
	return unmarshalRecord(KindDoc, data, t)
}

// MarshalRecord encodes a decoded ticket as a deterministic CBOR record, so
// it can be stored or passed to tools that don't parse ticket strings
func MarshalRecord(t Ticket) ([]byte, error) {
	if t == nil {
		return nil, errors.New("nil ticket")
	}
	return cbor.Encode(t)
}

// UnmarshalRecord decodes a record produced by MarshalRecord
func UnmarshalRecord(data []byte) (Ticket, error) {
	kindId, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, err
	}
	var ret Ticket
	switch kindId {
	case int(KindNode):
		ret = &NodeTicket{}
	case int(KindBlob):
		ret = &BlobTicket{}
	case int(KindDoc):
		ret = &DocTicket{}
	default:
		return nil, fmt.Errorf(
			"%w: record kind %d",
			ErrUnknownTicketType,
			kindId,
		)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
