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
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/blinklabs-io/goticket/base32"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/zeebo/blake3"
)

var ErrHashMismatch = errors.New("blob hash mismatch")

// HashMismatchError reports content that does not hash to the ticket's blob hash
type HashMismatchError struct {
	Expected string
	Actual   string
	// Number of bytes read from the content
	Size int64
}

func (e HashMismatchError) Error() string {
	return fmt.Sprintf(
		"blob hash mismatch: expected %s, got %s (%d bytes)",
		e.Expected,
		e.Actual,
		e.Size,
	)
}

func (HashMismatchError) Is(target error) bool {
	return target == ErrHashMismatch
}

// HashBytes returns the raw BLAKE3 hash carried by the ticket
func (t *BlobTicket) HashBytes() ([HashLen]byte, error) {
	var ret [HashLen]byte
	data, err := base32.Decode(t.Hash, false)
	if err != nil {
		return ret, err
	}
	if len(data) != HashLen {
		return ret, fmt.Errorf(
			"invalid blob hash length: expected %d bytes, got %d",
			HashLen,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// CID returns the blob hash as a CIDv1 with the raw codec and a BLAKE3
// multihash. For hash sequences the CID names the sequence itself
func (t *BlobTicket) CID() (cid.Cid, error) {
	hash, err := t.HashBytes()
	if err != nil {
		return cid.Undef, err
	}
	mh, err := multihash.Encode(hash[:], multihash.BLAKE3)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// Verify reads r to the end and checks that its BLAKE3 hash matches the
// ticket. Only raw blobs hash their content directly
func (t *BlobTicket) Verify(r io.Reader) error {
	if t.Format != BlobFormatRaw {
		return fmt.Errorf("cannot verify %s blob content", t.Format)
	}
	expected, err := t.HashBytes()
	if err != nil {
		return err
	}
	h := blake3.New()
	size, err := io.Copy(h, r)
	if err != nil {
		return fmt.Errorf("failed to read blob content: %w", err)
	}
	actual := h.Sum(nil)
	if !bytes.Equal(actual, expected[:]) {
		return HashMismatchError{
			Expected: t.Hash,
			Actual:   base32.Encode(actual),
			Size:     size,
		}
	}
	return nil
}
