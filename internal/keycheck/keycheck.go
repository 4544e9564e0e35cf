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

// Package keycheck checks that node IDs are usable Ed25519 public keys.
// Decoding never does this, so a ticket with a malformed node ID still
// parses and can be inspected.
package keycheck

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/goticket/base32"
)

const PublicKeySize = 32

var (
	ErrInvalidKey    = errors.New("invalid public key")
	ErrSmallOrderKey = errors.New("public key is a small order point")
)

// PublicKey validates a raw Ed25519 public key
func PublicKey(publicKey []byte) error {
	if len(publicKey) != PublicKeySize {
		return fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidKey,
			PublicKeySize,
			len(publicKey),
		)
	}
	Y := &edwards25519.Point{}
	if _, err := Y.SetBytes(publicKey); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	isSmallOrder := (&edwards25519.Point{}).MultByCofactor(Y).
		Equal(edwards25519.NewIdentityPoint()) ==
		1
	if isSmallOrder {
		return ErrSmallOrderKey
	}
	return nil
}

// NodeId validates a node ID in its base32 form. Legacy grouped renderings
// can't be decoded and are reported as invalid
func NodeId(nodeId string) error {
	publicKey, err := base32.Decode(nodeId, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return PublicKey(publicKey)
}
