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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the encode and decode
// modes used for ticket records.
//
// Maps are always written with core deterministic key ordering, so encoding
// the same value twice yields identical bytes. Decoding rejects map keys
// that do not match a struct field.
//
// Records are written as a two element list of a numeric kind and a body:
//
//	type nodeRecord struct {
//	    cbor.StructAsArray
//	    Kind uint
//	    Body cbor.RawMessage
//	}
//
// DecodeIdFromList reads the kind without decoding the body, and
// EncodeGeneric/DecodeGeneric encode a struct's exported fields while
// bypassing any MarshalCBOR/UnmarshalCBOR methods it defines, which lets
// those methods call back into the generic form without recursing.
package cbor
