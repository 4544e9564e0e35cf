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
	"log/slog"
)

// DecoderOptionFunc is a type that represents functions that modify the Decoder config
type DecoderOptionFunc func(*Decoder)

// WithLogger specifies the logger used for debug traces of decoded fields. The default is slog.Default()
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithStrict enables extra checks that the default decoder skips: no bytes may follow the
// ticket, a write capability must carry a 32-byte key, and ports must fit in 16 bits
func WithStrict(strict bool) DecoderOptionFunc {
	return func(d *Decoder) {
		d.strict = strict
	}
}

// WithLegacyNodeIds renders node IDs the way earlier web ticket viewers showed them (see
// base32.EncodeGrouped). By default node IDs are RFC 4648 base32, so a node ID copied from one
// of those viewers or from their published sample tickets (for example
// "kxwqcaofuwww...fjs" rather than "kxwqdrnfvvvh...uza") only matches with this option set.
// Hashes and namespaces are not affected
func WithLegacyNodeIds(legacy bool) DecoderOptionFunc {
	return func(d *Decoder) {
		d.legacyNodeIds = legacy
	}
}
