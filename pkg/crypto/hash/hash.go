// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package hash

import "golang.org/x/crypto/sha3"

// Size is the length in bytes of a Keccak256 digest.
const Size = 32

// Keccak256 takes any number of byte slices and returns the legacy (pre-FIPS)
// Keccak-256 digest of their concatenation.
func Keccak256(bs ...[]byte) [Size]byte {
	var out [Size]byte

	h := sha3.NewLegacyKeccak256()
	for _, b := range bs {
		_, _ = h.Write(b)
	}

	h.Sum(out[:0])
	return out
}
