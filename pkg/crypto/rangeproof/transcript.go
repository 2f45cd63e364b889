// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package rangeproof

import (
	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
)

// transcript carries the Fiat-Shamir state between challenges. Every
// challenge is the hash of the previous one with the new proof elements
// appended, and becomes the new state.
type transcript struct {
	cache curve.Key
}

// newTranscript seeds the state with the hash of the commitments.
func newTranscript(V []curve.Key) *transcript {
	t := &transcript{}
	t.cache = curve.ScalarKey(curve.HashKeysToScalar(V...))
	return t
}

// mash hashes the current state with keys and returns the new challenge.
func (t *transcript) mash(keys ...curve.Key) *edwards25519.Scalar {
	all := make([]curve.Key, 0, len(keys)+1)
	all = append(all, t.cache)
	all = append(all, keys...)

	s := curve.HashKeysToScalar(all...)
	t.cache = curve.ScalarKey(s)
	return s
}

// rehash replaces the state with the hash of k alone.
func (t *transcript) rehash(k curve.Key) *edwards25519.Scalar {
	s := curve.HashKeysToScalar(k)
	t.cache = curve.ScalarKey(s)
	return s
}
