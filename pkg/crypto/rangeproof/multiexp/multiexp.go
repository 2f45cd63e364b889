// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package multiexp computes sums of scalar multiplications, s_0*P_0 + ... +
// s_n*P_n, with the Bos-Coster, Straus and Pippenger algorithms. All of them
// return the same point for the same terms; which one is cheaper depends on
// the number of terms and on whether a precomputed cache is available.
package multiexp

import (
	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

var (
	// ErrCacheTooSmall is returned when a cache covers fewer points than there
	// are terms.
	ErrCacheTooSmall = errors.New("cache is too small")
	// ErrBadCacheData is returned when asked to cache more points than given.
	ErrBadCacheData = errors.New("bad cache base data")
	// ErrWindowTooLarge is returned for a Pippenger window above MaxPippengerWindow.
	ErrWindowTooLarge = errors.New("pippenger window is too large")
	// ErrNotEnoughTerms is returned by BosCoster with fewer than two terms.
	ErrNotEnoughTerms = errors.New("not enough terms")
)

// ScratchStrausLimit is the largest term count for which an uncached
// multiexp uses Straus rather than Pippenger.
const ScratchStrausLimit = 64

// Term is one summand of a multiexp.
type Term struct {
	Scalar *edwards25519.Scalar
	Point  *edwards25519.Point
}

// scalarKey is the little-endian encoding of a reduced scalar, compared as a
// 256-bit integer.
type scalarKey [32]byte

func keyOf(s *edwards25519.Scalar) scalarKey {
	var k scalarKey
	copy(k[:], s.Bytes())
	return k
}

func (k *scalarKey) less(o *scalarKey) bool {
	for n := 31; n >= 0; n-- {
		if k[n] < o[n] {
			return true
		}
		if k[n] > o[n] {
			return false
		}
	}

	return false
}

func (k *scalarKey) isZero() bool {
	return *k == scalarKey{}
}

// bit returns the n-th bit of k.
func (k *scalarKey) bit(n int) int {
	if n >= 256 {
		return 0
	}

	return int(k[n>>3]>>uint(n&7)) & 1
}

// bitLen returns the smallest n such that k < 2^n.
func (k *scalarKey) bitLen() int {
	for n := 31; n >= 0; n-- {
		if k[n] != 0 {
			b := 0
			for v := k[n]; v != 0; v >>= 1 {
				b++
			}
			return n*8 + b
		}
	}

	return 0
}

// half returns k / 2, rounded down.
func (k *scalarKey) half() scalarKey {
	var res scalarKey
	var carry byte
	for n := 31; n >= 0; n-- {
		next := (k[n] & 1) << 7
		res[n] = k[n]>>1 + carry
		carry = next
	}

	return res
}

// sub returns k - o. k must not be smaller than o.
func (k *scalarKey) sub(o *scalarKey) scalarKey {
	var res scalarKey
	borrow := 0
	for n := 0; n < 32; n++ {
		d := int(k[n]) - int(o[n]) - borrow
		borrow = 0
		if d < 0 {
			d += 256
			borrow = 1
		}
		res[n] = byte(d)
	}

	return res
}

func (k *scalarKey) scalar() (*edwards25519.Scalar, error) {
	return edwards25519.NewScalar().SetCanonicalBytes(k[:])
}

func scalarKeys(terms []Term) ([]scalarKey, int) {
	keys := make([]scalarKey, len(terms))
	maxBits := 0
	for i := range terms {
		keys[i] = keyOf(terms[i].Scalar)
		if b := keys[i].bitLen(); b > maxBits {
			maxBits = b
		}
	}

	return keys, maxBits
}

func double(p *edwards25519.Point, times int) {
	for i := 0; i < times; i++ {
		p.Add(p, p)
	}
}

// Multiexp computes the sum of terms without any precomputed cache: Straus
// for small batches, Pippenger otherwise.
func Multiexp(terms []Term) (*edwards25519.Point, error) {
	if len(terms) <= ScratchStrausLimit {
		return Straus(terms, nil, 0)
	}

	return Pippenger(terms, nil, 0)
}
