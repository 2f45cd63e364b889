// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package multiexp

import (
	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/vector"
	"github.com/pkg/errors"
)

// CachedStrausLimit is the largest term count evaluated with Straus against a
// precomputed cache. Precomputed Straus caches need to cover at least this
// many points.
const CachedStrausLimit = 128

// Scratch accumulates the terms of one multiexp at a time and keeps its
// caches and buckets around for the next one. It is not safe for concurrent
// use.
type Scratch struct {
	Terms []Term

	straus    StrausCache
	pippenger PippengerCache
	buckets   []edwards25519.Point
}

// NewScratch returns an empty Scratch.
func NewScratch() *Scratch {
	return &Scratch{buckets: make([]edwards25519.Point, 1<<MaxPippengerWindow)}
}

// ClearAndReserve empties the term list, making room for n terms.
func (s *Scratch) ClearAndReserve(n int) {
	if cap(s.Terms) < n {
		s.Terms = make([]Term, 0, n)
		return
	}

	s.Terms = s.Terms[:0]
}

// Append adds the term scalar * point.
func (s *Scratch) Append(scalar *edwards25519.Scalar, point *edwards25519.Point) {
	s.Terms = append(s.Terms, Term{Scalar: scalar, Point: point})
}

// Len returns the number of accumulated terms.
func (s *Scratch) Len() int {
	return len(s.Terms)
}

// Multiexp evaluates the accumulated terms, caching their points first.
func (s *Scratch) Multiexp() (*edwards25519.Point, error) {
	if len(s.Terms) <= ScratchStrausLimit {
		if err := s.straus.init(s.Terms, 0); err != nil {
			return nil, err
		}

		return Straus(s.Terms, &s.straus, 0)
	}

	if err := s.pippenger.init(s.Terms, 0); err != nil {
		return nil, err
	}

	return pippenger(s.Terms, &s.pippenger, s.buckets, 0)
}

// MultiexpCached evaluates the accumulated terms against precomputed caches
// whose points the terms must start with.
func (s *Scratch) MultiexpCached(straus *StrausCache, pc *PippengerCache) (*edwards25519.Point, error) {
	if len(s.Terms) <= CachedStrausLimit && straus != nil {
		return Straus(s.Terms, straus, 0)
	}

	return pippenger(s.Terms, pc, s.buckets, 0)
}

// VectorExponentCustom returns sum(a_i * A_i + b_i * B_i).
func (s *Scratch) VectorExponentCustom(A, B []*edwards25519.Point, a, b []*edwards25519.Scalar) (*edwards25519.Point, error) {
	if len(A) != len(B) || len(a) != len(b) || len(a) != len(A) {
		return nil, errors.Wrapf(vector.ErrSizeMismatch, "vector exponent: |A|=%d |B|=%d |a|=%d |b|=%d", len(A), len(B), len(a), len(b))
	}

	s.ClearAndReserve(2 * len(a))
	for i := range a {
		s.Append(a[i], A[i])
		s.Append(b[i], B[i])
	}

	return s.Multiexp()
}
