// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package multiexp

import (
	"container/heap"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

type bcEntry struct {
	s scalarKey
	p *edwards25519.Point
}

// bcHeap is a max-heap on the scalars.
type bcHeap []*bcEntry

func (h bcHeap) Len() int           { return len(h) }
func (h bcHeap) Less(i, j int) bool { return h[j].s.less(&h[i].s) }
func (h bcHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *bcHeap) Push(x any) {
	*h = append(*h, x.(*bcEntry))
}

func (h *bcHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

func newEntry(t Term) *bcEntry {
	return &bcEntry{s: keyOf(t.Scalar), p: new(edwards25519.Point).Set(t.Point)}
}

// nonZeroEntries skips the terms that contribute nothing: a zero scalar would
// never shrink the largest one and the loop would not end.
func nonZeroEntries(terms []Term) bcHeap {
	zero, identity := edwards25519.NewScalar(), edwards25519.NewIdentityPoint()

	h := make(bcHeap, 0, len(terms))
	for i := range terms {
		if terms[i].Scalar.Equal(zero) == 1 || terms[i].Point.Equal(identity) == 1 {
			continue
		}
		h = append(h, newEntry(terms[i]))
	}

	return h
}

func finish(h *bcHeap) (*edwards25519.Point, error) {
	e := heap.Pop(h).(*bcEntry)
	s, err := e.s.scalar()
	if err != nil {
		return nil, errors.Wrap(err, "bos-coster remainder")
	}

	return new(edwards25519.Point).ScalarMult(s, e.p), nil
}

// BosCoster repeatedly replaces the two largest terms s1*P1 + s2*P2 by
// (s1-s2)*P1 + s2*(P1+P2) until a single term is left. It needs at least two
// terms. Zero scalars and identity points are dropped first.
func BosCoster(terms []Term) (*edwards25519.Point, error) {
	if len(terms) < 2 {
		return nil, ErrNotEnoughTerms
	}

	h := nonZeroEntries(terms)
	if len(h) == 0 {
		return edwards25519.NewIdentityPoint(), nil
	}

	heap.Init(&h)

	for h.Len() > 1 {
		e1 := heap.Pop(&h).(*bcEntry)
		e2 := heap.Pop(&h).(*bcEntry)

		e2.p.Add(e2.p, e1.p)
		e1.s = e1.s.sub(&e2.s)

		if !e1.s.isZero() {
			heap.Push(&h, e1)
		}
		heap.Push(&h, e2)
	}

	return finish(&h)
}

// BosCosterRobust is BosCoster tolerating any number of terms, including zero
// scalars and identity points. When the largest scalar is more than twice the
// next one, it is halved (doubling its point) before the two are combined.
func BosCosterRobust(terms []Term) (*edwards25519.Point, error) {
	h := nonZeroEntries(terms)
	if len(h) == 0 {
		return edwards25519.NewIdentityPoint(), nil
	}

	heap.Init(&h)
	if len(h) == 1 {
		return finish(&h)
	}

	one := scalarKey{1}
	for h.Len() > 1 {
		e1 := heap.Pop(&h).(*bcEntry)
		e2 := heap.Pop(&h).(*bcEntry)

		for {
			half := e1.s.half()
			if !e2.s.less(&half) {
				break
			}

			if e1.s[0]&1 == 1 {
				heap.Push(&h, &bcEntry{s: one, p: new(edwards25519.Point).Set(e1.p)})
			}

			e1.s = half
			e1.p.Add(e1.p, e1.p)
		}

		e2.p.Add(e2.p, e1.p)
		e1.s = e1.s.sub(&e2.s)

		if !e1.s.isZero() {
			heap.Push(&h, e1)
		}
		heap.Push(&h, e2)
	}

	return finish(&h)
}
