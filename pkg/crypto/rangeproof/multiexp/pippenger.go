// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package multiexp

import (
	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

// MaxPippengerWindow bounds the bucket scratch to 512 entries.
const MaxPippengerWindow = 9

// PippengerCache holds a copy of a list of points, indexed like the terms
// that are later evaluated against it.
type PippengerCache struct {
	points []edwards25519.Point
}

// NewPippengerCache caches the first n term points. n == 0 caches all of them.
func NewPippengerCache(terms []Term, n int) (*PippengerCache, error) {
	c := new(PippengerCache)
	if err := c.init(terms, n); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *PippengerCache) init(terms []Term, n int) error {
	if n == 0 {
		n = len(terms)
	}

	if n > len(terms) {
		return errors.Wrapf(ErrBadCacheData, "pippenger: %d points requested, %d given", n, len(terms))
	}

	if cap(c.points) < n {
		c.points = make([]edwards25519.Point, n)
	}
	c.points = c.points[:n]

	for i := 0; i < n; i++ {
		c.points[i].Set(terms[i].Point)
	}

	return nil
}

// Size returns the number of cached points.
func (c *PippengerCache) Size() int {
	return len(c.points)
}

// PippengerWindow returns the window size in bits for n terms.
func PippengerWindow(n int) int {
	switch {
	case n <= 2:
		return 1
	case n <= 8:
		return 2
	case n <= 16:
		return 3
	case n <= 64:
		return 4
	case n <= 128:
		return 5
	case n <= 256:
		return 6
	case n <= 1024:
		return 7
	case n <= 2048:
		return 8
	default:
		return 9
	}
}

// Pippenger computes the multiexp by sorting the points into buckets by
// window digit. A nil cache is built from the terms; c == 0 picks the window
// with PippengerWindow.
func Pippenger(terms []Term, cache *PippengerCache, c int) (*edwards25519.Point, error) {
	return pippenger(terms, cache, nil, c)
}

func pippenger(terms []Term, cache *PippengerCache, buckets []edwards25519.Point, c int) (*edwards25519.Point, error) {
	if cache != nil && cache.Size() < len(terms) {
		return nil, errors.Wrapf(ErrCacheTooSmall, "pippenger: %d < %d", cache.Size(), len(terms))
	}

	if c == 0 {
		c = PippengerWindow(len(terms))
	}

	if c > MaxPippengerWindow {
		return nil, errors.Wrapf(ErrWindowTooLarge, "c = %d", c)
	}

	if cache == nil {
		var err error
		if cache, err = NewPippengerCache(terms, 0); err != nil {
			return nil, err
		}
	}

	nb := 1 << uint(c)
	if len(buckets) < nb {
		buckets = make([]edwards25519.Point, nb)
	}
	filled := make([]bool, nb)

	keys, maxBits := scalarKeys(terms)
	groups := (maxBits + c - 1) / c

	result := edwards25519.NewIdentityPoint()
	started := false
	pail := edwards25519.NewIdentityPoint()

	for k := groups - 1; k >= 0; k-- {
		if started {
			double(result, c)
		}

		for i := range filled {
			filled[i] = false
		}

		for i := range terms {
			bucket := 0
			for j := 0; j < c; j++ {
				bucket |= keys[i].bit(k*c+j) << uint(j)
			}

			if bucket == 0 {
				continue
			}

			if filled[bucket] {
				buckets[bucket].Add(&buckets[bucket], &cache.points[i])
			} else {
				buckets[bucket].Set(&cache.points[i])
				filled[bucket] = true
			}
		}

		pail.Set(edwards25519.NewIdentityPoint())
		pailSet := false
		for i := nb - 1; i > 0; i-- {
			if filled[i] {
				pail.Add(pail, &buckets[i])
				pailSet = true
			}

			if pailSet {
				result.Add(result, pail)
				started = true
			}
		}
	}

	return result, nil
}
