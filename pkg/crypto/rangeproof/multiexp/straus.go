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

const (
	strausC         = 4
	strausMultiples = 1<<strausC - 1
	// StrausStep is the default number of points processed per band.
	StrausStep = 192
)

// StrausCache holds the multiples 1*P .. 15*P of a list of points.
type StrausCache struct {
	multiples [][strausMultiples]edwards25519.Point
}

// NewStrausCache precomputes the multiples of the first n term points. n == 0
// caches all of them.
func NewStrausCache(terms []Term, n int) (*StrausCache, error) {
	c := new(StrausCache)
	if err := c.init(terms, n); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *StrausCache) init(terms []Term, n int) error {
	if n == 0 {
		n = len(terms)
	}

	if n > len(terms) {
		return errors.Wrapf(ErrBadCacheData, "straus: %d points requested, %d given", n, len(terms))
	}

	if cap(c.multiples) < n {
		c.multiples = make([][strausMultiples]edwards25519.Point, n)
	}
	c.multiples = c.multiples[:n]

	for j := 0; j < n; j++ {
		m := &c.multiples[j]
		m[0].Set(terms[j].Point)
		for i := 1; i < strausMultiples; i++ {
			m[i].Add(&m[i-1], terms[j].Point)
		}
	}

	return nil
}

// Size returns the number of cached points.
func (c *StrausCache) Size() int {
	return len(c.multiples)
}

// Straus computes the multiexp with 4-bit fixed windows, processing step
// points per band. The term points must be the first points of the cache; a
// nil cache is built on the fly. step <= 0 selects StrausStep.
func Straus(terms []Term, cache *StrausCache, step int) (*edwards25519.Point, error) {
	if cache != nil && cache.Size() < len(terms) {
		return nil, errors.Wrapf(ErrCacheTooSmall, "straus: %d < %d", cache.Size(), len(terms))
	}

	if step <= 0 {
		step = StrausStep
	}

	if cache == nil {
		var err error
		if cache, err = NewStrausCache(terms, 0); err != nil {
			return nil, err
		}
	}

	const digitsPerScalar = 256 / strausC
	keys, maxBits := scalarKeys(terms)
	digits := make([]byte, digitsPerScalar*len(terms))
	for j := range keys {
		for i, b := range keys[j] {
			digits[j*digitsPerScalar+2*i] = b & 0xf
			digits[j*digitsPerScalar+2*i+1] = b >> 4
		}
	}

	// smallest multiple of the window covering every scalar
	start := (maxBits + strausC - 1) / strausC * strausC

	res := edwards25519.NewIdentityPoint()
	for offset := 0; offset < len(terms); offset += step {
		end := offset + step
		if end > len(terms) {
			end = len(terms)
		}

		band := edwards25519.NewIdentityPoint()
		for i := start - strausC; i >= 0; i -= strausC {
			if i < start-strausC {
				double(band, strausC)
			}

			for j := offset; j < end; j++ {
				if d := digits[j*digitsPerScalar+i/strausC]; d != 0 {
					band.Add(band, &cache.multiples[j][d-1])
				}
			}
		}

		res.Add(res, band)
	}

	return res, nil
}
