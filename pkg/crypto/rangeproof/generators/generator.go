// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package generators derives the Gi and Hi vector generators of the range
// proofs and keeps them, with their multiexp caches, for the lifetime of the
// process.
package generators

import (
	"encoding/binary"
	"sync"
	"time"

	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/hash"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/multiexp"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/vector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("process", "generators")

const (
	// MaxN is the bit width of a proved value.
	MaxN = 64
	// MaxM is the largest number of values aggregated in one proof.
	MaxM = 16
	// MaxMN is the number of generators in each of Gi and Hi.
	MaxMN = MaxN * MaxM
)

// salt separates the generator derivation from other uses of hash-to-point.
const salt = "bulletproof"

var (
	// ErrIndexOutOfRange is returned for a generator index >= MaxMN.
	ErrIndexOutOfRange = errors.New("generator index out of range")
	// ErrIdentityGenerator is returned if a derived generator is the identity.
	ErrIdentityGenerator = errors.New("generator is the point at infinity")
)

// Cache holds the generators and their precomputations. It is read-only once
// built and safe for concurrent use.
type Cache struct {
	gi [MaxMN]edwards25519.Point
	hi [MaxMN]edwards25519.Point

	straus    *multiexp.StrausCache
	pippenger *multiexp.PippengerCache
}

var (
	instance *Cache
	once     sync.Once
)

// Get returns the process-wide Cache, building it on first use. A failure to
// derive the generators is unrecoverable and panics.
func Get() *Cache {
	once.Do(func() {
		start := time.Now()

		c, err := New()
		if err != nil {
			log.WithError(err).Panic("could not derive the generators")
		}

		log.WithFields(logrus.Fields{
			"generators": 2 * MaxMN,
			"straus":     c.straus.Size(),
			"pippenger":  c.pippenger.Size(),
			"duration":   time.Since(start),
		}).Info("generator cache ready")

		instance = c
	})

	return instance
}

// Derive returns hash_to_point(keccak(base || "bulletproof" || uvarint(idx))).
func Derive(base curve.Key, idx uint64) (*edwards25519.Point, error) {
	var idxBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(idxBuf[:], idx)

	seed := curve.Key(hash.Keccak256(base[:], []byte(salt), idxBuf[:n]))

	p, err := curve.HashToPoint(seed)
	if err != nil {
		return nil, errors.Wrapf(err, "index %d", idx)
	}

	if curve.IsIdentity(p) {
		return nil, errors.Wrapf(ErrIdentityGenerator, "index %d", idx)
	}

	return p, nil
}

// New derives a fresh Cache. Hi[i] uses index 2i and Gi[i] index 2i+1, both
// from H. Callers normally want Get.
func New() (*Cache, error) {
	c := new(Cache)

	// cached points are laid out as Gi[0], Hi[0], Gi[1], Hi[1], ...
	terms := make([]multiexp.Term, 0, 2*MaxMN)
	zero := edwards25519.NewScalar()

	for i := 0; i < MaxMN; i++ {
		h, err := Derive(curve.HKey, uint64(2*i))
		if err != nil {
			return nil, err
		}
		c.hi[i].Set(h)

		g, err := Derive(curve.HKey, uint64(2*i+1))
		if err != nil {
			return nil, err
		}
		c.gi[i].Set(g)

		terms = append(terms,
			multiexp.Term{Scalar: zero, Point: &c.gi[i]},
			multiexp.Term{Scalar: zero, Point: &c.hi[i]})
	}

	var err error
	if c.straus, err = multiexp.NewStrausCache(terms, multiexp.CachedStrausLimit); err != nil {
		return nil, err
	}

	if c.pippenger, err = multiexp.NewPippengerCache(terms, 0); err != nil {
		return nil, err
	}

	return c, nil
}

// Gi returns the n-th G generator. The point must not be modified.
func (c *Cache) Gi(n int) (*edwards25519.Point, error) {
	if n < 0 || n >= MaxMN {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "Gi(%d)", n)
	}

	return &c.gi[n], nil
}

// Hi returns the n-th H generator. The point must not be modified.
func (c *Cache) Hi(n int) (*edwards25519.Point, error) {
	if n < 0 || n >= MaxMN {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "Hi(%d)", n)
	}

	return &c.hi[n], nil
}

// GiVector returns copies of the first n G generators.
func (c *Cache) GiVector(n int) ([]*edwards25519.Point, error) {
	return c.vector(n, c.Gi)
}

// HiVector returns copies of the first n H generators.
func (c *Cache) HiVector(n int) ([]*edwards25519.Point, error) {
	return c.vector(n, c.Hi)
}

func (c *Cache) vector(n int, get func(int) (*edwards25519.Point, error)) ([]*edwards25519.Point, error) {
	if n > MaxMN {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%d generators", n)
	}

	res := make([]*edwards25519.Point, n)
	for i := range res {
		p, err := get(i)
		if err != nil {
			return nil, err
		}
		res[i] = new(edwards25519.Point).Set(p)
	}

	return res, nil
}

// VectorExponent returns sum(a_i * Gi[i] + b_i * Hi[i]) using the scratch s.
func (c *Cache) VectorExponent(s *multiexp.Scratch, a, b []*edwards25519.Scalar) (*edwards25519.Point, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(vector.ErrSizeMismatch, "vector exponent: %d != %d", len(a), len(b))
	}

	if len(a) > MaxMN {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "vector exponent over %d generators", len(a))
	}

	s.ClearAndReserve(2 * len(a))
	for i := range a {
		s.Append(a[i], &c.gi[i])
		s.Append(b[i], &c.hi[i])
	}

	return c.MultiexpHiGi(s)
}

// MultiexpHiGi evaluates the terms in s, whose points must be a prefix of
// Gi[0], Hi[0], Gi[1], Hi[1], ...
func (c *Cache) MultiexpHiGi(s *multiexp.Scratch) (*edwards25519.Point, error) {
	return s.MultiexpCached(c.straus, c.pippenger)
}
