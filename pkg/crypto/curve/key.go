// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package curve wraps the ed25519 group primitives the range proofs are built
// on. Points and scalars travel between packages either as *edwards25519
// values or, when they come from the wire, as raw 32-byte Keys which may not be
// valid encodings.
package curve

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

// KeySize is the length of a compressed point or scalar encoding.
const KeySize = 32

var (
	// ErrInvalidPoint is returned when a Key does not decode to a curve point.
	ErrInvalidPoint = errors.New("key is not a valid point encoding")
	// ErrNonCanonicalScalar is returned when a Key is not a reduced scalar.
	ErrNonCanonicalScalar = errors.New("key is not a reduced scalar")
)

// Key is a compressed point or a little-endian scalar.
type Key [KeySize]byte

var (
	// Zero is the zero scalar.
	Zero = Key{}
	// Identity is the encoding of the neutral element. Read as a scalar it is one.
	Identity = Key{1}
)

// String returns the hex encoding of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// KeyFromHex parses a 64 character hex string.
func KeyFromHex(s string) (Key, error) {
	var k Key

	b, err := hex.DecodeString(s)
	if err != nil {
		return k, err
	}

	if len(b) != KeySize {
		return k, errors.Errorf("expected %d bytes, got %d", KeySize, len(b))
	}

	copy(k[:], b)
	return k, nil
}

// KeyFromBytes copies b into a Key. b must be KeySize bytes long.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, errors.Errorf("expected %d bytes, got %d", KeySize, len(b))
	}

	copy(k[:], b)
	return k, nil
}

// Uint64Key encodes v as a little-endian scalar.
func Uint64Key(v uint64) Key {
	var k Key
	binary.LittleEndian.PutUint64(k[:8], v)
	return k
}

// ScalarKey encodes a scalar.
func ScalarKey(s *edwards25519.Scalar) Key {
	var k Key
	copy(k[:], s.Bytes())
	return k
}

// PointKey compresses a point.
func PointKey(p *edwards25519.Point) Key {
	var k Key
	copy(k[:], p.Bytes())
	return k
}

// Scalar decodes k, which must be reduced modulo the group order.
func (k Key) Scalar() (*edwards25519.Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(k[:])
	if err != nil {
		return nil, ErrNonCanonicalScalar
	}

	return s, nil
}

// IsReduced reports whether k is the canonical representative of a scalar.
func (k Key) IsReduced() bool {
	_, err := k.Scalar()
	return err == nil
}

// Point decompresses k.
func (k Key) Point() (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(k[:])
	if err != nil {
		return nil, ErrInvalidPoint
	}

	return p, nil
}

// ReduceKey interprets k as a 256-bit little-endian integer and reduces it.
func ReduceKey(k Key) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], k[:])

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// 64 byte input never fails
		panic(err)
	}

	return s
}

// RandomScalar returns a uniformly distributed scalar read from crypto/rand.
func RandomScalar() (*edwards25519.Scalar, error) {
	var seed [64]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, errors.Wrap(err, "could not read entropy")
	}

	return edwards25519.NewScalar().SetUniformBytes(seed[:])
}

// RandomScalars returns n random scalars.
func RandomScalars(n int) ([]*edwards25519.Scalar, error) {
	res := make([]*edwards25519.Scalar, n)
	for i := range res {
		s, err := RandomScalar()
		if err != nil {
			return nil, err
		}
		res[i] = s
	}

	return res, nil
}
