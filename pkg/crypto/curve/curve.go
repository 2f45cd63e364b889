// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package curve

import (
	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/hash"
)

// HKey is the compressed value commitment generator, 8 * to_point(keccak(G)).
var HKey = Key{
	0x8b, 0x65, 0x59, 0x70, 0x15, 0x37, 0x99, 0xaf, 0x2a, 0xea, 0xdc, 0x9f, 0xf1, 0xad, 0xd0, 0xea,
	0x6c, 0x72, 0x51, 0xd5, 0x41, 0x54, 0xcf, 0xa9, 0x2c, 0x17, 0x3a, 0x0d, 0xd3, 0x9c, 0x1f, 0x94,
}

var (
	hPoint   *edwards25519.Point
	invEight *edwards25519.Scalar
	minusOne *edwards25519.Scalar
)

func init() {
	var err error
	if hPoint, err = HKey.Point(); err != nil {
		panic(err)
	}

	eight := edwards25519.NewScalar()
	for i := 0; i < 8; i++ {
		eight.Add(eight, One())
	}
	invEight = edwards25519.NewScalar().Invert(eight)
	minusOne = edwards25519.NewScalar().Negate(One())
}

// G returns the base point.
func G() *edwards25519.Point {
	return edwards25519.NewGeneratorPoint()
}

// H returns the value generator.
func H() *edwards25519.Point {
	return new(edwards25519.Point).Set(hPoint)
}

// One returns the scalar 1.
func One() *edwards25519.Scalar {
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(Identity[:])
	return s
}

// InvEight returns the inverse of the cofactor modulo the group order.
func InvEight() *edwards25519.Scalar {
	return edwards25519.NewScalar().Set(invEight)
}

// MinusOne returns l - 1.
func MinusOne() *edwards25519.Scalar {
	return edwards25519.NewScalar().Set(minusOne)
}

// ScalarMultH returns a * H.
func ScalarMultH(a *edwards25519.Scalar) *edwards25519.Point {
	return new(edwards25519.Point).ScalarMult(a, hPoint)
}

// DivEight returns p / 8, the form in which proof points are published.
func DivEight(p *edwards25519.Point) *edwards25519.Point {
	return new(edwards25519.Point).ScalarMult(invEight, p)
}

// MulEight returns 8 * p, clearing any torsion component.
func MulEight(p *edwards25519.Point) *edwards25519.Point {
	return new(edwards25519.Point).MultByCofactor(p)
}

// IsIdentity reports whether p is the neutral element.
func IsIdentity(p *edwards25519.Point) bool {
	return p.Equal(edwards25519.NewIdentityPoint()) == 1
}

// InMainSubgroup reports whether p has prime order, i.e. l * p is the identity.
func InMainSubgroup(p *edwards25519.Point) bool {
	lp := new(edwards25519.Point).ScalarMult(minusOne, p)
	lp.Add(lp, p)
	return IsIdentity(lp)
}

// Commit returns the Pedersen commitment mask * G + amount * H.
func Commit(amount uint64, mask *edwards25519.Scalar) *edwards25519.Point {
	return CommitScalar(ReduceKey(Uint64Key(amount)), mask)
}

// CommitScalar returns mask * G + a * H in constant time. Both scalars are
// secret on the prover side.
func CommitScalar(a, mask *edwards25519.Scalar) *edwards25519.Point {
	p := new(edwards25519.Point).ScalarBaseMult(mask)
	return p.Add(p, ScalarMultH(a))
}

// ZeroCommit commits to amount with the unit mask, G + amount * H.
func ZeroCommit(amount uint64) *edwards25519.Point {
	return Commit(amount, One())
}

// HashToScalar reduces the keccak digest of the concatenated inputs.
func HashToScalar(data ...[]byte) *edwards25519.Scalar {
	return ReduceKey(Key(hash.Keccak256(data...)))
}

// HashKeysToScalar hashes the concatenation of keys.
func HashKeysToScalar(keys ...Key) *edwards25519.Scalar {
	data := make([][]byte, len(keys))
	for i := range keys {
		data[i] = keys[i][:]
	}

	return HashToScalar(data...)
}

// IsZeroScalar reports whether s is zero.
func IsZeroScalar(s *edwards25519.Scalar) bool {
	return s.Equal(edwards25519.NewScalar()) == 1
}
