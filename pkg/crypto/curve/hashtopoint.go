// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package curve

import (
	"encoding/binary"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/hash"
	"github.com/pkg/errors"
)

// montgomeryA is the Curve25519 Montgomery coefficient.
const montgomeryA = 486662

var (
	feZero     = new(field.Element)
	feOne      = new(field.Element).One()
	feNineteen = feFromUint64(19)
	feMA       *field.Element // -A
	feMA2      *field.Element // -A^2
	feSqrtM1   *field.Element
	feFFFB1    *field.Element // sqrt(-2 * A * (A + 2))
	feFFFB2    *field.Element // sqrt(2 * A * (A + 2))
	feFFFB3    *field.Element // sqrt(-sqrt(-1) * A * (A + 2))
	feFFFB4    *field.Element // sqrt(sqrt(-1) * A * (A + 2))
)

func init() {
	a := feFromUint64(montgomeryA)
	feMA = new(field.Element).Negate(a)
	feMA2 = new(field.Element).Square(a)
	feMA2.Negate(feMA2)

	feSqrtM1 = mustSqrt(new(field.Element).Negate(feOne))

	// A * (A + 2)
	aa2 := new(field.Element).Add(a, feFromUint64(2))
	aa2.Multiply(aa2, a)

	two := feFromUint64(2)
	v := new(field.Element).Multiply(two, aa2)
	feFFFB2 = mustSqrt(v)
	feFFFB1 = mustSqrt(new(field.Element).Negate(v))

	v = new(field.Element).Multiply(feSqrtM1, aa2)
	feFFFB4 = mustSqrt(v)
	feFFFB3 = mustSqrt(new(field.Element).Negate(v))
}

func feFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], x)

	fe, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}

	return fe
}

func mustSqrt(x *field.Element) *field.Element {
	r, wasSquare := new(field.Element).SqrtRatio(x, feOne)
	if wasSquare != 1 {
		panic("curve: field constant has no square root")
	}

	return r
}

// divPowM1 returns (u / v)^((p + 3) / 8).
func divPowM1(u, v *field.Element) *field.Element {
	v3 := new(field.Element).Square(v)
	v3.Multiply(v3, v)

	uv7 := new(field.Element).Square(v3)
	uv7.Multiply(uv7, v)
	uv7.Multiply(uv7, u)
	uv7.Pow22523(uv7)
	uv7.Multiply(uv7, v3)

	return uv7.Multiply(uv7, u)
}

// mapToPoint deterministically maps 32 arbitrary bytes onto the curve using
// the Elligator-style map of CryptoNote. All 256 bits of the input are taken
// modulo p, unlike a regular field element decoding.
func mapToPoint(s []byte) (*edwards25519.Point, error) {
	u, err := new(field.Element).SetBytes(s)
	if err != nil {
		return nil, err
	}

	if s[31]&0x80 != 0 {
		u.Add(u, feNineteen)
	}

	v := new(field.Element).Square(u)
	v.Add(v, v)
	w := new(field.Element).Add(v, feOne)
	x := new(field.Element).Square(w)
	y := new(field.Element).Multiply(feMA2, v)
	x.Add(x, y)

	rX := divPowM1(w, x)
	y.Square(rX)
	x.Multiply(y, x)

	z := new(field.Element).Set(feMA)
	sign := 0

	y.Subtract(w, x)
	switch {
	case y.Equal(feZero) == 1:
		rX.Multiply(rX, feFFFB2)
		rX.Multiply(rX, u)
		z.Multiply(z, v)
	case new(field.Element).Add(w, x).Equal(feZero) == 1:
		rX.Multiply(rX, feFFFB1)
		rX.Multiply(rX, u)
		z.Multiply(z, v)
	default:
		x.Multiply(x, feSqrtM1)
		y.Subtract(w, x)
		if y.Equal(feZero) == 0 {
			rX.Multiply(rX, feFFFB3)
		} else {
			rX.Multiply(rX, feFFFB4)
		}
		sign = 1
	}

	if rX.IsNegative() != sign {
		rX.Negate(rX)
	}

	rZ := new(field.Element).Add(z, w)
	rY := new(field.Element).Subtract(z, w)
	rX.Multiply(rX, rZ)

	// projective (X:Y:Z) to extended (XZ:YZ:Z^2:XY)
	eX := new(field.Element).Multiply(rX, rZ)
	eY := new(field.Element).Multiply(rY, rZ)
	eZ := new(field.Element).Square(rZ)
	eT := new(field.Element).Multiply(rX, rY)

	p, err := new(edwards25519.Point).SetExtendedCoordinates(eX, eY, eZ, eT)
	if err != nil {
		return nil, errors.Wrap(err, "mapped point is not on the curve")
	}

	return p, nil
}

// HashToPoint maps k into the prime order subgroup: the keccak digest of k is
// mapped onto the curve and multiplied by the cofactor.
func HashToPoint(k Key) (*edwards25519.Point, error) {
	h := hash.Keccak256(k[:])

	p, err := mapToPoint(h[:])
	if err != nil {
		return nil, err
	}

	return p.MultByCofactor(p), nil
}
