// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package vector holds the scalar and point vector arithmetic used by the
// inner product argument. Apart from Slice, every function allocates its
// result and leaves the inputs untouched.
package vector

import (
	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

var (
	// ErrSizeMismatch is returned when two operands must have the same length
	// and do not.
	ErrSizeMismatch = errors.New("vector length mismatch")
	// ErrRange is returned by Slice on a bad range.
	ErrRange = errors.New("slice range out of bounds")
	// ErrZeroInverse is returned when inverting zero.
	ErrZeroInverse = errors.New("zero has no inverse")
)

// Add adds two vectors element-wise.
func Add(a, b []*edwards25519.Scalar) ([]*edwards25519.Scalar, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrSizeMismatch, "add: %d != %d", len(a), len(b))
	}

	res := make([]*edwards25519.Scalar, len(a))
	for i := range a {
		res[i] = edwards25519.NewScalar().Add(a[i], b[i])
	}

	return res, nil
}

// AddScalar adds b to every element of a.
func AddScalar(a []*edwards25519.Scalar, b *edwards25519.Scalar) []*edwards25519.Scalar {
	res := make([]*edwards25519.Scalar, len(a))
	for i := range a {
		res[i] = edwards25519.NewScalar().Add(a[i], b)
	}

	return res
}

// Sub subtracts b from a element-wise.
func Sub(a, b []*edwards25519.Scalar) ([]*edwards25519.Scalar, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrSizeMismatch, "sub: %d != %d", len(a), len(b))
	}

	res := make([]*edwards25519.Scalar, len(a))
	for i := range a {
		res[i] = edwards25519.NewScalar().Subtract(a[i], b[i])
	}

	return res, nil
}

// SubScalar subtracts b from every element of a.
func SubScalar(a []*edwards25519.Scalar, b *edwards25519.Scalar) []*edwards25519.Scalar {
	res := make([]*edwards25519.Scalar, len(a))
	for i := range a {
		res[i] = edwards25519.NewScalar().Subtract(a[i], b)
	}

	return res
}

// MulScalar multiplies every element of a by b.
func MulScalar(a []*edwards25519.Scalar, b *edwards25519.Scalar) []*edwards25519.Scalar {
	res := make([]*edwards25519.Scalar, len(a))
	for i := range a {
		res[i] = edwards25519.NewScalar().Multiply(a[i], b)
	}

	return res
}

// MulScalarPoints multiplies every point of a by b.
func MulScalarPoints(a []*edwards25519.Point, b *edwards25519.Scalar) []*edwards25519.Point {
	res := make([]*edwards25519.Point, len(a))
	for i := range a {
		res[i] = new(edwards25519.Point).ScalarMult(b, a[i])
	}

	return res
}

// Powers returns <1, x, x^2, ..., x^(n-1)>.
func Powers(x *edwards25519.Scalar, n int) []*edwards25519.Scalar {
	res := make([]*edwards25519.Scalar, n)
	if n == 0 {
		return res
	}

	res[0] = one()
	for i := 1; i < n; i++ {
		res[i] = edwards25519.NewScalar().Multiply(res[i-1], x)
	}

	return res
}

// PowerSum returns 1 + x + ... + x^(n-1), accumulated term by term.
func PowerSum(x *edwards25519.Scalar, n int) *edwards25519.Scalar {
	res := edwards25519.NewScalar()
	if n == 0 {
		return res
	}

	res.Set(one())
	if n == 1 {
		return res
	}

	prev := edwards25519.NewScalar().Set(x)
	for i := 1; i < n; i++ {
		if i > 1 {
			prev.Multiply(prev, x)
		}
		res.Add(res, prev)
	}

	return res
}

// InnerProduct returns the sum of a_i * b_i.
func InnerProduct(a, b []*edwards25519.Scalar) (*edwards25519.Scalar, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrSizeMismatch, "inner product: %d != %d", len(a), len(b))
	}

	res := edwards25519.NewScalar()
	for i := range a {
		res.MultiplyAdd(a[i], b[i], res)
	}

	return res, nil
}

// Hadamard multiplies two scalar vectors element-wise.
func Hadamard(a, b []*edwards25519.Scalar) ([]*edwards25519.Scalar, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrSizeMismatch, "hadamard: %d != %d", len(a), len(b))
	}

	res := make([]*edwards25519.Scalar, len(a))
	for i := range a {
		res[i] = edwards25519.NewScalar().Multiply(a[i], b[i])
	}

	return res, nil
}

// Hadamard2 adds two point vectors element-wise.
func Hadamard2(a, b []*edwards25519.Point) ([]*edwards25519.Point, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrSizeMismatch, "hadamard2: %d != %d", len(a), len(b))
	}

	res := make([]*edwards25519.Point, len(a))
	for i := range a {
		res[i] = new(edwards25519.Point).Add(a[i], b[i])
	}

	return res, nil
}

// FromScalar returns a vector of n copies of a.
func FromScalar(a *edwards25519.Scalar, n int) []*edwards25519.Scalar {
	res := make([]*edwards25519.Scalar, n)
	for i := range res {
		res[i] = edwards25519.NewScalar().Set(a)
	}

	return res
}

// Slice returns v[start:stop]. The range must be non-empty and inside v.
func Slice[T any](v []T, start, stop int) ([]T, error) {
	if start < 0 || start >= len(v) || stop > len(v) || start >= stop {
		return nil, errors.Wrapf(ErrRange, "[%d:%d] of %d", start, stop, len(v))
	}

	return v[start:stop], nil
}

// Invert returns 1/x.
func Invert(x *edwards25519.Scalar) (*edwards25519.Scalar, error) {
	if x.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrZeroInverse
	}

	return edwards25519.NewScalar().Invert(x), nil
}

// InvertAll inverts every element of v.
func InvertAll(v []*edwards25519.Scalar) ([]*edwards25519.Scalar, error) {
	res := make([]*edwards25519.Scalar, len(v))
	for i := range v {
		inv, err := Invert(v[i])
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		res[i] = inv
	}

	return res, nil
}

func one() *edwards25519.Scalar {
	var b [32]byte
	b[0] = 1
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	return s
}
