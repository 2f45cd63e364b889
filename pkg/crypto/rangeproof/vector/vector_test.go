// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package vector

import (
	"encoding/binary"
	"testing"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar(v uint64) *edwards25519.Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], v)
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	return s
}

func scalars(vs ...uint64) []*edwards25519.Scalar {
	res := make([]*edwards25519.Scalar, len(vs))
	for i, v := range vs {
		res[i] = scalar(v)
	}
	return res
}

func assertScalars(t *testing.T, exp, got []*edwards25519.Scalar) {
	require.Equal(t, len(exp), len(got))
	for i := range exp {
		assert.Equal(t, 1, exp[i].Equal(got[i]), "index %d", i)
	}
}

func TestPowers(t *testing.T) {
	assert.Empty(t, Powers(scalar(5), 0))
	assertScalars(t, scalars(1), Powers(scalar(5), 1))
	assertScalars(t, scalars(1, 5, 25, 125), Powers(scalar(5), 4))
}

func TestPowerSum(t *testing.T) {
	assert.Equal(t, 1, PowerSum(scalar(3), 0).Equal(scalar(0)))
	assert.Equal(t, 1, PowerSum(scalar(3), 1).Equal(scalar(1)))
	// 1 + 3 + 9 + 27
	assert.Equal(t, 1, PowerSum(scalar(3), 4).Equal(scalar(40)))
	// 2^64 - 1
	exp := edwards25519.NewScalar().Subtract(edwards25519.NewScalar().Multiply(scalar(1<<32), scalar(1<<32)), scalar(1))
	assert.Equal(t, 1, PowerSum(scalar(2), 64).Equal(exp))
}

func TestInnerProduct(t *testing.T) {
	ip, err := InnerProduct(scalars(1, 2, 3), scalars(4, 5, 6))
	require.NoError(t, err)
	assert.Equal(t, 1, ip.Equal(scalar(32)))

	ip, err = InnerProduct(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, ip.Equal(scalar(0)))

	_, err = InnerProduct(scalars(1, 2), scalars(1))
	assert.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestElementWise(t *testing.T) {
	a := scalars(10, 20, 30)
	b := scalars(1, 2, 3)

	sum, err := Add(a, b)
	require.NoError(t, err)
	assertScalars(t, scalars(11, 22, 33), sum)

	diff, err := Sub(a, b)
	require.NoError(t, err)
	assertScalars(t, scalars(9, 18, 27), diff)

	prod, err := Hadamard(a, b)
	require.NoError(t, err)
	assertScalars(t, scalars(10, 40, 90), prod)

	assertScalars(t, scalars(12, 22, 32), AddScalar(a, scalar(2)))
	assertScalars(t, scalars(8, 18, 28), SubScalar(a, scalar(2)))
	assertScalars(t, scalars(30, 60, 90), MulScalar(a, scalar(3)))
	assertScalars(t, scalars(7, 7), FromScalar(scalar(7), 2))

	// inputs are left untouched
	assertScalars(t, scalars(10, 20, 30), a)

	_, err = Add(a, b[:2])
	assert.True(t, errors.Is(err, ErrSizeMismatch))
	_, err = Sub(a, b[:2])
	assert.True(t, errors.Is(err, ErrSizeMismatch))
	_, err = Hadamard(a, b[:2])
	assert.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestPoints(t *testing.T) {
	g := edwards25519.NewGeneratorPoint()
	p := []*edwards25519.Point{g, new(edwards25519.Point).Add(g, g)}

	sum, err := Hadamard2(p, p)
	require.NoError(t, err)
	assert.Equal(t, 1, sum[0].Equal(p[1]))

	mul := MulScalarPoints(p, scalar(2))
	assert.Equal(t, 1, mul[0].Equal(p[1]))
	assert.Equal(t, 1, mul[1].Equal(new(edwards25519.Point).ScalarBaseMult(scalar(4))))

	_, err = Hadamard2(p, p[:1])
	assert.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestSlice(t *testing.T) {
	v := scalars(0, 1, 2, 3)

	s, err := Slice(v, 1, 3)
	require.NoError(t, err)
	assertScalars(t, scalars(1, 2), s)

	s, err = Slice(v, 0, 4)
	require.NoError(t, err)
	assert.Len(t, s, 4)

	for _, r := range [][2]int{{4, 4}, {2, 2}, {3, 1}, {0, 5}, {-1, 2}} {
		_, err = Slice(v, r[0], r[1])
		assert.True(t, errors.Is(err, ErrRange), "%v", r)
	}
}

func TestInvert(t *testing.T) {
	x := scalar(12345)
	inv, err := Invert(x)
	require.NoError(t, err)
	assert.Equal(t, 1, edwards25519.NewScalar().Multiply(x, inv).Equal(scalar(1)))

	_, err = Invert(scalar(0))
	assert.Equal(t, ErrZeroInverse, err)

	invs, err := InvertAll(scalars(2, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, edwards25519.NewScalar().Multiply(invs[1], scalar(4)).Equal(scalar(1)))

	_, err = InvertAll(scalars(2, 0))
	assert.True(t, errors.Is(err, ErrZeroInverse))
}
