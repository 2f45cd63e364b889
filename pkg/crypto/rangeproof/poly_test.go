// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package rangeproof

import (
	"math"
	"math/rand"
	"testing"

	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar(v uint64) *edwards25519.Scalar {
	return curve.ReduceKey(curve.Uint64Key(v))
}

func randomScalar(t *testing.T) *edwards25519.Scalar {
	s, err := curve.RandomScalar()
	require.NoError(t, err)
	return s
}

func TestIP12(t *testing.T) {
	assert.Equal(t, 1, ip12.Equal(scalar(math.MaxUint64)))
}

func TestDelta(t *testing.T) {
	y := randomScalar(t)
	z := randomScalar(t)

	for _, m := range []int{1, 2, 4} {
		zSq := edwards25519.NewScalar().Multiply(z, z)

		// (z - z^2) * sum(y^i) - sum_j(z^(j+2) * sum(2^i))
		want := edwards25519.NewScalar()
		expY := curve.One()
		for i := 0; i < m*N; i++ {
			a := edwards25519.NewScalar().Subtract(z, zSq)
			a.Multiply(a, expY)
			want.Add(want, a)
			expY.Multiply(expY, y)
		}

		zj := edwards25519.NewScalar().Multiply(zSq, z)
		for j := 0; j < m; j++ {
			exp2 := curve.One()
			for i := 0; i < N; i++ {
				want.Subtract(want, edwards25519.NewScalar().Multiply(zj, exp2))
				exp2.Add(exp2, exp2)
			}
			zj.Multiply(zj, z)
		}

		have := computeDelta(y, z, m)
		assert.Equal(t, 1, want.Equal(have), "m = %d", m)
	}
}

// With y = z = 1 and m = 1, delta is -(2^64 - 1).
func TestDeltaOnes(t *testing.T) {
	have := computeDelta(curve.One(), curve.One(), 1)
	want := edwards25519.NewScalar().Negate(ip12)
	assert.Equal(t, 1, want.Equal(have))
}

// t(x) = <l(x), r(x)> must equal t0 + t1 * x + t2 * x^2 where
// t0 = sum(z^(j+2) * v_j) + delta(y, z) for a correct bit decomposition.
func TestPolynomial(t *testing.T) {
	values := []uint64{rand.Uint64(), rand.Uint64(), 0}
	m := 4
	MN := m * N

	zero, one := edwards25519.NewScalar(), curve.One()
	aL := make([]*edwards25519.Scalar, MN)
	for i := range aL {
		aL[i] = zero
	}

	for j, v := range values {
		for i := 0; i < N; i++ {
			if v>>uint(i)&1 == 1 {
				aL[j*N+i] = one
			}
		}
	}

	aR := vector.SubScalar(aL, one)

	sL, err := curve.RandomScalars(MN)
	require.NoError(t, err)
	sR, err := curve.RandomScalars(MN)
	require.NoError(t, err)

	y, z, x := randomScalar(t), randomScalar(t), randomScalar(t)

	poly, err := computePoly(aL, aR, sL, sR, y, z, m)
	require.NoError(t, err)
	assert.Len(t, poly.zpow, m+2)

	_, _, tx, err := poly.evaluate(x)
	require.NoError(t, err)

	t0 := computeDelta(y, z, m)
	for j, v := range values {
		t0.MultiplyAdd(poly.zpow[j+2], scalar(v), t0)
	}

	want := edwards25519.NewScalar().Multiply(poly.t2, x)
	want.Add(want, poly.t1)
	want.Multiply(want, x)
	want.Add(want, t0)

	assert.Equal(t, 1, want.Equal(tx))
}

func TestComputePolySizeMismatch(t *testing.T) {
	short := vector.FromScalar(curve.One(), N-1)
	full := vector.FromScalar(curve.One(), N)

	_, err := computePoly(short, full, full, full, curve.One(), curve.One(), 1)
	assert.ErrorIs(t, err, vector.ErrSizeMismatch)
}
