// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package rangeproof

import (
	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/vector"
	"github.com/pkg/errors"
)

// ip12 is <1^N, 2^N> = 2^N - 1.
var ip12 = vector.PowerSum(twoN[1], N)

// polynomial holds the coefficients of l(X) = l0 + sL * X and
// r(X) = r0 + r1 * X, and of t(X) = <l(X), r(X)> above degree zero.
type polynomial struct {
	l0, sL []*edwards25519.Scalar
	r0, r1 []*edwards25519.Scalar

	t1, t2 *edwards25519.Scalar

	// zpow is <1, z, ..., z^(m+1)>.
	zpow []*edwards25519.Scalar
}

// computePoly builds the polynomials for m padded values given the bit
// vectors, the blinding vectors and the challenges y and z.
func computePoly(aL, aR, sL, sR []*edwards25519.Scalar, y, z *edwards25519.Scalar, m int) (*polynomial, error) {
	MN := m * N
	if len(aL) != MN || len(aR) != MN || len(sL) != MN || len(sR) != MN {
		return nil, errors.Wrapf(vector.ErrSizeMismatch, "expected vectors of %d", MN)
	}

	p := &polynomial{
		l0:   vector.SubScalar(aL, z),
		sL:   sL,
		zpow: vector.Powers(z, m+2),
	}

	// z^(2+j) * 2^i for bit i of value j
	zeroTwos := make([]*edwards25519.Scalar, MN)
	for i := range zeroTwos {
		zeroTwos[i] = edwards25519.NewScalar().Multiply(p.zpow[2+i/N], twoN[i%N])
	}

	yMN := vector.Powers(y, MN)

	r0, err := vector.Hadamard(vector.AddScalar(aR, z), yMN)
	if err != nil {
		return nil, err
	}

	if p.r0, err = vector.Add(r0, zeroTwos); err != nil {
		return nil, err
	}

	if p.r1, err = vector.Hadamard(yMN, sR); err != nil {
		return nil, err
	}

	// t1 = <l0, r1> + <sL, r0>
	t1a, err := vector.InnerProduct(p.l0, p.r1)
	if err != nil {
		return nil, err
	}

	t1b, err := vector.InnerProduct(sL, p.r0)
	if err != nil {
		return nil, err
	}

	p.t1 = t1a.Add(t1a, t1b)

	if p.t2, err = vector.InnerProduct(sL, p.r1); err != nil {
		return nil, err
	}

	return p, nil
}

// evaluate returns l(x), r(x) and t = <l(x), r(x)>.
func (p *polynomial) evaluate(x *edwards25519.Scalar) ([]*edwards25519.Scalar, []*edwards25519.Scalar, *edwards25519.Scalar, error) {
	l, err := vector.Add(p.l0, vector.MulScalar(p.sL, x))
	if err != nil {
		return nil, nil, nil, err
	}

	r, err := vector.Add(p.r0, vector.MulScalar(p.r1, x))
	if err != nil {
		return nil, nil, nil, err
	}

	t, err := vector.InnerProduct(l, r)
	if err != nil {
		return nil, nil, nil, err
	}

	return l, r, t, nil
}

// computeDelta returns
// (z - z^2) * <1, y^MN> - sum_{j=1..m}(z^(j+2) * <1, 2^N>),
// the part of t0 that does not depend on the committed values.
func computeDelta(y, z *edwards25519.Scalar, m int) *edwards25519.Scalar {
	zpow := vector.Powers(z, m+3)
	ip1y := vector.PowerSum(y, m*N)

	k := edwards25519.NewScalar().Multiply(zpow[2], ip1y)
	k.Negate(k)
	for j := 1; j <= m; j++ {
		t := edwards25519.NewScalar().Multiply(zpow[j+2], ip12)
		k.Subtract(k, t)
	}

	// z * ip1y + k
	return k.MultiplyAdd(z, ip1y, k)
}
