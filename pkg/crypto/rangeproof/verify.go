// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package rangeproof

import (
	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/generators"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/multiexp"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/vector"
	"github.com/dusk-network/dusk-bulletproofs/pkg/util/diagnostics"
	"github.com/pkg/errors"
)

// Verify checks a single proof.
func Verify(p *Proof) bool {
	return VerifyBatch([]*Proof{p})
}

// VerifyBatch checks all proofs at once. Each proof is weighted by a fresh
// random scalar so that an invalid proof cannot be offset by another one.
// Malformed proofs make the batch fail; VerifyBatch never panics on proof
// content. An empty batch is rejected.
func VerifyBatch(proofs []*Proof) bool {
	if err := verifyBatch(proofs); err != nil {
		diagnostics.LogError("range proof batch rejected", err)
		return false
	}

	return true
}

// batch accumulates the weighted terms of every proof for the two final
// checks:
//
//	y0 * G + y1 * H - Y2 - Y3 - Y4 == 0
//	z3 * H - z1 * G + Z0 + Z2 - sum(z4_i * Gi + z5_i * Hi) == 0
type batch struct {
	gens    *generators.Cache
	scratch *multiexp.Scratch

	y0, y1, z1, z3 *edwards25519.Scalar
	Y2, Y3, Y4     *edwards25519.Point
	Z0, Z2         *edwards25519.Point
	z4, z5         []*edwards25519.Scalar
}

func verifyBatch(proofs []*Proof) error {
	if len(proofs) == 0 {
		return errors.New("empty batch")
	}

	maxLength := 0
	for i, p := range proofs {
		if err := checkShape(p); err != nil {
			return errors.Wrapf(err, "proof %d", i)
		}

		if len(p.L) > maxLength {
			maxLength = len(p.L)
		}
	}

	if maxLength > MaxRounds {
		return errors.Errorf("a proof has %d rounds, at most %d allowed", maxLength, MaxRounds)
	}

	maxMN := 1 << maxLength
	b := &batch{
		gens:    generators.Get(),
		scratch: multiexp.NewScratch(),
		y0:      edwards25519.NewScalar(),
		y1:      edwards25519.NewScalar(),
		z1:      edwards25519.NewScalar(),
		z3:      edwards25519.NewScalar(),
		Y2:      edwards25519.NewIdentityPoint(),
		Y3:      edwards25519.NewIdentityPoint(),
		Y4:      edwards25519.NewIdentityPoint(),
		Z0:      edwards25519.NewIdentityPoint(),
		Z2:      edwards25519.NewIdentityPoint(),
		z4:      vector.FromScalar(edwards25519.NewScalar(), maxMN),
		z5:      vector.FromScalar(edwards25519.NewScalar(), maxMN),
	}

	for i, p := range proofs {
		if err := b.add(p); err != nil {
			return errors.Wrapf(err, "proof %d", i)
		}
	}

	return b.check()
}

// checkShape rejects proofs whose scalars are not reduced or whose vector
// lengths are inconsistent.
func checkShape(p *Proof) error {
	if p == nil {
		return errors.New("nil proof")
	}

	for _, k := range []curve.Key{p.Taux, p.Mu, p.Ap, p.Bp, p.T} {
		if !k.IsReduced() {
			return curve.ErrNonCanonicalScalar
		}
	}

	if len(p.V) < 1 {
		return errors.New("no commitments")
	}

	if len(p.V) > generators.MaxM {
		return errors.Errorf("%d commitments, at most %d allowed", len(p.V), generators.MaxM)
	}

	if len(p.L) != len(p.R) {
		return errors.Errorf("mismatched L and R: %d != %d", len(p.L), len(p.R))
	}

	if len(p.L) == 0 {
		return errors.New("empty L and R")
	}

	return nil
}

// add folds p into the batch with a fresh random weight.
func (b *batch) add(p *Proof) error {
	// smallest power of two covering V
	logM, M := 0, 1
	for M < len(p.V) {
		logM++
		M <<= 1
	}

	rounds := logM + logN
	if len(p.L) != rounds {
		return errors.Errorf("%d rounds for %d values, expected %d", len(p.L), len(p.V), rounds)
	}

	MN := M * N

	weight, err := curve.RandomScalar()
	if err != nil {
		return err
	}

	ts := newTranscript(p.V)
	y := ts.mash(p.A, p.S)
	if curve.IsZeroScalar(y) {
		return errors.New("y is zero")
	}

	z := ts.rehash(curve.ScalarKey(y))
	if curve.IsZeroScalar(z) {
		return errors.New("z is zero")
	}

	x := ts.mash(curve.ScalarKey(z), p.T1, p.T2)
	if curve.IsZeroScalar(x) {
		return errors.New("x is zero")
	}

	xip := ts.mash(curve.ScalarKey(x), p.Taux, p.Mu, p.T)
	if curve.IsZeroScalar(xip) {
		return errors.New("x_ip is zero")
	}

	// Shape was checked, the scalars are reduced.
	taux, _ := p.Taux.Scalar()
	mu, _ := p.Mu.Scalar()
	a, _ := p.Ap.Scalar()
	bb, _ := p.Bp.Scalar()
	t, _ := p.T.Scalar()

	V8, err := mulEightAll(p.V)
	if err != nil {
		return errors.Wrap(err, "V")
	}

	L8, err := mulEightAll(p.L)
	if err != nil {
		return errors.Wrap(err, "L")
	}

	R8, err := mulEightAll(p.R)
	if err != nil {
		return errors.Wrap(err, "R")
	}

	pts, err := mulEightAll([]curve.Key{p.T1, p.T2, p.S, p.A})
	if err != nil {
		return errors.Wrap(err, "T1, T2, S, A")
	}

	T1, T2, S, A := pts[0], pts[1], pts[2], pts[3]

	b.y0.MultiplyAdd(taux, weight, b.y0)

	zpow := vector.Powers(z, M+3)

	// y1 += (t - delta(y, z)) * weight
	tmp := edwards25519.NewScalar().Subtract(t, computeDelta(y, z, M))
	b.y1.MultiplyAdd(tmp, weight, b.y1)

	b.scratch.ClearAndReserve(len(V8))
	for j := range V8 {
		b.scratch.Append(zpow[j+2], V8[j])
	}

	Y2, err := b.scratch.Multiexp()
	if err != nil {
		return errors.Wrap(err, "Y2")
	}

	b.Y2.Add(b.Y2, Y2.ScalarMult(weight, Y2))

	xw := edwards25519.NewScalar().Multiply(x, weight)
	b.Y3.Add(b.Y3, new(edwards25519.Point).ScalarMult(xw, T1))

	xxw := edwards25519.NewScalar().Multiply(x, xw)
	b.Y4.Add(b.Y4, new(edwards25519.Point).ScalarMult(xxw, T2))

	// Z0 += (A + x * S) * weight
	Z0 := new(edwards25519.Point).ScalarMult(x, S)
	Z0.Add(Z0, A)
	b.Z0.Add(b.Z0, Z0.ScalarMult(weight, Z0))

	w := make([]*edwards25519.Scalar, rounds)
	for i := range w {
		w[i] = ts.mash(p.L[i], p.R[i])
		if curve.IsZeroScalar(w[i]) {
			return errors.Errorf("w[%d] is zero", i)
		}
	}

	winv, err := vector.InvertAll(w)
	if err != nil {
		return err
	}

	yinv, err := vector.Invert(y)
	if err != nil {
		return err
	}

	yinvpow := curve.One()
	ypow := curve.One()
	for i := 0; i < MN; i++ {
		g := edwards25519.NewScalar().Set(a)
		h := edwards25519.NewScalar().Multiply(bb, yinvpow)

		for j := rounds - 1; j >= 0; j-- {
			J := rounds - j - 1
			if i&(1<<uint(j)) == 0 {
				g.Multiply(g, winv[J])
				h.Multiply(h, w[J])
			} else {
				g.Multiply(g, w[J])
				h.Multiply(h, winv[J])
			}
		}

		g.Add(g, z)

		// h -= (z * y^i + z^(2+i/N) * 2^(i%N)) * y^-i
		tmp := edwards25519.NewScalar().Multiply(zpow[2+i/N], twoN[i%N])
		tmp.MultiplyAdd(z, ypow, tmp)
		tmp.Multiply(tmp, yinvpow)
		h.Subtract(h, tmp)

		b.z4[i].MultiplyAdd(g, weight, b.z4[i])
		b.z5[i].MultiplyAdd(h, weight, b.z5[i])

		yinvpow.Multiply(yinvpow, yinv)
		ypow.Multiply(ypow, y)
	}

	b.z1.MultiplyAdd(mu, weight, b.z1)

	b.scratch.ClearAndReserve(2 * rounds)
	for i := 0; i < rounds; i++ {
		b.scratch.Append(edwards25519.NewScalar().Multiply(w[i], w[i]), L8[i])
		b.scratch.Append(edwards25519.NewScalar().Multiply(winv[i], winv[i]), R8[i])
	}

	Z2, err := b.scratch.Multiexp()
	if err != nil {
		return errors.Wrap(err, "Z2")
	}

	b.Z2.Add(b.Z2, Z2.ScalarMult(weight, Z2))

	// z3 += (t - a * b) * x_ip * weight
	tmp = edwards25519.NewScalar().Multiply(a, bb)
	tmp.Subtract(t, tmp)
	tmp.Multiply(tmp, xip)
	b.z3.MultiplyAdd(tmp, weight, b.z3)

	return nil
}

// check evaluates both batched equations.
func (b *batch) check() error {
	check1 := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(b.y1, curve.H(), b.y0)
	check1.Subtract(check1, b.Y2)
	check1.Subtract(check1, b.Y3)
	check1.Subtract(check1, b.Y4)
	if !curve.IsIdentity(check1) {
		return errors.New("first check failed")
	}

	minusZ1 := edwards25519.NewScalar().Negate(b.z1)
	check2 := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(b.z3, curve.H(), minusZ1)
	check2.Add(check2, b.Z0)
	check2.Add(check2, b.Z2)

	gi, err := b.gens.GiVector(len(b.z4))
	if err != nil {
		return err
	}

	hi, err := b.gens.HiVector(len(b.z5))
	if err != nil {
		return err
	}

	b.scratch.ClearAndReserve(2 * len(b.z4))
	for i := range b.z4 {
		b.scratch.Append(edwards25519.NewScalar().Negate(b.z4[i]), gi[i])
		b.scratch.Append(edwards25519.NewScalar().Negate(b.z5[i]), hi[i])
	}

	sum, err := b.gens.MultiexpHiGi(b.scratch)
	if err != nil {
		return err
	}

	check2.Add(check2, sum)
	if !curve.IsIdentity(check2) {
		return errors.New("second check failed")
	}

	return nil
}

// mulEightAll decodes keys and clears their torsion.
func mulEightAll(keys []curve.Key) ([]*edwards25519.Point, error) {
	res := make([]*edwards25519.Point, len(keys))
	for i := range keys {
		p, err := keys[i].Point()
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}

		res[i] = curve.MulEight(p)
	}

	return res, nil
}
