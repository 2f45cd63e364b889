// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package rangeproof implements aggregated Bulletproofs proving that up to
// generators.MaxM committed values lie in [0, 2^64), together with the
// batched verifier and the proof wire format.
package rangeproof

import (
	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/generators"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/multiexp"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/vector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("process", "rangeproof")

// N is the number of bits proven per value.
const N = generators.MaxN

// maxAttempts bounds the restarts caused by a zero challenge. Each restart
// happens with probability about 2^-252.
const maxAttempts = 16

var (
	// ErrInvalidInput is returned for empty, oversized, mismatched or
	// non-reduced prover inputs.
	ErrInvalidInput = errors.New("invalid range proof input")

	errZeroChallenge = errors.New("zero challenge")
)

// twoN is <1, 2, 4, ..., 2^(N-1)>.
var twoN = vector.Powers(curve.ReduceKey(curve.Uint64Key(2)), N)

// Prove proves that every value lies in [0, 2^64). blinds are the commitment
// masks and must be reduced scalars, one per value.
func Prove(values []uint64, blinds []curve.Key) (*Proof, error) {
	sv := make([]curve.Key, len(values))
	for i := range values {
		sv[i] = curve.Uint64Key(values[i])
	}

	return ProveScalars(sv, blinds)
}

// ProveSingle proves a single value.
func ProveSingle(v uint64, blind curve.Key) (*Proof, error) {
	return Prove([]uint64{v}, []curve.Key{blind})
}

// ProveScalarsSingle proves a single value given as a scalar.
func ProveScalarsSingle(v, blind curve.Key) (*Proof, error) {
	return ProveScalars([]curve.Key{v}, []curve.Key{blind})
}

// ProveScalars is Prove for values given as scalars. Only the low 64 bits of
// each value enter the bit decomposition, so a value of 2^64 or more yields a
// proof that does not verify.
func ProveScalars(values, blinds []curve.Key) (*Proof, error) {
	if len(values) != len(blinds) {
		return nil, errors.Wrapf(ErrInvalidInput, "%d values but %d blinds", len(values), len(blinds))
	}

	if len(values) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "no values")
	}

	if len(values) > generators.MaxM {
		return nil, errors.Wrapf(ErrInvalidInput, "%d values, at most %d allowed", len(values), generators.MaxM)
	}

	pr := &prover{
		gens:    generators.Get(),
		scratch: multiexp.NewScratch(),
		gamma:   make([]*edwards25519.Scalar, len(blinds)),
		V:       make([]curve.Key, len(values)),
		m:       1,
	}

	for pr.m < len(values) {
		pr.m <<= 1
	}

	for i := range values {
		v, err := values[i].Scalar()
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidInput, "value %d is not reduced", i)
		}

		g, err := blinds[i].Scalar()
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidInput, "blind %d is not reduced", i)
		}

		pr.gamma[i] = g
		pr.V[i] = curve.PointKey(curve.DivEight(curve.CommitScalar(v, g)))
	}

	MN := pr.m * N
	zero, one := edwards25519.NewScalar(), curve.One()
	pr.aL = make([]*edwards25519.Scalar, MN)
	for i := range pr.aL {
		pr.aL[i] = zero
	}

	for j := range values {
		for i := 0; i < N; i++ {
			if values[j][i/8]>>(i%8)&1 == 1 {
				pr.aL[j*N+i] = one
			}
		}
	}

	pr.aR = vector.SubScalar(pr.aL, one)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		p, err := pr.attempt()
		if err == errZeroChallenge {
			log.WithField("attempt", attempt).Debug("zero challenge, restarting proof")
			continue
		}

		if err != nil {
			return nil, err
		}

		return p, nil
	}

	return nil, errors.Errorf("no proof after %d attempts", maxAttempts)
}

// prover holds the inputs shared by every attempt at a proof.
type prover struct {
	gens    *generators.Cache
	scratch *multiexp.Scratch

	V      []curve.Key
	gamma  []*edwards25519.Scalar
	aL, aR []*edwards25519.Scalar
	// m is the number of values rounded up to a power of two.
	m int
}

// attempt runs the protocol once with fresh randomness. It returns
// errZeroChallenge when a challenge is zero and the proof must start over.
func (pr *prover) attempt() (*Proof, error) {
	MN := pr.m * N
	ts := newTranscript(pr.V)

	alpha, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}

	A, err := pr.commitVectors(pr.aL, pr.aR, alpha)
	if err != nil {
		return nil, errors.Wrap(err, "[Prove] - A")
	}

	sL, err := curve.RandomScalars(MN)
	if err != nil {
		return nil, err
	}

	sR, err := curve.RandomScalars(MN)
	if err != nil {
		return nil, err
	}

	rho, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}

	S, err := pr.commitVectors(sL, sR, rho)
	if err != nil {
		return nil, errors.Wrap(err, "[Prove] - S")
	}

	y := ts.mash(A, S)
	if curve.IsZeroScalar(y) {
		return nil, errZeroChallenge
	}

	z := ts.rehash(curve.ScalarKey(y))
	if curve.IsZeroScalar(z) {
		return nil, errZeroChallenge
	}

	poly, err := computePoly(pr.aL, pr.aR, sL, sR, y, z, pr.m)
	if err != nil {
		return nil, errors.Wrap(err, "[Prove] - poly")
	}

	tau1, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}

	tau2, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}

	T1 := curve.PointKey(curve.DivEight(curve.CommitScalar(poly.t1, tau1)))
	T2 := curve.PointKey(curve.DivEight(curve.CommitScalar(poly.t2, tau2)))

	x := ts.mash(curve.ScalarKey(z), T1, T2)
	if curve.IsZeroScalar(x) {
		return nil, errZeroChallenge
	}

	// taux = tau1 * x + tau2 * x^2 + sum(z^(j+2) * gamma_j)
	xsq := edwards25519.NewScalar().Multiply(x, x)
	taux := edwards25519.NewScalar().Multiply(tau1, x)
	taux.MultiplyAdd(tau2, xsq, taux)
	for j := range pr.gamma {
		taux.MultiplyAdd(poly.zpow[j+2], pr.gamma[j], taux)
	}

	mu := edwards25519.NewScalar().MultiplyAdd(x, rho, alpha)

	l, r, t, err := poly.evaluate(x)
	if err != nil {
		return nil, errors.Wrap(err, "[Prove] - l, r")
	}

	p := &Proof{
		V:    pr.V,
		A:    A,
		S:    S,
		T1:   T1,
		T2:   T2,
		Taux: curve.ScalarKey(taux),
		Mu:   curve.ScalarKey(mu),
		T:    curve.ScalarKey(t),
	}

	xip := ts.mash(curve.ScalarKey(x), p.Taux, p.Mu, p.T)
	if curve.IsZeroScalar(xip) {
		return nil, errZeroChallenge
	}

	if err := pr.innerProduct(p, ts, l, r, y, xip); err != nil {
		return nil, err
	}

	return p, nil
}

// commitVectors returns (sum(a_i * Gi + b_i * Hi) + blind * G) / 8.
func (pr *prover) commitVectors(a, b []*edwards25519.Scalar, blind *edwards25519.Scalar) (curve.Key, error) {
	ve, err := pr.gens.VectorExponent(pr.scratch, a, b)
	if err != nil {
		return curve.Key{}, err
	}

	ve.Add(ve, new(edwards25519.Point).ScalarBaseMult(blind))
	return curve.PointKey(curve.DivEight(ve)), nil
}

// innerProduct runs the folding rounds proving <l, r> = t against the
// generators Gi and Hi * y^-i, filling in p.L, p.R, p.Ap and p.Bp.
func (pr *prover) innerProduct(p *Proof, ts *transcript, a, b []*edwards25519.Scalar, y, xip *edwards25519.Scalar) error {
	MN := len(a)

	G, err := pr.gens.GiVector(MN)
	if err != nil {
		return errors.Wrap(err, "[Prove] - Gi")
	}

	Hi, err := pr.gens.HiVector(MN)
	if err != nil {
		return errors.Wrap(err, "[Prove] - Hi")
	}

	yinv, err := vector.Invert(y)
	if err != nil {
		return err
	}

	yinvpow := vector.Powers(yinv, MN)
	H := make([]*edwards25519.Point, MN)
	for i := range H {
		H[i] = new(edwards25519.Point).ScalarMult(yinvpow[i], Hi[i])
	}

	for n := MN; n > 1; n /= 2 {
		aLo, aHi, err := halves(a)
		if err != nil {
			return err
		}

		bLo, bHi, err := halves(b)
		if err != nil {
			return err
		}

		gLo, gHi, err := halves(G)
		if err != nil {
			return err
		}

		hLo, hHi, err := halves(H)
		if err != nil {
			return err
		}

		L, err := pr.crossTerm(gHi, hLo, aLo, bHi, xip)
		if err != nil {
			return errors.Wrap(err, "[Prove] - L")
		}

		R, err := pr.crossTerm(gLo, hHi, aHi, bLo, xip)
		if err != nil {
			return errors.Wrap(err, "[Prove] - R")
		}

		p.L = append(p.L, L)
		p.R = append(p.R, R)

		w := ts.mash(L, R)
		if curve.IsZeroScalar(w) {
			return errZeroChallenge
		}

		winv, err := vector.Invert(w)
		if err != nil {
			return err
		}

		if G, err = vector.Hadamard2(vector.MulScalarPoints(gLo, winv), vector.MulScalarPoints(gHi, w)); err != nil {
			return err
		}

		if H, err = vector.Hadamard2(vector.MulScalarPoints(hLo, w), vector.MulScalarPoints(hHi, winv)); err != nil {
			return err
		}

		if a, err = vector.Add(vector.MulScalar(aLo, w), vector.MulScalar(aHi, winv)); err != nil {
			return err
		}

		if b, err = vector.Add(vector.MulScalar(bLo, winv), vector.MulScalar(bHi, w)); err != nil {
			return err
		}
	}

	p.Ap = curve.ScalarKey(a[0])
	p.Bp = curve.ScalarKey(b[0])
	return nil
}

// crossTerm returns (sum(a_i * G_i + b_i * H_i) + <a, b> * xip * H) / 8.
func (pr *prover) crossTerm(G, H []*edwards25519.Point, a, b []*edwards25519.Scalar, xip *edwards25519.Scalar) (curve.Key, error) {
	c, err := vector.InnerProduct(a, b)
	if err != nil {
		return curve.Key{}, err
	}

	P, err := pr.scratch.VectorExponentCustom(G, H, a, b)
	if err != nil {
		return curve.Key{}, err
	}

	P.Add(P, curve.ScalarMultH(c.Multiply(c, xip)))
	return curve.PointKey(curve.DivEight(P)), nil
}

func halves[T any](v []T) ([]T, []T, error) {
	lo, err := vector.Slice(v, 0, len(v)/2)
	if err != nil {
		return nil, nil, err
	}

	hi, err := vector.Slice(v, len(v)/2, len(v))
	if err != nil {
		return nil, nil, err
	}

	return lo, hi, nil
}
