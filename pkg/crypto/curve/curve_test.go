// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package curve

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// torsion holds the non-identity points of the small subgroup, plus the
// encoding 0000..00 which decodes to an order 4 point.
var torsion = []string{
	"c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac03fa",
	"0000000000000000000000000000000000000000000000000000000000000000",
	"26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc85",
	"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
	"26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc05",
	"0000000000000000000000000000000000000000000000000000000000000080",
	"c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a",
}

func TestHIsDerivedFromG(t *testing.T) {
	d := Key(hash.Keccak256(G().Bytes()))
	p, err := d.Point()
	require.NoError(t, err)

	assert.Equal(t, HKey, PointKey(MulEight(p)))
	assert.Equal(t, 1, H().Equal(MulEight(p)))
}

func TestConstants(t *testing.T) {
	expInvEight, err := KeyFromHex("792fdce229e50661d0da1c7db39dd30700000000000000000000000000000006")
	require.NoError(t, err)
	assert.Equal(t, expInvEight, ScalarKey(InvEight()))

	expMinusOne, err := KeyFromHex("ecd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	require.NoError(t, err)
	assert.Equal(t, expMinusOne, ScalarKey(MinusOne()))

	assert.Equal(t, Identity, ScalarKey(One()))
	assert.Equal(t, Identity, PointKey(edwards25519.NewIdentityPoint()))
}

func TestDivMulEight(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)

	p := new(edwards25519.Point).ScalarBaseMult(s)
	assert.Equal(t, 1, MulEight(DivEight(p)).Equal(p))
}

func TestTorsion(t *testing.T) {
	assert.True(t, InMainSubgroup(G()))
	assert.True(t, InMainSubgroup(H()))

	for _, h := range torsion {
		k, err := KeyFromHex(h)
		require.NoError(t, err)

		p, err := k.Point()
		require.NoError(t, err, h)

		assert.False(t, InMainSubgroup(p), h)
		assert.True(t, IsIdentity(MulEight(p)), h)

		// adding torsion to a valid point leaves the subgroup
		q := new(edwards25519.Point).Add(H(), p)
		assert.False(t, InMainSubgroup(q), h)
	}
}

func TestCommitIsHomomorphic(t *testing.T) {
	m1, err := RandomScalar()
	require.NoError(t, err)
	m2, err := RandomScalar()
	require.NoError(t, err)

	c1 := Commit(1000, m1)
	c2 := Commit(2345, m2)
	sum := new(edwards25519.Point).Add(c1, c2)

	m := edwards25519.NewScalar().Add(m1, m2)
	assert.Equal(t, 1, sum.Equal(Commit(3345, m)))

	// the constant time commitment matches the variable time one
	a := ReduceKey(Uint64Key(1000))
	vt := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(a, H(), m1)
	assert.Equal(t, 1, CommitScalar(a, m1).Equal(vt))
	assert.Equal(t, 1, c1.Equal(vt))

	zc := new(edwards25519.Point).Add(G(), ScalarMultH(ReduceKey(Uint64Key(7))))
	assert.Equal(t, 1, ZeroCommit(7).Equal(zc))
	assert.Equal(t, 1, ZeroCommit(0).Equal(G()))
}

func TestKeyEncoding(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)

	k := ScalarKey(s)
	back, err := k.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 1, back.Equal(s))

	parsed, err := KeyFromHex(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	_, err = KeyFromHex("abcd")
	assert.Error(t, err)
	_, err = KeyFromBytes(make([]byte, 31))
	assert.Error(t, err)
}

func TestIsReduced(t *testing.T) {
	assert.True(t, ScalarKey(MinusOne()).IsReduced())
	assert.True(t, Zero.IsReduced())

	// l itself
	l := ScalarKey(MinusOne())
	l[0]++
	assert.False(t, l.IsReduced())
	assert.True(t, IsZeroScalar(ReduceKey(l)))

	var big Key
	for i := range big {
		big[i] = 0xff
	}
	assert.False(t, big.IsReduced())

	_, err := big.Scalar()
	assert.Equal(t, ErrNonCanonicalScalar, err)
}

func TestUint64Key(t *testing.T) {
	k := Uint64Key(0xcafebabe)
	assert.Equal(t, byte(0xbe), k[0])
	assert.Equal(t, byte(0xba), k[1])
	assert.Equal(t, byte(0xfe), k[2])
	assert.Equal(t, byte(0xca), k[3])
	assert.Equal(t, byte(0), k[4])
}

func TestHashToPoint(t *testing.T) {
	seen := make(map[Key]struct{})
	for i := uint64(0); i < 64; i++ {
		p, err := HashToPoint(Uint64Key(i))
		require.NoError(t, err)

		assert.True(t, InMainSubgroup(p))
		assert.False(t, IsIdentity(p))

		k := PointKey(p)
		_, dup := seen[k]
		assert.False(t, dup)
		seen[k] = struct{}{}

		again, err := HashToPoint(Uint64Key(i))
		require.NoError(t, err)
		assert.Equal(t, 1, again.Equal(p))
	}
}

func TestHashToPointHighBit(t *testing.T) {
	// inputs differing only in the top bit map to different field elements
	var a, b [32]byte
	a[0] = 5
	b[0] = 5
	b[31] = 0x80

	pa, err := mapToPoint(a[:])
	require.NoError(t, err)
	pb, err := mapToPoint(b[:])
	require.NoError(t, err)
	assert.Equal(t, 0, pa.Equal(pb))

	// 2^255 = 19 mod p
	var c [32]byte
	c[0] = 5 + 19
	pc, err := mapToPoint(c[:])
	require.NoError(t, err)
	assert.Equal(t, 1, pb.Equal(pc))
}

func BenchmarkHashToPoint(b *testing.B) {
	k := Uint64Key(42)
	for i := 0; i < b.N; i++ {
		_, _ = HashToPoint(k)
	}
}
