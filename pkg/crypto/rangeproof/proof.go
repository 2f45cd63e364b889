// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package rangeproof

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/generators"
	"github.com/pkg/errors"
)

// logN is log2 of the number of bits proven per value.
const logN = 6

// logMaxM is log2(generators.MaxM), the number of extra rounds an aggregated
// proof may carry.
const logMaxM = 4

// MaxRounds is the largest number of inner product rounds a proof may have.
const MaxRounds = logN + logMaxM

// maxVectorLength bounds the vector prefixes accepted by Decode.
const maxVectorLength = 1 << 10

// Proof is an aggregated range proof over up to generators.MaxM values.
//
// Every field is kept as its raw 32-byte encoding, exactly as it travels on
// the wire. Points are published divided by eight and the commitments in V
// are (gamma * G + v * H) / 8. Nothing is validated on decode: Verify rejects
// non-reduced scalars and undecodable points.
type Proof struct {
	V  []curve.Key
	A  curve.Key
	S  curve.Key
	T1 curve.Key
	T2 curve.Key

	Taux curve.Key
	Mu   curve.Key

	L []curve.Key
	R []curve.Key

	// Ap and Bp are the final inner product scalars a and b.
	Ap curve.Key
	Bp curve.Key
	T  curve.Key
}

// Commitments returns the Pedersen commitments gamma * G + v * H the proof
// covers, i.e. eight times the published V.
func (p *Proof) Commitments() ([]*edwards25519.Point, error) {
	res := make([]*edwards25519.Point, len(p.V))
	for i := range p.V {
		v, err := p.V[i].Point()
		if err != nil {
			return nil, errors.Wrapf(err, "commitment %d", i)
		}

		res[i] = curve.MulEight(v)
	}

	return res, nil
}

// Rounds returns the number of inner product rounds, log2(M * N).
func (p *Proof) Rounds() int {
	return len(p.L)
}

// Encode writes the proof to w as
// uvarint |V|, V..., A, S, T1, T2, taux, mu, uvarint |L|, L..., uvarint |R|, R..., a, b, t.
func (p *Proof) Encode(w io.Writer) error {
	if err := writeKeys(w, p.V); err != nil {
		return err
	}

	for _, k := range []curve.Key{p.A, p.S, p.T1, p.T2, p.Taux, p.Mu} {
		if _, err := w.Write(k[:]); err != nil {
			return err
		}
	}

	if err := writeKeys(w, p.L); err != nil {
		return err
	}

	if err := writeKeys(w, p.R); err != nil {
		return err
	}

	for _, k := range []curve.Key{p.Ap, p.Bp, p.T} {
		if _, err := w.Write(k[:]); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads a proof written by Encode.
func (p *Proof) Decode(r io.Reader) error {
	if p == nil {
		return errors.New("struct is nil")
	}

	br, ok := r.(io.ByteReader)
	if !ok {
		br = byteReader{r}
	}

	var err error
	if p.V, err = readKeys(r, br); err != nil {
		return errors.Wrap(err, "V")
	}

	for _, k := range []*curve.Key{&p.A, &p.S, &p.T1, &p.T2, &p.Taux, &p.Mu} {
		if _, err = io.ReadFull(r, k[:]); err != nil {
			return err
		}
	}

	if p.L, err = readKeys(r, br); err != nil {
		return errors.Wrap(err, "L")
	}

	if p.R, err = readKeys(r, br); err != nil {
		return errors.Wrap(err, "R")
	}

	for _, k := range []*curve.Key{&p.Ap, &p.Bp, &p.T} {
		if _, err = io.ReadFull(r, k[:]); err != nil {
			return err
		}
	}

	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Proof) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := p.Encode(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are
// an error.
func (p *Proof) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	if err := p.Decode(r); err != nil {
		return err
	}

	if r.Len() != 0 {
		return errors.Errorf("%d trailing bytes after proof", r.Len())
	}

	return nil
}

// Equals reports whether both proofs have the same encoding. A nil proof
// only equals nil.
func (p *Proof) Equals(other *Proof) bool {
	if p == nil || other == nil {
		return p == other
	}

	if len(p.V) != len(other.V) || len(p.L) != len(other.L) || len(p.R) != len(other.R) {
		return false
	}

	for i := range p.V {
		if p.V[i] != other.V[i] {
			return false
		}
	}

	for i := range p.L {
		if p.L[i] != other.L[i] || p.R[i] != other.R[i] {
			return false
		}
	}

	return p.A == other.A && p.S == other.S && p.T1 == other.T1 && p.T2 == other.T2 &&
		p.Taux == other.Taux && p.Mu == other.Mu &&
		p.Ap == other.Ap && p.Bp == other.Bp && p.T == other.T
}

// NAmounts returns the number of values the proof covers, or 0 when the
// lengths of V, L and R are inconsistent with each other.
func NAmounts(p *Proof) int {
	if !validRounds(p) {
		return 0
	}

	m := 1 << (len(p.L) - logN)
	if len(p.V) == 0 || len(p.V) > m || 2*len(p.V) <= m {
		return 0
	}

	return len(p.V)
}

// NMaxAmounts returns the padded number of values M the proof was built for,
// or 0 when L and R are malformed.
func NMaxAmounts(p *Proof) int {
	if !validRounds(p) {
		return 0
	}

	return 1 << (len(p.L) - logN)
}

// NAmountsBatch sums NAmounts over proofs. It returns 0 if any proof is
// malformed or the total does not fit in 32 bits.
func NAmountsBatch(proofs []*Proof) int {
	return sumAmounts(proofs, NAmounts)
}

// NMaxAmountsBatch sums NMaxAmounts over proofs, with the same failure rules as
// NAmountsBatch.
func NMaxAmountsBatch(proofs []*Proof) int {
	return sumAmounts(proofs, NMaxAmounts)
}

// IsCanonicalLayout reports whether proofs is a single proof over one to
// generators.MaxM values, the only layout a transaction may carry.
func IsCanonicalLayout(proofs []*Proof) bool {
	if len(proofs) != 1 {
		return false
	}

	return len(proofs[0].V) >= 1 && len(proofs[0].V) <= generators.MaxM
}

func validRounds(p *Proof) bool {
	return len(p.L) >= logN && len(p.L) == len(p.R) && len(p.L) <= MaxRounds
}

func sumAmounts(proofs []*Proof, count func(*Proof) int) int {
	var n uint64
	for _, p := range proofs {
		n2 := uint64(count(p))
		if n2 == 0 || n2 >= math.MaxUint32-n {
			return 0
		}

		n += n2
	}

	return int(n)
}

func writeKeys(w io.Writer, keys []curve.Key) error {
	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(keys)))
	if _, err := w.Write(prefix[:n]); err != nil {
		return err
	}

	for i := range keys {
		if _, err := w.Write(keys[i][:]); err != nil {
			return err
		}
	}

	return nil
}

// byteReader reads varints from a stream without buffering past them.
type byteReader struct {
	io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var x [1]byte
	_, err := io.ReadFull(b.Reader, x[:])
	return x[0], err
}

func readKeys(r io.Reader, br io.ByteReader) ([]curve.Key, error) {
	n, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}

	if n > maxVectorLength {
		return nil, errors.Errorf("vector length %d exceeds %d", n, maxVectorLength)
	}

	keys := make([]curve.Key, n)
	for i := range keys {
		if _, err := io.ReadFull(r, keys[i][:]); err != nil {
			return nil, err
		}
	}

	return keys, nil
}
