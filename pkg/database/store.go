// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/hash"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof"
	"github.com/dusk-network/dusk-bulletproofs/pkg/util"
	"github.com/pkg/errors"
)

// proofPrefix namespaces proof records.
var proofPrefix = []byte("bp:")

// ProofStore keeps encoded proofs under their ID.
type ProofStore struct {
	db Database
}

// New opens a ProofStore with the given driver.
func New(driver, dir string) (*ProofStore, error) {
	db, err := Open(driver, dir)
	if err != nil {
		return nil, err
	}

	log.WithField("driver", driver).WithField("dir", dir).Info("proof store opened")
	return NewProofStore(db), nil
}

// NewProofStore wraps an open Database.
func NewProofStore(db Database) *ProofStore {
	return &ProofStore{db}
}

// ProofID returns the Keccak-256 hash of the proof encoding.
func ProofID(p *rangeproof.Proof) ([]byte, []byte, error) {
	bs, err := p.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}

	id := hash.Keccak256(bs)
	return id[:], bs, nil
}

// Put stores p and returns its ID. Storing the same proof twice is a no-op.
func (s *ProofStore) Put(p *rangeproof.Proof) ([]byte, error) {
	id, bs, err := ProofID(p)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode proof")
	}

	if err := s.db.Put(proofKey(id), bs); err != nil {
		return nil, err
	}

	log.WithField("id", util.StringifyBytes(id)).WithField("size", len(bs)).Debug("proof stored")
	return id, nil
}

// Get returns the proof stored under id, or ErrNotFound.
func (s *ProofStore) Get(id []byte) (*rangeproof.Proof, error) {
	bs, err := s.db.Get(proofKey(id))
	if err != nil {
		return nil, err
	}

	p := new(rangeproof.Proof)
	if err := p.UnmarshalBinary(bs); err != nil {
		return nil, errors.Wrapf(err, "stored proof %x is corrupted", id)
	}

	return p, nil
}

// Has reports whether a proof is stored under id.
func (s *ProofStore) Has(id []byte) (bool, error) {
	return s.db.Has(proofKey(id))
}

// Delete removes the proof stored under id.
func (s *ProofStore) Delete(id []byte) error {
	return s.db.Delete(proofKey(id))
}

// List returns the IDs of every stored proof.
func (s *ProofStore) List() ([][]byte, error) {
	keys, err := s.db.Keys(proofPrefix)
	if err != nil {
		return nil, err
	}

	ids := make([][]byte, len(keys))
	for i := range keys {
		ids[i] = keys[i][len(proofPrefix):]
	}

	return ids, nil
}

// Close closes the underlying Database.
func (s *ProofStore) Close() error {
	return s.db.Close()
}

func proofKey(id []byte) []byte {
	key := make([]byte, 0, len(proofPrefix)+len(id))
	key = append(key, proofPrefix...)
	return append(key, id...)
}
