// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof"
	"github.com/dusk-network/dusk-bulletproofs/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]string {
	return map[string]string{
		database.HeavyDriver: filepath.Join(t.TempDir(), "heavy"),
		database.LiteDriver:  t.TempDir(),
		"memory":             ":memory:",
	}
}

func open(t *testing.T, name, dir string) database.Database {
	driver := name
	if name == "memory" {
		driver = database.LiteDriver
	}

	db, err := database.Open(driver, dir)
	require.NoError(t, err)
	return db
}

func TestDatabase(t *testing.T) {
	for name, dir := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			db := open(t, name, dir)
			defer db.Close()

			key := []byte("Hello")
			value := []byte("World")

			ok, err := db.Has(key)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = db.Get(key)
			assert.Equal(t, database.ErrNotFound, err)

			require.NoError(t, db.Put(key, value))

			ok, err = db.Has(key)
			require.NoError(t, err)
			assert.True(t, ok)

			res, err := db.Get(key)
			require.NoError(t, err)
			assert.Equal(t, value, res)

			require.NoError(t, db.Put([]byte("Help"), value))
			require.NoError(t, db.Put([]byte("Other"), value))

			keys, err := db.Keys([]byte("Hel"))
			require.NoError(t, err)
			assert.Equal(t, [][]byte{[]byte("Hello"), []byte("Help")}, keys)

			require.NoError(t, db.Delete(key))
			_, err = db.Get(key)
			assert.Equal(t, database.ErrNotFound, err)
		})
	}
}

func TestUnknownDriver(t *testing.T) {
	_, err := database.New("sqlite", t.TempDir())
	assert.ErrorIs(t, err, database.ErrUnknownDriver)
}

func prove(t *testing.T, v uint64) *rangeproof.Proof {
	s, err := curve.RandomScalar()
	require.NoError(t, err)

	p, err := rangeproof.ProveSingle(v, curve.ScalarKey(s))
	require.NoError(t, err)
	return p
}

func TestProofStore(t *testing.T) {
	proofs := []*rangeproof.Proof{prove(t, 1), prove(t, 2)}

	for name, dir := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			s := database.NewProofStore(open(t, name, dir))
			defer s.Close()

			var ids [][]byte
			for _, p := range proofs {
				id, err := s.Put(p)
				require.NoError(t, err)
				assert.Len(t, id, 32)
				ids = append(ids, id)

				want, _, err := database.ProofID(p)
				require.NoError(t, err)
				assert.Equal(t, want, id)
			}

			// same proof, same id
			again, err := s.Put(proofs[0])
			require.NoError(t, err)
			assert.Equal(t, ids[0], again)

			got, err := s.Get(ids[1])
			require.NoError(t, err)
			assert.True(t, proofs[1].Equals(got))
			assert.True(t, rangeproof.Verify(got))

			listed, err := s.List()
			require.NoError(t, err)
			sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i], ids[j]) < 0 })
			assert.Equal(t, ids, listed)

			require.NoError(t, s.Delete(ids[0]))
			ok, err := s.Has(ids[0])
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = s.Get(ids[0])
			assert.Equal(t, database.ErrNotFound, err)
		})
	}
}

func TestProofStorePersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "heavy")
	p := prove(t, 42)

	s, err := database.New(database.HeavyDriver, dir)
	require.NoError(t, err)
	id, err := s.Put(p)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = database.New(database.HeavyDriver, dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.True(t, p.Equals(got))
}

func TestOpenLevelDbAccessDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	defer os.Chmod(dir, 0o700)

	_, err := database.Open(database.HeavyDriver, filepath.Join(dir, "db"))
	assert.Equal(t, database.ErrOpenLevelDb, err)
}
