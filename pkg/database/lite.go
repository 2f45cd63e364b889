// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/buntdb"
)

const (
	memory       = ":memory:"
	liteFileName = "proofs.db"
)

// Bunt is the buntdb Database, synced to disk every second.
type Bunt struct {
	db *buntdb.DB
}

func openBunt(dir string) (*Bunt, error) {
	path := memory
	if dir != memory {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}

		path = filepath.Join(dir, liteFileName)
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}

	var config buntdb.Config
	if err := db.ReadConfig(&config); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fast and safer sync policy.
	// In addition, syncing is done on closing.
	config.SyncPolicy = buntdb.EverySecond

	// Auto-shrink should be always enabled
	config.AutoShrinkDisabled = false

	if err := db.SetConfig(config); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bunt{db}, nil
}

// Has implements Database.
func (b *Bunt) Has(key []byte) (bool, error) {
	_, err := b.Get(key)
	if err == ErrNotFound {
		return false, nil
	}

	return err == nil, err
}

// Put implements Database.
func (b *Bunt) Put(key []byte, value []byte) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(string(key), string(value), nil)
		return err
	})
}

// Get implements Database.
func (b *Bunt) Get(key []byte) ([]byte, error) {
	var value string
	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		value, err = tx.Get(string(key))
		return err
	})

	if err == buntdb.ErrNotFound {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

// Delete implements Database. Deleting a missing key is not an error.
func (b *Bunt) Delete(key []byte) error {
	err := b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(string(key))
		return err
	})

	if err == buntdb.ErrNotFound {
		return nil
	}

	return err
}

// Keys implements Database.
func (b *Bunt) Keys(prefix []byte) ([][]byte, error) {
	var keys [][]byte
	p := string(prefix)

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendGreaterOrEqual("", p, func(key, _ string) bool {
			if !strings.HasPrefix(key, p) {
				return false
			}

			keys = append(keys, []byte(key))
			return true
		})
	})

	return keys, err
}

// Close implements Database.
func (b *Bunt) Close() error {
	return b.db.Close()
}
