// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// ErrOpenLevelDb is returned when the leveldb directory cannot be opened.
var ErrOpenLevelDb = lerrors.New("Could not open or create db.\n" +
	"Please note that LevelDB is not designed for multi-process access.\n")

// LDB is the leveldb Database.
type LDB struct {
	db *leveldb.DB
}

func openLDB(path string) (*LDB, error) {
	// Open the proof db or create it (if it does not already exist)
	db, err := leveldb.OpenFile(path, nil)

	// Try to recover if corrupted
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		log.WithField("path", path).Warn("leveldb corrupted, recovering")
		db, err = leveldb.RecoverFile(path, nil)
	}

	if _, accessdenied := err.(*os.PathError); accessdenied {
		return nil, ErrOpenLevelDb
	}

	if err != nil {
		return nil, err
	}

	return &LDB{db}, nil
}

// Has implements Database.
func (l *LDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

// Put implements Database.
func (l *LDB) Put(key []byte, value []byte) error {
	return l.db.Put(key, value, nil)
}

// Get implements Database.
func (l *LDB) Get(key []byte) ([]byte, error) {
	v, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}

	return v, err
}

// Delete implements Database.
func (l *LDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// Keys implements Database.
func (l *LDB) Keys(prefix []byte) ([][]byte, error) {
	iter := l.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var keys [][]byte
	for iter.Next() {
		keys = append(keys, append([]byte(nil), iter.Key()...))
	}

	return keys, iter.Error()
}

// Close implements Database.
func (l *LDB) Close() error {
	return l.db.Close()
}
