// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package database persists range proofs, keyed by the Keccak-256 hash of
// their encoding. Two drivers are available: "heavy" stores proofs in a
// leveldb directory, "lite" in a buntdb file or in memory.
package database

import (
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithField("process", "database")

const (
	// HeavyDriver is the leveldb backed driver.
	HeavyDriver = "heavy"
	// LiteDriver is the buntdb backed driver. A dir of ":memory:" keeps
	// everything in memory.
	LiteDriver = "lite"
)

var (
	// ErrNotFound is returned when a key is not in the database.
	ErrNotFound = errors.New("not found")
	// ErrUnknownDriver is returned by New for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Database is the key-value backend a ProofStore is built on.
type Database interface {
	Has(key []byte) (bool, error)
	Put(key []byte, value []byte) error
	// Get returns ErrNotFound when key is missing.
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	// Keys returns every key starting with prefix, in ascending order.
	Keys(prefix []byte) ([][]byte, error)
	Close() error
}

// Open opens the backend of the given driver at dir.
func Open(driver, dir string) (Database, error) {
	switch driver {
	case HeavyDriver:
		return openLDB(dir)
	case LiteDriver:
		return openBunt(dir)
	}

	return nil, errors.Wrap(ErrUnknownDriver, driver)
}
