// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

type loggerConfiguration struct {
	Level  string
	Output string
	Format string
}

// pkg/database package configs.
type databaseConfiguration struct {
	// Driver is either "heavy" (leveldb) or "lite" (buntdb).
	Driver string
	Dir    string
}

// pkg/api package configs.
type apiConfiguration struct {
	Enabled bool
	Address string

	// RateLimit is the number of verify requests accepted per second, with
	// bursts of up to Burst requests.
	RateLimit float64
	Burst     int

	// MaxBatch caps the number of proofs in a single verify request.
	MaxBatch int
}

// Prover limits applied to CLI and API requests.
type proverConfiguration struct {
	MaxRequestValues int
}
