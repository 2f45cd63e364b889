// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

// A single point of constants definition
const (
	// Version is the semver of the bulletproof tooling.
	Version = "0.3.0"

	// DefaultBenchTerms is the multiexp size used by `bulletproof bench` when
	// no --terms is given.
	DefaultBenchTerms = 128
)
