// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	"github.com/urfave/cli"
)

var (
	// VerbosityFlag flag to set the logger level.
	VerbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "logger level (trace, debug, info, warn, error)",
	}
	// ConfigFlag flag to use configuration file.
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "bulletproof.toml configuration file",
	}
	// DataDirFlag flag to set the proof store directory.
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the proof store",
	}
	// DriverFlag flag to set the proof store driver.
	DriverFlag = cli.StringFlag{
		Name:  "driver",
		Usage: "proof store driver, heavy or lite",
	}
)

var (
	// AmountFlag is repeated once per proven value.
	AmountFlag = cli.StringSliceFlag{
		Name:  "amount",
		Usage: "value to prove, repeat for an aggregated proof",
	}
	// BlindFlag is repeated once per amount. Omitted blinds are random.
	BlindFlag = cli.StringSliceFlag{
		Name:  "blind",
		Usage: "hex encoded commitment mask, one per amount",
	}
	// StoreFlag persists the created proof.
	StoreFlag = cli.BoolFlag{
		Name:  "store",
		Usage: "save the proof in the proof store",
	}
	// IDFlag selects stored proofs by ID.
	IDFlag = cli.StringSliceFlag{
		Name:  "id",
		Usage: "hex ID of a stored proof",
	}
	// TermsFlag sets the multiexp size to benchmark.
	TermsFlag = cli.IntFlag{
		Name:  "terms",
		Usage: "number of multiexp terms",
		Value: cfg.DefaultBenchTerms,
	}
	// RoundsFlag sets how many times each algorithm runs.
	RoundsFlag = cli.IntFlag{
		Name:  "rounds",
		Usage: "runs per algorithm",
		Value: 3,
	}
)

var (
	// CLIFlags flags usable in a CLI context.
	CLIFlags = []cli.Flag{
		VerbosityFlag,
	}
	// GlobalFlags flags usable in a global context.
	GlobalFlags = []cli.Flag{
		ConfigFlag,
		DataDirFlag,
		DriverFlag,
	}
)
