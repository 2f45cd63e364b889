// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"os"

	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	"github.com/dusk-network/dusk-bulletproofs/pkg/database"
	"github.com/dusk-network/dusk-bulletproofs/pkg/util/nativeutils/logging"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/urfave/cli"
)

var logFile *os.File

// before loads the configuration, letting the global CLI flags override the
// file and env settings, and sets up logging.
func before(ctx *cli.Context) error {
	fs := pflag.NewFlagSet("bulletproof", pflag.ContinueOnError)
	cfg.DefineFlags(fs)

	overrides := map[string]string{
		"logger.level":    ctx.GlobalString(VerbosityFlag.Name),
		"database.dir":    ctx.GlobalString(DataDirFlag.Name),
		"database.driver": ctx.GlobalString(DriverFlag.Name),
	}

	for name, value := range overrides {
		if value == "" {
			continue
		}

		if err := fs.Set(name, value); err != nil {
			return errors.Wrapf(err, "could not set %s", name)
		}
	}

	// Loading all configurations. Fail-fast if critical error occurs
	if err := cfg.Load(ctx.GlobalString(ConfigFlag.Name), fs); err != nil {
		return errors.Wrap(err, "could not load config")
	}

	// Any subsystem should be initialized after config and logger loading
	w, f, err := logging.OpenOutput(cfg.Get().Logger.Output)
	if err != nil {
		return errors.Wrap(err, "could not open log output")
	}

	logFile = f
	logging.InitLog(w, cfg.Get().Logger.Format)

	if file := cfg.Get().UsedConfigFile; file != "" {
		log.WithField("file", file).Debug("Loaded config file")
	}

	return nil
}

func after(*cli.Context) error {
	if logFile == nil {
		return nil
	}

	err := logFile.Close()
	logFile = nil
	return err
}

// openStore opens the configured proof store.
func openStore() (*database.ProofStore, error) {
	c := cfg.Get().Database
	return database.New(c.Driver, c.Dir)
}
