// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config package should avoid importing any other package of this module in
// order to prevent any cyclic-dependancy issues

const (
	// current working dir
	searchPath1 = "."
	// home datadir
	searchPath2 = "$HOME/.bulletproof/"

	// name for the config file. Does not include extension.
	configFileName = "bulletproof"
)

var (
	r *Registry
)

// Registry stores all loaded configurations according to the config order
// NB It should be cheap to be copied by value
type Registry struct {
	UsedConfigFile string

	// All configuration groups
	Logger   loggerConfiguration
	Database databaseConfiguration
	API      apiConfiguration
	Prover   proverConfiguration
}

// Load makes an attempt to read and unmarshal any configs from flags, env and
// the bulletproof config file.
//
// It uses the following precedence order. Each item takes precedence over the item below it:
//  - flag
//  - env
//  - config
//  - default
//
// confFile overrides the search paths. A missing config file is not an error
// unless confFile names it explicitly. flags may be nil; when set, its flags
// should have been created with DefineFlags.
func Load(confFile string, flags *pflag.FlagSet) error {
	reg := new(Registry)

	if err := reg.init(confFile, flags); err != nil {
		return err
	}

	// Validation and defaulting should be done by the consumers (packages) as
	// they will be the best at knowing what they expect
	r = reg
	return nil
}

// Get returns registry by value in order to avoid further modifications after
// initial configuration loading
func Get() Registry {
	return *r
}

func (r *Registry) init(confFile string, flags *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	// Make an attempt to find bulletproof.toml/json/yaml in any of the
	// provided paths below
	v.SetConfigName(configFileName)
	v.AddConfigPath(searchPath1)
	v.AddConfigPath(searchPath2)

	// confPath is overwritten by the one from command line
	if len(confFile) > 0 {
		v.SetConfigFile(confFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || len(confFile) > 0 {
			return errors.Wrap(err, "error reading config file")
		}
	}

	defineENV(v)

	// Bind all command line parameters to their corresponding file configs
	//
	// e.g CLI argument `--logger.level="warn"` will overwrite the value from
	// `[logger] level = "info"` in the loaded config file
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return errors.Wrap(err, "unable to bind pflags")
		}
	}

	// Unmarshal all configurations from all conf levels to the registry struct
	if err := v.Unmarshal(r); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	r.UsedConfigFile = v.ConfigFileUsed()
	return nil
}

// DefineFlags adds the flags that override config file settings to fs.
// The settings that are needed to be passed frequently by CLI should be added here
func DefineFlags(fs *pflag.FlagSet) {
	fs.StringP("logger.level", "l", "info", "override logger.level settings in config file")
	fs.StringP("logger.output", "o", "stdout", "specifies the log output")
	fs.StringP("database.driver", "d", "heavy", "sets the proof store driver (heavy or lite)")
	fs.StringP("database.dir", "b", "proofs", "sets the proof store directory")
	fs.StringP("api.address", "a", "127.0.0.1:9100", "sets the api server address")
}

// define a set of environment variables as bindings to config file settings
func defineENV(v *viper.Viper) {
	bindings := [][2]string{
		{"logger.level", "BP_LOGGER_LEVEL"},
		{"database.driver", "BP_DATABASE_DRIVER"},
		{"database.dir", "BP_DATABASE_DIR"},
		{"api.address", "BP_API_ADDRESS"},
	}

	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			fmt.Printf("defineENV %v", err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	d := defaults()
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.output", d.Logger.Output)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dir", d.Database.Dir)
	v.SetDefault("api.enabled", d.API.Enabled)
	v.SetDefault("api.address", d.API.Address)
	v.SetDefault("api.ratelimit", d.API.RateLimit)
	v.SetDefault("api.burst", d.API.Burst)
	v.SetDefault("api.maxbatch", d.API.MaxBatch)
	v.SetDefault("prover.maxrequestvalues", d.Prover.MaxRequestValues)
}

func defaults() *Registry {
	d := new(Registry)
	d.Logger.Level = "info"
	d.Logger.Output = "stdout"
	d.Logger.Format = "text"
	d.Database.Driver = "heavy"
	d.Database.Dir = "proofs"
	d.API.Enabled = true
	d.API.Address = "127.0.0.1:9100"
	d.API.RateLimit = 20
	d.API.Burst = 40
	d.API.MaxBatch = 64
	d.Prover.MaxRequestValues = 16
	return d
}

// Mock should be used only in test packages. It could be useful when a unit
// test needs to be rerun with configs different from the default ones.
func Mock(m *Registry) {
	r = m
}

func init() {
	// By default the Registry holds the defaults. In that way, consumers
	// (packages) work on unit testing without any config file
	r = defaults()
}
