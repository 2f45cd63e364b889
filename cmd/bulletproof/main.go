// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver"
	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var log = logrus.WithFields(logrus.Fields{
	"app":    "bulletproof",
	"prefix": "main",
})

var app = newApp()

func newApp() *cli.App {
	a := cli.NewApp()
	a.Copyright = "Copyright (c) 2020 DUSK"
	a.Name = "bulletproof"
	a.Usage = "Create, verify and serve Bulletproofs range proofs"
	a.Author = "DUSK 2020"
	a.Version = semver.MustParse(cfg.Version).String()
	a.Before = before
	a.After = after
	a.Commands = []cli.Command{
		{
			Name:    "prove",
			Aliases: []string{"p"},
			Usage:   "proves that the given amounts lie in [0, 2^64)",
			Flags:   []cli.Flag{AmountFlag, BlindFlag, StoreFlag},
			Action:  proveAction,
		},
		{
			Name:      "verify",
			Aliases:   []string{"v"},
			Usage:     "verifies hex encoded or stored proofs as one batch",
			ArgsUsage: "[proof hex...]",
			Flags:     []cli.Flag{IDFlag},
			Action:    verifyAction,
		},
		{
			Name:      "inspect",
			Aliases:   []string{"i"},
			Usage:     "prints the fields of a proof",
			ArgsUsage: "[proof hex]",
			Flags:     []cli.Flag{IDFlag},
			Action:    inspectAction,
		},
		{
			Name:   "list",
			Usage:  "lists the IDs of the stored proofs",
			Action: listAction,
		},
		{
			Name:   "bench",
			Usage:  "times the multiexp algorithms against each other",
			Flags:  []cli.Flag{TermsFlag, RoundsFlag},
			Action: benchAction,
		},
		{
			Name:   "serve",
			Usage:  "starts the HTTP API",
			Action: serveAction,
		},
	}
	a.Flags = append(a.Flags, CLIFlags...)
	a.Flags = append(a.Flags, GlobalFlags...)
	return a
}

func main() {
	defer handlePanic()

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handlePanic() {
	if r := recover(); r != nil {
		log.WithError(fmt.Errorf("%+v", r)).Errorln("Application panic")
		time.Sleep(time.Second * 1)
		os.Exit(2)
	}
}
