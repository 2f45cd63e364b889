// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package logging

import (
	"io"
	"os"

	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	log "github.com/sirupsen/logrus"
)

// InitLog applies the configured logger level and sends the output to w,
// formatted as json or text.
func InitLog(w io.Writer, format string) {
	SetToLevel(cfg.Get().Logger.Level)
	log.SetOutput(w)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// SetToLevel parses l and falls back to trace on failure.
func SetToLevel(l string) {
	level, err := log.ParseLevel(l)
	if err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.TraceLevel)
		log.Warnf("Parse logger level from config err: %v", err)
	}
}

// OpenOutput resolves the logger.output setting: stdout, stderr or the path of
// a file to append to. The caller closes the returned file, if any.
func OpenOutput(output string) (io.Writer, *os.File, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	return f, f, nil
}
