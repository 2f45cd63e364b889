// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package diagnostics

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	LogError("proof rejected", errors.New("bad L"))
	LogErrors("batch", []error{errors.New("a"), errors.New("b")})

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "proof rejected", entries[0].Message)
	assert.Equal(t, log.DebugLevel, entries[0].Level)
	assert.EqualError(t, entries[0].Data[log.ErrorKey].(error), "bad L")
	assert.Equal(t, "batch", entries[2].Message)
}
