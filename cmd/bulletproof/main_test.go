// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with a proof store under dir and returns its output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	a := newApp()

	var buf bytes.Buffer
	a.Writer = &buf

	global := []string{"bulletproof", "--verbosity", "error", "--datadir", dir}
	err := a.Run(append(global, args...))
	return buf.String(), err
}

// field returns the value printed after "name: ".
func field(t *testing.T, out, name string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, name+": ") {
			return strings.TrimPrefix(line, name+": ")
		}
	}

	require.FailNow(t, "missing field", "%s not in %q", name, out)
	return ""
}

func TestProveVerifyInspect(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "prove", "--amount", "5", "--amount", "1000", "--store")
	require.NoError(t, err)

	proof := field(t, out, "proof")
	id := field(t, out, "id")
	assert.Len(t, id, 64)
	assert.NotEmpty(t, field(t, out, "commitment[1]"))
	assert.NotEmpty(t, field(t, out, "blind[1]"))

	out, err = run(t, dir, "verify", proof)
	require.NoError(t, err)
	assert.Equal(t, "true", field(t, out, "valid"))
	assert.Equal(t, "2", field(t, out, "amounts"))

	// stored and inline proofs form one batch
	out, err = run(t, dir, "verify", "--id", id, proof)
	require.NoError(t, err)
	assert.Equal(t, "4", field(t, out, "amounts"))

	out, err = run(t, dir, "inspect", "--id", id)
	require.NoError(t, err)
	assert.Equal(t, "7", field(t, out, "rounds"))
	assert.Equal(t, "2", field(t, out, "amounts"))
	assert.Equal(t, "2", field(t, out, "max amounts"))
	assert.NotEmpty(t, field(t, out, "L[6]"))

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, id+"\n", out)
}

func TestProveWithBlind(t *testing.T) {
	blind := "0200000000000000000000000000000000000000000000000000000000000000"

	out, err := run(t, t.TempDir(), "prove", "--amount", "1", "--blind", blind)
	require.NoError(t, err)
	assert.Equal(t, blind, field(t, out, "blind[0]"))
	assert.NotContains(t, out, "id: ")
}

func TestProveInvalid(t *testing.T) {
	dir := t.TempDir()

	for _, args := range [][]string{
		{"prove"},
		{"prove", "--amount", "-1"},
		{"prove", "--amount", "18446744073709551616"},
		{"prove", "--amount", "1", "--amount", "2", "--blind", "00"},
		{"prove", "--amount", "1", "--blind", strings.Repeat("ff", 32)},
	} {
		_, err := run(t, dir, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestVerifyRejects(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "prove", "--amount", "42")
	require.NoError(t, err)

	proof := []byte(field(t, out, "proof"))
	// taux is followed by mu, L and R with their prefixes, then a, b and t
	i := len(proof) - 2*(32+32+2*(1+6*32)+3*32)
	if proof[i] == '0' {
		proof[i] = '1'
	} else {
		proof[i] = '0'
	}

	out, err = run(t, dir, "verify", string(proof))
	assert.ErrorIs(t, err, ErrProofRejected)
	assert.Equal(t, "false", field(t, out, "valid"))

	_, err = run(t, dir, "verify")
	assert.Error(t, err)

	_, err = run(t, dir, "verify", "nothex")
	assert.Error(t, err)

	_, err = run(t, dir, "verify", "--id", strings.Repeat("00", 32))
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	out, err := run(t, t.TempDir(), "bench", "--terms", "16", "--rounds", "1")
	require.NoError(t, err)

	for _, name := range []string{"bos-coster", "straus", "pippenger"} {
		assert.Contains(t, out, name)
	}

	_, err = run(t, t.TempDir(), "bench", "--terms", "0")
	assert.Error(t, err)
}
