// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package hash

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"
)

func randomMessage(size int) []byte {
	msg := make([]byte, size)
	_, _ = rand.Read(msg)
	return msg
}

func TestKeccak256Vectors(t *testing.T) {
	empty := Keccak256()
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(empty[:]))

	abc := Keccak256([]byte("abc"))
	assert.Equal(t, "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45", hex.EncodeToString(abc[:]))
}

func TestKeccak256Concatenates(t *testing.T) {
	msg := randomMessage(96)

	whole := Keccak256(msg)
	parts := Keccak256(msg[:10], msg[10:50], nil, msg[50:])
	assert.Equal(t, whole, parts)

	// legacy keccak padding differs from FIPS-202
	sha := sha3.Sum256(msg)
	assert.NotEqual(t, whole, sha)
}

func BenchmarkKeccak256(b *testing.B) {

	testBytes := randomMessage(32)

	for i := 0; i < b.N; i++ {
		_ = Keccak256(testBytes)
	}
}
