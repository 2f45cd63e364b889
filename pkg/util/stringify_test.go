// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringifyBytes(t *testing.T) {
	assert.Equal(t, "<empty>", StringifyBytes(nil))
	assert.Equal(t, "0102", StringifyBytes([]byte{1, 2}))

	id := make([]byte, 32)
	id[0], id[31] = 0xab, 0xcd
	assert.Equal(t, "ab00000000...00000000cd", StringifyBytes(id))
}
