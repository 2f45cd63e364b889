// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package util

import (
	"encoding/hex"
	"strings"
)

// stringifyEdge is the number of bytes shown at each end.
const stringifyEdge = 5

// StringifyBytes returns a semi readable representation of a byte array, such
// as a proof ID in a log line. Short arrays are printed in full.
func StringifyBytes(b []byte) string {
	if len(b) == 0 {
		return "<empty>"
	}

	if len(b) <= 2*stringifyEdge {
		return hex.EncodeToString(b)
	}

	var sb strings.Builder
	_, _ = sb.WriteString(hex.EncodeToString(b[:stringifyEdge]))
	_, _ = sb.WriteString("...")
	_, _ = sb.WriteString(hex.EncodeToString(b[len(b)-stringifyEdge:]))
	return sb.String()
}
