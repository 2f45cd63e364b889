// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package diagnostics

import log "github.com/sirupsen/logrus"

// LogErrors logs every error of errorList at debug level under msg.
func LogErrors(msg string, errorList []error) {
	for _, err := range errorList {
		log.WithError(err).Debug(msg)
	}
}

// LogError logs a single error it uses LogErrors in the background.
func LogError(msg string, err error) {
	LogErrors(msg, []error{err})
}
