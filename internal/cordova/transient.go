// SPDX-License-Identifier: MPL-2.0

package cordova

import (
	"context"
	"errors"
	"strings"
)

// transientMarkers are fragments of npm and git output that indicate a
// network failure while cordova fetches plugins or platform packages.
var transientMarkers = []string{
	"ECONNRESET",
	"ETIMEDOUT",
	"EAI_AGAIN",
	"ECONNREFUSED",
	"socket hang up",
	"network timeout",
	"Could not resolve host",
	"Temporary failure resolving",
	"connection timed out",
	"npm ERR! code E503",
	"npm ERR! code E429",
}

// IsTransientError reports whether err is a cordova failure that may succeed
// on retry. Context cancellation and deadline errors are never transient.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	text := err.Error()
	var subErr *SubprocessError
	if errors.As(err, &subErr) {
		text += "\n" + subErr.Output
	}

	for _, marker := range transientMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
