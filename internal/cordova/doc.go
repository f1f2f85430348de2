// SPDX-License-Identifier: MPL-2.0

// Package cordova drives the cordova command-line tool as a subprocess.
//
// Each operation maps to one invocation with an ordered argument list and a
// working directory. A non-zero exit status is the only failure signal; the
// tool's output is streamed to the configured writers and the tail is kept
// on SubprocessError for diagnostics.
package cordova
