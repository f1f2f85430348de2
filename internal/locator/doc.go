// SPDX-License-Identifier: MPL-2.0

// Package locator resolves the absolute path of the cordova command-line tool
// and caches the first successful lookup for the lifetime of the process.
package locator
