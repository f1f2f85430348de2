// SPDX-License-Identifier: MPL-2.0

// Package packagename derives reverse-domain package identifiers and
// application names accepted by the Cordova project generator.
package packagename
