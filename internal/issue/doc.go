// SPDX-License-Identifier: MPL-2.0

// Package issue holds the user-facing side of failures. ActionableError names
// the failed operation and how to recover; the catalogue holds longer
// markdown help, such as how to install cordova, rendered with glamour.
package issue
