// SPDX-License-Identifier: MPL-2.0

// Package project holds the filesystem helpers shared by platform
// orchestrators: documentation copy, shortcuts to generated platform folders,
// and generation metadata.
package project
