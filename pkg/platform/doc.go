// SPDX-License-Identifier: MPL-2.0

// Package platform identifies the mobile sub-platforms a Cordova project can
// target and the host operating systems the tooling runs on.
//
// Sub-platform identifiers double as Cordova platform names ("android",
// "ios", "windows") and as the directory names Cordova creates under
// <project>/platforms.
package platform
