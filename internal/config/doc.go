// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/manifoldjs-cordova/config.cue (or XDG equivalent on
// Linux, ~/Library/Application Support/manifoldjs-cordova/config.cue on macOS,
// %APPDATA%\manifoldjs-cordova\config.cue on Windows). The file selects the Cordova tool
// search path, the hosted web app plugin, the sub-platforms to generate and UI settings.
//
// Configuration is validated against an embedded CUE schema (config_schema.cue) before it is
// merged into Viper. Values can also be overridden by MANIFOLDJS_CORDOVA_* environment variables.
package config
