// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands of manifoldjs-cordova.
//
// The root command wires configuration, logging and the platform orchestrator
// registry into the create, package, run, open, validate and config commands.
package cmd
