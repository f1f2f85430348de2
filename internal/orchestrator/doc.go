// SPDX-License-Identifier: MPL-2.0

// Package orchestrator generates, packages, runs and opens platform projects.
//
// Each platform group registers an Orchestrator in a Registry. The Cordova
// orchestrator drives project generation as a strictly ordered sequence of
// stages; only the per-sub-platform post-processing stage fans out, and its
// failures are collected per sub-platform instead of aborting the run.
package orchestrator
