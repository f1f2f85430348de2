// SPDX-License-Identifier: MPL-2.0

// Package validation checks a web app manifest against per-platform
// requirements and reports advisory findings.
//
// Rules are pure: they read the manifest and return at most one Result.
// The Engine groups rules by sub-platform, runs them in isolation from one
// another and turns a misbehaving rule into a RuleError entry instead of
// aborting the batch.
package validation
