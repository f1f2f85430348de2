// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers that fail the test instead of returning
// errors. FakeClock drives generation timestamps in tests.
package testutil
