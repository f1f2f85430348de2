// SPDX-License-Identifier: MPL-2.0

// Package manifest reads, validates and persists W3C web app manifests.
//
// Only the members the packaging pipeline needs are typed (start_url,
// short_name, name, icons); every other member is carried through untouched
// so that a manifest written into a generated project round-trips.
package manifest
