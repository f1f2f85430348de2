// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// GroupID is the platform group every sub-platform belongs to. It names
	// the generated project directory under the output root.
	GroupID = "cordova"
	// GroupName is the human-readable name of the platform group.
	GroupName = "Cordova Platform"

	// AndroidID targets Android devices.
	AndroidID ID = "android"
	// IOSID targets iPhone and iPad devices. Packaging requires a macOS host.
	IOSID ID = "ios"
	// WindowsID targets Windows 10 devices. Its Visual Studio project layout
	// differs from the other sub-platforms.
	WindowsID ID = "windows"
)

// ErrInvalidID is the sentinel error wrapped by InvalidIDError.
var ErrInvalidID = errors.New("invalid sub-platform id")

type (
	// ID identifies a Cordova sub-platform.
	ID string

	// InvalidIDError is returned when an ID is not one of the known sub-platforms.
	// It wraps ErrInvalidID for errors.Is() compatibility.
	InvalidIDError struct {
		Value ID
	}
)

// names maps each sub-platform to its display name.
var names = map[ID]string{
	AndroidID: "Android Platform",
	IOSID:     "iOS Platform",
	WindowsID: "Windows Platform",
}

// All returns every known sub-platform in canonical order.
func All() []ID {
	return []ID{AndroidID, IOSID, WindowsID}
}

// String returns the string representation of the ID.
func (id ID) String() string { return string(id) }

// Name returns the human-readable name of the sub-platform, or the raw id
// for unknown values.
func (id ID) Name() string {
	if n, ok := names[id]; ok {
		return n
	}
	return string(id)
}

// IsValid returns whether the ID is one of the known sub-platforms,
// and a list of validation errors if it is not.
func (id ID) IsValid() (bool, []error) {
	if _, ok := names[id]; ok {
		return true, nil
	}
	return false, []error{&InvalidIDError{Value: id}}
}

// NativeHostOS returns the host operating system required by the
// sub-platform's native tooling, or "" when any host will do.
func (id ID) NativeHostOS() string {
	switch id {
	case IOSID:
		return Darwin
	case WindowsID:
		return Windows
	default:
		return ""
	}
}

// SupportedOn reports whether the sub-platform's native tooling can run on hostOS.
func (id ID) SupportedOn(hostOS string) bool {
	required := id.NativeHostOS()
	return required == "" || required == hostOS
}

// Error implements the error interface for InvalidIDError.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid sub-platform %q (valid: android, ios, windows)", e.Value)
}

// Unwrap returns ErrInvalidID for errors.Is() compatibility.
func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

// ParseIDs converts raw names into sub-platform identifiers. Names are
// matched case-insensitively, duplicates are dropped and input order is kept.
func ParseIDs(raw []string) ([]ID, error) {
	ids := make([]ID, 0, len(raw))
	var errs []error
	for _, r := range raw {
		id := ID(strings.ToLower(strings.TrimSpace(r)))
		if ok, fieldErrs := id.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
			continue
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return ids, nil
}

// Names joins the display names of ids with ", ".
func Names(ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.Name()
	}
	return strings.Join(parts, ", ")
}

// Strings converts ids to plain strings, e.g. for CLI arguments.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
