// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"slices"
	"testing"
)

func TestID_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       ID
		expected string
	}{
		{AndroidID, "Android Platform"},
		{IOSID, "iOS Platform"},
		{WindowsID, "Windows Platform"},
		{ID("blackberry"), "blackberry"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			t.Parallel()
			if got := tt.id.Name(); got != tt.expected {
				t.Errorf("Name() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestID_IsValid(t *testing.T) {
	t.Parallel()

	for _, id := range All() {
		if ok, errs := id.IsValid(); !ok {
			t.Errorf("%q should be valid, got %v", id, errs)
		}
	}

	ok, errs := ID("firefoxos").IsValid()
	if ok {
		t.Fatal("unknown id should be invalid")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidID) {
		t.Errorf("expected a single ErrInvalidID, got %v", errs)
	}
}

func TestID_SupportedOn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       ID
		host     string
		expected bool
	}{
		{"android on linux", AndroidID, Linux, true},
		{"android on windows", AndroidID, Windows, true},
		{"ios on darwin", IOSID, Darwin, true},
		{"ios on linux", IOSID, Linux, false},
		{"windows on windows", WindowsID, Windows, true},
		{"windows on darwin", WindowsID, Darwin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.id.SupportedOn(tt.host); got != tt.expected {
				t.Errorf("SupportedOn(%q) = %v, want %v", tt.host, got, tt.expected)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	ids, err := ParseIDs([]string{"iOS", " android ", "ios"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ID{IOSID, AndroidID}
	if !slices.Equal(ids, want) {
		t.Errorf("ParseIDs() = %v, want %v", ids, want)
	}

	if _, err := ParseIDs([]string{"android", "tizen"}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	got := Names([]ID{AndroidID, WindowsID})
	if got != "Android Platform, Windows Platform" {
		t.Errorf("Names() = %q", got)
	}
}
