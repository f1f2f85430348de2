// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pwa-builder/manifoldjs-cordova/internal/testutil"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	group := GroupDir("/out")
	if group != filepath.Join("/out", "cordova") {
		t.Errorf("GroupDir() = %q", group)
	}
	if got := SubPlatformDir(group, platform.IOSID); got != filepath.Join("/out", "cordova", "platforms", "ios") {
		t.Errorf("SubPlatformDir() = %q", got)
	}
}

func TestDocumentation(t *testing.T) {
	t.Parallel()

	for _, id := range platform.All() {
		data, err := Documentation(id)
		if err != nil {
			t.Fatalf("Documentation(%s) error = %v", id, err)
		}
		if !strings.HasPrefix(string(data), "# ") {
			t.Errorf("Documentation(%s) does not start with a heading", id)
		}
	}

	if _, err := Documentation("firefoxos"); !errors.Is(err, ErrNoDocumentation) {
		t.Errorf("unknown platform error = %v", err)
	}
}

func TestCopyDocumentation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := CopyDocumentation(dir, platform.AndroidID); err != nil {
		t.Fatalf("CopyDocumentation() error = %v", err)
	}
	data := testutil.MustReadFile(t, filepath.Join(dir, DocumentationFileName))
	if !strings.Contains(string(data), "Android") {
		t.Errorf("copied guide = %q", data)
	}

	missing := filepath.Join(dir, "missing")
	if err := CopyDocumentation(missing, platform.AndroidID); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("CopyDocumentation(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestCreateShortcut(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == platform.Windows {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	root := t.TempDir()
	target := filepath.Join(root, "cordova", "platforms", "android")
	testutil.MustMkdirAll(t, target, 0o755)
	link := filepath.Join(root, "android")

	if err := CreateShortcut(target, link); err != nil {
		t.Fatalf("CreateShortcut() error = %v", err)
	}
	if got, err := os.Readlink(link); err != nil || got != target {
		t.Fatalf("Readlink() = %q, %v", got, err)
	}

	// Re-creating replaces the existing link.
	other := t.TempDir()
	if err := CreateShortcut(other, link); err != nil {
		t.Fatalf("CreateShortcut() again error = %v", err)
	}
	if got, _ := os.Readlink(link); got != other {
		t.Errorf("Readlink() = %q, want %q", got, other)
	}

	regular := filepath.Join(root, "ios")
	if err := os.WriteFile(regular, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CreateShortcut(target, regular); !errors.Is(err, fs.ErrExist) {
		t.Errorf("CreateShortcut() over a file error = %v, want fs.ErrExist", err)
	}
}

func TestMetadataWriter(t *testing.T) {
	t.Parallel()

	clock := testutil.NewFakeClock(time.Time{})
	platforms := []platform.ID{platform.AndroidID, platform.WindowsID}
	w := NewMetadataWriter("manifoldjs-cordova", "1.2.3", "https://example.com/", platforms, WithClock(clock.Now))

	if _, err := uuid.Parse(w.RunID()); err != nil {
		t.Fatalf("RunID() = %q is not a UUID: %v", w.RunID(), err)
	}

	groupDir := t.TempDir()
	subDir := t.TempDir()
	if err := w.Write(subDir, platform.AndroidID); err != nil {
		t.Fatalf("Write(sub) error = %v", err)
	}
	if err := w.Write(groupDir, ""); err != nil {
		t.Fatalf("Write(group) error = %v", err)
	}

	sub, err := ReadGenerationInfo(subDir)
	if err != nil {
		t.Fatal(err)
	}
	group, err := ReadGenerationInfo(groupDir)
	if err != nil {
		t.Fatal(err)
	}

	if sub.RunID != group.RunID || sub.RunID != w.RunID() {
		t.Errorf("run IDs differ: %q, %q", sub.RunID, group.RunID)
	}
	if sub.SubPlatform != platform.AndroidID || group.SubPlatform != "" {
		t.Errorf("SubPlatform = %q / %q", sub.SubPlatform, group.SubPlatform)
	}
	if sub.PlatformID != platform.GroupID || sub.Version != "1.2.3" || sub.StartURL != "https://example.com/" {
		t.Errorf("info = %+v", sub)
	}
	if !slices.Equal(group.Platforms, platforms) {
		t.Errorf("Platforms = %v", group.Platforms)
	}
	if !sub.GeneratedAt.Equal(clock.Now()) {
		t.Errorf("GeneratedAt = %v, want %v", sub.GeneratedAt, clock.Now())
	}
}

func TestMetadataWriter_FixedRunID(t *testing.T) {
	t.Parallel()

	w := NewMetadataWriter("g", "v", "https://example.com/", nil, WithRunID("run-1"))
	if w.RunID() != "run-1" {
		t.Errorf("RunID() = %q", w.RunID())
	}
	if err := w.Write(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
		t.Error("Write() into a missing folder succeeded")
	}
}
