// SPDX-License-Identifier: MPL-2.0

package project

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const (
	// PlatformsDir is the folder cordova writes sub-platform projects into.
	PlatformsDir = "platforms"

	// DocumentationFileName is the name of the copied per-platform guide.
	DocumentationFileName = "README-hosted-web-app.md"
)

// ErrNoDocumentation is returned when no guide exists for a sub-platform.
var ErrNoDocumentation = errors.New("no documentation for sub-platform")

//go:embed docs/*.md
var docsFS embed.FS

// GroupDir returns the platform group folder under root.
func GroupDir(root string) string {
	return filepath.Join(root, platform.GroupID)
}

// SubPlatformDir returns the generated folder of id inside groupDir.
func SubPlatformDir(groupDir string, id platform.ID) string {
	return filepath.Join(groupDir, PlatformsDir, string(id))
}

// Documentation returns the embedded guide of id.
func Documentation(id platform.ID) ([]byte, error) {
	data, err := docsFS.ReadFile("docs/" + string(id) + ".md")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDocumentation, id)
	}
	return data, nil
}

// CopyDocumentation writes the guide of id into dir, which must exist.
func CopyDocumentation(dir string, id platform.ID) error {
	data, err := Documentation(id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("copy documentation for %s: %w", id, err)
	}
	if err := os.WriteFile(filepath.Join(dir, DocumentationFileName), data, 0o644); err != nil {
		return fmt.Errorf("copy documentation for %s: %w", id, err)
	}
	return nil
}

// CreateShortcut makes link point at target. An existing link at that path
// is replaced; any other existing file is left alone and reported.
func CreateShortcut(target, link string) error {
	if info, err := os.Lstat(link); err == nil {
		if info.Mode()&fs.ModeSymlink == 0 {
			return fmt.Errorf("create shortcut %s: %w", link, fs.ErrExist)
		}
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("replace shortcut %s: %w", link, err)
		}
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("create shortcut %s: %w", link, err)
	}
	return nil
}
