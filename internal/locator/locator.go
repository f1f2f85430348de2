// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

// ToolName is the base name of the cordova command-line tool.
const ToolName = "cordova"

// ErrToolNotFound is the sentinel error wrapped by ToolNotFoundError.
var ErrToolNotFound = errors.New("tool not found")

type (
	// ToolNotFoundError is returned when the tool is absent from every search path.
	ToolNotFoundError struct {
		Tool        string
		SearchPaths []string
	}

	// Locator finds tools on a list of search directories. The zero value is
	// not usable; create instances with New.
	Locator struct {
		searchPaths []string
		hostOS      string
		cwd         string

		mu    sync.Mutex
		cache map[string]string
	}

	// Option configures a Locator.
	Option func(*Locator)
)

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	if len(e.SearchPaths) == 0 {
		return fmt.Sprintf("%s was not found: no search paths configured", e.Tool)
	}
	return fmt.Sprintf("%s was not found in %s", e.Tool, strings.Join(e.SearchPaths, string(os.PathListSeparator)))
}

// Unwrap returns ErrToolNotFound for errors.Is() compatibility.
func (e *ToolNotFoundError) Unwrap() error { return ErrToolNotFound }

// WithSearchPaths replaces the directories searched. Empty entries are ignored.
func WithSearchPaths(paths ...string) Option {
	return func(l *Locator) {
		l.searchPaths = l.searchPaths[:0]
		for _, p := range paths {
			if p != "" {
				l.searchPaths = append(l.searchPaths, p)
			}
		}
	}
}

// WithHostOS overrides the host operating system used to pick executable names.
func WithHostOS(goos string) Option {
	return func(l *Locator) { l.hostOS = goos }
}

// New creates a Locator searching the directories of the PATH environment
// variable unless WithSearchPaths says otherwise.
func New(opts ...Option) *Locator {
	l := &Locator{
		searchPaths: filepath.SplitList(os.Getenv("PATH")),
		hostOS:      platform.HostOS(),
		cache:       make(map[string]string),
	}
	if wd, err := os.Getwd(); err == nil {
		l.cwd = wd
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ExecutableName returns the file name of tool on the given host OS.
// Node-installed tools are launched through a .cmd shim on Windows.
func ExecutableName(tool, goos string) string {
	if goos == platform.Windows {
		return tool + ".cmd"
	}
	return tool
}

// Resolve returns the absolute path of tool. The first successful result is
// cached and returned on later calls even if the filesystem changes. Failed
// lookups are not cached.
func (l *Locator) Resolve(tool string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if path, ok := l.cache[tool]; ok {
		return path, nil
	}

	name := ExecutableName(tool, l.hostOS)
	if len(l.searchPaths) == 0 {
		return "", &ToolNotFoundError{Tool: name}
	}
	env := expand.ListEnviron("PATH=" + strings.Join(l.searchPaths, string(os.PathListSeparator)))
	path, err := interp.LookPathDir(l.cwd, env, name)
	if err != nil || path == "" {
		return "", &ToolNotFoundError{Tool: name, SearchPaths: append([]string(nil), l.searchPaths...)}
	}
	if abs, absErr := filepath.Abs(path); absErr == nil {
		path = abs
	}

	l.cache[tool] = path
	return path, nil
}

// Reset discards every cached resolution.
func (l *Locator) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.cache)
}
