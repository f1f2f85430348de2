// SPDX-License-Identifier: MPL-2.0

package orchestrator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pwa-builder/manifoldjs-cordova/internal/project"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const fakeBinary = "/opt/node/bin/cordova"

var errFakeTool = errors.New("exit status 1")

type (
	// fakeTool mimics the filesystem effects of the cordova CLI.
	fakeTool struct {
		mu    sync.Mutex
		calls [][]string

		// failOn fails the subcommand with this name ("create", "plugin", ...).
		failOn string
		// missingPlatform is not materialized by AddPlatforms.
		missingPlatform platform.ID
		// updatedManifest is written as manifest.updated.json by AddPlugins.
		updatedManifest string
	}

	fakeResolver struct {
		mu    sync.Mutex
		calls int
		err   error
	}
)

func (f *fakeTool) record(args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	if f.failOn != "" && args[0] == f.failOn {
		return errFakeTool
	}
	return nil
}

func (f *fakeTool) subcommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, c := range f.calls {
		names = append(names, c[0])
	}
	return names
}

func (f *fakeTool) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeTool) Create(_ context.Context, dir, project, packageID, appName string) error {
	if err := f.record("create", project, packageID, appName); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(dir, project), 0o755)
}

func (f *fakeTool) AddPlugins(_ context.Context, dir string, plugins []string) error {
	if err := f.record(append([]string{"plugin", "add"}, plugins...)...); err != nil {
		return err
	}
	if f.updatedManifest != "" {
		return os.WriteFile(filepath.Join(dir, manifest.UpdatedFileName), []byte(f.updatedManifest), 0o644)
	}
	return nil
}

func (f *fakeTool) AddPlatforms(_ context.Context, dir string, ids []platform.ID) error {
	if err := f.record(append([]string{"platform", "add"}, platform.Strings(ids)...)...); err != nil {
		return err
	}
	for _, id := range ids {
		if id == f.missingPlatform {
			continue
		}
		sub := project.SubPlatformDir(dir, id)
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return err
		}
		if id == platform.WindowsID {
			if err := os.WriteFile(filepath.Join(sub, SolutionFileName), nil, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *fakeTool) Build(_ context.Context, _ string, ids []platform.ID) error {
	return f.record(append([]string{"build"}, platform.Strings(ids)...)...)
}

func (f *fakeTool) Run(_ context.Context, _ string, id platform.ID) error {
	return f.record("run", string(id))
}

func (r *fakeResolver) Resolve(string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return fakeBinary, nil
}

func (r *fakeResolver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestCordova(t *testing.T, ids []platform.ID, tool *fakeTool, resolver *fakeResolver, opts ...CordovaOption) *Cordova {
	t.Helper()
	base := []CordovaOption{
		WithResolver(resolver),
		WithToolFactory(func(binaryPath string) Tool {
			if binaryPath != fakeBinary {
				t.Errorf("tool created with %q, want %q", binaryPath, fakeBinary)
			}
			return tool
		}),
		WithLogger(log.New(io.Discard)),
		WithHostOS(platform.Linux),
		WithVersion("1.0.0-test"),
	}
	c, err := NewCordova(ids, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewCordova() error = %v", err)
	}
	return c
}

func testManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(`{
		"start_url": "https://www.example.com/app/",
		"short_name": "Example App",
		"name": "The Example App",
		"theme_color": "#123456",
		"icons": [{"src": "icon.png", "sizes": "48x48 72x72", "type": "image/png"}]
	}`), "test")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return m
}

func assertStage(t *testing.T, err error, want Stage) *StageError {
	t.Helper()
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error = %v, want *StageError", err)
	}
	if stageErr.Stage != want {
		t.Fatalf("Stage = %s, want %s", stageErr.Stage, want)
	}
	if !errors.Is(err, ErrStage) {
		t.Error("error does not wrap ErrStage")
	}
	return stageErr
}

func assertContains(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Errorf("%q does not contain %q", s, sub)
	}
}

func assertIDs(t *testing.T, what string, got, want []platform.ID) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
