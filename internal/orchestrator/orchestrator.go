// SPDX-License-Identifier: MPL-2.0

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pwa-builder/manifoldjs-cordova/internal/issue"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

type (
	// Orchestrator implements the lifecycle operations of one platform group.
	// Operations block until done; use Async to run them in the background.
	Orchestrator interface {
		// Create generates the projects under rootDir. Per-sub-platform
		// failures are reported in the Outcome with a nil error; terminal
		// failures return a *StageError.
		Create(ctx context.Context, m *manifest.Manifest, rootDir string, opts CreateOptions) (*Outcome, error)
		// Package builds the sub-platforms that the host can build.
		Package(ctx context.Context, rootDir string) (*PackageOutcome, error)
		// Run deploys and launches one sub-platform.
		Run(ctx context.Context, rootDir string, id platform.ID) error
		// Open opens the IDE project of one sub-platform.
		Open(ctx context.Context, rootDir string, id platform.ID) error
	}

	// CreateOptions selects optional plugins and packaging.
	CreateOptions struct {
		Crosswalk     bool
		WebAppToolkit bool
		// Package builds the sub-platforms that completed post-processing.
		Package bool
	}

	// SubPlatformResult is the settled outcome of one sub-platform's post-processing.
	SubPlatformResult struct {
		SubPlatform platform.ID
		Err         error
	}

	// Outcome summarizes a Create run that got through its terminal stages.
	Outcome struct {
		RunID        string
		ProjectDir   string
		PackageID    string
		AppName      string
		Plugins      []string
		SubPlatforms []SubPlatformResult
		// Package is set when CreateOptions.Package was requested.
		Package *PackageOutcome
		// Notices lists advisory issues the user should read.
		Notices []issue.Id
	}

	// PackageOutcome lists what a build included and what the host could not build.
	PackageOutcome struct {
		Built   []platform.ID
		Skipped []platform.ID
	}

	// Factory creates the orchestrator of a platform group for the selected sub-platforms.
	Factory func(ids []platform.ID) (Orchestrator, error)

	// Registry maps platform group ids to orchestrator factories.
	Registry struct {
		mu        sync.RWMutex
		factories map[string]Factory
	}
)

// Failed returns the sub-platforms whose post-processing failed, in run order.
func (o *Outcome) Failed() []platform.ID {
	var ids []platform.ID
	for _, r := range o.SubPlatforms {
		if r.Err != nil {
			ids = append(ids, r.SubPlatform)
		}
	}
	return ids
}

// Succeeded returns the sub-platforms whose post-processing completed, in run order.
func (o *Outcome) Succeeded() []platform.ID {
	var ids []platform.ID
	for _, r := range o.SubPlatforms {
		if r.Err == nil {
			ids = append(ids, r.SubPlatform)
		}
	}
	return ids
}

// Err joins the per-sub-platform failures, or returns nil when all succeeded.
func (o *Outcome) Err() error {
	var errs []error
	for _, r := range o.SubPlatforms {
		if r.Err != nil {
			errs = append(errs, &SubPlatformError{SubPlatform: r.SubPlatform, Cause: r.Err})
		}
	}
	return errors.Join(errs...)
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory to a platform group id, replacing any previous one.
func (r *Registry) Register(groupID string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[groupID] = f
}

// Lookup returns the factory of a platform group.
func (r *Registry) Lookup(groupID string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, groupID)
	}
	return f, nil
}

// New looks up groupID and creates its orchestrator for ids.
func (r *Registry) New(groupID string, ids []platform.ID) (Orchestrator, error) {
	f, err := r.Lookup(groupID)
	if err != nil {
		return nil, err
	}
	return f(ids)
}

// Groups returns the registered platform group ids, sorted.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	groups := make([]string, 0, len(r.factories))
	for g := range r.factories {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
