// SPDX-License-Identifier: MPL-2.0

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/pwa-builder/manifoldjs-cordova/internal/cordova"
	"github.com/pwa-builder/manifoldjs-cordova/internal/issue"
	"github.com/pwa-builder/manifoldjs-cordova/internal/locator"
	"github.com/pwa-builder/manifoldjs-cordova/internal/packagename"
	"github.com/pwa-builder/manifoldjs-cordova/internal/project"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const (
	// Generator names this tool in generation metadata.
	Generator = "manifoldjs-cordova"

	// SolutionFileName is the Visual Studio solution of the windows sub-platform.
	SolutionFileName = "CordovaApp.sln"

	// DefaultConcurrency bounds the per-sub-platform post-processing fan-out.
	DefaultConcurrency = 4
)

type (
	// Tool is the subset of the cordova CLI the orchestrator drives.
	Tool interface {
		Create(ctx context.Context, dir, project, packageID, appName string) error
		AddPlugins(ctx context.Context, dir string, plugins []string) error
		AddPlatforms(ctx context.Context, dir string, ids []platform.ID) error
		Build(ctx context.Context, dir string, ids []platform.ID) error
		Run(ctx context.Context, dir string, id platform.ID) error
	}

	// ToolFactory creates a Tool bound to a resolved binary path.
	ToolFactory func(binaryPath string) Tool

	// Resolver locates executables. *locator.Locator implements it.
	Resolver interface {
		Resolve(tool string) (string, error)
	}

	// Opener opens a file with its associated desktop application.
	Opener func(ctx context.Context, path string) error

	// CordovaOption configures a Cordova orchestrator.
	CordovaOption func(*Cordova)

	// Cordova orchestrates the cordova platform group.
	Cordova struct {
		platforms   []platform.ID
		resolver    Resolver
		newTool     ToolFactory
		logger      *log.Logger
		hostOS      string
		opener      Opener
		plugin      cordova.PluginSpec
		concurrency int
		version     string
		now         func() time.Time
	}
)

// WithResolver sets the executable resolver. Sharing one resolver between
// orchestrators shares its cache.
func WithResolver(r Resolver) CordovaOption {
	return func(c *Cordova) { c.resolver = r }
}

// WithToolFactory sets how the cordova CLI is created once its path is known.
func WithToolFactory(f ToolFactory) CordovaOption {
	return func(c *Cordova) { c.newTool = f }
}

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) CordovaOption {
	return func(c *Cordova) { c.logger = l }
}

// WithHostOS overrides the host operating system used for platform checks.
func WithHostOS(goos string) CordovaOption {
	return func(c *Cordova) { c.hostOS = goos }
}

// WithOpener sets the function used to open IDE projects.
func WithOpener(o Opener) CordovaOption {
	return func(c *Cordova) { c.opener = o }
}

// WithPlugin sets the hosted web app plugin installed by Create.
func WithPlugin(p cordova.PluginSpec) CordovaOption {
	return func(c *Cordova) { c.plugin = p }
}

// WithConcurrency bounds the post-processing fan-out. Values below 1 mean
// one task per sub-platform.
func WithConcurrency(n int) CordovaOption {
	return func(c *Cordova) { c.concurrency = n }
}

// WithVersion sets the version recorded in generation metadata.
func WithVersion(v string) CordovaOption {
	return func(c *Cordova) { c.version = v }
}

// WithClock sets the time source of generation metadata.
func WithClock(now func() time.Time) CordovaOption {
	return func(c *Cordova) { c.now = now }
}

// NewCordova creates the Cordova orchestrator for the given sub-platforms.
func NewCordova(ids []platform.ID, opts ...CordovaOption) (*Cordova, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no sub-platforms selected", platform.ErrInvalidID)
	}
	for _, id := range ids {
		if ok, errs := id.IsValid(); !ok {
			return nil, errors.Join(errs...)
		}
	}

	c := &Cordova{
		platforms:   slices.Clone(ids),
		hostOS:      platform.HostOS(),
		plugin:      cordova.MustParsePluginSpec(cordova.DefaultHostedWebAppPlugin),
		concurrency: DefaultConcurrency,
		version:     "dev",
		now:         time.Now,
		opener:      openWithShell,
		newTool: func(binaryPath string) Tool {
			return cordova.New(binaryPath)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = locator.New()
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: platform.GroupID})
	}
	return c, nil
}

// CordovaFactory returns a Factory creating Cordova orchestrators with opts.
func CordovaFactory(opts ...CordovaOption) Factory {
	return func(ids []platform.ID) (Orchestrator, error) {
		return NewCordova(ids, opts...)
	}
}

// Platforms returns the selected sub-platforms.
func (c *Cordova) Platforms() []platform.ID { return slices.Clone(c.platforms) }

// Create implements Orchestrator.
func (c *Cordova) Create(ctx context.Context, m *manifest.Manifest, rootDir string, opts CreateOptions) (*Outcome, error) {
	c.logger.Info("Generating apps", "platforms", platform.Names(c.platforms))

	if m == nil {
		return nil, &StageError{Stage: StagePersistManifest, Cause: manifest.ErrInvalidManifest}
	}
	packageID, err := packagename.Derive(m.StartURL)
	if err != nil {
		return nil, &StageError{Stage: StageCreateProject, Cause: err}
	}
	appName := packagename.AppName(m.ShortName, m.Name)
	groupDir := project.GroupDir(rootDir)

	// 1. resolve tool
	tool, err := c.tool()
	if err != nil {
		return nil, err
	}

	// 2. create base project
	c.logger.Info("Creating the project", "package", packageID, "name", appName)
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, &StageError{Stage: StageCreateProject, Cause: err}
	}
	if err := tool.Create(ctx, rootDir, platform.GroupID, packageID, appName); err != nil {
		return nil, &StageError{Stage: StageCreateProject, Cause: err}
	}

	// 3. persist manifest
	c.logger.Debug("Copying the manifest to the project folder")
	if err := manifest.WriteToFile(m, filepath.Join(groupDir, manifest.FileName)); err != nil {
		return nil, &StageError{Stage: StagePersistManifest, Cause: err}
	}

	out := &Outcome{ProjectDir: groupDir, PackageID: packageID, AppName: appName}

	// 4. install plugins
	out.Plugins = cordova.Plugins(c.plugin, cordova.PluginOptions{Crosswalk: opts.Crosswalk, WebAppToolkit: opts.WebAppToolkit})
	if opts.WebAppToolkit {
		c.logger.Warn("The Web App Toolkit plugin requires manual steps before running the app", "docs", cordova.WebAppToolkitURL)
		out.Notices = append(out.Notices, issue.WebAppToolkitSetupId)
	}
	c.logger.Info("Adding plugins", "plugins", out.Plugins)
	if err := tool.AddPlugins(ctx, groupDir, out.Plugins); err != nil {
		return nil, &StageError{Stage: StageInstallPlugins, Plugins: out.Plugins, Cause: err}
	}
	if applied, err := manifest.ApplyUpdated(groupDir); err != nil {
		return nil, &StageError{Stage: StageInstallPlugins, Plugins: out.Plugins, Cause: err}
	} else if applied {
		c.logger.Debug("Applied the manifest updated by plugins")
	}

	// 5. add sub-platforms
	c.logger.Info("Adding platforms", "platforms", platform.Strings(c.platforms))
	if err := tool.AddPlatforms(ctx, groupDir, c.platforms); err != nil {
		return nil, &StageError{Stage: StageAddPlatforms, SubPlatforms: c.Platforms(), Cause: err}
	}

	// 6. per-sub-platform post-processing
	meta := project.NewMetadataWriter(Generator, c.version, m.StartURL, c.platforms, project.WithClock(c.now))
	out.RunID = meta.RunID()
	out.SubPlatforms = c.processPlatforms(ctx, rootDir, groupDir, meta)
	if err := meta.Write(groupDir, ""); err != nil {
		return out, &StageError{Stage: StageProcessPlatforms, Cause: err}
	}
	for _, r := range out.SubPlatforms {
		if r.Err != nil {
			c.logger.Error("Platform was not completed", "platform", r.SubPlatform, "err", r.Err)
		}
	}
	if failed := out.Failed(); len(failed) > 0 {
		out.Notices = append(out.Notices, issue.SubPlatformsFailedId)
	} else {
		c.logger.Info("The apps were created successfully", "platforms", platform.Names(c.platforms))
	}

	// 7. package
	if opts.Package {
		built := out.Succeeded()
		if len(built) == 0 {
			c.logger.Warn("No platform completed processing; skipping packaging")
			return out, nil
		}
		pkg, err := c.build(ctx, tool, groupDir, built)
		out.Package = pkg
		if err != nil {
			return out, err
		}
	}

	return out, nil
}

// processPlatforms runs post-processing of every sub-platform concurrently
// and waits for all of them. Results keep the order of c.platforms.
func (c *Cordova) processPlatforms(ctx context.Context, rootDir, groupDir string, meta *project.MetadataWriter) []SubPlatformResult {
	results := make([]SubPlatformResult, len(c.platforms))

	var g errgroup.Group
	limit := c.concurrency
	if limit < 1 {
		limit = len(c.platforms)
	}
	g.SetLimit(limit)

	for i, id := range c.platforms {
		results[i].SubPlatform = id
		g.Go(func() error {
			results[i].Err = c.processPlatform(ctx, rootDir, groupDir, id, meta)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Cordova) processPlatform(ctx context.Context, rootDir, groupDir string, id platform.ID, meta *project.MetadataWriter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logger.Info("Processing platform", "platform", id)

	dir := project.SubPlatformDir(groupDir, id)
	if err := project.CopyDocumentation(dir, id); err != nil {
		return err
	}

	if id != platform.WindowsID {
		target, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		c.logger.Debug("Creating shortcut", "platform", id)
		if err := project.CreateShortcut(target, filepath.Join(rootDir, string(id))); err != nil {
			return err
		}
	}

	return meta.Write(dir, id)
}

// Package implements Orchestrator.
func (c *Cordova) Package(ctx context.Context, rootDir string) (*PackageOutcome, error) {
	tool, err := c.tool()
	if err != nil {
		return nil, err
	}
	return c.build(ctx, tool, project.GroupDir(rootDir), c.platforms)
}

func (c *Cordova) build(ctx context.Context, tool Tool, groupDir string, ids []platform.ID) (*PackageOutcome, error) {
	c.logger.Info("Creating app packages", "platforms", platform.Names(ids))

	out := &PackageOutcome{}
	for _, id := range ids {
		if !id.SupportedOn(c.hostOS) {
			c.logger.Warn("Packaging is not supported in this environment", "platform", id.Name(), "requires", id.NativeHostOS())
			out.Skipped = append(out.Skipped, id)
			continue
		}
		out.Built = append(out.Built, id)
	}
	if len(out.Built) == 0 {
		c.logger.Warn("No platform can be packaged on this host")
		return out, nil
	}

	if err := tool.Build(ctx, groupDir, out.Built); err != nil {
		return out, &StageError{Stage: StagePackage, SubPlatforms: out.Built, Cause: err}
	}
	c.logger.Info("The apps were packaged successfully", "platforms", platform.Names(out.Built))
	return out, nil
}

// Run implements Orchestrator.
func (c *Cordova) Run(ctx context.Context, rootDir string, id platform.ID) error {
	if err := c.checkSelected("run", id); err != nil {
		return err
	}
	if !id.SupportedOn(c.hostOS) {
		return &PreconditionError{
			Operation:   "run",
			SubPlatform: id,
			Reason:      fmt.Sprintf("projects can only be executed on %s hosts", id.NativeHostOS()),
		}
	}

	tool, err := c.tool()
	if err != nil {
		return err
	}
	c.logger.Info("Running app", "platform", id)
	if err := tool.Run(ctx, project.GroupDir(rootDir), id); err != nil {
		return &StageError{Stage: StageRun, SubPlatforms: []platform.ID{id}, Cause: err}
	}
	return nil
}

// Open implements Orchestrator. Only the windows sub-platform has an IDE
// project, and it can only be opened on a Windows host.
func (c *Cordova) Open(ctx context.Context, rootDir string, id platform.ID) error {
	if err := c.checkSelected("open", id); err != nil {
		return err
	}
	if id != platform.WindowsID {
		return &PreconditionError{Operation: "open", SubPlatform: id, Reason: "the command is not implemented for this platform"}
	}
	if c.hostOS != platform.Windows {
		return &PreconditionError{Operation: "open", SubPlatform: id, Reason: "Visual Studio projects can only be opened on Windows"}
	}

	sln := filepath.Join(project.SubPlatformDir(project.GroupDir(rootDir), id), SolutionFileName)
	if _, err := os.Stat(sln); err != nil {
		return &StageError{Stage: StageOpen, SubPlatforms: []platform.ID{id}, Cause: err}
	}
	c.logger.Info("Opening Visual Studio project", "path", sln)
	if err := c.opener(ctx, sln); err != nil {
		return &StageError{Stage: StageOpen, SubPlatforms: []platform.ID{id}, Cause: err}
	}
	return nil
}

func (c *Cordova) checkSelected(op string, id platform.ID) error {
	if ok, errs := id.IsValid(); !ok {
		return errors.Join(errs...)
	}
	if !slices.Contains(c.platforms, id) {
		return &PreconditionError{Operation: op, SubPlatform: id, Reason: "the platform was not selected"}
	}
	return nil
}

func (c *Cordova) tool() (Tool, error) {
	path, err := c.resolver.Resolve(locator.ToolName)
	if err != nil {
		return nil, &StageError{Stage: StageResolveTool, Cause: err}
	}
	c.logger.Debug("Using cordova", "path", path)
	return c.newTool(path), nil
}

// openWithShell opens path with the Windows shell association.
func openWithShell(ctx context.Context, path string) error {
	//nolint:gosec // path is built from the project layout
	return exec.CommandContext(ctx, "cmd", "/c", "start", "", path).Run()
}
