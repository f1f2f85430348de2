// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/pwa-builder/manifoldjs-cordova/internal/config"
	"github.com/pwa-builder/manifoldjs-cordova/internal/cordova"
	"github.com/pwa-builder/manifoldjs-cordova/internal/issue"
	"github.com/pwa-builder/manifoldjs-cordova/internal/locator"
	"github.com/pwa-builder/manifoldjs-cordova/internal/orchestrator"
	"github.com/pwa-builder/manifoldjs-cordova/internal/validation"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error)
	}

	// RegistryBuilder creates the orchestrator registry for one command invocation.
	RegistryBuilder func(s *Session) (*orchestrator.Registry, error)

	// App wires CLI services and shared dependencies. All Cobra command handlers
	// receive an App reference and reach configuration and orchestrators through it.
	App struct {
		Config     ConfigProvider
		Registry   RegistryBuilder
		Validation *validation.Engine
		stdout     io.Writer
		stderr     io.Writer
		flags      rootFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Registry   RegistryBuilder
		Validation *validation.Engine
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// Session holds the state resolved once per command invocation.
	Session struct {
		Config     *config.Config
		ConfigPath string
		Logger     *log.Logger
		Verbose    bool
		Stdout     io.Writer
		Stderr     io.Writer
		build      RegistryBuilder
		registry   *orchestrator.Registry
	}

	rootFlags struct {
		verbose    bool
		configFile string
		envFile    string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:     deps.Config,
		Registry:   deps.Registry,
		Validation: deps.Validation,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Registry == nil {
		app.Registry = DefaultRegistry
	}
	if app.Validation == nil {
		app.Validation = validation.DefaultEngine()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// session loads the environment file and configuration, then builds the logger.
func (a *App) session(cmd *cobra.Command) (*Session, error) {
	if err := loadEnvFile(a.flags.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return nil, err
	}

	loaded, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	s := &Session{
		Config:     cfg,
		ConfigPath: loaded.Path,
		Verbose:    a.flags.verbose || cfg.UI.Verbose,
		Stdout:     a.stdout,
		Stderr:     a.stderr,
		build:      a.Registry,
	}

	applyColorScheme(cfg.UI.ColorScheme)

	level, err := log.ParseLevel(cfg.UI.LogLevel.String())
	if err != nil {
		level = log.InfoLevel
	}
	if s.Verbose {
		level = log.DebugLevel
	}
	s.Logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: platform.GroupID,
		Level:  level,
	})
	return s, nil
}

// Orchestrator creates the platform group orchestrator for ids. The registry
// is built on first use.
func (s *Session) Orchestrator(ids []platform.ID) (orchestrator.Orchestrator, error) {
	if s.registry == nil {
		reg, err := s.build(s)
		if err != nil {
			return nil, err
		}
		s.registry = reg
	}
	return s.registry.New(platform.GroupID, ids)
}

// Platforms returns the sub-platforms named on the command line, or the
// configured ones when none were given.
func (s *Session) Platforms(fromFlag []string) ([]platform.ID, error) {
	raw := fromFlag
	if len(raw) == 0 {
		raw = s.Config.Generation.Platforms
	}
	ids, err := platform.ParseIDs(raw)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no platforms selected (valid: %s)", platform.ErrInvalidID, platformList())
	}
	return ids, nil
}

// DefaultRegistry registers the Cordova orchestrator configured from the session.
func DefaultRegistry(s *Session) (*orchestrator.Registry, error) {
	cfg := s.Config

	plugin, err := cordova.ResolveHostedWebAppPlugin(cfg.Cordova.Plugin)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve hosted web app plugin").
			WithSuggestion("Check cordova.plugin in the configuration and the " + cordova.EnvHostedWebAppPlugin + " environment variable").
			WithIssue(issue.InvalidPluginSpecId).
			Wrap(err).
			BuildError()
	}

	var locOpts []locator.Option
	if len(cfg.Cordova.SearchPaths) > 0 {
		locOpts = append(locOpts, locator.WithSearchPaths(cfg.Cordova.SearchPaths...))
	}
	resolver := locator.New(locOpts...)

	toolOpts := []cordova.Option{cordova.WithRetry(cfg.Cordova.RetryAttempts, cordova.DefaultRetryBackoff)}
	if s.Verbose {
		toolOpts = append(toolOpts, cordova.WithOutput(s.Stdout, s.Stderr))
	}

	reg := orchestrator.NewRegistry()
	reg.Register(platform.GroupID, orchestrator.CordovaFactory(
		orchestrator.WithResolver(resolver),
		orchestrator.WithToolFactory(func(binaryPath string) orchestrator.Tool {
			return cordova.New(binaryPath, toolOpts...)
		}),
		orchestrator.WithLogger(s.Logger),
		orchestrator.WithPlugin(plugin),
		orchestrator.WithConcurrency(cfg.Generation.Concurrency),
		orchestrator.WithVersion(Version),
	))
	return reg, nil
}

// loadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing default file is ignored.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return issue.NewErrorContext().
			WithOperation("load environment file").
			WithResource(path).
			WithSuggestion("Check that the file exists and contains KEY=VALUE lines").
			Wrap(err).
			BuildError()
	}
	return nil
}

func applyColorScheme(cs config.ColorScheme) {
	switch cs {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(cs config.ColorScheme) string {
	switch cs {
	case config.ColorSchemeDark, config.ColorSchemeLight:
		return string(cs)
	default:
		return "auto"
	}
}

func platformList() string {
	names := platform.Strings(platform.All())
	slices.Sort(names)
	return fmt.Sprint(names)
}

// style returns the glamour style of the configured color scheme.
func (s *Session) style() string { return glamourStyle(s.Config.UI.ColorScheme) }

// fail reports err with the session's style and verbosity.
func (s *Session) fail(err error) error {
	return fail(s.Stderr, s.style(), s.Verbose, err)
}

// fail reports err raised before a session could be established.
func (a *App) fail(err error) error {
	return fail(a.stderr, glamourStyle(config.ColorSchemeAuto), a.flags.verbose, err)
}
