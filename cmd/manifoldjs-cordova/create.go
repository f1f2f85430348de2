// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"

	"github.com/pwa-builder/manifoldjs-cordova/internal/issue"
	"github.com/pwa-builder/manifoldjs-cordova/internal/orchestrator"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"

	"github.com/spf13/cobra"
)

const defaultOutputDir = "."

type createFlags struct {
	manifestPath  string
	dir           string
	platforms     []string
	crosswalk     bool
	webAppToolkit bool
	pkg           bool
}

func newCreateCommand(app *App) *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a Cordova project from a web app manifest",
		Long: `Generate a Cordova project that wraps the hosted web app described by a
W3C web app manifest.

The project is created in <dir>/cordova. The package id is derived from the
start_url host and the app name from short_name or name. Platforms that fail
post-processing are reported while the others remain usable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.manifestPath, "manifest", "m", manifest.FileName, "path of the web app manifest")
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", defaultOutputDir, "root directory of the generated project")
	cmd.Flags().StringSliceVarP(&flags.platforms, "platforms", "p", nil, "sub-platforms to generate (default from config: android, ios, windows)")
	cmd.Flags().BoolVar(&flags.crosswalk, "crosswalk", false, "add the Crosswalk webview plugin")
	cmd.Flags().BoolVar(&flags.webAppToolkit, "web-app-toolkit", false, "add the Web App Toolkit plugin")
	cmd.Flags().BoolVar(&flags.pkg, "package", false, "build the generated platforms")

	return cmd
}

func runCreate(cmd *cobra.Command, app *App, flags createFlags) error {
	s, err := app.session(cmd)
	if err != nil {
		return app.fail(err)
	}

	ids, err := s.Platforms(flags.platforms)
	if err != nil {
		return s.fail(err)
	}

	m, err := loadManifest(flags.manifestPath)
	if err != nil {
		return s.fail(err)
	}

	report := app.Validation.Report(m, ids...)
	for _, e := range report.Errors {
		s.Logger.Error("Validation rule failed", "err", e)
	}
	for _, r := range report.Warnings {
		s.Logger.Warn("Manifest is missing icons", "platform", r.Platform, "sizes", r.Data)
	}
	for _, r := range report.Suggestions {
		s.Logger.Debug("Manifest could add icons", "platform", r.Platform, "sizes", r.Data)
	}

	orch, err := s.Orchestrator(ids)
	if err != nil {
		return s.fail(err)
	}

	opts := orchestrator.CreateOptions{
		Crosswalk:     s.Config.Generation.Crosswalk,
		WebAppToolkit: s.Config.Generation.WebAppToolkit,
		Package:       flags.pkg,
	}
	if cmd.Flags().Changed("crosswalk") {
		opts.Crosswalk = flags.crosswalk
	}
	if cmd.Flags().Changed("web-app-toolkit") {
		opts.WebAppToolkit = flags.webAppToolkit
	}

	out, err := orch.Create(cmd.Context(), m, flags.dir, opts)
	if err != nil {
		return s.fail(err)
	}

	renderOutcome(s.Stdout, out)
	for _, id := range out.Notices {
		renderIssue(s.Stderr, id, s.style())
	}

	if failed := out.Err(); failed != nil {
		return &ExitError{Code: ExitPartial, Err: failed}
	}
	return nil
}

// loadManifest reads the manifest and attaches the matching catalogue entry
// to read and parse failures.
func loadManifest(path string) (*manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err == nil {
		return m, nil
	}

	ctx := issue.NewErrorContext().
		WithOperation("load manifest").
		WithResource(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx = ctx.WithIssue(issue.ManifestNotFoundId).
			WithSuggestion("Pass the manifest location with --manifest")
	case errors.Is(err, manifest.ErrInvalidManifest):
		ctx = ctx.WithIssue(issue.ManifestInvalidId).
			WithSuggestion("Set start_url to an absolute http(s) URL")
	}
	return nil, ctx.Wrap(err).BuildError()
}
