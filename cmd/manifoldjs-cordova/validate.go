// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pwa-builder/manifoldjs-cordova/internal/validation"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type (
	validateFlags struct {
		manifestPath string
		platforms    []string
		asJSON       bool
		strict       bool
		listRules    bool
	}

	// validateOutput is the --json document of the validate command.
	validateOutput struct {
		Manifest    string              `json:"manifest"`
		Warnings    []validation.Result `json:"warnings"`
		Suggestions []validation.Result `json:"suggestions"`
		Errors      []string            `json:"errors"`
	}
)

func newValidateCommand(app *App) *cobra.Command {
	var flags validateFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the manifest icons against each platform's requirements",
		Long: `Check the icons of a web app manifest against the image sizes each platform
expects. Missing sizes are reported as warnings or suggestions; the manifest
itself is never modified.

With --strict the command exits with status 2 when any warning is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.manifestPath, "manifest", "m", manifest.FileName, "path of the web app manifest")
	cmd.Flags().StringSliceVarP(&flags.platforms, "platforms", "p", nil, "sub-platforms to check (default from config)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the findings as JSON")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when warnings are found")
	cmd.Flags().BoolVar(&flags.listRules, "list-rules", false, "list the validation rules instead of checking a manifest")

	return cmd
}

func runValidate(cmd *cobra.Command, app *App, flags validateFlags) error {
	s, err := app.session(cmd)
	if err != nil {
		return app.fail(err)
	}

	ids, err := s.Platforms(flags.platforms)
	if err != nil {
		return s.fail(err)
	}

	if flags.listRules {
		renderRules(s.Stdout, app.Validation, ids)
		return nil
	}

	m, err := loadManifest(flags.manifestPath)
	if err != nil {
		return s.fail(err)
	}

	report := app.Validation.Report(m, ids...)

	if flags.asJSON {
		out := validateOutput{
			Manifest:    flags.manifestPath,
			Warnings:    nonNil(report.Warnings),
			Suggestions: nonNil(report.Suggestions),
			Errors:      make([]string, 0, len(report.Errors)),
		}
		for _, e := range report.Errors {
			out.Errors = append(out.Errors, e.Error())
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return s.fail(fmt.Errorf("encode report: %w", err))
		}
		fmt.Fprintln(s.Stdout, string(data))
	} else {
		renderReport(s.Stdout, flags.manifestPath, report)
	}

	switch {
	case len(report.Errors) > 0:
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d validation rule(s) failed to run", len(report.Errors))}
	case flags.strict && len(report.Warnings) > 0:
		return &ExitError{Code: ExitPartial, Err: fmt.Errorf("%d validation warning(s)", len(report.Warnings))}
	}
	return nil
}

func renderReport(w io.Writer, source string, report *validation.Report) {
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("Manifest validation:"), source)
	if report.Empty() {
		fmt.Fprintf(w, "%s all required icons are present\n", SuccessStyle.Render("✓"))
		return
	}
	for _, r := range report.Warnings {
		fmt.Fprintf(w, "  %s %s\n", WarningStyle.Render("warning"), describeResult(r))
	}
	for _, r := range report.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", suggestionStyle.Render("suggestion"), describeResult(r))
	}
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  %s %v\n", ErrorStyle.Render("error"), e)
	}
	fmt.Fprintf(w, "\n%s\n", SubtitleStyle.Render(fmt.Sprintf("%d warning(s), %d suggestion(s)", len(report.Warnings), len(report.Suggestions))))
}

func describeResult(r validation.Result) string {
	switch r.Code {
	case validation.CodeMissingImageGroup:
		return fmt.Sprintf("%s: add an icon in one of these sizes: %s", r.Platform.Name(), strings.Join(r.Data, ", "))
	default:
		return fmt.Sprintf("%s: missing icon sizes: %s", r.Platform.Name(), strings.Join(r.Data, ", "))
	}
}

func renderRules(w io.Writer, engine *validation.Engine, ids []platform.ID) {
	for _, id := range ids {
		fmt.Fprintln(w, TitleStyle.Render(id.Name()))
		for _, rule := range engine.Rules(id) {
			fmt.Fprintf(w, "  %s  %s\n", CmdStyle.Render(rule.Name()), rule.Description())
		}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
