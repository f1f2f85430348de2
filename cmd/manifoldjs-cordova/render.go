// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/pwa-builder/manifoldjs-cordova/internal/cordova"
	"github.com/pwa-builder/manifoldjs-cordova/internal/issue"
	"github.com/pwa-builder/manifoldjs-cordova/internal/locator"
	"github.com/pwa-builder/manifoldjs-cordova/internal/orchestrator"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

// classifyError maps command failures to issue catalogue ids. It returns 0
// when no catalogue entry applies.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	var pre *orchestrator.PreconditionError
	switch {
	case errors.Is(err, locator.ErrToolNotFound):
		return issue.CordovaNotFoundId
	case errors.As(err, &pre):
		if pre.Operation == "open" {
			return issue.OpenNotSupportedId
		}
		return issue.HostNotSupportedId
	case errors.Is(err, cordova.ErrInvalidPluginSpec):
		return issue.InvalidPluginSpecId
	case errors.Is(err, cordova.ErrSubprocess):
		return issue.CordovaCommandFailedId
	case errors.Is(err, manifest.ErrInvalidManifest):
		return issue.ManifestInvalidId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	}
	return 0
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// fail renders the catalogue entry matching err and returns err as an ExitError.
// In verbose mode the full error chain is written first.
func fail(w io.Writer, style string, verbose bool, err error) error {
	if verbose {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, true))
	}
	if id := classifyError(err); id != 0 {
		renderIssue(w, id, style)
	}
	return &ExitError{Code: ExitFailure, Err: err}
}

// renderIssue writes the markdown of a catalogue entry. Rendering failures
// are ignored since the entry only supplements an error already reported.
func renderIssue(w io.Writer, id issue.Id, style string) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(style)
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

func renderOutcome(w io.Writer, out *orchestrator.Outcome) {
	fmt.Fprintln(w, TitleStyle.Render("Cordova project generated"))
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Project"), out.ProjectDir)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Package"), out.PackageID)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Name"), out.AppName)
	fmt.Fprintln(w)
	for _, r := range out.SubPlatforms {
		if r.Err != nil {
			fmt.Fprintf(w, "  %s %s: %v\n", ErrorStyle.Render("✗"), r.SubPlatform.Name(), r.Err)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), r.SubPlatform.Name())
	}
	if out.Package != nil {
		fmt.Fprintln(w)
		renderPackageOutcome(w, out.Package)
	}
}

func renderPackageOutcome(w io.Writer, out *orchestrator.PackageOutcome) {
	if len(out.Built) > 0 {
		fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Built:"), platform.Names(out.Built))
	}
	if len(out.Skipped) > 0 {
		fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("Skipped on this host:"), platform.Names(out.Skipped))
	}
	if len(out.Built) == 0 && len(out.Skipped) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("Nothing to build"))
	}
}
