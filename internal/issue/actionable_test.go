// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "load manifest"}, "failed to load manifest"},
		{
			"with resource",
			&ActionableError{Operation: "load manifest", Resource: "site/manifest.json"},
			"failed to load manifest: site/manifest.json",
		},
		{
			"with cause",
			&ActionableError{Operation: "add plugins", Cause: errors.New("npm ERR! code ETIMEDOUT")},
			"failed to add plugins: npm ERR! code ETIMEDOUT",
		},
		{
			"resource and cause",
			&ActionableError{Operation: "resolve tool", Resource: "cordova", Cause: errors.New("not found in PATH")},
			"failed to resolve tool: cordova: not found in PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load manifest").
		Wrap(fmt.Errorf("open manifest.json: %w", fs.ErrNotExist)).
		BuildError()

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped fs.ErrNotExist")
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() without cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	nested := &ActionableError{
		Operation: "create project",
		Cause: &ActionableError{
			Operation: "add plugins",
			Cause:     errors.New("exit status 1"),
		},
	}

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions as bullets",
			err: &ActionableError{
				Operation:   "load manifest",
				Resource:    "manifest.json",
				Suggestions: []string{"Pass the manifest location with --manifest", "Check file permissions"},
			},
			contains: []string{
				"failed to load manifest: manifest.json",
				"\n\n  • Pass the manifest location with --manifest",
				"\n  • Check file permissions",
			},
		},
		{
			name:     "chain hidden when not verbose",
			err:      nested,
			contains: []string{"failed to create project: failed to add plugins: exit status 1"},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "chain numbered when verbose",
			err:     nested,
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to add plugins: exit status 1",
				"2. exit status 1",
			},
		},
		{
			name:     "verbose without cause",
			err:      &ActionableError{Operation: "open project"},
			verbose:  true,
			excludes: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("cordova").Build() != nil {
		t.Error("Build() without operation should be nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want untyped nil", err)
	}

	cause := errors.New("bad range")
	ae := NewErrorContext().
		WithOperation("resolve hosted web app plugin").
		WithResource("cordova-plugin-hostedwebapp@>=x").
		WithSuggestion("Check cordova.plugin").
		WithSuggestion("Unset CORDOVA_HOSTED_WEBAPP_PLUGIN").
		WithIssue(InvalidPluginSpecId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "resolve hosted web app plugin" || ae.Resource != "cordova-plugin-hostedwebapp@>=x" {
		t.Errorf("unexpected operation/resource: %+v", ae)
	}
	if !ae.HasSuggestions() || len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want 2", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("cause not wrapped")
	}
	if ae.Issue != InvalidPluginSpecId {
		t.Errorf("Issue = %d, want %d", ae.Issue, InvalidPluginSpecId)
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().
		WithOperation("add platforms").
		WithResource("out/cordova").
		WithSuggestion("Retry when the network is available")

	first := ctx.Wrap(errors.New("android")).Build()
	second := ctx.WithSuggestion("Run with --verbose").Wrap(errors.New("ios")).Build()

	if first.Cause.Error() != "android" || second.Cause.Error() != "ios" {
		t.Errorf("causes = %v, %v", first.Cause, second.Cause)
	}
	if len(first.Suggestions) != 1 {
		t.Errorf("earlier error should not see later suggestions, got %v", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second suggestions = %v", second.Suggestions)
	}
}

func TestActionableError_Help(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("resolve cordova").
		WithIssue(CordovaNotFoundId).
		Build()
	if help := ae.Help(); help == nil || help.Id() != CordovaNotFoundId {
		t.Errorf("Help() = %v", help)
	}
	if (&ActionableError{Operation: "x"}).Help() != nil {
		t.Error("Help() without issue should be nil")
	}
}
