// SPDX-License-Identifier: MPL-2.0

package cordova

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-version"
)

const (
	// EnvHostedWebAppPlugin overrides the hosted web app plugin spec.
	EnvHostedWebAppPlugin = "CORDOVA_HOSTED_WEBAPP_PLUGIN"

	// DefaultHostedWebAppPlugin is installed when no override is configured.
	DefaultHostedWebAppPlugin = "cordova-plugin-hostedwebapp@>=0.2.0 <0.3.0"

	// CrosswalkPlugin replaces the system web view on Android.
	CrosswalkPlugin = "cordova-plugin-crosswalk-webview"
	// WebAppToolkitPlugin adds the Web App Toolkit, which needs manual setup.
	WebAppToolkitPlugin = "cordova-plugin-webapptoolkit"
	// WhitelistPlugin is pinned because newer releases need an unreleased cordova-ios.
	WhitelistPlugin = "cordova-plugin-whitelist@1.0.0"

	// WebAppToolkitURL documents the manual steps of the Web App Toolkit.
	WebAppToolkitURL = "https://github.com/manifoldjs/Web-App-ToolKit"
)

// ErrInvalidPluginSpec is the sentinel error wrapped by InvalidPluginSpecError.
var ErrInvalidPluginSpec = errors.New("invalid plugin spec")

type (
	// PluginSpec is an npm-style plugin reference: an id, a git URL or a
	// local path, optionally followed by @ and a version range.
	PluginSpec struct {
		ID      string
		Version string
	}

	// InvalidPluginSpecError is returned when a plugin spec cannot be parsed.
	InvalidPluginSpecError struct {
		Value string
		Cause error
	}

	// PluginOptions selects the optional plugins of a project.
	PluginOptions struct {
		Crosswalk     bool
		WebAppToolkit bool
	}
)

// Error implements the error interface.
func (e *InvalidPluginSpecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid plugin spec %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid plugin spec %q", e.Value)
}

// Unwrap returns ErrInvalidPluginSpec for errors.Is() compatibility.
func (e *InvalidPluginSpecError) Unwrap() error { return ErrInvalidPluginSpec }

// ParsePluginSpec splits s into id and version range and checks that the
// range is made of valid comparators. URLs and paths are accepted as is, and
// so are dist-tags such as "latest".
func ParsePluginSpec(s string) (PluginSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PluginSpec{}, &InvalidPluginSpecError{Value: s}
	}
	if isLocation(s) {
		return PluginSpec{ID: s}, nil
	}

	// A leading @ belongs to a scoped package name.
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return PluginSpec{ID: s}, nil
	}

	spec := PluginSpec{ID: s[:at], Version: strings.TrimSpace(s[at+1:])}
	if spec.ID == "" || spec.Version == "" {
		return PluginSpec{}, &InvalidPluginSpecError{Value: s}
	}
	if err := validateRange(spec.Version); err != nil {
		return PluginSpec{}, &InvalidPluginSpecError{Value: s, Cause: err}
	}
	return spec, nil
}

// MustParsePluginSpec is like ParsePluginSpec but panics if s is invalid.
// It is meant for built-in specs such as DefaultHostedWebAppPlugin.
func MustParsePluginSpec(s string) PluginSpec {
	spec, err := ParsePluginSpec(s)
	if err != nil {
		panic(err)
	}
	return spec
}

// String returns the spec in the form passed to "cordova plugin add".
func (p PluginSpec) String() string {
	if p.Version == "" {
		return p.ID
	}
	return p.ID + "@" + p.Version
}

// ResolveHostedWebAppPlugin picks the hosted web app plugin from the
// environment override, then configured, then the built-in default.
func ResolveHostedWebAppPlugin(configured string) (PluginSpec, error) {
	raw := DefaultHostedWebAppPlugin
	if env := strings.TrimSpace(os.Getenv(EnvHostedWebAppPlugin)); env != "" {
		raw = env
	} else if strings.TrimSpace(configured) != "" {
		raw = configured
	}
	return ParsePluginSpec(raw)
}

// Plugins returns the ordered plugin list installed into a new project.
func Plugins(hosted PluginSpec, opts PluginOptions) []string {
	plugins := []string{hosted.String()}
	if opts.Crosswalk {
		plugins = append(plugins, CrosswalkPlugin)
	}
	if opts.WebAppToolkit {
		plugins = append(plugins, WebAppToolkitPlugin)
	}
	return append(plugins, WhitelistPlugin)
}

func isLocation(s string) bool {
	return strings.Contains(s, "://") ||
		strings.HasPrefix(s, "git+") ||
		strings.HasPrefix(s, "git@") ||
		strings.HasPrefix(s, ".") ||
		strings.HasPrefix(s, "/") ||
		strings.Contains(s, `\`)
}

// validateRange checks an npm range such as ">=0.2.0 <0.3.0", "1.0.0" or
// "^1.2.0". Alternatives joined with || are checked one by one.
func validateRange(r string) error {
	if !strings.ContainsAny(r, "0123456789") {
		// dist-tag
		return nil
	}

	for alt := range strings.SplitSeq(r, "||") {
		var comparators []string
		for tok := range strings.FieldsSeq(alt) {
			switch {
			case tok == "-":
				// hyphen range: both bounds are checked as comparators
			case strings.HasPrefix(tok, "^"), strings.HasPrefix(tok, "~") && !strings.HasPrefix(tok, "~>"):
				if _, err := version.NewVersion(strings.TrimLeft(tok, "^~")); err != nil {
					return err
				}
			case strings.ContainsAny(tok, "xX*"):
				// wildcard versions such as 1.x match any patch
				if _, err := version.NewVersion(strings.NewReplacer("x", "0", "X", "0", "*", "0").Replace(tok)); err != nil {
					return err
				}
			default:
				comparators = append(comparators, tok)
			}
		}
		if len(comparators) == 0 {
			continue
		}
		if _, err := version.NewConstraint(strings.Join(comparators, ",")); err != nil {
			return err
		}
	}
	return nil
}
