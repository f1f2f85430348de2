// SPDX-License-Identifier: MPL-2.0

package validation

import (
	"errors"
	"fmt"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const (
	// LevelSuggestion marks a finding the app works without.
	LevelSuggestion Level = "suggestion"
	// LevelWarning marks a finding likely to break packaging or store submission.
	LevelWarning Level = "warning"

	// CodeMissingImage reports required image sizes that are absent.
	CodeMissingImage Code = "missingImage"
	// CodeMissingImageGroup reports that none of a group of acceptable sizes is present.
	CodeMissingImageGroup Code = "missingImageGroup"

	// MemberIcons is the manifest member icon rules inspect.
	MemberIcons = "icons"
)

var (
	// ErrRule is the sentinel error wrapped by RuleError.
	ErrRule = errors.New("validation rule failed")
	// ErrUnknownPlatform is returned when no rule set exists for a platform.
	ErrUnknownPlatform = errors.New("unknown validation platform")
)

type (
	// Level is the severity of a Result.
	Level string

	// Code is the machine-readable kind of a Result.
	Code string

	// Result is a single finding. Its JSON shape is consumed by reporting
	// layers and must stay {platform, level, member, code, data}.
	Result struct {
		Platform platform.ID `json:"platform"`
		Level    Level       `json:"level"`
		Member   string      `json:"member"`
		Code     Code        `json:"code"`
		Data     []string    `json:"data"`
	}

	// RuleError reports a defect in a rule's own execution, as opposed to a
	// finding about the manifest. It wraps ErrRule for errors.Is().
	RuleError struct {
		Rule     string
		Platform platform.ID
		Cause    error
	}
)

// String returns the string representation of the Level.
func (l Level) String() string { return string(l) }

// String returns the string representation of the Code.
func (c Code) String() string { return string(c) }

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s/%s: %v", e.Platform, e.Rule, e.Cause)
}

// Unwrap returns both ErrRule and the underlying cause.
func (e *RuleError) Unwrap() []error { return []error{ErrRule, e.Cause} }
