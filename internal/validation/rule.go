// SPDX-License-Identifier: MPL-2.0

package validation

import (
	"slices"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

type (
	// Rule checks one requirement against a manifest. Validate returns nil
	// when the manifest satisfies the rule. Implementations must not perform
	// I/O or keep state between calls.
	Rule interface {
		Name() string
		Description() string
		Validate(m *manifest.Manifest) (*Result, error)
	}

	// RequiredImages is satisfied only when every size in Sizes appears in
	// the manifest's icons. The finding lists the missing sizes in Sizes order.
	RequiredImages struct {
		RuleName string
		Summary  string
		Platform platform.ID
		Level    Level
		Sizes    []string
	}

	// ImageGroup is satisfied when at least one size in Sizes appears in the
	// manifest's icons. The finding lists the whole group.
	ImageGroup struct {
		RuleName string
		Summary  string
		Platform platform.ID
		Level    Level
		Sizes    []string
	}
)

// Name returns the rule identifier.
func (r RequiredImages) Name() string { return r.RuleName }

// Description returns the human-readable requirement.
func (r RequiredImages) Description() string { return r.Summary }

// Validate implements Rule.
func (r RequiredImages) Validate(m *manifest.Manifest) (*Result, error) {
	present := m.IconSizes()

	var missing []string
	for _, size := range r.Sizes {
		if _, ok := present[size]; !ok {
			missing = append(missing, size)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	return &Result{
		Platform: r.Platform,
		Level:    r.Level,
		Member:   MemberIcons,
		Code:     CodeMissingImage,
		Data:     missing,
	}, nil
}

// Name returns the rule identifier.
func (r ImageGroup) Name() string { return r.RuleName }

// Description returns the human-readable requirement.
func (r ImageGroup) Description() string { return r.Summary }

// Validate implements Rule.
func (r ImageGroup) Validate(m *manifest.Manifest) (*Result, error) {
	present := m.IconSizes()

	for _, size := range r.Sizes {
		if _, ok := present[size]; ok {
			return nil, nil
		}
	}

	return &Result{
		Platform: r.Platform,
		Level:    r.Level,
		Member:   MemberIcons,
		Code:     CodeMissingImageGroup,
		Data:     slices.Clone(r.Sizes),
	}, nil
}
