// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"strings"

	json "github.com/goccy/go-json"
)

const (
	// FileName is the name of the manifest written into a generated project.
	FileName = "manifest.json"
	// UpdatedFileName is the name of the rewritten manifest some plugins leave
	// next to FileName after installation.
	UpdatedFileName = "manifest.updated.json"
)

// typedMembers lists the members decoded into Manifest fields.
var typedMembers = []string{"start_url", "short_name", "name", "icons"}

type (
	// Manifest is a parsed web app manifest. It is treated as immutable once
	// parsed; callers that need a variant should copy it.
	Manifest struct {
		// StartURL is the absolute URL the app launches at.
		StartURL string `json:"start_url"`
		// ShortName is the display name used for the generated app.
		ShortName string `json:"short_name,omitempty"`
		// Name is the full app name.
		Name string `json:"name,omitempty"`
		// Icons lists the raster images available to the app.
		Icons []Icon `json:"icons,omitempty"`

		// extra holds the members this package does not interpret.
		extra map[string]json.RawMessage
	}

	// Icon describes one entry of the manifest's icons member.
	Icon struct {
		Src   string `json:"src,omitempty"`
		Sizes string `json:"sizes,omitempty"`
		Type  string `json:"type,omitempty"`
	}

	// wireManifest avoids recursion through Manifest's JSON methods.
	wireManifest struct {
		StartURL  string `json:"start_url"`
		ShortName string `json:"short_name,omitempty"`
		Name      string `json:"name,omitempty"`
		Icons     []Icon `json:"icons,omitempty"`
	}
)

// SizeTokens splits the icon's sizes attribute into its WxH tokens.
// Tokens are returned as written; malformed tokens are not filtered.
func (i Icon) SizeTokens() []string {
	return strings.Fields(i.Sizes)
}

// IconSizes returns the union of size tokens across all icons.
// A nil manifest or one without icons yields an empty set.
func (m *Manifest) IconSizes() map[string]struct{} {
	sizes := make(map[string]struct{})
	if m == nil {
		return sizes
	}
	for _, icon := range m.Icons {
		for _, tok := range icon.SizeTokens() {
			sizes[tok] = struct{}{}
		}
	}
	return sizes
}

// Extra returns the raw JSON of a member this package does not interpret.
func (m *Manifest) Extra(member string) (json.RawMessage, bool) {
	raw, ok := m.extra[member]
	return raw, ok
}

// MarshalJSON encodes the typed members merged with the preserved extras.
func (m Manifest) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(wireManifest{
		StartURL:  m.StartURL,
		ShortName: m.ShortName,
		Name:      m.Name,
		Icons:     m.Icons,
	})
	if err != nil {
		return nil, err
	}
	if len(m.extra) == 0 {
		return typed, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(typed, &merged); err != nil {
		return nil, err
	}
	for k, v := range m.extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the typed members and keeps all others verbatim.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var w wireManifest
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range typedMembers {
		delete(all, k)
	}

	m.StartURL = w.StartURL
	m.ShortName = w.ShortName
	m.Name = w.Name
	m.Icons = w.Icons
	m.extra = all
	return nil
}
