// SPDX-License-Identifier: MPL-2.0

package validation

import (
	"slices"
	"testing"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

func manifestWithSizes(sizes ...string) *manifest.Manifest {
	m := &manifest.Manifest{StartURL: "https://example.com/"}
	for _, s := range sizes {
		m.Icons = append(m.Icons, manifest.Icon{Src: "icon-" + s + ".png", Sizes: s})
	}
	return m
}

func TestRequiredImages_Validate(t *testing.T) {
	t.Parallel()

	rule := RequiredImages{
		RuleName: "requiredAppIcon",
		Platform: platform.IOSID,
		Level:    LevelSuggestion,
		Sizes:    []string{"76x76", "120x120", "152x152", "180x180"},
	}

	tests := []struct {
		name     string
		manifest *manifest.Manifest
		wantData []string
	}{
		{
			name:     "no icons member",
			manifest: &manifest.Manifest{StartURL: "https://example.com/"},
			wantData: []string{"76x76", "120x120", "152x152", "180x180"},
		},
		{
			name:     "empty icons",
			manifest: manifestWithSizes(),
			wantData: []string{"76x76", "120x120", "152x152", "180x180"},
		},
		{
			name:     "unrelated size only",
			manifest: manifestWithSizes("1x1"),
			wantData: []string{"76x76", "120x120", "152x152", "180x180"},
		},
		{
			name:     "first size present",
			manifest: manifestWithSizes("76x76"),
			wantData: []string{"120x120", "152x152", "180x180"},
		},
		{
			name:     "last size present",
			manifest: manifestWithSizes("180x180"),
			wantData: []string{"76x76", "120x120", "152x152"},
		},
		{
			name:     "all sizes present",
			manifest: manifestWithSizes("76x76", "120x120", "152x152", "180x180"),
		},
		{
			name:     "all sizes with extras appended",
			manifest: manifestWithSizes("76x76", "120x120", "152x152", "180x180", "1x1", "2x2"),
		},
		{
			name:     "all sizes with extras prepended",
			manifest: manifestWithSizes("1x1", "2x2", "76x76", "120x120", "152x152", "180x180"),
		},
		{
			name:     "sizes packed into one icon",
			manifest: manifestWithSizes("76x76 120x120", "152x152 180x180"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := rule.Validate(tt.manifest)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			if tt.wantData == nil {
				if res != nil {
					t.Fatalf("Validate() = %+v, want nil", res)
				}
				return
			}

			if res == nil {
				t.Fatal("Validate() = nil, want finding")
			}
			if res.Platform != platform.IOSID {
				t.Errorf("Platform = %q, want %q", res.Platform, platform.IOSID)
			}
			if res.Level != LevelSuggestion {
				t.Errorf("Level = %q, want %q", res.Level, LevelSuggestion)
			}
			if res.Member != MemberIcons {
				t.Errorf("Member = %q, want %q", res.Member, MemberIcons)
			}
			if res.Code != CodeMissingImage {
				t.Errorf("Code = %q, want %q", res.Code, CodeMissingImage)
			}
			if !slices.Equal(res.Data, tt.wantData) {
				t.Errorf("Data = %v, want %v", res.Data, tt.wantData)
			}
		})
	}
}

func TestRequiredImages_NilManifest(t *testing.T) {
	t.Parallel()

	rule := RequiredImages{RuleName: "r", Platform: platform.AndroidID, Level: LevelSuggestion, Sizes: []string{"48x48"}}
	res, err := rule.Validate(nil)
	if err != nil {
		t.Fatalf("Validate(nil) error = %v", err)
	}
	if res == nil || !slices.Equal(res.Data, []string{"48x48"}) {
		t.Errorf("Validate(nil) = %+v, want all sizes missing", res)
	}
}

func TestImageGroup_Validate(t *testing.T) {
	t.Parallel()

	rule := ImageGroup{
		RuleName: "requiredSquareLogo",
		Platform: platform.WindowsID,
		Level:    LevelWarning,
		Sizes:    []string{"120x120", "150x150", "210x210", "270x270"},
	}

	tests := []struct {
		name     string
		manifest *manifest.Manifest
		wantNil  bool
	}{
		{name: "no icons member", manifest: &manifest.Manifest{StartURL: "https://example.com/"}},
		{name: "empty icons", manifest: manifestWithSizes()},
		{name: "unrelated size only", manifest: manifestWithSizes("1x1")},
		{name: "first size present", manifest: manifestWithSizes("120x120"), wantNil: true},
		{name: "last size present", manifest: manifestWithSizes("270x270"), wantNil: true},
		{name: "size among extras", manifest: manifestWithSizes("1x1", "210x210", "2x2"), wantNil: true},
		{name: "all sizes present", manifest: manifestWithSizes("120x120", "150x150", "210x210", "270x270"), wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := rule.Validate(tt.manifest)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			if tt.wantNil {
				if res != nil {
					t.Fatalf("Validate() = %+v, want nil", res)
				}
				return
			}

			if res == nil {
				t.Fatal("Validate() = nil, want finding")
			}
			if res.Code != CodeMissingImageGroup {
				t.Errorf("Code = %q, want %q", res.Code, CodeMissingImageGroup)
			}
			if res.Level != LevelWarning {
				t.Errorf("Level = %q, want %q", res.Level, LevelWarning)
			}
			if !slices.Equal(res.Data, rule.Sizes) {
				t.Errorf("Data = %v, want %v", res.Data, rule.Sizes)
			}
		})
	}
}

func TestImageGroup_DataIsCopy(t *testing.T) {
	t.Parallel()

	rule := ImageGroup{RuleName: "g", Platform: platform.WindowsID, Level: LevelWarning, Sizes: []string{"50x50", "70x70"}}
	res, err := rule.Validate(manifestWithSizes())
	if err != nil || res == nil {
		t.Fatalf("Validate() = %v, %v", res, err)
	}

	res.Data[0] = "mutated"
	if rule.Sizes[0] != "50x50" {
		t.Error("mutating a finding changed the rule's sizes")
	}
}

func TestBuiltinRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rules     []Rule
		platform  platform.ID
		wantNames []string
	}{
		{"android", AndroidRules(), platform.AndroidID, []string{"requiredLaunchImage"}},
		{"ios", IOSRules(), platform.IOSID, []string{"requiredLaunchImage", "requiredAppIcon", "requiredAppStoreIcon"}},
		{"windows", WindowsRules(), platform.WindowsID, []string{"requiredSquareLogo", "requiredSmallSquareLogo", "requiredStoreLogo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var names []string
			for _, r := range tt.rules {
				names = append(names, r.Name())
				if r.Description() == "" {
					t.Errorf("rule %s has no description", r.Name())
				}

				res, err := r.Validate(manifestWithSizes())
				if err != nil {
					t.Fatalf("rule %s error = %v", r.Name(), err)
				}
				if res == nil {
					t.Fatalf("rule %s passed a manifest without icons", r.Name())
				}
				if res.Platform != tt.platform {
					t.Errorf("rule %s Platform = %q, want %q", r.Name(), res.Platform, tt.platform)
				}
			}
			if !slices.Equal(names, tt.wantNames) {
				t.Errorf("rule names = %v, want %v", names, tt.wantNames)
			}
		})
	}
}

func TestAndroidLaunchImage_AllSizes(t *testing.T) {
	t.Parallel()

	m := manifestWithSizes("48x48", "72x72", "96x96", "144x144", "192x192", "512x512")
	for _, r := range AndroidRules() {
		res, err := r.Validate(m)
		if err != nil || res != nil {
			t.Errorf("rule %s = %+v, %v; want nil, nil", r.Name(), res, err)
		}
	}
}
