// SPDX-License-Identifier: MPL-2.0

package validation

import "github.com/pwa-builder/manifoldjs-cordova/pkg/platform"

// AndroidRules returns the icon requirements of the android sub-platform.
func AndroidRules() []Rule {
	return []Rule{
		RequiredImages{
			RuleName: "requiredLaunchImage",
			Summary:  "Launcher icons of the following sizes are required: 48x48, 72x72, 96x96, 144x144, 192x192 and 512x512",
			Platform: platform.AndroidID,
			Level:    LevelSuggestion,
			Sizes:    []string{"48x48", "72x72", "96x96", "144x144", "192x192", "512x512"},
		},
	}
}

// IOSRules returns the icon and launch image requirements of the ios sub-platform.
func IOSRules() []Rule {
	return []Rule{
		RequiredImages{
			RuleName: "requiredLaunchImage",
			Summary: "Launch images of the following sizes are required: 750x1334, 1334x750, 1242x2208, 2208x1242, " +
				"640x1136, 640x960, 1536x2048, 2048x1536, 768x1024 and 1024x768",
			Platform: platform.IOSID,
			Level:    LevelSuggestion,
			Sizes: []string{
				"750x1334", "1334x750", "1242x2208", "2208x1242", "640x1136",
				"640x960", "1536x2048", "2048x1536", "768x1024", "1024x768",
			},
		},
		RequiredImages{
			RuleName: "requiredAppIcon",
			Summary:  "An app icon of the following sizes is required: 76x76, 120x120, 152x152 and 180x180",
			Platform: platform.IOSID,
			Level:    LevelSuggestion,
			Sizes:    []string{"76x76", "120x120", "152x152", "180x180"},
		},
		RequiredImages{
			RuleName: "requiredAppStoreIcon",
			Summary:  "An 1024x1024 app icon for the App Store is required",
			Platform: platform.IOSID,
			Level:    LevelSuggestion,
			Sizes:    []string{"1024x1024"},
		},
	}
}

// WindowsRules returns the logo requirements of the windows sub-platform.
func WindowsRules() []Rule {
	return []Rule{
		ImageGroup{
			RuleName: "requiredSquareLogo",
			Summary:  "A square logo of any of the following sizes is required for Windows: 120x120, 150x150, 210x210, 270x270",
			Platform: platform.WindowsID,
			Level:    LevelWarning,
			Sizes:    []string{"120x120", "150x150", "210x210", "270x270"},
		},
		ImageGroup{
			RuleName: "requiredSmallSquareLogo",
			Summary:  "A small square logo of any of the following sizes is required for Windows: 24x24, 30x30, 42x42, 54x54",
			Platform: platform.WindowsID,
			Level:    LevelWarning,
			Sizes:    []string{"24x24", "30x30", "42x42", "54x54"},
		},
		ImageGroup{
			RuleName: "requiredStoreLogo",
			Summary:  "A store logo of any of the following sizes is recommended for Windows: 50x50, 70x70, 90x90",
			Platform: platform.WindowsID,
			Level:    LevelSuggestion,
			Sizes:    []string{"50x50", "70x70", "90x90"},
		},
	}
}
