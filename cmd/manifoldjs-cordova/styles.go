// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette of the CLI output. Each platform result line is a status glyph
// followed by the platform name, so the status colors carry most meaning.
const (
	ColorBrand   = lipgloss.Color("#4CC2E4")
	ColorMuted   = lipgloss.Color("#8A8F98")
	ColorOK      = lipgloss.Color("#3FB950")
	ColorFailed  = lipgloss.Color("#F85149")
	ColorSkipped = lipgloss.Color("#D29922")
	ColorKey     = lipgloss.Color("#79C0FF")
)

var (
	// TitleStyle renders command headings such as "Cordova project generated".
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBrand)

	// SubtitleStyle renders defaults and summaries.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// SuccessStyle renders completed platforms and values.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorOK)

	// ErrorStyle renders failed platforms and rule errors.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFailed)

	// WarningStyle renders validation warnings and platforms skipped on this host.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorSkipped)

	// CmdStyle renders rule names, paths and config keys.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorKey)

	suggestionStyle = lipgloss.NewStyle().Foreground(ColorKey).Italic(true)
)
