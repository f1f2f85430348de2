// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/pwa-builder/manifoldjs-cordova/internal/config"
	"github.com/pwa-builder/manifoldjs-cordova/internal/cordova"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage manifoldjs-cordova configuration",
		Long: `Manage manifoldjs-cordova configuration.

Configuration is stored in:
  - Linux: ~/.config/manifoldjs-cordova/config.cue
  - macOS: ~/Library/Application Support/manifoldjs-cordova/config.cue
  - Windows: %APPDATA%\manifoldjs-cordova\config.cue

Every key can be overridden with a ` + config.EnvPrefix + `_<SECTION>_<KEY> environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd)
			if err != nil {
				return app.fail(err)
			}
			showConfig(s)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return app.fail(fmt.Errorf("failed to create config: %w", err))
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.flags.configFile
			if path == "" {
				var err error
				if path, err = config.FilePath(); err != nil {
					return app.fail(err)
				}
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(s *Session) {
	cfg := s.Config
	w := s.Stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if s.ConfigPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), s.ConfigPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	plugin := cfg.Cordova.Plugin
	if plugin == "" {
		plugin = cordova.DefaultHostedWebAppPlugin
	}
	searchPaths := SubtitleStyle.Render("(PATH)")
	if len(cfg.Cordova.SearchPaths) > 0 {
		searchPaths = valueStyle.Render(strings.Join(cfg.Cordova.SearchPaths, ", "))
	}

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("cordova"))
	fmt.Fprintf(w, "  plugin: %s\n", valueStyle.Render(plugin))
	fmt.Fprintf(w, "  search_paths: %s\n", searchPaths)
	fmt.Fprintf(w, "  retry_attempts: %s\n", valueStyle.Render(fmt.Sprint(cfg.Cordova.RetryAttempts)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("generation"))
	fmt.Fprintf(w, "  platforms: %s\n", valueStyle.Render(strings.Join(cfg.Generation.Platforms, ", ")))
	fmt.Fprintf(w, "  crosswalk: %s\n", valueStyle.Render(fmt.Sprint(cfg.Generation.Crosswalk)))
	fmt.Fprintf(w, "  web_app_toolkit: %s\n", valueStyle.Render(fmt.Sprint(cfg.Generation.WebAppToolkit)))
	fmt.Fprintf(w, "  concurrency: %s\n", valueStyle.Render(fmt.Sprint(cfg.Generation.Concurrency)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(w, "  log_level: %s\n", valueStyle.Render(cfg.UI.LogLevel.String()))
}
