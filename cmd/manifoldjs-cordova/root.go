// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "manifoldjs-cordova",
		Short: "Generate Cordova hosted web app projects from a web app manifest",
		Long: TitleStyle.Render("manifoldjs-cordova") + SubtitleStyle.Render(" - Cordova projects for hosted web apps") + `

manifoldjs-cordova turns a W3C web app manifest into a Cordova project that
wraps the hosted site for Android, iOS and Windows, then builds, runs or
opens the generated platforms with the cordova CLI.

` + SubtitleStyle.Render("Examples:") + `
  manifoldjs-cordova validate -m manifest.json      Check the manifest icons
  manifoldjs-cordova create -m manifest.json -d out Generate all platforms
  manifoldjs-cordova package -d out -p android      Build the Android project
  manifoldjs-cordova run android -d out             Launch on a device or emulator
  manifoldjs-cordova config show                    Show current configuration`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "stream cordova output and log at debug level")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is $HOME/.config/manifoldjs-cordova/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.flags.envFile, "env-file", DefaultEnvFile, "dotenv file loaded before the configuration")

	rootCmd.AddCommand(
		newCreateCommand(app),
		newPackageCommand(app),
		newRunCommand(app),
		newOpenCommand(app),
		newValidateCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}
