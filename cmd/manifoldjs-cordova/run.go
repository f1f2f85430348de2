// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pwa-builder/manifoldjs-cordova/internal/orchestrator"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"

	"github.com/spf13/cobra"
)

// platformAction is the orchestrator call behind run and open.
type platformAction func(ctx context.Context, o orchestrator.Orchestrator, rootDir string, id platform.ID) error

func newRunCommand(app *App) *cobra.Command {
	return newPlatformCommand(app, "run", "Run the app on a device or emulator",
		`Deploy and launch one generated platform with the cordova CLI.

The Windows platform can only be run on a Windows host.`,
		func(ctx context.Context, o orchestrator.Orchestrator, rootDir string, id platform.ID) error {
			return o.Run(ctx, rootDir, id)
		}, "Started")
}

func newOpenCommand(app *App) *cobra.Command {
	return newPlatformCommand(app, "open", "Open the generated platform project in its IDE",
		`Open the Visual Studio solution of the Windows platform.

Only the Windows platform supports open, and only on a Windows host.`,
		func(ctx context.Context, o orchestrator.Orchestrator, rootDir string, id platform.ID) error {
			return o.Open(ctx, rootDir, id)
		}, "Opened")
}

func newPlatformCommand(app *App, use, short, long string, action platformAction, done string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       use + " <platform>",
		Short:     short,
		Long:      long,
		Args:      cobra.ExactArgs(1),
		ValidArgs: platform.Strings(platform.All()),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd)
			if err != nil {
				return app.fail(err)
			}
			ids, err := platform.ParseIDs(args)
			if err != nil {
				return s.fail(err)
			}
			orch, err := s.Orchestrator(ids)
			if err != nil {
				return s.fail(err)
			}

			if err := action(cmd.Context(), orch, dir, ids[0]); err != nil {
				return s.fail(err)
			}
			fmt.Fprintf(s.Stdout, "%s %s %s\n", SuccessStyle.Render("✓"), done, ids[0].Name())
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", defaultOutputDir, "root directory of the generated project")

	return cmd
}
