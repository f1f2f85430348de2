// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

func newPackageCommand(app *App) *cobra.Command {
	var (
		dir       string
		platforms []string
	)

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Build the generated platforms",
		Long: `Build the generated platforms with the cordova CLI.

Platforms that cannot be built on this host (iOS outside macOS, Windows
outside Windows) are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd)
			if err != nil {
				return app.fail(err)
			}
			ids, err := s.Platforms(platforms)
			if err != nil {
				return s.fail(err)
			}
			orch, err := s.Orchestrator(ids)
			if err != nil {
				return s.fail(err)
			}

			out, err := orch.Package(cmd.Context(), dir)
			if err != nil {
				return s.fail(err)
			}
			renderPackageOutcome(s.Stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", defaultOutputDir, "root directory of the generated project")
	cmd.Flags().StringSliceVarP(&platforms, "platforms", "p", nil, "sub-platforms to build (default from config)")

	return cmd
}
