// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/modwire/modwire/internal/issue"
)

// newInspectCommand creates the `modwire inspect` command: a read-only dump
// of what discovery found, useful when a module unexpectedly fails to
// activate.
func newInspectCommand(app *App) *cobra.Command {
	var searchPaths []string

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show discovered manifests, candidates, and metadata facts",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Resolution.Inspect(cmd.Context(), ResolveRequest{
				SearchPaths: searchPaths,
				ConfigPath:  cfgFile,
			})
			if err != nil {
				return err
			}

			if len(report.Sources) == 0 {
				rendered, renderErr := issue.Get(issue.ManifestNotFoundId).Render("dark")
				if renderErr == nil {
					fmt.Fprint(os.Stderr, rendered)
				}
				return fmt.Errorf("no modwire.manifest files found")
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Manifests"))
			fmt.Fprintln(app.stdout)
			for _, source := range report.Sources {
				fmt.Fprintf(app.stdout, "  - %s\n", source)
			}

			fmt.Fprintln(app.stdout)
			fmt.Fprintln(app.stdout, TitleStyle.Render("Candidates"))
			fmt.Fprintln(app.stdout)
			capabilities := make([]string, 0, len(report.Capabilities))
			for capability := range report.Capabilities {
				capabilities = append(capabilities, capability)
			}
			sort.Strings(capabilities)
			for _, capability := range capabilities {
				fmt.Fprintf(app.stdout, "  %s:\n", ModuleStyle.Render(capability))
				for _, id := range report.Capabilities[capability] {
					fmt.Fprintf(app.stdout, "    - %s\n", id)
				}
			}

			if len(report.Facts) > 0 {
				fmt.Fprintln(app.stdout)
				fmt.Fprintln(app.stdout, TitleStyle.Render("Metadata facts"))
				fmt.Fprintln(app.stdout)
				keys := make([]string, 0, len(report.Facts))
				for key := range report.Facts {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Fprintf(app.stdout, "  %s = %s\n", VerboseStyle.Render(key), report.Facts[key])
				}
			}

			return nil
		},
	}

	inspectCmd.Flags().StringArrayVar(&searchPaths, "search-path", nil, "extra manifest root to scan (repeatable)")

	return inspectCmd
}
