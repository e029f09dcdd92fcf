// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/modwire/modwire/internal/issue"
	"github.com/modwire/modwire/internal/order"
	"github.com/modwire/modwire/internal/resolve"
)

// newResolveCommand creates the `modwire resolve` command. Positional
// arguments name the triggers of the pass; with no arguments a single
// "default" trigger is resolved.
func newResolveCommand(app *App) *cobra.Command {
	var (
		searchPaths []string
		excludes    []string
		capability  string
		format      string
	)

	resolveCmd := &cobra.Command{
		Use:   "resolve [trigger...]",
		Short: "Compute the module activation order",
		Long: `Compute the module activation order.

Scans the search paths for modwire.manifest files, gathers the candidates
registered under the capability key, applies exclusions and condition
filters, and prints the final activation order. Each positional argument
names one trigger of the pass; entries from all triggers are merged before
ordering, and an exclusion declared anywhere removes the module globally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "toml" {
				return fmt.Errorf("invalid --format %q (valid: text, toml)", format)
			}

			names := args
			if len(names) == 0 {
				names = []string{"default"}
			}
			triggers := make([]resolve.Trigger, 0, len(names))
			for _, name := range names {
				triggers = append(triggers, resolve.Trigger{
					Name:     name,
					Excludes: excludes,
				})
			}

			report, err := app.Resolution.Run(cmd.Context(), ResolveRequest{
				SearchPaths: searchPaths,
				Triggers:    triggers,
				Capability:  capability,
				ConfigPath:  cfgFile,
			})
			if err != nil {
				renderResolutionIssue(err)
				return err
			}

			if format == "toml" {
				return writeReportTOML(app, report)
			}
			return writeReportText(app, report)
		},
	}

	resolveCmd.Flags().StringArrayVar(&searchPaths, "search-path", nil, "extra manifest root to scan (repeatable)")
	resolveCmd.Flags().StringArrayVar(&excludes, "exclude", nil, "module identifier to exclude from every trigger (repeatable)")
	resolveCmd.Flags().StringVar(&capability, "capability", "", "capability key to query (default from config)")
	resolveCmd.Flags().StringVar(&format, "format", "text", "output format: text or toml")

	return resolveCmd
}

// renderResolutionIssue prints the remediation card matching the error, when
// one exists. The error itself still propagates to the caller.
func renderResolutionIssue(err error) {
	var id issue.Id
	var cycleErr *order.CycleError
	switch {
	case errors.Is(err, resolve.ErrNoCandidates):
		id = issue.NoCandidatesId
	case errors.Is(err, resolve.ErrInvalidExclusion):
		id = issue.InvalidExclusionId
	case errors.Is(err, resolve.ErrListener):
		id = issue.ListenerFailedId
	case errors.As(err, &cycleErr):
		id = issue.OrderingCycleId
	default:
		return
	}

	rendered, renderErr := issue.Get(id).Render("dark")
	if renderErr != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

func writeReportText(app *App, report *ResolveReport) error {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Activation order"))
	fmt.Fprintln(app.stdout)

	if len(report.Modules) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(no modules selected)"))
	}
	for i, module := range report.Modules {
		fmt.Fprintf(app.stdout, "  %2d. %s %s\n",
			i+1,
			ModuleStyle.Render(module.ID),
			SubtitleStyle.Render("(via "+module.Trigger+")"))
	}

	if len(report.Exclusions) > 0 {
		fmt.Fprintln(app.stdout)
		fmt.Fprintln(app.stdout, TitleStyle.Render("Exclusions"))
		fmt.Fprintln(app.stdout)
		for _, id := range report.Exclusions {
			fmt.Fprintf(app.stdout, "  - %s\n", VerboseStyle.Render(id))
		}
	}
	return nil
}

func writeReportTOML(app *App, report *ResolveReport) error {
	data, err := toml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = app.stdout.Write(data)
	return err
}
