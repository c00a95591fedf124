package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parentwork/internal/preflight"
	"parentwork/internal/services"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var skipChecks bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fetch [query...]",
		Short: "Fetch parent works, composers, and disambiguations for library items",
		Long: "Resolve each selected item's MusicBrainz works to their root parent work and\n" +
			"store the parent work, disambiguation, composer, and composer sort name.\n\n" +
			"Query terms use field:value selectors (artist, title, work_id, parent_work, ...);\n" +
			"bare words match artist or title. No terms selects the whole library.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := services.WithOrigin(cmd.Context(), "fetch")

			if !skipChecks {
				if failed := preflight.Failed(preflight.RunLocal(runCtx, cfg)); len(failed) > 0 {
					details := make([]string, 0, len(failed))
					for _, result := range failed {
						details = append(details, fmt.Sprintf("%s: %s", result.Name, result.Detail))
					}
					return services.Wrap(services.ErrConfiguration, "fetch", "preflight",
						"checks failed (run `parentwork check`): "+strings.Join(details, "; "), nil)
				}
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			unlock, err := store.Lock()
			if err != nil {
				return err
			}
			defer func() { _ = unlock() }()

			items, err := store.Query(runCtx, args...)
			if err != nil {
				return err
			}
			processor, err := ctx.newProcessor(store)
			if err != nil {
				return err
			}

			summary, err := processor.Run(runCtx, items, force || cfg.ParentWork.Force)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary.String())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Always re-fetch works")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip local preflight checks")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")
	return cmd
}
