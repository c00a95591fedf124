package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCurationCommand(ctx *commandContext) *cobra.Command {
	curationCmd := &cobra.Command{
		Use:   "curation",
		Short: "Inspect missing MusicBrainz links found while fetching",
	}

	curationCmd.AddCommand(newCurationListCommand(ctx))
	curationCmd.AddCommand(newCurationRemoveCommand(ctx))
	curationCmd.AddCommand(newCurationClearCommand(ctx))
	return curationCmd
}

func newCurationListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List works without composers and recordings without works",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ctx.curationLog()
			if err != nil {
				return err
			}
			entries := log.List()
			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if log.Path() == "" {
				fmt.Fprintln(out, "Curation log is disabled (paths.curation_path is empty)")
				return nil
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No missing links recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					string(entry.Kind),
					entry.Artist,
					entry.Title,
					entry.URL,
					entry.RecordedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Missing", "Artist", "Title", "Add At", "Recorded"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCurationRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove an entry once it has been fixed on MusicBrainz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry number %q", args[0])
			}
			log, err := ctx.curationLog()
			if err != nil {
				return err
			}
			entry, err := log.Remove(number)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s entry for %s\n", entry.Kind, entry.MBID)
			return nil
		},
	}
}

func newCurationClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every curation entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ctx.curationLog()
			if err != nil {
				return err
			}
			count := log.Count()
			if err := log.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", count)
			return nil
		},
	}
}
