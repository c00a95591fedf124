package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [query...]",
		Short: "List library items and their parent work fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.Query(cmd.Context(), args...)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, items)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No items match")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.Artist,
					item.Title,
					dashIfEmpty(item.WorkID),
					dashIfEmpty(item.ParentFields.Work),
					dashIfEmpty(item.ParentFields.WorkDisambig),
					dashIfEmpty(item.ParentFields.Composer),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Artist", "Title", "Work ID", "Parent Work", "Disambiguation", "Composer"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
