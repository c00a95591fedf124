package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parentwork/internal/config"
	"parentwork/internal/library"
	"parentwork/internal/parentwork"
	"parentwork/internal/services"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		path        string
		artist      string
		title       string
		workID      string
		recordingID string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Import a track into the library",
		Long: "Add a track to the library. When parentwork.auto is enabled the parent work\n" +
			"is fetched immediately, the same way a freshly imported item would be.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
				return errors.New("--artist and --title are required")
			}
			if strings.TrimSpace(path) != "" {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve path: %w", err)
				}
				path = expanded
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := services.WithOrigin(cmd.Context(), "add")
			item, err := store.Add(runCtx, &library.Item{
				Path:        path,
				Artist:      artist,
				Title:       title,
				WorkID:      workID,
				RecordingID: recordingID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added item #%d: %s\n", item.ID, item.Label())

			if !cfg.ParentWork.Auto {
				return nil
			}
			unlock, err := store.Lock()
			if err != nil {
				return err
			}
			defer func() { _ = unlock() }()

			processor, err := ctx.newProcessor(store)
			if err != nil {
				return err
			}
			hook := parentwork.ImportHook{Processor: processor, Auto: cfg.ParentWork.Auto, Force: cfg.ParentWork.Force}
			if _, err := hook.Imported(runCtx, []*library.Item{item}); err != nil {
				return err
			}
			if item.HasParentWork() {
				fmt.Fprintf(out, "Parent work: %s\n", item.ParentFields.Work)
				if item.ParentFields.Composer != "" {
					fmt.Fprintf(out, "Composer: %s\n", item.ParentFields.Composer)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Audio file path (optional, must be unique)")
	cmd.Flags().StringVar(&artist, "artist", "", "Track artist")
	cmd.Flags().StringVar(&title, "title", "", "Track title")
	cmd.Flags().StringVar(&workID, "work-id", "", "MusicBrainz work id(s), comma-space separated")
	cmd.Flags().StringVar(&recordingID, "mbid", "", "MusicBrainz recording id")
	return cmd
}
