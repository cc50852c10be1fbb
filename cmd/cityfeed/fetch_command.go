package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cityfeed/internal/feed"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the current feed into a CSV snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client := feed.NewClient(cfg, logger)
			records, err := client.FetchAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch feed: %w", err)
			}

			snapshot := feed.SnapshotPath(cfg.Paths.DataDir, time.Now())
			if err := feed.WriteSnapshot(snapshot, records); err != nil {
				return err
			}
			latest := feed.LatestPath(cfg.Paths.DataDir)
			if err := feed.WriteSnapshot(latest, records); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d records\n", len(records))
			fmt.Fprintf(out, "Snapshot saved to %s\n", snapshot)
			fmt.Fprintf(out, "Latest data saved to %s\n", latest)
			return nil
		},
	}
}
