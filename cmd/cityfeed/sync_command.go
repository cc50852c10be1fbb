package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cityfeed/internal/config"
	"cityfeed/internal/feed"
	"cityfeed/internal/merge"
	"cityfeed/internal/store"
	"cityfeed/internal/violation"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the feed and merge it in one cycle (for cron)",
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
			if len(records) == 0 {
				return fmt.Errorf("feed returned no records")
			}

			// Stage the snapshot first so a failed merge can be replayed
			// offline with `cityfeed update`.
			snapshot := feed.SnapshotPath(cfg.Paths.DataDir, time.Now())
			if err := feed.WriteSnapshot(snapshot, records); err != nil {
				return err
			}
			if err := feed.WriteSnapshot(feed.LatestPath(cfg.Paths.DataDir), records); err != nil {
				return err
			}
			logger.Info("staged feed snapshot", "path", snapshot, "records", len(records))

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				engine := merge.NewEngine(cfg, st, logger)
				result, err := engine.MergeBatch(cmd.Context(), violation.NewBatch(records))
				if err != nil {
					return err
				}
				printMergeResult(cmd, result)
				return nil
			})
		},
	}
}
