package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cityfeed/internal/config"
	"cityfeed/internal/feed"
	"cityfeed/internal/merge"
	"cityfeed/internal/store"
	"cityfeed/internal/violation"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge a CSV snapshot into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			source := strings.TrimSpace(filePath)
			if source == "" {
				source = feed.LatestPath(cfg.Paths.DataDir)
			}
			records, err := feed.ReadSnapshot(source)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d records from %s\n", len(records), source)

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

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Snapshot to merge (defaults to the latest fetch)")
	return cmd
}

func printMergeResult(cmd *cobra.Command, result merge.Result) {
	rows := [][]string{
		{"Inserted", fmt.Sprintf("%d", result.Inserted)},
		{"Duplicates", fmt.Sprintf("%d", result.Duplicates)},
		{"Rejected", fmt.Sprintf("%d", result.Rejected)},
		{"New codes", fmt.Sprintf("%d", len(result.NewCodes))},
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
	if len(result.NewCodes) > 0 {
		fmt.Fprintf(out, "Registered codes: %s\n", strings.Join(result.NewCodes, ", "))
	}
}
